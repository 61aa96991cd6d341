package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	annotationapp "github.com/catalogkit/annolint/internal/app/annotation"
	"github.com/catalogkit/annolint/internal/domain"
	"github.com/catalogkit/annolint/internal/infra/catalogfile"
	"github.com/catalogkit/annolint/internal/infra/ident"
	"github.com/catalogkit/annolint/internal/infra/schemastore"
)

func newValidateCmd(opts *RootOptions) *cobra.Command {
	var tagName string
	cmd := &cobra.Command{
		Use:   "validate <schema> [<table>]",
		Short: "Validate annotations of a schema or table",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := ident.NewRunIDGenerator().NewID()
			if err != nil {
				return err
			}
			logger := slog.Default().With("run_id", runID)

			model, err := loadCatalog(opts)
			if err != nil {
				return err
			}
			obj, err := resolveObject(model, args)
			if err != nil {
				return err
			}

			service := annotationapp.NewService(annotationapp.NewRepository(newSchemaSource(opts)), logger)
			var tags []domain.Tag
			if name := strings.TrimSpace(tagName); name != "" {
				tags = append(tags, domain.Tag(name))
			}

			findings, err := service.Validate(cmd.Context(), obj, tags...)
			if err != nil {
				return err
			}
			if err := writeFindings(cmd.OutOrStdout(), findings, opts.JSONOutput); err != nil {
				return err
			}
			if len(findings) > 0 {
				return ExitError{
					Code:    ExitInvalid,
					Kind:    KindValidation,
					Message: fmt.Sprintf("%d annotation validation error(s)", len(findings)),
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tagName, "tag", "", "Validate only this annotation tag URI")
	return cmd
}

func newTagsCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List known annotation tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source := newSchemaSource(opts)
			type tagInfo struct {
				Abbreviation string `json:"abbreviation"`
				Tag          string `json:"tag"`
				HasSchema    bool   `json:"has_schema"`
			}
			var infos []tagInfo
			for _, tag := range domain.KnownTags() {
				abbrev, _ := domain.Abbreviation(tag)
				_, err := source.ReadSchema(cmd.Context(), abbrev)
				infos = append(infos, tagInfo{Abbreviation: abbrev, Tag: string(tag), HasSchema: err == nil})
			}

			out := cmd.OutOrStdout()
			if opts.JSONOutput {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(infos)
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ABBREVIATION\tTAG\tSCHEMA")
			for _, info := range infos {
				schema := "-"
				if info.HasSchema {
					schema = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Abbreviation, info.Tag, schema)
			}
			return w.Flush()
		},
	}
}

func loadCatalog(opts *RootOptions) (*domain.Model, error) {
	if strings.TrimSpace(opts.CatalogPath) == "" {
		return nil, ErrCatalogRequired
	}
	return catalogfile.Load(opts.CatalogPath)
}

func resolveObject(model *domain.Model, args []string) (domain.AnnotatedObject, error) {
	schema, ok := model.Schema(args[0])
	if !ok {
		return nil, fmt.Errorf("schema %q: %w", args[0], domain.ErrSchemaNotFound)
	}
	if len(args) == 1 {
		return schema, nil
	}
	table, ok := schema.Table(args[1])
	if !ok {
		return nil, fmt.Errorf("table %q: %w", args[1], domain.ErrTableNotFound)
	}
	return table, nil
}

func newSchemaSource(opts *RootOptions) annotationapp.SchemaSource {
	if strings.TrimSpace(opts.SchemaDir) != "" {
		return schemastore.DirSource{Dir: opts.SchemaDir}
	}
	return schemastore.EmbeddedSource{}
}

func writeFindings(out io.Writer, findings []annotationapp.ValidationError, asJSON bool) error {
	if asJSON {
		type finding struct {
			Tag     string `json:"tag"`
			Message string `json:"message"`
		}
		payload := make([]finding, 0, len(findings))
		for _, f := range findings {
			payload = append(payload, finding{Tag: string(f.Tag), Message: f.Message})
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}
	for _, f := range findings {
		if _, err := fmt.Fprintln(out, f.Error()); err != nil {
			return err
		}
	}
	return nil
}
