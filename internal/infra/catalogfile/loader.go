// Package catalogfile builds a domain model tree from an ERMrest-style
// catalog schema document ("/schema" snapshot) stored on disk.
package catalogfile

import (
	"fmt"
	"os"

	"github.com/go-json-experiment/json"

	"github.com/catalogkit/annolint/internal/domain"
)

type catalogDoc struct {
	Annotations map[string]any       `json:"annotations"`
	Schemas     map[string]schemaDoc `json:"schemas"`
}

type schemaDoc struct {
	Annotations map[string]any      `json:"annotations"`
	Tables      map[string]tableDoc `json:"tables"`
}

type tableDoc struct {
	Annotations       map[string]any `json:"annotations"`
	ColumnDefinitions []columnDoc    `json:"column_definitions"`
	Keys              []keyDoc       `json:"keys"`
	ForeignKeys       []fkeyDoc      `json:"foreign_keys"`
}

type columnDoc struct {
	Name        string         `json:"name"`
	Annotations map[string]any `json:"annotations"`
}

type keyDoc struct {
	Names         [][]string     `json:"names"`
	UniqueColumns []string       `json:"unique_columns"`
	Annotations   map[string]any `json:"annotations"`
}

type fkeyDoc struct {
	Names             [][]string     `json:"names"`
	ForeignKeyColumns []colRefDoc    `json:"foreign_key_columns"`
	ReferencedColumns []colRefDoc    `json:"referenced_columns"`
	Annotations       map[string]any `json:"annotations"`
}

type colRefDoc struct {
	SchemaName string `json:"schema_name"`
	TableName  string `json:"table_name"`
	ColumnName string `json:"column_name"`
}

// Load reads and parses a catalog schema document from path.
func Load(path string) (*domain.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog document: %w", err)
	}
	return Parse(data)
}

// Parse builds the model tree in two passes: all schemas, tables, columns
// and constraints first, then foreign key referenced (pk) tables once every
// table exists.
func Parse(data []byte) (*domain.Model, error) {
	var doc catalogDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog document: %w", err)
	}

	model := domain.NewModel(toAnnotations(doc.Annotations))

	for sname, sdoc := range doc.Schemas {
		model.AddSchema(sname, toAnnotations(sdoc.Annotations))
	}

	type pending struct {
		fk         *domain.ForeignKey
		schemaName string
		tableName  string
	}
	var unresolved []pending

	for sname, sdoc := range doc.Schemas {
		schema, _ := model.Schema(sname)
		for tname, tdoc := range sdoc.Tables {
			table := schema.AddTable(tname, toAnnotations(tdoc.Annotations))
			for _, cdoc := range tdoc.ColumnDefinitions {
				table.AddColumn(cdoc.Name, toAnnotations(cdoc.Annotations))
			}
			for _, kdoc := range tdoc.Keys {
				name, err := constraintName(kdoc.Names)
				if err != nil {
					return nil, fmt.Errorf("key of table %s:%s: %w", sname, tname, err)
				}
				table.AddKey(name, toAnnotations(kdoc.Annotations))
			}
			for _, fkdoc := range tdoc.ForeignKeys {
				name, err := constraintName(fkdoc.Names)
				if err != nil {
					return nil, fmt.Errorf("foreign key of table %s:%s: %w", sname, tname, err)
				}
				if len(fkdoc.ReferencedColumns) == 0 {
					return nil, fmt.Errorf("foreign key %s of table %s:%s has no referenced columns", name, sname, tname)
				}
				fk := table.AddForeignKey(name, toAnnotations(fkdoc.Annotations))
				unresolved = append(unresolved, pending{
					fk:         fk,
					schemaName: fkdoc.ReferencedColumns[0].SchemaName,
					tableName:  fkdoc.ReferencedColumns[0].TableName,
				})
			}
		}
	}

	for _, p := range unresolved {
		schema, ok := model.Schema(p.schemaName)
		if !ok {
			return nil, fmt.Errorf("foreign key %s references unknown schema %q", p.fk.Name(), p.schemaName)
		}
		table, ok := schema.Table(p.tableName)
		if !ok {
			return nil, fmt.Errorf("foreign key %s references unknown table %s:%s", p.fk.Name(), p.schemaName, p.tableName)
		}
		p.fk.SetPKTable(table)
	}

	return model, nil
}

// constraintName extracts the (schema, name) identity from the document's
// names field. Modern catalogs carry zero or one entries; zero is invalid.
func constraintName(names [][]string) (domain.ConstraintName, error) {
	if len(names) == 0 || len(names[0]) != 2 {
		return domain.ConstraintName{}, fmt.Errorf("constraint without a [schema, name] pair")
	}
	return domain.ConstraintName{Schema: names[0][0], Name: names[0][1]}, nil
}

func toAnnotations(raw map[string]any) domain.Annotations {
	annotations := make(domain.Annotations, len(raw))
	for key, value := range raw {
		annotations[domain.Tag(key)] = value
	}
	return annotations
}
