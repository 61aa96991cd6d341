package catalogfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/catalogkit/annolint/internal/domain"
)

const catalogDocJSON = `{
  "annotations": {
    "tag:misd.isi.edu,2015:display": {"name_style": {"underline_space": true}}
  },
  "schemas": {
    "isa": {
      "annotations": {},
      "tables": {
        "dataset": {
          "annotations": {
            "tag:isrd.isi.edu,2016:visible-columns": {"compact": ["Title"]}
          },
          "column_definitions": [
            {"name": "ID"},
            {"name": "Title"}
          ],
          "keys": [
            {"names": [["isa", "dataset_ID_key"]], "unique_columns": ["ID"]}
          ],
          "foreign_keys": []
        },
        "file": {
          "column_definitions": [
            {"name": "ID"},
            {"name": "dataset_id"}
          ],
          "keys": [],
          "foreign_keys": [
            {
              "names": [["isa", "file_dataset_fkey"]],
              "foreign_key_columns": [
                {"schema_name": "isa", "table_name": "file", "column_name": "dataset_id"}
              ],
              "referenced_columns": [
                {"schema_name": "isa", "table_name": "dataset", "column_name": "ID"}
              ]
            },
            {
              "names": [["", "file_RCB_fkey"]],
              "foreign_key_columns": [
                {"schema_name": "isa", "table_name": "file", "column_name": "RCB"}
              ],
              "referenced_columns": [
                {"schema_name": "isa", "table_name": "dataset", "column_name": "ID"}
              ]
            }
          ]
        }
      }
    }
  }
}`

func TestParseBuildsModelTree(t *testing.T) {
	model, err := Parse([]byte(catalogDocJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := model.Annotations()[domain.TagDisplay]; !ok {
		t.Fatal("expected catalog display annotation to survive")
	}

	schema, ok := model.Schema("isa")
	if !ok {
		t.Fatal("expected schema isa")
	}
	dataset, ok := schema.Table("dataset")
	if !ok {
		t.Fatal("expected table dataset")
	}
	if _, ok := dataset.Annotations()[domain.TagVisibleColumns]; !ok {
		t.Fatal("expected visible-columns annotation on dataset")
	}

	columns := dataset.ColumnDefinitions()
	if len(columns) != 2 || columns[0].Name() != "ID" || columns[1].Name() != "Title" {
		t.Fatalf("unexpected dataset columns %v", columns)
	}
	keys := dataset.Keys()
	if len(keys) != 1 || keys[0].Name() != (domain.ConstraintName{Schema: "isa", Name: "dataset_ID_key"}) {
		t.Fatalf("unexpected dataset keys %v", keys)
	}
}

func TestParseBindsForeignKeyTargets(t *testing.T) {
	model, err := Parse([]byte(catalogDocJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fk, err := model.FKey(domain.ConstraintName{Schema: "isa", Name: "file_dataset_fkey"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fk.Table().Name() != "file" || fk.PKTable().Name() != "dataset" {
		t.Fatalf("expected file -> dataset, got %s -> %s", fk.Table().Name(), fk.PKTable().Name())
	}
}

func TestParseRegistersPseudoForeignKeys(t *testing.T) {
	model, err := Parse([]byte(catalogDocJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fk, err := model.FKey(domain.ConstraintName{Name: "file_RCB_fkey"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fk.Table().Name() != "file" {
		t.Fatalf("expected pseudo fkey on file, got %s", fk.Table().Name())
	}
}

func TestParseRejectsUnnamedConstraint(t *testing.T) {
	doc := `{"schemas": {"s": {"tables": {"t": {
		"column_definitions": [],
		"keys": [{"names": [], "unique_columns": ["ID"]}],
		"foreign_keys": []
	}}}}}`
	if _, err := Parse([]byte(doc)); err == nil || !strings.Contains(err.Error(), "constraint without") {
		t.Fatalf("expected a constraint name error, got %v", err)
	}
}

func TestParseRejectsUnknownReferencedTable(t *testing.T) {
	doc := `{"schemas": {"s": {"tables": {"t": {
		"column_definitions": [{"name": "x"}],
		"keys": [],
		"foreign_keys": [{
			"names": [["s", "t_x_fkey"]],
			"foreign_key_columns": [{"schema_name": "s", "table_name": "t", "column_name": "x"}],
			"referenced_columns": [{"schema_name": "s", "table_name": "missing", "column_name": "ID"}]
		}]
	}}}}}`
	if _, err := Parse([]byte(doc)); err == nil || !strings.Contains(err.Error(), "unknown table") {
		t.Fatalf("expected an unknown table error, got %v", err)
	}
}

func TestParseBadJSON(t *testing.T) {
	if _, err := Parse([]byte(`{nope`)); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(catalogDocJSON), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	model, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.Schema("isa"); !ok {
		t.Fatal("expected schema isa")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing catalog file")
	}
}
