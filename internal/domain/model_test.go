package domain

import (
	"errors"
	"testing"
)

var (
	_ AnnotatedObject  = (*Model)(nil)
	_ AnnotatedObject  = (*Schema)(nil)
	_ AnnotatedObject  = (*Table)(nil)
	_ AnnotatedObject  = (*Column)(nil)
	_ AnnotatedObject  = (*Key)(nil)
	_ AnnotatedObject  = (*ForeignKey)(nil)
	_ ColumnBearer     = (*Table)(nil)
	_ KeyBearer        = (*Table)(nil)
	_ ForeignKeyBearer = (*Table)(nil)
	_ SchemaBearer     = (*Table)(nil)
	_ TableBearer      = (*Column)(nil)
	_ TableBearer      = (*Key)(nil)
	_ TableBearer      = (*ForeignKey)(nil)
)

func buildModel(t *testing.T) *Model {
	t.Helper()
	model := NewModel(nil)
	schema := model.AddSchema("s", nil)
	parent := schema.AddTable("parent", nil)
	parent.AddColumn("ID", nil)
	parent.AddKey(ConstraintName{Schema: "s", Name: "parent_ID_key"}, nil)
	child := schema.AddTable("child", nil)
	child.AddColumn("ID", nil)
	child.AddColumn("parent_id", nil)
	fk := child.AddForeignKey(ConstraintName{Schema: "s", Name: "child_parent_fkey"}, nil)
	fk.SetPKTable(parent)
	pseudo := child.AddForeignKey(ConstraintName{Name: "child_pseudo_fkey"}, nil)
	pseudo.SetPKTable(parent)
	return model
}

func TestFKeyLookup(t *testing.T) {
	model := buildModel(t)
	fk, err := model.FKey(ConstraintName{Schema: "s", Name: "child_parent_fkey"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fk.Table().Name() != "child" || fk.PKTable().Name() != "parent" {
		t.Fatalf("expected child -> parent, got %s -> %s", fk.Table().Name(), fk.PKTable().Name())
	}
}

func TestFKeyLookupPseudo(t *testing.T) {
	model := buildModel(t)
	fk, err := model.FKey(ConstraintName{Name: "child_pseudo_fkey"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fk.Table().Name() != "child" {
		t.Fatalf("expected child, got %s", fk.Table().Name())
	}
}

func TestFKeyLookupNotFound(t *testing.T) {
	model := buildModel(t)
	for _, name := range []ConstraintName{
		{Schema: "s", Name: "nope"},
		{Schema: "other", Name: "child_parent_fkey"},
		{Name: "nope"},
	} {
		if _, err := model.FKey(name); !errors.Is(err, ErrConstraintNotFound) {
			t.Fatalf("expected ErrConstraintNotFound for %s, got %v", name, err)
		}
	}
}

func TestColumnOrderPreserved(t *testing.T) {
	model := buildModel(t)
	schema, _ := model.Schema("s")
	child, _ := schema.Table("child")
	columns := child.ColumnDefinitions()
	if len(columns) != 2 || columns[0].Name() != "ID" || columns[1].Name() != "parent_id" {
		t.Fatalf("unexpected column order: %v", columns)
	}
}

func TestQualifiedName(t *testing.T) {
	model := buildModel(t)
	schema, _ := model.Schema("s")
	child, _ := schema.Table("child")
	if got := child.QualifiedName(); got != `["s", "child"]` {
		t.Fatalf("unexpected qualified name %s", got)
	}
}
