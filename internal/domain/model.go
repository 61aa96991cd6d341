package domain

import "fmt"

// Annotations maps a tag to the JSON value attached under it. Values are
// plain decoded JSON (map[string]any, []any, string, float64, bool, nil).
type Annotations map[Tag]any

// ConstraintName identifies a key or foreign key as the
// (constraint schema name, constraint name) pair used in annotations.
// An empty schema name denotes a pseudo constraint registered on the model.
type ConstraintName struct {
	Schema string
	Name   string
}

func (n ConstraintName) String() string {
	return fmt.Sprintf("[%q, %q]", n.Schema, n.Name)
}

// AnnotatedObject is any model node carrying annotations.
type AnnotatedObject interface {
	Annotations() Annotations
}

// ColumnBearer is satisfied by nodes with column definitions (tables).
type ColumnBearer interface {
	ColumnDefinitions() []*Column
}

// KeyBearer is satisfied by nodes with key constraints (tables).
type KeyBearer interface {
	Keys() []*Key
}

// ForeignKeyBearer is satisfied by nodes with foreign keys (tables).
type ForeignKeyBearer interface {
	ForeignKeys() []*ForeignKey
}

// TableBearer is satisfied by nodes owned by a table (columns, constraints).
type TableBearer interface {
	Table() *Table
}

// SchemaBearer is satisfied by nodes owned by a schema (tables).
type SchemaBearer interface {
	Schema() *Schema
}

// Model is the root of a catalog model tree. The validation core only reads
// it; the constructor API below exists for loaders and tests.
type Model struct {
	annotations Annotations
	schemas     map[string]*Schema
	pseudoFKeys map[string]*ForeignKey
}

func NewModel(annotations Annotations) *Model {
	if annotations == nil {
		annotations = Annotations{}
	}
	return &Model{
		annotations: annotations,
		schemas:     map[string]*Schema{},
		pseudoFKeys: map[string]*ForeignKey{},
	}
}

func (m *Model) Annotations() Annotations { return m.annotations }

func (m *Model) Schemas() map[string]*Schema { return m.schemas }

func (m *Model) Schema(name string) (*Schema, bool) {
	s, ok := m.schemas[name]
	return s, ok
}

// FKey resolves a foreign key constraint anywhere in the model. An empty
// constraint schema name selects the pseudo foreign keys.
func (m *Model) FKey(name ConstraintName) (*ForeignKey, error) {
	if name.Schema == "" {
		if fk, ok := m.pseudoFKeys[name.Name]; ok {
			return fk, nil
		}
		return nil, fmt.Errorf("fkey %s: %w", name, ErrConstraintNotFound)
	}
	schema, ok := m.schemas[name.Schema]
	if !ok {
		return nil, fmt.Errorf("fkey %s: %w", name, ErrConstraintNotFound)
	}
	fk, ok := schema.fkeys[name.Name]
	if !ok {
		return nil, fmt.Errorf("fkey %s: %w", name, ErrConstraintNotFound)
	}
	return fk, nil
}

func (m *Model) AddSchema(name string, annotations Annotations) *Schema {
	if annotations == nil {
		annotations = Annotations{}
	}
	s := &Schema{
		model:       m,
		name:        name,
		annotations: annotations,
		tables:      map[string]*Table{},
		fkeys:       map[string]*ForeignKey{},
	}
	m.schemas[name] = s
	return s
}

// Schema is a named namespace of tables within a model.
type Schema struct {
	model       *Model
	name        string
	annotations Annotations
	tables      map[string]*Table
	fkeys       map[string]*ForeignKey
}

func (s *Schema) Model() *Model            { return s.model }
func (s *Schema) Name() string             { return s.name }
func (s *Schema) Annotations() Annotations { return s.annotations }
func (s *Schema) Tables() map[string]*Table {
	return s.tables
}

func (s *Schema) Table(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

func (s *Schema) AddTable(name string, annotations Annotations) *Table {
	if annotations == nil {
		annotations = Annotations{}
	}
	t := &Table{
		schema:      s,
		name:        name,
		annotations: annotations,
	}
	s.tables[name] = t
	return t
}

// Table is a model table with ordered columns and constraint sets.
type Table struct {
	schema      *Schema
	name        string
	annotations Annotations
	columns     []*Column
	keys        []*Key
	fkeys       []*ForeignKey
}

func (t *Table) Schema() *Schema              { return t.schema }
func (t *Table) Name() string                 { return t.name }
func (t *Table) Annotations() Annotations     { return t.annotations }
func (t *Table) ColumnDefinitions() []*Column { return t.columns }
func (t *Table) Keys() []*Key                 { return t.keys }
func (t *Table) ForeignKeys() []*ForeignKey   { return t.fkeys }

// QualifiedName is the [schema name, table name] pair used in messages.
func (t *Table) QualifiedName() string {
	return fmt.Sprintf("[%q, %q]", t.schema.name, t.name)
}

func (t *Table) AddColumn(name string, annotations Annotations) *Column {
	if annotations == nil {
		annotations = Annotations{}
	}
	c := &Column{table: t, name: name, annotations: annotations}
	t.columns = append(t.columns, c)
	return c
}

func (t *Table) AddKey(name ConstraintName, annotations Annotations) *Key {
	if annotations == nil {
		annotations = Annotations{}
	}
	k := &Key{table: t, name: name, annotations: annotations}
	t.keys = append(t.keys, k)
	return k
}

// AddForeignKey registers the constraint under its schema, or as a pseudo
// foreign key on the model when the constraint schema name is empty. The
// referenced table is bound later via SetPKTable once all tables exist.
func (t *Table) AddForeignKey(name ConstraintName, annotations Annotations) *ForeignKey {
	if annotations == nil {
		annotations = Annotations{}
	}
	fk := &ForeignKey{table: t, name: name, annotations: annotations}
	t.fkeys = append(t.fkeys, fk)
	if name.Schema == "" {
		t.schema.model.pseudoFKeys[name.Name] = fk
	} else if cs, ok := t.schema.model.schemas[name.Schema]; ok {
		cs.fkeys[name.Name] = fk
	}
	return fk
}

// Column is a named table column.
type Column struct {
	table       *Table
	name        string
	annotations Annotations
}

func (c *Column) Table() *Table            { return c.table }
func (c *Column) Name() string             { return c.name }
func (c *Column) Annotations() Annotations { return c.annotations }

// Key is a uniqueness constraint on a table.
type Key struct {
	table       *Table
	name        ConstraintName
	annotations Annotations
}

func (k *Key) Table() *Table            { return k.table }
func (k *Key) Name() ConstraintName     { return k.name }
func (k *Key) Annotations() Annotations { return k.annotations }

// ForeignKey is a referential constraint from a child table to a parent
// (pk) table.
type ForeignKey struct {
	table       *Table
	pkTable     *Table
	name        ConstraintName
	annotations Annotations
}

func (fk *ForeignKey) Table() *Table            { return fk.table }
func (fk *ForeignKey) PKTable() *Table          { return fk.pkTable }
func (fk *ForeignKey) Name() ConstraintName     { return fk.name }
func (fk *ForeignKey) Annotations() Annotations { return fk.annotations }

// SetPKTable binds the referenced (parent) table. Loaders call this in a
// second pass after all tables are constructed.
func (fk *ForeignKey) SetPKTable(t *Table) { fk.pkTable = t }
