package annotation

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/catalogkit/annolint/internal/domain"
)

const (
	keywordValidColumns     = "valid-columns"
	keywordValidSortKey     = "valid-sort-key"
	keywordValidSourceKey   = "valid-source-key"
	keywordValidForeignKeys = "valid-foreign-keys"
	keywordValidSourceEntry = "valid-source-entry"
)

// keywordExtensions builds the five semantic keyword extensions bound to one
// model object. Each factory inspects the object's capabilities once and
// precomputes its lookup structures; objects lacking the capabilities a
// keyword needs get a no-op extension, since annotations may legally sit on
// objects for which a given check is meaningless.
func keywordExtensions(obj domain.AnnotatedObject) map[string]jsonschema.ExtCompiler {
	return map[string]jsonschema.ExtCompiler{
		keywordValidColumns:     newValidColumns(obj),
		keywordValidSortKey:     newValidSortKey(obj),
		keywordValidSourceKey:   newValidSourceKey(obj),
		keywordValidForeignKeys: newValidForeignKeys(obj),
		keywordValidSourceEntry: newValidSourceEntry(obj),
	}
}

var keywordMetas = map[string]*jsonschema.Schema{
	keywordValidColumns:     boolKeywordMeta(keywordValidColumns),
	keywordValidSortKey:     boolKeywordMeta(keywordValidSortKey),
	keywordValidSourceKey:   boolKeywordMeta(keywordValidSourceKey),
	keywordValidForeignKeys: boolKeywordMeta(keywordValidForeignKeys),
	keywordValidSourceEntry: boolKeywordMeta(keywordValidSourceEntry),
}

func boolKeywordMeta(name string) *jsonschema.Schema {
	return jsonschema.MustCompileString(name+".json",
		fmt.Sprintf(`{"properties": {%q: {"type": "boolean"}}}`, name))
}

// keywordEnabled reports whether the keyword's declared value in the schema
// node turns the check on. Absent or false suppresses it.
func keywordEnabled(m map[string]interface{}, name string) bool {
	enabled, ok := m[name].(bool)
	return ok && enabled
}

// nopExt compiles to nothing; used when the model object lacks the
// capabilities a keyword requires.
type nopExt struct{}

func (nopExt) Compile(jsonschema.CompilerContext, map[string]interface{}) (jsonschema.ExtSchema, error) {
	return nil, nil
}

func columnNameSet(columns []*domain.Column) map[string]struct{} {
	names := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		names[c.Name()] = struct{}{}
	}
	return names
}

// rawPair reports whether v is a two-element array.
func rawPair(v interface{}) ([]interface{}, bool) {
	items, ok := v.([]interface{})
	return items, ok && len(items) == 2
}

// constraintPair decodes a [schema name, constraint name] pair.
func constraintPair(v interface{}) (domain.ConstraintName, bool) {
	items, ok := rawPair(v)
	if !ok {
		return domain.ConstraintName{}, false
	}
	schema, ok := items[0].(string)
	if !ok {
		return domain.ConstraintName{}, false
	}
	name, ok := items[1].(string)
	if !ok {
		return domain.ConstraintName{}, false
	}
	return domain.ConstraintName{Schema: schema, Name: name}, true
}

// valid-columns: each instance element must name a column of the table or a
// key/foreign-key constraint of the table. Elements of any other shape are
// left to schema validation.

func newValidColumns(obj domain.AnnotatedObject) jsonschema.ExtCompiler {
	table, ok := obj.(interface {
		domain.ColumnBearer
		domain.KeyBearer
		domain.ForeignKeyBearer
	})
	if !ok {
		return nopExt{}
	}

	columns := columnNameSet(table.ColumnDefinitions())
	constraints := map[domain.ConstraintName]struct{}{}
	for _, k := range table.Keys() {
		constraints[k.Name()] = struct{}{}
	}
	for _, fk := range table.ForeignKeys() {
		if fk == nil {
			continue
		}
		constraints[fk.Name()] = struct{}{}
	}
	return validColumnsExt{columns: columns, constraints: constraints}
}

type validColumnsExt struct {
	columns     map[string]struct{}
	constraints map[domain.ConstraintName]struct{}
}

func (e validColumnsExt) Compile(_ jsonschema.CompilerContext, m map[string]interface{}) (jsonschema.ExtSchema, error) {
	if !keywordEnabled(m, keywordValidColumns) {
		return nil, nil
	}
	return validColumnsSchema(e), nil
}

type validColumnsSchema validColumnsExt

func (s validColumnsSchema) Validate(ctx jsonschema.ValidationContext, v interface{}) error {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	for _, item := range items {
		switch it := item.(type) {
		case string:
			if _, found := s.columns[it]; !found {
				return ctx.Error(keywordValidColumns, "%s not found in column definitions", renderInstance(it))
			}
		case []interface{}:
			if len(it) != 2 {
				continue
			}
			name, ok := constraintPair(item)
			if !ok {
				return ctx.Error(keywordValidColumns, "%s not found in keys or foreign keys", renderInstance(item))
			}
			if _, found := s.constraints[name]; !found {
				return ctx.Error(keywordValidColumns, "%s not found in keys or foreign keys", renderInstance(item))
			}
		}
	}
	return nil
}

// valid-sort-key: the instance names a column, directly or via a "column"
// member. Constraint objects ascend to their owning table first.

func newValidSortKey(obj domain.AnnotatedObject) jsonschema.ExtCompiler {
	target := obj
	if tb, ok := obj.(domain.TableBearer); ok {
		if t := tb.Table(); t != nil {
			target = t
		}
	}
	cb, ok := target.(domain.ColumnBearer)
	if !ok {
		return nopExt{}
	}
	return validSortKeyExt{columns: columnNameSet(cb.ColumnDefinitions())}
}

type validSortKeyExt struct {
	columns map[string]struct{}
}

func (e validSortKeyExt) Compile(_ jsonschema.CompilerContext, m map[string]interface{}) (jsonschema.ExtSchema, error) {
	if !keywordEnabled(m, keywordValidSortKey) {
		return nil, nil
	}
	return validSortKeySchema(e), nil
}

type validSortKeySchema validSortKeyExt

func (s validSortKeySchema) Validate(ctx jsonschema.ValidationContext, v interface{}) error {
	var colName string
	switch it := v.(type) {
	case string:
		colName = it
	case map[string]interface{}:
		colName, _ = it["column"].(string)
	}
	if colName == "" {
		// nothing recognizable to check
		return nil
	}
	if _, found := s.columns[colName]; !found {
		return ctx.Error(keywordValidSortKey, "%s not found in column definitions", renderInstance(v))
	}
	return nil
}

// valid-source-key: the instance must be a key of the "sources" map in the
// object's own source-definitions annotation.

func newValidSourceKey(obj domain.AnnotatedObject) jsonschema.ExtCompiler {
	sourceKeys := map[string]struct{}{}
	if defs, ok := obj.Annotations()[domain.TagSourceDefinitions].(map[string]interface{}); ok {
		if sources, ok := defs["sources"].(map[string]interface{}); ok {
			for key := range sources {
				sourceKeys[key] = struct{}{}
			}
		}
	}
	return validSourceKeyExt{sourceKeys: sourceKeys}
}

type validSourceKeyExt struct {
	sourceKeys map[string]struct{}
}

func (e validSourceKeyExt) Compile(_ jsonschema.CompilerContext, m map[string]interface{}) (jsonschema.ExtSchema, error) {
	if !keywordEnabled(m, keywordValidSourceKey) {
		return nil, nil
	}
	return validSourceKeySchema(e), nil
}

type validSourceKeySchema validSourceKeyExt

func (s validSourceKeySchema) Validate(ctx jsonschema.ValidationContext, v interface{}) error {
	key, ok := v.(string)
	if !ok {
		return nil
	}
	if _, found := s.sourceKeys[key]; !found {
		return ctx.Error(keywordValidSourceKey, "%s not found in source definitions", renderInstance(key))
	}
	return nil
}

// valid-foreign-keys: each [schema, name] pair must resolve to a foreign key
// in the whole model whose parent (pk) table is the table under validation.
// The first element that is not a pair stops the check, deferring the rest
// to schema validation.

func newValidForeignKeys(obj domain.AnnotatedObject) jsonschema.ExtCompiler {
	table, ok := obj.(*domain.Table)
	if !ok {
		return nopExt{}
	}
	return validForeignKeysExt{table: table, model: table.Schema().Model()}
}

type validForeignKeysExt struct {
	table *domain.Table
	model *domain.Model
}

func (e validForeignKeysExt) Compile(_ jsonschema.CompilerContext, m map[string]interface{}) (jsonschema.ExtSchema, error) {
	if !keywordEnabled(m, keywordValidForeignKeys) {
		return nil, nil
	}
	return validForeignKeysSchema(e), nil
}

type validForeignKeysSchema validForeignKeysExt

func (s validForeignKeysSchema) Validate(ctx jsonschema.ValidationContext, v interface{}) error {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	for _, item := range items {
		if _, isPair := rawPair(item); !isPair {
			break
		}
		name, ok := constraintPair(item)
		var fk *domain.ForeignKey
		if ok {
			var err error
			fk, err = s.model.FKey(name)
			if err != nil {
				ok = false
			}
		}
		if !ok {
			return ctx.Error(keywordValidForeignKeys, "%s not found in foreign keys of model", renderInstance(item))
		}
		if fk.PKTable() != s.table {
			return ctx.Error(keywordValidForeignKeys, "%s does not refer to %q", name, s.table.Name())
		}
	}
	return nil
}

// valid-source-entry: the instance is either a column of the table, or a
// foreign-key traversal path starting at the table. Path elements name a
// column of the current table or hop across a constraint via
// {"outbound": [schema, name]} / {"inbound": [schema, name]}, advancing the
// current table to the other side. The first unrecognized element halts the
// walk.

func newValidSourceEntry(obj domain.AnnotatedObject) jsonschema.ExtCompiler {
	table, ok := obj.(*domain.Table)
	if !ok {
		return nopExt{}
	}
	return validSourceEntryExt{
		table:       table,
		model:       table.Schema().Model(),
		baseColumns: columnNameSet(table.ColumnDefinitions()),
	}
}

type validSourceEntryExt struct {
	table       *domain.Table
	model       *domain.Model
	baseColumns map[string]struct{}
}

func (e validSourceEntryExt) Compile(_ jsonschema.CompilerContext, m map[string]interface{}) (jsonschema.ExtSchema, error) {
	if !keywordEnabled(m, keywordValidSourceEntry) {
		return nil, nil
	}
	return validSourceEntrySchema(e), nil
}

type validSourceEntrySchema validSourceEntryExt

// pathHop describes one traversal direction: which side of the constraint
// the current table must be on, and which side the walk advances to.
type pathHop struct {
	direction string
	match     func(*domain.ForeignKey) *domain.Table
	next      func(*domain.ForeignKey) *domain.Table
}

var pathHops = []pathHop{
	{direction: "outbound", match: (*domain.ForeignKey).Table, next: (*domain.ForeignKey).PKTable},
	{direction: "inbound", match: (*domain.ForeignKey).PKTable, next: (*domain.ForeignKey).Table},
}

func (s validSourceEntrySchema) Validate(ctx jsonschema.ValidationContext, v interface{}) error {
	switch inst := v.(type) {
	case string:
		if _, found := s.baseColumns[inst]; !found {
			return ctx.Error(keywordValidSourceEntry, "%s not found in column definitions", renderInstance(inst))
		}
	case []interface{}:
		current := s.table
		for _, item := range inst {
			next, err := s.step(ctx, current, item)
			if err != nil {
				return err
			}
			if next == nil {
				// unrecognized element shape, let schema validation take over
				return nil
			}
			current = next
		}
	}
	return nil
}

func (s validSourceEntrySchema) step(ctx jsonschema.ValidationContext, current *domain.Table, item interface{}) (*domain.Table, error) {
	switch it := item.(type) {
	case string:
		if !tableHasColumn(current, it) {
			return nil, ctx.Error(keywordValidSourceEntry, "%s not found in column definitions of table %s",
				renderInstance(it), current.QualifiedName())
		}
		return current, nil
	case map[string]interface{}:
		hopped := false
		for _, hop := range pathHops {
			raw, ok := it[hop.direction]
			if !ok {
				continue
			}
			if _, ok := rawPair(raw); !ok {
				continue
			}
			hopped = true

			name, ok := constraintPair(raw)
			var fk *domain.ForeignKey
			if ok {
				var err error
				fk, err = s.model.FKey(name)
				if err != nil {
					ok = false
				}
			}
			if !ok {
				return nil, ctx.Error(keywordValidSourceEntry, "%s not found in model fkeys", renderInstance(raw))
			}
			if hop.match(fk) != current {
				return nil, ctx.Error(keywordValidSourceEntry, "%s foreign key %s not associated with %s",
					hop.direction, name, current.QualifiedName())
			}
			current = hop.next(fk)
		}
		if !hopped {
			return nil, nil
		}
		return current, nil
	default:
		return nil, nil
	}
}

func tableHasColumn(t *domain.Table, name string) bool {
	for _, c := range t.ColumnDefinitions() {
		if c.Name() == name {
			return true
		}
	}
	return false
}
