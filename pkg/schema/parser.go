package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// StructTagKey is the key used in struct tags, e.g. `po:"author_id,bigint,notNull,fk(users.id)"`.
const StructTagKey = "po"

// Parser parses tagged structs into table metadata. It is not safe for
// concurrent use; registry.Registry serializes access.
type Parser struct {
	cache map[reflect.Type]*TableMetadata
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{cache: make(map[reflect.Type]*TableMetadata)}
}

var (
	tableNamesMu     sync.RWMutex
	customTableNames = make(map[string]string) // struct name → table name
)

// RegisterTableName maps a struct name to a table name. Unmapped structs use
// their snake_case name.
//
//	func init() {
//	    schema.RegisterTableName("Reply", "replies")
//	}
func RegisterTableName(structName, tableName string) {
	tableNamesMu.Lock()
	defer tableNamesMu.Unlock()
	customTableNames[structName] = tableName
}

func tableNameFor(structName string) string {
	tableNamesMu.RLock()
	defer tableNamesMu.RUnlock()
	if name, ok := customTableNames[structName]; ok {
		return name
	}
	return toSnakeCase(structName)
}

// Parse extracts TableMetadata from a Go struct type.
func (p *Parser) Parse(modelType reflect.Type) (*TableMetadata, error) {
	for modelType.Kind() == reflect.Pointer {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", modelType.Kind())
	}
	if cached, ok := p.cache[modelType]; ok {
		return cached, nil
	}

	table := &TableMetadata{Name: tableNameFor(modelType.Name()), GoType: modelType}
	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		raw, ok := field.Tag.Lookup(StructTagKey)
		if !field.IsExported() || !ok || raw == "" || raw == "-" {
			continue
		}

		tag, err := parseFieldTag(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		col, err := tag.column(field)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		table.Columns = append(table.Columns, col)

		if tag.primaryKey {
			if table.PrimaryKey == nil {
				table.PrimaryKey = &PrimaryKeyMetadata{Name: table.Name + "_pkey"}
			}
			table.PrimaryKey.Columns = append(table.PrimaryKey.Columns, col.Name)
		}
		if tag.references != "" {
			fk, err := tag.foreignKey(table.Name)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
			table.ForeignKeys = append(table.ForeignKeys, fk)
		}
	}
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("model %s has no %s-tagged fields", modelType.Name(), StructTagKey)
	}

	p.cache[modelType] = table
	return table, nil
}

// fieldTag is one parsed `po` tag: "name,option,option(arg),...".
type fieldTag struct {
	name       string
	sqlType    string
	primaryKey bool
	notNull    bool
	references string
	onDelete   ReferenceAction
	onUpdate   ReferenceAction
}

// sqlTypes are the column types a tag may name. Types taking an argument
// are written type(arg), e.g. varchar(80).
var sqlTypes = map[string]bool{
	"text": true, "varchar": true,
	"integer": true, "bigint": true, "serial": true, "bigserial": true,
	"boolean": true,
}

func parseFieldTag(raw string) (fieldTag, error) {
	parts := strings.Split(raw, ",")
	tag := fieldTag{name: strings.TrimSpace(parts[0]), onDelete: NoAction, onUpdate: NoAction}
	if tag.name == "" {
		return tag, fmt.Errorf("empty column name in tag %q", raw)
	}

	for _, part := range parts[1:] {
		key, arg, err := splitOption(strings.TrimSpace(part))
		if err != nil {
			return tag, err
		}
		switch {
		case key == "primaryKey":
			tag.primaryKey = true
		case key == "notNull":
			tag.notNull = true
		case key == "fk":
			tag.references = arg
		case key == "onDelete":
			tag.onDelete = parseReferenceAction(arg)
		case key == "onUpdate":
			tag.onUpdate = parseReferenceAction(arg)
		case sqlTypes[key]:
			tag.sqlType = key
			if arg != "" {
				tag.sqlType = key + "(" + arg + ")"
			}
		default:
			return tag, fmt.Errorf("unknown tag option %q", key)
		}
	}
	return tag, nil
}

// splitOption splits "key(arg)" into key and arg; a bare "key" has no arg.
func splitOption(opt string) (key, arg string, err error) {
	i := strings.IndexByte(opt, '(')
	if i < 0 {
		return opt, "", nil
	}
	if !strings.HasSuffix(opt, ")") {
		return "", "", fmt.Errorf("invalid option format: %s", opt)
	}
	return opt[:i], opt[i+1 : len(opt)-1], nil
}

func (t fieldTag) column(field reflect.StructField) (ColumnMetadata, error) {
	inferred, pointer := inferSQLType(field.Type)
	sqlType := t.sqlType
	if sqlType == "" {
		sqlType = inferred
	}
	if sqlType == "" {
		return ColumnMetadata{}, fmt.Errorf("no column type for %s; name one in the tag", field.Type)
	}

	return ColumnMetadata{
		Name:          t.name,
		GoField:       field.Name,
		GoType:        field.Type,
		SQLType:       sqlType,
		Nullable:      pointer || (!t.notNull && !t.primaryKey),
		AutoIncrement: strings.HasSuffix(sqlType, "serial"),
	}, nil
}

func (t fieldTag) foreignKey(tableName string) (ForeignKeyMetadata, error) {
	refTable, refColumn, ok := strings.Cut(t.references, ".")
	if !ok || refTable == "" || refColumn == "" {
		return ForeignKeyMetadata{}, fmt.Errorf("invalid foreign key reference %q, want table.column", t.references)
	}
	return ForeignKeyMetadata{
		Name:              fmt.Sprintf("fk_%s_%s_%s", tableName, t.name, refTable),
		Columns:           []string{t.name},
		ReferencedTable:   refTable,
		ReferencedColumns: []string{refColumn},
		OnDelete:          t.onDelete,
		OnUpdate:          t.onUpdate,
	}, nil
}

func parseReferenceAction(action string) ReferenceAction {
	switch strings.ToUpper(strings.TrimSpace(action)) {
	case "CASCADE":
		return Cascade
	case "RESTRICT":
		return Restrict
	case "SETNULL", "SET NULL":
		return SetNull
	default:
		return NoAction
	}
}

// toSnakeCase converts PascalCase to snake_case.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, ch := range s {
		if i > 0 && ch >= 'A' && ch <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(ch)
	}
	return strings.ToLower(b.String())
}
