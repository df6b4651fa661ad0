package schema

import (
	"reflect"
	"testing"
)

type testAuthor struct {
	ID    int64  `po:"id,primaryKey,bigserial"`
	Fname string `po:"fname,text,notNull"`
	Lname string `po:"lname,text,notNull"`
}

type testComment struct {
	ID       int64  `po:"id,primaryKey,bigserial"`
	ParentID *int64 `po:"parent_id,bigint,fk(test_comment.id)"`
	AuthorID int64  `po:"author_id,bigint,notNull,fk(authors.id),onDelete(cascade)"`
	Body     string `po:"body,text,notNull"`
	Draft    string
	internal string `po:"internal,text"`
}

func TestParser_Parse(t *testing.T) {
	parser := NewParser()

	t.Run("basic struct parsing", func(t *testing.T) {
		table, err := parser.Parse(reflect.TypeOf(testAuthor{}))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		if table.Name != "test_author" {
			t.Errorf("expected table name 'test_author', got '%s'", table.Name)
		}
		if len(table.Columns) != 3 {
			t.Errorf("expected 3 columns, got %d", len(table.Columns))
		}
		if table.PrimaryKey == nil {
			t.Fatal("expected primary key to be set")
		}
		if len(table.PrimaryKey.Columns) != 1 || table.PrimaryKey.Columns[0] != "id" {
			t.Errorf("expected primary key column 'id', got %v", table.PrimaryKey.Columns)
		}
	})

	t.Run("column metadata", func(t *testing.T) {
		table, err := parser.Parse(reflect.TypeOf(&testAuthor{}))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		idCol := table.GetColumnByName("id")
		if idCol == nil {
			t.Fatal("id column not found")
		}
		if idCol.SQLType != "bigserial" || !idCol.AutoIncrement || idCol.Nullable {
			t.Errorf("unexpected id column: %+v", idCol)
		}

		fname := table.GetColumnByName("fname")
		if fname == nil || fname.GoField != "Fname" || fname.Nullable {
			t.Errorf("unexpected fname column: %+v", fname)
		}
	})

	t.Run("skips untagged and unexported fields", func(t *testing.T) {
		table, err := parser.Parse(reflect.TypeOf(testComment{}))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(table.Columns) != 4 {
			t.Errorf("expected 4 columns, got %d", len(table.Columns))
		}
		if table.GetColumnByName("internal") != nil {
			t.Error("unexported field should not become a column")
		}
	})

	t.Run("foreign keys", func(t *testing.T) {
		table, err := parser.Parse(reflect.TypeOf(testComment{}))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(table.ForeignKeys) != 2 {
			t.Fatalf("expected 2 foreign keys, got %d", len(table.ForeignKeys))
		}

		parent := table.ForeignKeys[0]
		if parent.ReferencedTable != "test_comment" || parent.ReferencedColumns[0] != "id" {
			t.Errorf("unexpected parent fk: %+v", parent)
		}
		if parent.OnDelete != NoAction {
			t.Errorf("expected NO ACTION, got %s", parent.OnDelete)
		}

		author := table.ForeignKeys[1]
		if author.Name != "fk_test_comment_author_id_authors" {
			t.Errorf("unexpected fk name %s", author.Name)
		}
		if author.OnDelete != Cascade {
			t.Errorf("expected CASCADE, got %s", author.OnDelete)
		}

		refs := table.ReferencedTables()
		if len(refs) != 1 || refs[0] != "authors" {
			t.Errorf("self reference should be excluded, got %v", refs)
		}

		parentCol := table.GetColumnByName("parent_id")
		if parentCol == nil || !parentCol.Nullable {
			t.Errorf("parent_id should be nullable: %+v", parentCol)
		}
	})

	t.Run("rejects non-struct", func(t *testing.T) {
		if _, err := parser.Parse(reflect.TypeOf(42)); err == nil {
			t.Error("expected error for non-struct type")
		}
	})

	t.Run("rejects struct without columns", func(t *testing.T) {
		type empty struct{ Name string }
		if _, err := parser.Parse(reflect.TypeOf(empty{})); err == nil {
			t.Error("expected error for struct without tagged fields")
		}
	})
}

func TestParser_InvalidForeignKey(t *testing.T) {
	type broken struct {
		ID    int64 `po:"id,primaryKey,bigserial"`
		Owner int64 `po:"owner,bigint,fk(nowhere)"`
	}

	if _, err := NewParser().Parse(reflect.TypeOf(broken{})); err == nil {
		t.Error("expected error for malformed fk reference")
	}
}

func TestTableMetadata_IDColumn(t *testing.T) {
	table := &TableMetadata{
		Name:       "users",
		Columns:    []ColumnMetadata{{Name: "id", GoField: "ID"}},
		PrimaryKey: &PrimaryKeyMetadata{Columns: []string{"id"}},
	}
	col, err := table.IDColumn()
	if err != nil || col.GoField != "ID" {
		t.Fatalf("IDColumn() = %+v, %v", col, err)
	}

	table.PrimaryKey = nil
	if _, err := table.IDColumn(); err == nil {
		t.Error("expected error without primary key")
	}

	table.PrimaryKey = &PrimaryKeyMetadata{Columns: []string{"a", "b"}}
	if _, err := table.IDColumn(); err == nil {
		t.Error("expected error for composite primary key")
	}
}

func TestParseFieldTag(t *testing.T) {
	tag, err := parseFieldTag("author_id,bigint,notNull,fk(users.id),onDelete(cascade)")
	if err != nil {
		t.Fatalf("parseFieldTag failed: %v", err)
	}
	if tag.name != "author_id" || tag.sqlType != "bigint" || !tag.notNull {
		t.Errorf("unexpected tag %+v", tag)
	}
	if tag.references != "users.id" || tag.onDelete != Cascade || tag.onUpdate != NoAction {
		t.Errorf("unexpected reference options %+v", tag)
	}

	sized, err := parseFieldTag("title,varchar(80),notNull")
	if err != nil || sized.sqlType != "varchar(80)" {
		t.Errorf("varchar(80) = %q, %v", sized.sqlType, err)
	}

	for _, bad := range []string{"", ",text", "name,varchar(10", "name,jsonb", "name,unique"} {
		if _, err := parseFieldTag(bad); err == nil {
			t.Errorf("expected error for tag %q", bad)
		}
	}
}

func TestParser_InfersUntypedColumns(t *testing.T) {
	type draft struct {
		ID    int64   `po:"id,primaryKey,bigserial"`
		Score float64 `po:"score"`
	}

	_, err := NewParser().Parse(reflect.TypeOf(draft{}))
	if err == nil {
		t.Fatal("expected error for a field with no inferable type")
	}

	type note struct {
		ID      int64  `po:"id,primaryKey,bigserial"`
		Title   string `po:"title,notNull"`
		Pending *bool  `po:"pending"`
	}
	table, err := NewParser().Parse(reflect.TypeOf(note{}))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c := table.GetColumnByName("title"); c.SQLType != "text" || c.Nullable {
		t.Errorf("unexpected title column %+v", c)
	}
	if c := table.GetColumnByName("pending"); c.SQLType != "boolean" || !c.Nullable {
		t.Errorf("unexpected pending column %+v", c)
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"User":           "user",
		"QuestionFollow": "question_follow",
		"QuestionLike":   "question_like",
	}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
