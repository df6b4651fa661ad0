package schema

import (
	"maps"
	"reflect"
	"testing"
)

func swapTableNames(t *testing.T) {
	t.Helper()
	tableNamesMu.Lock()
	saved := maps.Clone(customTableNames)
	customTableNames = make(map[string]string)
	tableNamesMu.Unlock()

	t.Cleanup(func() {
		tableNamesMu.Lock()
		customTableNames = saved
		tableNamesMu.Unlock()
	})
}

func TestRegisterTableName(t *testing.T) {
	swapTableNames(t)

	RegisterTableName("QuestionFollow", "question_follows")
	RegisterTableName("User", "users")

	if customTableNames["QuestionFollow"] != "question_follows" {
		t.Errorf("expected 'question_follows', got '%s'", customTableNames["QuestionFollow"])
	}
	if customTableNames["User"] != "users" {
		t.Errorf("expected 'users', got '%s'", customTableNames["User"])
	}
}

func TestExtractTableNameWithRegistry(t *testing.T) {
	swapTableNames(t)

	type RegisteredModel struct {
		ID int64 `po:"id,primaryKey,bigserial"`
	}
	type UnregisteredModel struct {
		ID int64 `po:"id,primaryKey,bigserial"`
	}

	RegisterTableName("RegisteredModel", "registered_table")
	parser := NewParser()

	t.Run("registered model uses custom name", func(t *testing.T) {
		table, err := parser.Parse(reflect.TypeOf(RegisteredModel{}))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if table.Name != "registered_table" {
			t.Errorf("expected 'registered_table', got '%s'", table.Name)
		}
		if table.PrimaryKey.Name != "registered_table_pkey" {
			t.Errorf("unexpected pk name %s", table.PrimaryKey.Name)
		}
	})

	t.Run("unregistered model falls back to snake_case", func(t *testing.T) {
		table, err := parser.Parse(reflect.TypeOf(UnregisteredModel{}))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if table.Name != "unregistered_model" {
			t.Errorf("expected 'unregistered_model', got '%s'", table.Name)
		}
	})
}
