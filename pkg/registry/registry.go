// Package registry provides a central schema registry for table metadata.
package registry

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/marshallshelly/pebble-quora/pkg/schema"
)

// Registry is a thread-safe registry for table metadata, keyed both by Go
// type and by table name.
type Registry struct {
	mu     sync.RWMutex
	parser *schema.Parser
	tables map[reflect.Type]*schema.TableMetadata
	names  map[string]*schema.TableMetadata
}

// NewRegistry creates a new Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		parser: schema.NewParser(),
		tables: make(map[reflect.Type]*schema.TableMetadata),
		names:  make(map[string]*schema.TableMetadata),
	}
}

func structType(model any) (reflect.Type, error) {
	t := reflect.TypeOf(model)
	if t == nil {
		return nil, fmt.Errorf("model must be a struct, got nil")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}
	return t, nil
}

// Register parses a model type and stores its metadata. Registering the same
// type twice is a no-op; two types claiming one table name is an error.
func (r *Registry) Register(model any) error {
	_, err := r.register(model)
	return err
}

func (r *Registry) register(model any) (*schema.TableMetadata, error) {
	modelType, err := structType(model)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	table, ok := r.tables[modelType]
	r.mu.RUnlock()
	if ok {
		return table, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if table, ok := r.tables[modelType]; ok {
		return table, nil
	}

	table, err = r.parser.Parse(modelType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model %s: %w", modelType.Name(), err)
	}
	if other, ok := r.names[table.Name]; ok && other.GoType != modelType {
		return nil, fmt.Errorf("table %s already registered by %s", table.Name, other.GoType)
	}

	r.tables[modelType] = table
	r.names[table.Name] = table
	return table, nil
}

// RegisterAll registers each model, stopping at the first failure.
func (r *Registry) RegisterAll(models ...any) error {
	for _, m := range models {
		if err := r.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// GetByName retrieves TableMetadata by table name.
func (r *Registry) GetByName(tableName string) (*schema.TableMetadata, error) {
	r.mu.RLock()
	table, ok := r.names[tableName]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("table %s not registered", tableName)
	}
	return table, nil
}

// GetOrRegister retrieves TableMetadata, registering the model on first use.
func (r *Registry) GetOrRegister(model any) (*schema.TableMetadata, error) {
	return r.register(model)
}

// Tables returns all registered tables sorted by name.
func (r *Registry) Tables() []*schema.TableMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make([]*schema.TableMetadata, 0, len(r.names))
	for _, table := range r.names {
		tables = append(tables, table)
	}
	slices.SortFunc(tables, func(a, b *schema.TableMetadata) int {
		return strings.Compare(a.Name, b.Name)
	})
	return tables
}

// globalRegistry backs the query builder and record mappers, which register
// model types on first use.
var globalRegistry = NewRegistry()

// GetOrRegister retrieves or registers a model in the global registry.
func GetOrRegister(model any) (*schema.TableMetadata, error) {
	return globalRegistry.GetOrRegister(model)
}
