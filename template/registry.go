package template

import (
	"context"
	"strings"

	"github.com/orayew2002/marriage-form/excel"
	"github.com/xuri/excelize/v2"
)

// Cell is a non-empty template cell handed to a handler. Row and Col are 0-based.
type Cell struct {
	File  *excelize.File
	Sheet string
	Row   int
	Col   int
	Value string
}

// Name returns the A1 reference of c.
func (c Cell) Name() string {
	return excel.CellName(c.Row, c.Col)
}

// HandlerFunc processes a cell whose value matched a registered pattern.
type HandlerFunc func(ctx context.Context, c Cell) error

// Registry holds pattern → handler mappings.
type Registry struct {
	handlers []entry
}

type entry struct {
	pattern string
	handler HandlerFunc
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a handler for the given pattern (e.g. "{{groom_name}}").
// Handlers are checked in registration order; the first match wins.
func (r *Registry) Register(pattern string, handler HandlerFunc) {
	r.handlers = append(r.handlers, entry{pattern: pattern, handler: handler})
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int {
	return len(r.handlers)
}

// Process runs the first handler whose pattern occurs in c.Value.
// Returns true if a handler was executed.
func (r *Registry) Process(ctx context.Context, c Cell) (bool, error) {
	for _, e := range r.handlers {
		if strings.Contains(c.Value, e.pattern) {
			if err := e.handler(ctx, c); err != nil {
				return false, err
			}

			return true, nil
		}
	}

	return false, nil
}
