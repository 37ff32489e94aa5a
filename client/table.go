package client

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/praxislegal/praxis/internal/domain"
)

// Column describes one table column: where its value lives in a decoded row,
// what heading it carries, and optionally how to render it.
type Column struct {
	// Key is a dotted path into the row, e.g. "matter.reference".
	Key      string
	Title    string
	Sortable bool
	// Render, when set, replaces the default lookup-and-stringify for this
	// column. It receives the whole row.
	Render func(row map[string]any) string
}

// Table renders decoded envelope rows into display strings. Rows are the
// generic map form of a record (as produced by decoding the envelope's data
// into []map[string]any); lookups never panic on missing or oddly shaped
// values, they fall back to the empty-cell placeholder.
type Table struct {
	Columns []Column
	Locale  string
}

// Headers returns the column titles in order.
func (t Table) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Title
	}
	return headers
}

// Row renders one record into a cell per column.
func (t Table) Row(row map[string]any) []string {
	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = t.Cell(row, col)
	}
	return cells
}

// Cell renders a single column of a record.
func (t Table) Cell(row map[string]any, col Column) string {
	if col.Render != nil {
		if rendered := col.Render(row); rendered != "" {
			return rendered
		}
		return domain.EmptyCell
	}
	return t.display(lookupPath(row, col.Key))
}

// lookupPath walks a dotted path through nested maps. Any missing segment or
// non-map intermediate yields nil.
func lookupPath(row map[string]any, path string) any {
	segments := strings.Split(path, ".")
	var current any = row
	for _, segment := range segments {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = asMap[segment]
		if !ok {
			return nil
		}
	}
	return current
}

// display stringifies a looked-up value. Localized objects resolve through
// the requested locale and its fallbacks; anything empty becomes the
// placeholder.
func (t Table) display(value any) string {
	switch v := value.(type) {
	case nil:
		return domain.EmptyCell
	case string:
		if v == "" {
			return domain.EmptyCell
		}
		return v
	case map[string]any:
		translations := make(map[string]string, len(v))
		for locale, raw := range v {
			if s, ok := raw.(string); ok {
				translations[locale] = s
			}
		}
		return domain.Translated(translations).Resolve(t.Locale)
	case float64:
		// encoding/json decodes every number into float64.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		if len(v) == 0 {
			return domain.EmptyCell
		}
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = t.display(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
