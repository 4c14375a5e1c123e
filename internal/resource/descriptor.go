package resource

import (
	apperrors "github.com/spec-kit/church-cms/pkg/util"
)

// Field describes one column of a managed entity.
type Field struct {
	// Name is the JSON name used in request and response bodies.
	Name string
	// Column is the backing store column.
	Column string
	// Required fields must be present and non-empty on create.
	Required bool
	// Unique fields are enforced by the store; violations surface as conflicts.
	Unique bool
}

// Reference declares a foreign key from a field to another entity's column.
// Dependent rows are removed when the referenced row is deleted (cascade policy).
type Reference struct {
	Field  string
	Table  string
	Column string
}

// Descriptor parameterizes the CRUD contract for one entity type. A single
// generic repository/service/handler implementation is instantiated per
// descriptor instead of duplicating near-identical code per entity.
type Descriptor struct {
	// Name is the singular entity name used in not-found messages ("Page").
	Name string
	// Path is the route segment ("pages").
	Path string
	// Table is the backing store table.
	Table string
	// KeyField is the JSON name of the lookup key used by get/put/delete
	// routes: "id", or an alternate unique key such as "slug".
	KeyField string
	// Fields lists the entity's declared columns, excluding id and timestamps.
	Fields []Field
	// RequiredMessage is the client-facing message when required fields are
	// missing on create ("Title and slug required").
	RequiredMessage string
	// References lists foreign keys to other entities.
	References []Reference
	// PublicRead marks list/get routes as unauthenticated site content.
	PublicRead bool
}

// KeyColumn resolves the store column backing KeyField.
func (d Descriptor) KeyColumn() string {
	if d.KeyField == "id" {
		return "id"
	}
	for _, f := range d.Fields {
		if f.Name == d.KeyField {
			return f.Column
		}
	}
	return "id"
}

// Columns returns the declared field columns in declaration order.
func (d Descriptor) Columns() []string {
	cols := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

// ValidateCreate checks that every required field is present and non-empty.
func (d Descriptor) ValidateCreate(input map[string]any) error {
	for _, f := range d.Fields {
		if !f.Required {
			continue
		}
		if isEmpty(input[f.Name]) {
			return apperrors.NewValidationError(d.RequiredMessage)
		}
	}
	return nil
}

// Sanitize filters the input down to declared fields, dropping unknown keys
// and empty values so partial updates never touch undeclared columns.
func (d Descriptor) Sanitize(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for _, f := range d.Fields {
		if val, ok := input[f.Name]; ok && !isEmpty(val) {
			out[f.Name] = val
		}
	}
	return out
}

// ColumnFor maps a JSON field name to its store column.
func (d Descriptor) ColumnFor(name string) (string, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Column, true
		}
	}
	return "", false
}

func isEmpty(val any) bool {
	if val == nil {
		return true
	}
	s, ok := val.(string)
	return ok && s == ""
}
