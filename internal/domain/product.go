package domain

import (
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"
)

type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	TeamID      string         `json:"team_id"`
	Fields      map[string]any `json:"fields"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("Product must have a name")
	}
	if p.TeamID == "" {
		return NewValidationError("Product must belong to a team")
	}
	return nil
}

// ValidateFieldValues checks submitted values against the active custom
// fields of the product's team. Keys without a matching field are rejected.
func ValidateFieldValues(fields []CustomField, values map[string]any) error {
	known := make(map[string]struct{}, len(fields))
	for i := range fields {
		f := &fields[i]
		known[f.Name] = struct{}{}

		v, ok := values[f.Name]
		if !ok || isEmptyValue(v) {
			if f.IsRequired {
				return NewValidationError(fmt.Sprintf("%s is required", f.Label))
			}
			continue
		}
		if err := validateFieldValue(f, v); err != nil {
			return err
		}
	}

	for name := range values {
		if _, ok := known[name]; !ok {
			return NewValidationError(fmt.Sprintf("Unknown field %q", name))
		}
	}
	return nil
}

func validateFieldValue(f *CustomField, v any) error {
	switch f.Type {
	case FieldTypeText:
		if _, ok := v.(string); !ok {
			return NewValidationError(fmt.Sprintf("%s must be text", f.Label))
		}
	case FieldTypeLink:
		s, ok := v.(string)
		if !ok {
			return NewValidationError(fmt.Sprintf("%s must be a link", f.Label))
		}
		u, err := url.ParseRequestURI(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return NewValidationError(fmt.Sprintf("%s must be an http(s) link", f.Label))
		}
	case FieldTypeFile:
		s, ok := v.(string)
		if !ok {
			return NewValidationError(fmt.Sprintf("%s must be a file name", f.Label))
		}
		exts := f.AcceptedExtensions()
		if !slices.Contains(exts, "*") && !slices.Contains(exts, strings.ToLower(path.Ext(s))) {
			return NewValidationError(fmt.Sprintf("%s accepts only %s", f.Label, f.AcceptedFileTypes))
		}
	case FieldTypeArray:
		items, ok := v.([]any)
		if !ok {
			return NewValidationError(fmt.Sprintf("%s must be a list", f.Label))
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return NewValidationError(fmt.Sprintf("%s must be a list of text values", f.Label))
			}
		}
	}
	return nil
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	}
	return false
}
