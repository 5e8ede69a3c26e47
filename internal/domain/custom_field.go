package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type FieldType string

const (
	FieldTypeText  FieldType = "text"
	FieldTypeLink  FieldType = "link"
	FieldTypeFile  FieldType = "file"
	FieldTypeArray FieldType = "array"
)

var FieldTypes = []FieldType{FieldTypeText, FieldTypeLink, FieldTypeFile, FieldTypeArray}

const (
	MsgNameAndLabelRequired = "Field must have a name and label"
	MsgFileTypesRequired    = "File fields must have accepted file types specified"
	MsgTeamRequired         = "Field must be assigned to at least one team"
)

type CustomField struct {
	ID                string     `json:"id,omitempty"`
	Name              string     `json:"name"`
	Label             string     `json:"label"`
	Type              FieldType  `json:"type"`
	IsRequired        bool       `json:"is_required"`
	AcceptedFileTypes string     `json:"accepted_file_types,omitempty"`
	IsActive          bool       `json:"is_active"`
	Teams             []string   `json:"teams"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

type SaveCustomFieldRequest struct {
	Field CustomField `json:"field"`
}

type CustomFieldFilter struct {
	TeamID     string
	ActiveOnly bool
}

func (t FieldType) IsValid() bool {
	return slices.Contains(FieldTypes, t)
}

// NewCustomField returns an unsaved text field, active by default.
func NewCustomField(teams []string) CustomField {
	return CustomField{
		Type:     FieldTypeText,
		IsActive: true,
		Teams:    slices.Clone(teams),
	}
}

// Validate checks the rules a field must satisfy before it is persisted and
// returns the first violation.
func (f *CustomField) Validate() error {
	if f.Name == "" || f.Label == "" {
		return NewValidationError(MsgNameAndLabelRequired)
	}
	if f.Type == FieldTypeFile && strings.TrimSpace(f.AcceptedFileTypes) == "" {
		return NewValidationError(MsgFileTypesRequired)
	}
	if len(f.Teams) == 0 {
		return NewValidationError(MsgTeamRequired)
	}
	if !f.Type.IsValid() {
		return NewValidationError(fmt.Sprintf("Unsupported field type %q", f.Type))
	}
	return nil
}

// Clone returns a copy that shares no slices with f.
func (f CustomField) Clone() CustomField {
	f.Teams = slices.Clone(f.Teams)
	if f.CreatedAt != nil {
		t := *f.CreatedAt
		f.CreatedAt = &t
	}
	if f.UpdatedAt != nil {
		t := *f.UpdatedAt
		f.UpdatedAt = &t
	}
	return f
}

func (f *CustomField) HasTeam(teamID string) bool {
	return slices.Contains(f.Teams, teamID)
}

// AcceptedExtensions splits the accepted file types into normalized
// extensions such as ".pdf".
func (f *CustomField) AcceptedExtensions() []string {
	var exts []string
	for _, part := range strings.Split(f.AcceptedFileTypes, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if part != "*" && !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		exts = append(exts, part)
	}
	return exts
}

// ToggleTeam returns a new team set with teamID removed when present and
// appended otherwise.
func ToggleTeam(teams []string, teamID string) []string {
	if i := slices.Index(teams, teamID); i >= 0 {
		return slices.Delete(slices.Clone(teams), i, i+1)
	}
	return append(slices.Clone(teams), teamID)
}

// SameTeamSet reports whether a and b contain the same team ids, ignoring order.
func SameTeamSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}
