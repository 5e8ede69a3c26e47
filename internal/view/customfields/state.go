package customfields

import (
	"slices"

	"github.com/ynastt/course-admin/internal/domain"
)

// EditModal is the buffer behind the add/edit dialog. Index is the position
// of the edited entry in State.Fields, or -1 for a new field.
type EditModal struct {
	Field domain.CustomField
	Index int
}

func (m *EditModal) IsNew() bool {
	return m.Field.ID == ""
}

func (m *EditModal) Description() string {
	if m.IsNew() {
		return "Fill in the details for your new custom field."
	}
	return "Make changes to your field below."
}

func (m *EditModal) SubmitLabel() string {
	if m.IsNew() {
		return "Create Field"
	}
	return "Save Changes"
}

type State struct {
	Fields        []domain.CustomField
	Teams         []domain.Team
	FieldsLoading bool
	TeamsLoading  bool

	// Edit is nil while the edit dialog is closed.
	Edit   *EditModal
	Saving bool

	// DeleteID is the field awaiting confirmation; empty while the
	// confirmation dialog is closed.
	DeleteID string
	Deleting bool

	ProductModalOpen bool
}

func (s State) DeleteOpen() bool {
	return s.DeleteID != ""
}

// EmptyState reports whether the "no custom fields" card is shown.
func (s State) EmptyState() bool {
	return !s.FieldsLoading && len(s.Fields) == 0
}

// AllTeamsSelected drives the "select all" checkbox of the edit dialog.
func (s State) AllTeamsSelected() bool {
	if s.Edit == nil {
		return false
	}
	return domain.SameTeamSet(s.Edit.Field.Teams, domain.TeamIDs(s.Teams))
}

func (s *State) clone() State {
	c := *s
	c.Fields = make([]domain.CustomField, len(s.Fields))
	for i, f := range s.Fields {
		c.Fields[i] = f.Clone()
	}
	c.Teams = slices.Clone(s.Teams)
	if s.Edit != nil {
		c.Edit = &EditModal{Field: s.Edit.Field.Clone(), Index: s.Edit.Index}
	}
	return c
}

// FieldCard is what the list renders for one custom field.
type FieldCard struct {
	Name              string
	Label             string
	Type              domain.FieldType
	AcceptedFileTypes string
	Required          bool
	Status            string
	TeamBadges        []string
}

const AllTeamsBadge = "All Teams"

func FieldCards(fields []domain.CustomField, teams []domain.Team) []FieldCard {
	cards := make([]FieldCard, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		card := FieldCard{
			Name:       f.Name,
			Label:      f.Label,
			Type:       f.Type,
			Required:   f.IsRequired,
			Status:     "Inactive",
			TeamBadges: TeamBadges(f, teams),
		}
		if f.IsActive {
			card.Status = "Active"
		}
		if f.Type == domain.FieldTypeFile {
			card.AcceptedFileTypes = f.AcceptedFileTypes
		}
		cards = append(cards, card)
	}
	return cards
}

// TeamBadges names the teams of f. A field scoped to the whole roster gets a
// single "All Teams" badge; ids missing from the roster are skipped.
func TeamBadges(f *domain.CustomField, teams []domain.Team) []string {
	if domain.SameTeamSet(f.Teams, domain.TeamIDs(teams)) {
		return []string{AllTeamsBadge}
	}

	badges := []string{}
	for _, id := range f.Teams {
		if t, ok := domain.FindTeam(teams, id); ok {
			badges = append(badges, t.Name)
		}
	}
	return badges
}
