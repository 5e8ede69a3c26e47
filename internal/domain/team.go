package domain

import "time"

type Team struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedBy   TeamAuthor `json:"created_by"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type TeamAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (t *Team) Validate() error {
	if t.Name == "" {
		return NewValidationError("Team must have a name")
	}
	return nil
}

// TeamIDs returns the ids of teams in roster order.
func TeamIDs(teams []Team) []string {
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return ids
}

// FindTeam returns the team with the given id, if present.
func FindTeam(teams []Team, id string) (Team, bool) {
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}
