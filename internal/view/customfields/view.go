// Package customfields drives the admin page that defines custom product
// fields and scopes them to teams.
package customfields

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/view"
)

const (
	msgLoadFieldsFailed = "Failed to load custom fields"
	msgLoadTeamsFailed  = "Failed to load teams"
	msgMissingID        = "Cannot delete field without ID"
	msgDeleted          = "Custom field deleted successfully"
)

var ErrNoSuchField = errors.New("customfields: no field at that position")

type API interface {
	ListCustomFields(ctx context.Context) ([]domain.CustomField, error)
	CreateCustomField(ctx context.Context, field domain.CustomField) (*domain.CustomField, error)
	UpdateCustomField(ctx context.Context, id string, field domain.CustomField) (*domain.CustomField, error)
	DeleteCustomField(ctx context.Context, id string) error
	ListTeams(ctx context.Context) ([]domain.Team, error)
}

type View struct {
	api      API
	notifier view.Notifier
	lg       *slog.Logger

	gen     view.Generation
	history view.History

	mu    sync.Mutex
	state State
}

func New(api API, notifier view.Notifier, lg *slog.Logger) *View {
	return &View{
		api:      api,
		notifier: notifier,
		lg:       lg.With(slog.String("view", "custom_fields")),
	}
}

// State returns a copy of the current view state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.clone()
}

// History lists the state updates applied so far, oldest first.
func (v *View) History() []string {
	return v.history.Actions()
}

// update is the only place state changes. fn must either fail without
// touching s or succeed.
func (v *View) update(action string, fn func(s *State) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := fn(&v.state); err != nil {
		return err
	}
	v.history.Record(action)
	v.lg.Debug("state updated", slog.String("action", action))
	return nil
}

// apply runs fn only if token still belongs to the current mount.
func (v *View) apply(token uint64, action string, fn func(s *State)) error {
	return v.update(action, func(s *State) error {
		if !v.gen.Valid(token) {
			v.lg.Debug("discarding stale result", slog.String("action", action))
			return view.ErrStale
		}
		fn(s)
		return nil
	})
}

// Mount resets the view and fetches fields and teams concurrently. Each
// failure is reported as a notice and leaves its list empty; the joined
// errors are returned as well.
func (v *View) Mount(ctx context.Context) error {
	var token uint64
	_ = v.update("mount", func(s *State) error {
		token = v.gen.Advance()
		*s = State{FieldsLoading: true, TeamsLoading: true}
		return nil
	})

	var (
		wg                  sync.WaitGroup
		fieldsErr, teamsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		fieldsErr = v.loadFields(ctx, token)
	}()
	go func() {
		defer wg.Done()
		teamsErr = v.loadTeams(ctx, token)
	}()
	wg.Wait()

	return errors.Join(fieldsErr, teamsErr)
}

// Unmount invalidates every in-flight request.
func (v *View) Unmount() {
	_ = v.update("unmount", func(s *State) error {
		v.gen.Advance()
		return nil
	})
}

func (v *View) loadFields(ctx context.Context, token uint64) error {
	fields, err := v.api.ListCustomFields(ctx)
	if applyErr := v.apply(token, "fields:loaded", func(s *State) {
		s.FieldsLoading = false
		if err != nil || fields == nil {
			s.Fields = []domain.CustomField{}
			return
		}
		s.Fields = fields
	}); applyErr != nil {
		return applyErr
	}

	if err != nil {
		v.lg.Error("error fetching custom fields", slog.Any("error", err))
		view.Error(v.notifier, msgLoadFieldsFailed)
		return fmt.Errorf("load custom fields: %w", err)
	}
	return nil
}

func (v *View) loadTeams(ctx context.Context, token uint64) error {
	teams, err := v.api.ListTeams(ctx)
	if applyErr := v.apply(token, "teams:loaded", func(s *State) {
		s.TeamsLoading = false
		if err != nil || teams == nil {
			s.Teams = []domain.Team{}
			return
		}
		s.Teams = teams
	}); applyErr != nil {
		return applyErr
	}

	if err != nil {
		v.lg.Error("error fetching teams", slog.Any("error", err))
		view.Error(v.notifier, msgLoadTeamsFailed)
		return fmt.Errorf("load teams: %w", err)
	}
	return nil
}

// AddField opens the edit dialog on a fresh field scoped to the first team.
func (v *View) AddField() error {
	return v.update("edit:open-new", func(s *State) error {
		if s.Saving {
			return view.ErrBusy
		}
		var teams []string
		if len(s.Teams) > 0 {
			teams = []string{s.Teams[0].ID}
		}
		s.Edit = &EditModal{Field: domain.NewCustomField(teams), Index: -1}
		return nil
	})
}

// EditField opens the edit dialog on a copy of the field at index.
func (v *View) EditField(index int) error {
	return v.update("edit:open-existing", func(s *State) error {
		if s.Saving {
			return view.ErrBusy
		}
		if index < 0 || index >= len(s.Fields) {
			return ErrNoSuchField
		}
		s.Edit = &EditModal{Field: s.Fields[index].Clone(), Index: index}
		return nil
	})
}

func (v *View) CloseEdit() error {
	return v.update("edit:close", func(s *State) error {
		if s.Edit == nil {
			return view.ErrClosed
		}
		s.Edit = nil
		return nil
	})
}

func (v *View) editBuffer(action string, fn func(f *domain.CustomField)) error {
	return v.update(action, func(s *State) error {
		if s.Edit == nil {
			return view.ErrClosed
		}
		field := s.Edit.Field.Clone()
		fn(&field)
		s.Edit = &EditModal{Field: field, Index: s.Edit.Index}
		return nil
	})
}

func (v *View) SetName(name string) error {
	return v.editBuffer("edit:name", func(f *domain.CustomField) { f.Name = name })
}

func (v *View) SetLabel(label string) error {
	return v.editBuffer("edit:label", func(f *domain.CustomField) { f.Label = label })
}

func (v *View) SetType(t domain.FieldType) error {
	return v.editBuffer("edit:type", func(f *domain.CustomField) { f.Type = t })
}

func (v *View) SetRequired(required bool) error {
	return v.editBuffer("edit:required", func(f *domain.CustomField) { f.IsRequired = required })
}

func (v *View) SetAcceptedFileTypes(types string) error {
	return v.editBuffer("edit:file-types", func(f *domain.CustomField) { f.AcceptedFileTypes = types })
}

func (v *View) SetActive(active bool) error {
	return v.editBuffer("edit:active", func(f *domain.CustomField) { f.IsActive = active })
}

// ToggleTeam adds teamID to the buffer's teams, or removes it if present.
func (v *View) ToggleTeam(teamID string) error {
	return v.editBuffer("edit:toggle-team", func(f *domain.CustomField) {
		f.Teams = domain.ToggleTeam(f.Teams, teamID)
	})
}

// SelectAllTeams scopes the buffer to the whole roster, or to no team.
func (v *View) SelectAllTeams(all bool) error {
	return v.update("edit:select-all-teams", func(s *State) error {
		if s.Edit == nil {
			return view.ErrClosed
		}
		field := s.Edit.Field.Clone()
		if all {
			field.Teams = domain.TeamIDs(s.Teams)
		} else {
			field.Teams = []string{}
		}
		s.Edit = &EditModal{Field: field, Index: s.Edit.Index}
		return nil
	})
}

// SaveField validates the buffer, persists it and merges the stored record
// into the list. The list is untouched unless the backend accepts the field.
func (v *View) SaveField(ctx context.Context) error {
	var (
		field domain.CustomField
		token uint64
	)
	err := v.update("save:start", func(s *State) error {
		if s.Edit == nil {
			return view.ErrClosed
		}
		if s.Saving {
			return view.ErrBusy
		}
		if err := s.Edit.Field.Validate(); err != nil {
			return err
		}
		field = s.Edit.Field.Clone()
		token = v.gen.Token()
		s.Saving = true
		return nil
	})
	if err != nil {
		if domain.IsValidation(err) {
			view.Error(v.notifier, err.Error())
		}
		return err
	}

	var saved *domain.CustomField
	if field.ID != "" {
		saved, err = v.api.UpdateCustomField(ctx, field.ID, field)
	} else {
		saved, err = v.api.CreateCustomField(ctx, field)
	}
	if err == nil && saved == nil {
		err = errors.New("empty response")
	}

	if err != nil {
		if applyErr := v.apply(token, "save:failed", func(s *State) { s.Saving = false }); applyErr != nil {
			return applyErr
		}
		v.lg.Error("error saving custom field", slog.String("name", field.Name), slog.Any("error", err))
		view.Error(v.notifier, "Failed to save custom field: "+err.Error())
		return err
	}

	if err := v.apply(token, "save:done", func(s *State) {
		fields := slices.Clone(s.Fields)
		if field.ID == "" {
			fields = append(fields, saved.Clone())
		} else if i := slices.IndexFunc(fields, func(f domain.CustomField) bool { return f.ID == field.ID }); i >= 0 {
			fields[i] = saved.Clone()
		}
		// An updated field deleted while the dialog was open stays deleted.
		s.Fields = fields
		s.Edit = nil
		s.Saving = false
	}); err != nil {
		return err
	}

	if field.ID != "" {
		view.Success(v.notifier, "Custom field updated successfully")
	} else {
		view.Success(v.notifier, "Custom field created successfully")
	}
	return nil
}

// RequestDelete opens the confirmation dialog for fieldID.
func (v *View) RequestDelete(fieldID string) error {
	if fieldID == "" {
		view.Error(v.notifier, msgMissingID)
		return domain.ErrMissingIdentifier
	}
	return v.update("delete:open", func(s *State) error {
		if s.Deleting {
			return view.ErrBusy
		}
		s.DeleteID = fieldID
		return nil
	})
}

func (v *View) CancelDelete() error {
	return v.update("delete:cancel", func(s *State) error {
		if !s.DeleteOpen() || s.Deleting {
			return view.ErrClosed
		}
		s.DeleteID = ""
		return nil
	})
}

// ConfirmDelete deletes the pending field. The dialog closes whatever the
// outcome; the list only changes on success.
func (v *View) ConfirmDelete(ctx context.Context) error {
	var (
		id    string
		token uint64
	)
	err := v.update("delete:start", func(s *State) error {
		if !s.DeleteOpen() {
			return view.ErrClosed
		}
		if s.Deleting {
			return view.ErrBusy
		}
		id = s.DeleteID
		token = v.gen.Token()
		s.Deleting = true
		return nil
	})
	if err != nil {
		return err
	}

	err = v.api.DeleteCustomField(ctx, id)
	if err != nil {
		if applyErr := v.apply(token, "delete:failed", func(s *State) {
			s.DeleteID = ""
			s.Deleting = false
		}); applyErr != nil {
			return applyErr
		}
		v.lg.Error("error deleting custom field", slog.String("field_id", id), slog.Any("error", err))
		view.Error(v.notifier, "Failed to delete custom field: "+err.Error())
		return err
	}

	if err := v.apply(token, "delete:done", func(s *State) {
		s.Fields = slices.DeleteFunc(slices.Clone(s.Fields), func(f domain.CustomField) bool {
			return f.ID == id
		})
		s.DeleteID = ""
		s.Deleting = false
	}); err != nil {
		return err
	}

	view.Success(v.notifier, msgDeleted)
	return nil
}

func (v *View) OpenProductModal() {
	_ = v.update("products:open", func(s *State) error {
		s.ProductModalOpen = true
		return nil
	})
}

func (v *View) CloseProductModal() {
	_ = v.update("products:close", func(s *State) error {
		s.ProductModalOpen = false
		return nil
	})
}
