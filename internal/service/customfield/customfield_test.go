package customfield

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/repository"
	"github.com/ynastt/course-admin/pkg/database"
)

type fakeFieldRepo struct {
	fields []domain.CustomField
}

func (r *fakeFieldRepo) ListFields(_ context.Context, filter domain.CustomFieldFilter) ([]domain.CustomField, error) {
	var out []domain.CustomField
	for _, f := range r.fields {
		if filter.TeamID != "" && !f.HasTeam(filter.TeamID) {
			continue
		}
		if filter.ActiveOnly && !f.IsActive {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFieldRepo) GetField(_ context.Context, id string) (*domain.CustomField, error) {
	for _, f := range r.fields {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeFieldRepo) CreateField(_ context.Context, field *domain.CustomField) error {
	for _, f := range r.fields {
		if f.Name == field.Name {
			return repository.ErrDuplicate
		}
	}
	r.fields = append(r.fields, *field)
	return nil
}

func (r *fakeFieldRepo) UpdateField(_ context.Context, field *domain.CustomField) error {
	for i, f := range r.fields {
		if f.ID == field.ID {
			r.fields[i] = *field
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeFieldRepo) DeleteField(_ context.Context, id string) error {
	n := len(r.fields)
	r.fields = slices.DeleteFunc(r.fields, func(f domain.CustomField) bool { return f.ID == id })
	if len(r.fields) == n {
		return repository.ErrNotFound
	}
	return nil
}

type fakeTeams []string

func (t fakeTeams) CountExisting(_ context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if slices.Contains(t, id) {
			n++
		}
	}
	return n, nil
}

func newService(repo *fakeFieldRepo) *CustomFieldService {
	return NewCustomFieldService(repo, fakeTeams{"t1", "t2"}, database.NoopTransactionManager{},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateFieldNormalizes(t *testing.T) {
	repo := &fakeFieldRepo{}
	svc := newService(repo)

	got, err := svc.CreateField(context.Background(), domain.CustomField{
		Name:              " githubProfile ",
		Label:             "GitHub Profile",
		Type:              domain.FieldTypeLink,
		AcceptedFileTypes: ".pdf",
		IsActive:          true,
		Teams:             []string{"t1", "t1", "t2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Errorf("id %q is not a uuid", got.ID)
	}

	want := domain.CustomField{
		ID: got.ID, Name: "githubProfile", Label: "GitHub Profile", Type: domain.FieldTypeLink,
		IsActive: true, Teams: []string{"t1", "t2"},
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("created field mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]domain.CustomField{want}, repo.fields); diff != "" {
		t.Errorf("stored field mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateFieldRejects(t *testing.T) {
	repo := &fakeFieldRepo{fields: []domain.CustomField{{ID: uuid.NewString(), Name: "bio"}}}
	svc := newService(repo)
	ctx := context.Background()

	tests := []struct {
		name    string
		field   domain.CustomField
		wantErr error
		wantMsg string
	}{
		{"no teams", domain.CustomField{Name: "a", Label: "A", Type: domain.FieldTypeText}, nil, domain.MsgTeamRequired},
		{"blank name", domain.CustomField{Name: "  ", Label: "A", Type: domain.FieldTypeText, Teams: []string{"t1"}}, nil, domain.MsgNameAndLabelRequired},
		{"file without types", domain.CustomField{Name: "cv", Label: "CV", Type: domain.FieldTypeFile, Teams: []string{"t1"}}, nil, domain.MsgFileTypesRequired},
		{"unknown team", domain.CustomField{Name: "a", Label: "A", Type: domain.FieldTypeText, Teams: []string{"t9"}}, domain.ErrTeamNotFound, ""},
		{"duplicate name", domain.CustomField{Name: "bio", Label: "Bio", Type: domain.FieldTypeText, Teams: []string{"t1"}}, domain.ErrFieldExists, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateField(ctx, tt.field)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if !domain.IsValidation(err) || err.Error() != tt.wantMsg {
				t.Errorf("error = %v, want validation %q", err, tt.wantMsg)
			}
		})
	}
	if len(repo.fields) != 1 {
		t.Errorf("rejected fields were stored: %+v", repo.fields)
	}
}

func TestUpdateField(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeFieldRepo{fields: []domain.CustomField{
		{ID: id, Name: "resume", Label: "Resume", Type: domain.FieldTypeFile, AcceptedFileTypes: ".pdf", Teams: []string{"t1"}},
	}}
	svc := newService(repo)
	ctx := context.Background()

	update := repo.fields[0].Clone()
	update.AcceptedFileTypes = ".pdf,.docx"
	update.Teams = []string{"t1", "t2"}
	got, err := svc.UpdateField(ctx, id, update)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*got, repo.fields[0]); diff != "" {
		t.Errorf("stored field mismatch (-returned +stored):\n%s", diff)
	}

	if _, err := svc.UpdateField(ctx, uuid.NewString(), update); !errors.Is(err, domain.ErrFieldNotFound) {
		t.Errorf("unknown id: error = %v", err)
	}
	if _, err := svc.UpdateField(ctx, "x", update); !errors.Is(err, domain.ErrFieldNotFound) {
		t.Errorf("malformed id: error = %v", err)
	}
}

func TestDeleteField(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeFieldRepo{fields: []domain.CustomField{{ID: id, Name: "bio"}}}
	svc := newService(repo)

	if err := svc.DeleteField(context.Background(), id); err != nil {
		t.Fatal(err)
	}
	if len(repo.fields) != 0 {
		t.Error("field not deleted")
	}
	if err := svc.DeleteField(context.Background(), id); !errors.Is(err, domain.ErrFieldNotFound) {
		t.Errorf("second delete error = %v, want ErrFieldNotFound", err)
	}
}
