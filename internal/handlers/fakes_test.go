package handlers

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/repository"
	"github.com/ynastt/course-admin/internal/service"
	"github.com/ynastt/course-admin/internal/service/course"
	"github.com/ynastt/course-admin/internal/service/customfield"
	"github.com/ynastt/course-admin/internal/service/product"
	"github.com/ynastt/course-admin/internal/service/team"
	"github.com/ynastt/course-admin/internal/service/upload"
	"github.com/ynastt/course-admin/pkg/database"
)

// memStore backs every repository interface the services need.
type memStore struct {
	mu       sync.Mutex
	teams    []domain.Team
	courses  []domain.Course
	videos   map[string][]domain.Video
	fields   []domain.CustomField
	products []domain.Product
}

func newMemStore() *memStore {
	return &memStore{videos: map[string][]domain.Video{}}
}

type teamRepo struct{ *memStore }

func (r teamRepo) CreateTeam(_ context.Context, t *domain.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = append(r.teams, *t)
	return nil
}

func (r teamRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.ContainsFunc(r.teams, func(t domain.Team) bool { return t.Name == name }), nil
}

func (r teamRepo) ListTeams(context.Context) ([]domain.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.teams), nil
}

func (r teamRepo) CountExisting(_ context.Context, ids []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range ids {
		if _, ok := domain.FindTeam(r.teams, id); ok {
			n++
		}
	}
	return n, nil
}

type courseRepo struct{ *memStore }

func (r courseRepo) CreateCourse(_ context.Context, c *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses = append(r.courses, *c)
	return nil
}

func (r courseRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.ContainsFunc(r.courses, func(c domain.Course) bool { return c.ID == id }), nil
}

func (r courseRepo) GetCourse(_ context.Context, id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r courseRepo) ListCourses(context.Context) ([]domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.courses), nil
}

func (r courseRepo) Touch(context.Context, string) error { return nil }

type videoRepo struct{ *memStore }

func (r videoRepo) Exists(_ context.Context, courseID, videoID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.ContainsFunc(r.videos[courseID], func(v domain.Video) bool { return v.ID == videoID }), nil
}

func (r videoRepo) AppendVideo(_ context.Context, courseID string, v domain.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos[courseID] = append(r.videos[courseID], v)
	return nil
}

func (r videoRepo) ListByCourse(_ context.Context, courseID string) ([]domain.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Video{}, r.videos[courseID]...), nil
}

type fieldRepo struct{ *memStore }

func (r fieldRepo) ListFields(_ context.Context, filter domain.CustomFieldFilter) ([]domain.CustomField, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.CustomField{}
	for _, f := range r.fields {
		if (filter.TeamID == "" || f.HasTeam(filter.TeamID)) && (!filter.ActiveOnly || f.IsActive) {
			out = append(out, f.Clone())
		}
	}
	return out, nil
}

func (r fieldRepo) GetField(_ context.Context, id string) (*domain.CustomField, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.fields {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fieldRepo) CreateField(_ context.Context, f *domain.CustomField) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.ContainsFunc(r.fields, func(x domain.CustomField) bool { return x.Name == f.Name }) {
		return repository.ErrDuplicate
	}
	r.fields = append(r.fields, f.Clone())
	return nil
}

func (r fieldRepo) UpdateField(_ context.Context, f *domain.CustomField) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.fields, func(x domain.CustomField) bool { return x.ID == f.ID })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.fields[i] = f.Clone()
	return nil
}

func (r fieldRepo) DeleteField(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.fields)
	r.fields = slices.DeleteFunc(r.fields, func(x domain.CustomField) bool { return x.ID == id })
	if len(r.fields) == n {
		return repository.ErrNotFound
	}
	return nil
}

type productRepo struct{ *memStore }

func (r productRepo) CreateProduct(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, *p)
	return nil
}

func (r productRepo) ListProducts(_ context.Context, teamID string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Product{}
	for _, p := range r.products {
		if teamID == "" || p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

type discardStore struct{ keys []string }

func (s *discardStore) PutObject(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	s.keys = append(s.keys, key)
	_, err := io.Copy(io.Discard, r)
	return err
}

func (s *discardStore) RemoveObject(context.Context, string) error { return nil }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, []byte) error { return nil }

func newTestServices(store *memStore, uploads bool) *service.Services {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	tx := database.NoopTransactionManager{}

	svc := &service.Services{
		TeamService:        team.NewTeamService(teamRepo{store}, nil, tx, lg),
		CourseService:      course.NewCourseService(courseRepo{store}, videoRepo{store}, tx, lg),
		CustomFieldService: customfield.NewCustomFieldService(fieldRepo{store}, teamRepo{store}, tx, lg),
		ProductService:     product.NewProductService(productRepo{store}, fieldRepo{store}, teamRepo{store}, tx, lg),
	}
	if uploads {
		svc.UploadService = upload.NewUploadService(&discardStore{}, nopPublisher{}, "https://cdn.example.com", lg)
	}
	return svc
}
