package team

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/repository"
	"github.com/ynastt/course-admin/pkg/database"
)

type fakeTeamRepo struct {
	teams     []domain.Team
	listCalls int
	createErr error
}

func (r *fakeTeamRepo) CreateTeam(_ context.Context, team *domain.Team) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.teams = append(r.teams, *team)
	return nil
}

func (r *fakeTeamRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, t := range r.teams {
		if t.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeamRepo) ListTeams(context.Context) ([]domain.Team, error) {
	r.listCalls++
	return append([]domain.Team(nil), r.teams...), nil
}

type mapCache struct {
	data   map[string][]byte
	getErr error
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func newService(repo *fakeTeamRepo, cache RosterCache) *TeamService {
	return NewTeamService(repo, cache, database.NoopTransactionManager{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateTeam(t *testing.T) {
	repo := &fakeTeamRepo{}
	svc := newService(repo, nil)

	team, err := svc.CreateTeam(context.Background(), domain.Team{
		Name:      "Design",
		CreatedBy: domain.TeamAuthor{Name: "Ana", Email: "ana@example.com"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if team.ID == "" {
		t.Error("team id not assigned")
	}
	if len(repo.teams) != 1 || repo.teams[0].ID != team.ID {
		t.Errorf("stored teams = %+v", repo.teams)
	}
}

func TestCreateTeamRejects(t *testing.T) {
	repo := &fakeTeamRepo{teams: []domain.Team{{ID: "t1", Name: "Design"}}}
	svc := newService(repo, nil)

	if _, err := svc.CreateTeam(context.Background(), domain.Team{}); !domain.IsValidation(err) {
		t.Errorf("CreateTeam(no name) error = %v, want validation error", err)
	}
	if _, err := svc.CreateTeam(context.Background(), domain.Team{Name: "Design"}); !errors.Is(err, domain.ErrTeamExists) {
		t.Errorf("CreateTeam(duplicate) error = %v, want ErrTeamExists", err)
	}

	repo.createErr = repository.ErrDuplicate
	if _, err := svc.CreateTeam(context.Background(), domain.Team{Name: "Racing"}); !errors.Is(err, domain.ErrTeamExists) {
		t.Errorf("CreateTeam(unique violation) error = %v, want ErrTeamExists", err)
	}
}

func TestListTeamsUsesCache(t *testing.T) {
	repo := &fakeTeamRepo{teams: []domain.Team{{ID: "t1", Name: "Design"}}}
	cache := &mapCache{data: map[string][]byte{}}
	svc := newService(repo, cache)
	ctx := context.Background()

	first, err := svc.ListTeams(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.ListTeams(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if repo.listCalls != 1 {
		t.Errorf("repository hit %d times, want 1", repo.listCalls)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached roster mismatch (-first +second):\n%s", diff)
	}

	if _, err := svc.CreateTeam(ctx, domain.Team{Name: "Engineering"}); err != nil {
		t.Fatal(err)
	}
	third, err := svc.ListTeams(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if repo.listCalls != 2 || len(third) != 2 {
		t.Errorf("roster not refreshed after create: calls=%d teams=%d", repo.listCalls, len(third))
	}
}

func TestListTeamsCacheFailureFallsBack(t *testing.T) {
	repo := &fakeTeamRepo{teams: []domain.Team{{ID: "t1", Name: "Design"}}}
	svc := newService(repo, &mapCache{data: map[string][]byte{}, getErr: errors.New("redis down")})

	teams, err := svc.ListTeams(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(teams) != 1 || repo.listCalls != 1 {
		t.Errorf("teams = %+v, calls = %d", teams, repo.listCalls)
	}
}
