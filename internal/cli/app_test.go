package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fernando-mashimo/github-users-db/internal/logger"
	"github.com/fernando-mashimo/github-users-db/internal/service"
	"github.com/fernando-mashimo/github-users-db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	syncFn func(ctx context.Context, username string) (models.User, error)
	listFn func(ctx context.Context, filters models.ListFilters) ([]models.User, error)
}

func (m *mockUserService) Sync(ctx context.Context, username string) (models.User, error) {
	if m.syncFn != nil {
		return m.syncFn(ctx, username)
	}
	return models.User{}, nil
}

func (m *mockUserService) List(ctx context.Context, filters models.ListFilters) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, nil
}

func newTestApp(userService service.UserService) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	app := NewApp(&service.Services{UserService: userService}, nil, logger.Nop())
	app.out = out
	return app, out
}

func TestRun_NoCommand(t *testing.T) {
	app, out := newTestApp(&mockUserService{})

	err := app.Run(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoCommand)
	assert.Contains(t, out.String(), "usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _ := newTestApp(&mockUserService{})

	err := app.Run(context.Background(), []string{"frobnicate"})
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_Help(t *testing.T) {
	app, out := newTestApp(&mockUserService{})

	err := app.Run(context.Background(), []string{"help"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ghusersdb")
}

func TestFetch_Success(t *testing.T) {
	var gotUsername string
	svc := &mockUserService{
		syncFn: func(_ context.Context, username string) (models.User, error) {
			gotUsername = username
			return models.User{
				Username:             "octocat",
				Location:             "San Francisco",
				ProgrammingLanguages: []string{"Go", "Python"},
			}, nil
		},
	}
	app, out := newTestApp(svc)

	err := app.Run(context.Background(), []string{"fetch", "octocat"})
	require.NoError(t, err)
	assert.Equal(t, "octocat", gotUsername)
	assert.Contains(t, out.String(), "octocat")
	assert.Contains(t, out.String(), "San Francisco")
}

func TestFetch_MissingUsername(t *testing.T) {
	app, _ := newTestApp(&mockUserService{})

	err := app.Run(context.Background(), []string{"fetch"})
	require.ErrorIs(t, err, ErrNoUsername)

	err = app.Run(context.Background(), []string{"fetch", "a", "b"})
	require.ErrorIs(t, err, ErrNoUsername)
}

func TestFetch_ServiceErrorPropagates(t *testing.T) {
	wantErr := errors.New("remote is down")
	svc := &mockUserService{
		syncFn: func(context.Context, string) (models.User, error) {
			return models.User{}, wantErr
		},
	}
	app, _ := newTestApp(svc)

	err := app.Run(context.Background(), []string{"fetch", "octocat"})
	require.ErrorIs(t, err, wantErr)
}

func TestList_FiltersParsed(t *testing.T) {
	var gotFilters models.ListFilters
	svc := &mockUserService{
		listFn: func(_ context.Context, filters models.ListFilters) ([]models.User, error) {
			gotFilters = filters
			return []models.User{
				{Username: "alice", Location: "Paris", ProgrammingLanguages: []string{"Go"}},
				{Username: "bob"},
			}, nil
		},
	}
	app, out := newTestApp(svc)

	err := app.Run(context.Background(), []string{"list", "-location", "paris", "-languages", "go, python"})
	require.NoError(t, err)

	assert.Equal(t, "paris", gotFilters.Location)
	assert.Equal(t, []string{"go", "python"}, gotFilters.Languages)

	assert.Contains(t, out.String(), "alice")
	assert.Contains(t, out.String(), "bob")
	assert.Contains(t, out.String(), "2 user(s)")
}

func TestList_NoMatches(t *testing.T) {
	svc := &mockUserService{
		listFn: func(context.Context, models.ListFilters) ([]models.User, error) {
			return []models.User{}, nil
		},
	}
	app, out := newTestApp(svc)

	err := app.Run(context.Background(), []string{"list"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no users found")
}

func TestMigrate_NoStorage(t *testing.T) {
	app, _ := newTestApp(&mockUserService{})

	err := app.Run(context.Background(), []string{"migrate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage is not configured")
}

func Test_splitCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "go", want: []string{"go"}},
		{name: "spaces trimmed", input: " go , python ", want: []string{"go", "python"}},
		{name: "empty items dropped", input: "go,,python,", want: []string{"go", "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCSV(tt.input))
		})
	}
}
