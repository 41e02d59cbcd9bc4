package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskflow/internal/authapi"
	"github.com/tgienger/taskflow/internal/authapi/authtest"
	"github.com/tgienger/taskflow/internal/config"
	"github.com/tgienger/taskflow/internal/db"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/nav"
	"github.com/tgienger/taskflow/internal/projection"
	"github.com/tgienger/taskflow/internal/session"
	"github.com/tgienger/taskflow/internal/storage"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.Local)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func newApp(t *testing.T, backend storage.Backend) (*App, *authtest.Server) {
	t.Helper()
	return newAppWithIDs(t, backend, sequentialIDs())
}

func newAppWithIDs(t *testing.T, backend storage.Backend, ids func() string) (*App, *authtest.Server) {
	t.Helper()
	srv := authtest.NewServer(t)
	a := New(Deps{
		Backend: backend,
		Auth:    authapi.NewClient(srv.URL),
		Now:     func() time.Time { return fixedNow },
		NewID:   ids,
	})
	return a, srv
}

func signedIn(t *testing.T) (*App, *authtest.Server) {
	t.Helper()
	a, srv := newApp(t, storage.NewMemory())
	signIn(t, a, srv)
	return a, srv
}

func signIn(t *testing.T, a *App, srv *authtest.Server) {
	t.Helper()
	srv.AddUser("Ana", "ana@x.com", "123456")
	_, err := a.Login(context.Background(), "ana@x.com", "123456")
	require.NoError(t, err)
}

func TestGateWhileAnonymous(t *testing.T) {
	a, _ := newApp(t, storage.NewMemory())
	require.False(t, a.Authenticated())

	_, err := a.Tasks()
	assert.ErrorIs(t, err, ErrLocked)
	_, err = a.Profile()
	assert.ErrorIs(t, err, ErrLocked)
	assert.ErrorIs(t, a.Navigate(nav.ViewCalendar), ErrLocked)
	_, err = a.AddTask("x")
	assert.ErrorIs(t, err, ErrLocked)
	_, _, err = a.ToggleTask("x")
	assert.ErrorIs(t, err, ErrLocked)
	_, err = a.SaveTask(models.Task{ID: "x"})
	assert.ErrorIs(t, err, ErrLocked)
	_, err = a.DeleteTask("x")
	assert.ErrorIs(t, err, ErrLocked)
	_, err = a.Counts()
	assert.ErrorIs(t, err, ErrLocked)
	_, err = a.Agenda(7)
	assert.ErrorIs(t, err, ErrLocked)
	_, err = a.Page()
	assert.ErrorIs(t, err, ErrLocked)
	assert.ErrorIs(t, a.SaveProfile(context.Background(), models.UserProfile{Name: "x"}), ErrLocked)
}

func TestStoredSessionOpensGate(t *testing.T) {
	backend := storage.NewMemory()
	raw, err := json.Marshal(models.Session{
		Token: "abc",
		User:  &models.AuthUser{ID: "1", Name: "Ana", Email: "a@x.com"},
	})
	require.NoError(t, err)
	require.NoError(t, backend.Write(session.Key, raw))

	a, _ := newApp(t, backend)
	assert.True(t, a.Authenticated())
	for _, v := range []nav.View{nav.ViewCalendar, nav.ViewSummary, nav.ViewProfile, nav.ViewTasks} {
		require.NoError(t, a.Navigate(v))
		page, err := a.Page()
		require.NoError(t, err)
		assert.Equal(t, v, page)
	}
}

func TestBuyMilkScenario(t *testing.T) {
	a, _ := signedIn(t)

	task, err := a.AddTask("Buy milk")
	require.NoError(t, err)
	all, err := a.Tasks()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.StatusPending, all[0].Status)
	assert.Equal(t, models.PriorityLow, all[0].Priority)

	toggled, ok, err := a.ToggleTask(task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, toggled.Status)

	counts, err := a.Counts()
	require.NoError(t, err)
	assert.Equal(t, projection.Summary{Total: 1, Pending: 0, Completed: 1, Urgent: 0, CompletionPercent: 100}, counts)
}

func TestRegisterConflictStaysAnonymous(t *testing.T) {
	backend := storage.NewMemory()
	a, srv := newApp(t, backend)
	srv.AddUser("Someone", "ana@x.com", "abcdef")

	_, err := a.Register(context.Background(), "Ana", "ana@x.com", "123456")
	var sessErr *session.Error
	require.ErrorAs(t, err, &sessErr)
	assert.Contains(t, sessErr.Message, "An account with that email already exists")
	assert.False(t, a.Authenticated())

	_, err = backend.Read(session.Key)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoginSeedsProfile(t *testing.T) {
	a, _ := signedIn(t)
	p, err := a.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
}

func TestLogoutResetsNavigation(t *testing.T) {
	a, _ := signedIn(t)
	added, err := a.AddTask("Buy milk")
	require.NoError(t, err)
	require.NoError(t, a.EditTask(added.ID))

	a.Logout()
	assert.False(t, a.Authenticated())

	_, err = a.Login(context.Background(), "ana@x.com", "123456")
	require.NoError(t, err)
	page, err := a.Page()
	require.NoError(t, err)
	assert.Equal(t, nav.ViewTasks, page)
}

func TestDeleteEditedTaskClosesEditor(t *testing.T) {
	a, _ := signedIn(t)
	added, err := a.AddTask("Buy milk")
	require.NoError(t, err)
	require.NoError(t, a.EditTask(added.ID))

	editing, ok := a.Editing()
	require.True(t, ok)
	assert.Equal(t, added.ID, editing.ID)

	ok, err = a.DeleteTask(added.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	page, _ := a.Page()
	assert.Equal(t, nav.ViewTasks, page)
	_, ok = a.Editing()
	assert.False(t, ok)
}

func TestEditUnknownTask(t *testing.T) {
	a, _ := signedIn(t)
	assert.ErrorIs(t, a.EditTask("missing"), ErrNoTask)
}

func TestResolve(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz"}
	next := 0
	a, srv := newAppWithIDs(t, storage.NewMemory(), func() string {
		id := ids[next]
		next++
		return id
	})
	signIn(t, a, srv)
	for range ids {
		_, err := a.AddTask("")
		require.NoError(t, err)
	}

	tests := []struct {
		ref  string
		want string
		err  error
	}{
		{ref: "xyz", want: "xyz"},
		{ref: "abc", want: "abc123"},
		{ref: "abd4", want: "abd456"},
		{ref: "ab", err: ErrAmbiguousTask},
		{ref: "q", err: ErrNoTask},
		{ref: " ", err: ErrNoTask},
	}
	for _, tt := range tests {
		got, err := a.Resolve(tt.ref)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, tt.ref)
			continue
		}
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got)
	}
}

func TestSaveProfile(t *testing.T) {
	a, _ := signedIn(t)
	err := a.SaveProfile(context.Background(), models.UserProfile{Name: " Ana ", LastName: "López"})
	require.NoError(t, err)

	p, err := a.Profile()
	require.NoError(t, err)
	assert.Equal(t, models.UserProfile{Name: "Ana", LastName: "López"}, p)
	user, _ := a.User()
	assert.Equal(t, "López", user.LastName)
}

func TestSaveProfileExpiredSessionLocks(t *testing.T) {
	a, srv := signedIn(t)
	require.NoError(t, a.Navigate(nav.ViewProfile))
	token, _ := a.session.Token()
	srv.Revoke(token)

	err := a.SaveProfile(context.Background(), models.UserProfile{Name: "New"})
	assert.ErrorIs(t, err, session.ErrSessionExpired)
	assert.False(t, a.Authenticated())

	_, err = a.Login(context.Background(), "ana@x.com", "123456")
	require.NoError(t, err)
	page, _ := a.Page()
	assert.Equal(t, nav.ViewTasks, page)
	p, _ := a.Profile()
	assert.Equal(t, "Ana", p.Name)
}

func TestProfileSaveFromEndedSessionIsDropped(t *testing.T) {
	for _, tc := range []struct {
		name   string
		revoke bool
	}{
		{name: "rejected", revoke: true},
		{name: "accepted", revoke: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, srv := signedIn(t)
			save, err := a.StartProfileSave(models.UserProfile{Name: "Old"})
			require.NoError(t, err)

			a.Logout()
			if tc.revoke {
				srv.RevokeAll()
			}
			_, err = a.Register(context.Background(), "Bob", "bob@x.com", "654321")
			require.NoError(t, err)
			require.NoError(t, a.Navigate(nav.ViewSummary))

			save.Run(context.Background())
			err = a.FinishProfileSave(save)
			assert.ErrorIs(t, err, ErrStaleSave)

			assert.True(t, a.Authenticated())
			page, _ := a.Page()
			assert.Equal(t, nav.ViewSummary, page)
			p, _ := a.Profile()
			assert.Equal(t, "Bob", p.Name)
			user, _ := a.User()
			assert.Equal(t, "bob@x.com", user.Email)
		})
	}
}

func TestDarkModePersists(t *testing.T) {
	backend := storage.NewMemory()
	a, _ := newApp(t, backend)
	assert.False(t, a.DarkMode())
	assert.True(t, a.ToggleDarkMode())

	reopened, _ := newApp(t, backend)
	assert.True(t, reopened.DarkMode())
}

func TestSeedSamplesOnFirstRun(t *testing.T) {
	backend := storage.NewMemory()
	srv := authtest.NewServer(t)
	srv.AddUser("Ana", "ana@x.com", "123456")
	a := New(Deps{Backend: backend, Auth: authapi.NewClient(srv.URL), SeedSamples: true})
	_, err := a.Login(context.Background(), "ana@x.com", "123456")
	require.NoError(t, err)

	all, err := a.Tasks()
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestStateSurvivesRestartOnSQLite(t *testing.T) {
	dir := t.TempDir()
	open := func() *db.DB {
		database, err := db.Open(filepath.Join(dir, db.FileName))
		require.NoError(t, err)
		return database
	}

	first := open()
	a, srv := newApp(t, first)
	srv.AddUser("Ana", "ana@x.com", "123456")
	_, err := a.Login(context.Background(), "ana@x.com", "123456")
	require.NoError(t, err)
	added, err := a.AddTask("Buy milk")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := open()
	defer second.Close()
	b, _ := newApp(t, second)
	require.True(t, b.Authenticated())
	got, err := b.Task(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	for _, driver := range []string{storage.DriverSQLite, storage.DriverDiskv, storage.DriverMemory} {
		backend, err := OpenBackend(&config.Config{Storage: driver, DataDir: dir})
		require.NoError(t, err, driver)
		require.NoError(t, backend.Write("k", []byte("v")), driver)
		require.NoError(t, backend.Close(), driver)
	}
	_, err := OpenBackend(&config.Config{Storage: "redis", DataDir: dir})
	assert.Error(t, err)
}
