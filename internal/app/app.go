// Package app wires the session, tasks, profile and navigation state
// together and keeps everything but the session behind sign-in.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tgienger/taskflow/internal/authapi"
	"github.com/tgienger/taskflow/internal/logging"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/nav"
	"github.com/tgienger/taskflow/internal/persist"
	"github.com/tgienger/taskflow/internal/projection"
	"github.com/tgienger/taskflow/internal/session"
	"github.com/tgienger/taskflow/internal/storage"
	"github.com/tgienger/taskflow/internal/tasks"
)

// Storage keys
const (
	TasksKey    = "taskflow-tasks"
	ProfileKey  = "taskflow-user"
	DarkModeKey = "taskflow-darkmode"
)

var (
	// ErrLocked is returned by every task and profile operation while no
	// one is signed in
	ErrLocked = errors.New("sign in required")

	ErrNoTask        = errors.New("no such task")
	ErrAmbiguousTask = errors.New("task id is ambiguous")

	// ErrStaleSave is returned when a profile save finishes after the
	// session it started in has ended. The outcome was dropped.
	ErrStaleSave = errors.New("profile save outlived its session")
)

// Deps are the collaborators an App is built from
type Deps struct {
	Backend storage.Backend
	Auth    session.Authenticator
	Logger  *slog.Logger

	// SeedSamples fills an empty first run with sample tasks
	SeedSamples bool

	// for tests
	Now   func() time.Time
	NewID func() string
}

// App is the state container behind the TUI and the CLI. It is not safe
// for concurrent use; apply one change at a time.
type App struct {
	session  *session.Manager
	tasks    *tasks.Store
	profile  *persist.Store[models.UserProfile]
	darkMode *persist.Store[bool]
	nav      nav.State
	now      func() time.Time
	logger   *slog.Logger
}

// New hydrates every store from deps.Backend
func New(deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	var initial []models.Task
	if deps.SeedSamples {
		initial = tasks.SampleTasks(now())
	}
	opts := []tasks.Option{tasks.WithClock(now), tasks.WithLogger(logger)}
	if deps.NewID != nil {
		opts = append(opts, tasks.WithIDs(deps.NewID))
	}

	return &App{
		session:  session.NewManager(deps.Auth, deps.Backend, logger),
		tasks:    tasks.New(persist.Open(deps.Backend, TasksKey, initial, logger), opts...),
		profile:  persist.Open(deps.Backend, ProfileKey, models.UserProfile{}, logger),
		darkMode: persist.Open(deps.Backend, DarkModeKey, false, logger),
		now:      now,
		logger:   logger,
	}
}

// Now returns the app clock
func (a *App) Now() time.Time { return a.now() }

// Authenticated reports whether the gate is open
func (a *App) Authenticated() bool { return a.session.Authenticated() }

// User returns the signed-in identity
func (a *App) User() (models.AuthUser, bool) { return a.session.User() }

// Login signs in and seeds the profile from the identity
func (a *App) Login(ctx context.Context, email, password string) (models.AuthUser, error) {
	resp, err := a.SignIn(ctx, email, password)
	if err != nil {
		return models.AuthUser{}, err
	}
	return a.Establish(resp)
}

// Register creates an account, signs in and seeds the profile
func (a *App) Register(ctx context.Context, name, email, password string) (models.AuthUser, error) {
	resp, err := a.SignUp(ctx, name, email, password)
	if err != nil {
		return models.AuthUser{}, err
	}
	return a.Establish(resp)
}

// SignIn only talks to the auth service, so it may run off the event loop.
// Pass the response to Establish.
func (a *App) SignIn(ctx context.Context, email, password string) (*authapi.AuthResponse, error) {
	return a.session.SignIn(ctx, email, password)
}

// SignUp is the registration counterpart of SignIn
func (a *App) SignUp(ctx context.Context, name, email, password string) (*authapi.AuthResponse, error) {
	return a.session.SignUp(ctx, name, email, password)
}

// Establish opens the gate with a successful sign-in
func (a *App) Establish(resp *authapi.AuthResponse) (models.AuthUser, error) {
	user, err := a.session.Establish(resp)
	if err != nil {
		return models.AuthUser{}, err
	}
	a.profile.Update(func(p models.UserProfile) models.UserProfile {
		p.Name = user.Name
		if user.LastName != "" {
			p.LastName = user.LastName
		}
		if user.AvatarURL != "" {
			p.AvatarURL = user.AvatarURL
		}
		return p
	})
	a.nav.Reset()
	return user, nil
}

// Logout closes the gate and returns navigation to the task list
func (a *App) Logout() {
	a.session.Logout()
	a.nav.Reset()
}

// Verify checks the stored token with the auth service
func (a *App) Verify(ctx context.Context) error {
	err := a.session.Verify(ctx)
	if errors.Is(err, session.ErrSessionExpired) {
		a.nav.Reset()
	}
	return err
}

func (a *App) gate() error {
	if !a.session.Authenticated() {
		return ErrLocked
	}
	return nil
}

// Tasks returns the collection in stored order
func (a *App) Tasks() ([]models.Task, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	return a.tasks.All(), nil
}

// Visible returns the tasks matching mode in display order
func (a *App) Visible(mode projection.FilterMode) ([]models.Task, error) {
	all, err := a.Tasks()
	if err != nil {
		return nil, err
	}
	return projection.SortForDisplay(projection.Filter(all, mode)), nil
}

// Task looks up a task by exact id
func (a *App) Task(id string) (models.Task, error) {
	if err := a.gate(); err != nil {
		return models.Task{}, err
	}
	t, ok := a.tasks.Get(id)
	if !ok {
		return models.Task{}, ErrNoTask
	}
	return t, nil
}

// Resolve expands a unique id prefix to a full task id
func (a *App) Resolve(ref string) (string, error) {
	if err := a.gate(); err != nil {
		return "", err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNoTask
	}
	if _, ok := a.tasks.Get(ref); ok {
		return ref, nil
	}
	var match string
	for _, t := range a.tasks.All() {
		if !strings.HasPrefix(t.ID, ref) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s", ErrAmbiguousTask, ref)
		}
		match = t.ID
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNoTask, ref)
	}
	return match, nil
}

// AddTask adds a task with the default fields
func (a *App) AddTask(title string) (models.Task, error) {
	if err := a.gate(); err != nil {
		return models.Task{}, err
	}
	return a.tasks.Add(title), nil
}

// ToggleTask flips a task between pending and completed. An unknown id
// changes nothing and reports false.
func (a *App) ToggleTask(id string) (models.Task, bool, error) {
	if err := a.gate(); err != nil {
		return models.Task{}, false, err
	}
	t, ok := a.tasks.Toggle(id)
	return t, ok, nil
}

// SaveTask replaces the stored task with the same id
func (a *App) SaveTask(t models.Task) (bool, error) {
	if err := a.gate(); err != nil {
		return false, err
	}
	return a.tasks.Edit(t), nil
}

// DeleteTask removes a task. If it was open in the editor the editor
// closes.
func (a *App) DeleteTask(id string) (bool, error) {
	if err := a.gate(); err != nil {
		return false, err
	}
	ok := a.tasks.Remove(id)
	if ok {
		a.nav.TaskDeleted(id)
	}
	return ok, nil
}

// Counts summarizes the whole collection
func (a *App) Counts() (projection.Summary, error) {
	all, err := a.Tasks()
	if err != nil {
		return projection.Summary{}, err
	}
	return projection.Counts(all), nil
}

// Agenda groups tasks by calendar day for the next days
func (a *App) Agenda(days int) ([]projection.DayGroup, error) {
	all, err := a.Tasks()
	if err != nil {
		return nil, err
	}
	return projection.GroupByDay(all, a.now(), days), nil
}

// Page returns the page to show
func (a *App) Page() (nav.View, error) {
	if err := a.gate(); err != nil {
		return nav.ViewTasks, err
	}
	return a.nav.Current(), nil
}

// Editing returns the task open in the editor
func (a *App) Editing() (models.Task, bool) {
	if a.gate() != nil {
		return models.Task{}, false
	}
	id, ok := a.nav.Selected()
	if !ok {
		return models.Task{}, false
	}
	return a.tasks.Get(id)
}

// Navigate switches page
func (a *App) Navigate(v nav.View) error {
	if err := a.gate(); err != nil {
		return err
	}
	a.nav.Go(v)
	return nil
}

// EditTask opens the editor on a task
func (a *App) EditTask(id string) error {
	if err := a.gate(); err != nil {
		return err
	}
	if _, ok := a.tasks.Get(id); !ok {
		return ErrNoTask
	}
	a.nav.Edit(id)
	return nil
}

// CloseEditor returns from the editor to the task list
func (a *App) CloseEditor() {
	a.nav.Back()
}

// Profile returns the display profile
func (a *App) Profile() (models.UserProfile, error) {
	if err := a.gate(); err != nil {
		return models.UserProfile{}, err
	}
	return a.profile.Get(), nil
}

// SaveProfile updates the profile on the auth service and then locally. An
// expired session closes the gate.
func (a *App) SaveProfile(ctx context.Context, p models.UserProfile) error {
	save, err := a.StartProfileSave(p)
	if err != nil {
		return err
	}
	save.Run(ctx)
	return a.FinishProfileSave(save)
}

// ProfileSave is a profile update in flight
type ProfileSave struct {
	manager *session.Manager
	token   string
	profile models.UserProfile

	user *models.AuthUser
	err  error
}

// Run sends the update. It touches no app state and may run off the event
// loop.
func (s *ProfileSave) Run(ctx context.Context) {
	s.user, s.err = s.manager.PushProfile(ctx, s.token, s.profile)
}

// StartProfileSave captures the token the update will be sent with
func (a *App) StartProfileSave(p models.UserProfile) (*ProfileSave, error) {
	token, ok := a.session.Token()
	if !ok {
		return nil, ErrLocked
	}
	p.Name = strings.TrimSpace(p.Name)
	p.LastName = strings.TrimSpace(p.LastName)
	p.AvatarURL = strings.TrimSpace(p.AvatarURL)
	return &ProfileSave{manager: a.session, token: token, profile: p}, nil
}

// FinishProfileSave applies the outcome of Run. An outcome from a session
// that has since ended changes nothing and reports ErrStaleSave.
func (a *App) FinishProfileSave(s *ProfileSave) error {
	if current, _ := a.session.Token(); current != s.token {
		a.logger.Debug("dropping profile save from an ended session", "error", s.err)
		return ErrStaleSave
	}
	if _, err := a.session.SettleProfile(s.token, s.user, s.err); err != nil {
		if errors.Is(err, session.ErrSessionExpired) || !a.Authenticated() {
			a.nav.Reset()
		}
		return err
	}
	a.profile.Set(s.profile)
	a.logger.Info("profile saved")
	return nil
}

// DarkMode reports the theme preference. It is readable while signed out.
func (a *App) DarkMode() bool { return a.darkMode.Get() }

// ToggleDarkMode flips and stores the theme preference
func (a *App) ToggleDarkMode() bool {
	a.darkMode.Update(func(on bool) bool { return !on })
	return a.darkMode.Get()
}
