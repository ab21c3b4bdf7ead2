package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/ilhamrafi44/ayp/internal/api"
	"github.com/ilhamrafi44/ayp/internal/auth"
	"github.com/ilhamrafi44/ayp/internal/editor"
	"github.com/ilhamrafi44/ayp/internal/employees"
	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/session"
)

// Screen is the page the App is showing
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenEmployees
)

// Backend is the remote service as the App uses it. *api.Client satisfies it
type Backend interface {
	Login(ctx context.Context, email, password string) (api.AuthResult, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, id int, patch api.EmployeePatch) (models.Employee, error)
}

// Options tune how the App starts and when it exits
type Options struct {
	DefaultEmail string
	LoginOnly    bool // quit once signed in
	EditID       int  // open this employee's modal and quit when it closes
	ReduceMotion bool // no shimmer, no cursor blink
}

// Result is what the App leaves behind for the calling command
type Result struct {
	Session *session.Session
	Saved   *models.Employee
	Err     error
}

// App routes between the login and employees screens
type App struct {
	ctx   context.Context
	opts  Options
	log   zerolog.Logger
	store session.Store

	auth *auth.Service
	coll *employees.Collection
	wf   *editor.Workflow

	screen Screen
	login  LoginModel
	list   ListModel

	width  int
	height int
	result Result
}

// NewApp wires the controllers around backend and store. The starting
// screen depends on whether a session is already stored
func NewApp(ctx context.Context, backend Backend, store session.Store, log zerolog.Logger, opts Options) (App, error) {
	sess, err := store.Load(ctx)
	if err != nil {
		return App{}, fmt.Errorf("failed to read session: %w", err)
	}

	coll := employees.New(backend, store, log)
	m := App{
		ctx:   ctx,
		opts:  opts,
		log:   log,
		store: store,
		auth:  auth.NewService(backend, store, log),
		coll:  coll,
		wf:    editor.New(backend, coll, store, log),
	}

	if sess == nil || opts.LoginOnly {
		m.screen = ScreenLogin
		m.login = NewLoginModel(ctx, m.auth, opts.DefaultEmail, opts.ReduceMotion)
		return m, nil
	}

	m.screen = ScreenEmployees
	m.list = NewListModel(ctx, coll, m.wf, *sess, opts)
	return m, nil
}

// Screen returns the screen being shown
func (m App) Screen() Screen { return m.screen }

// Result returns what happened during the run
func (m App) Result() Result { return m.result }

// Init starts the current screen
func (m App) Init() tea.Cmd {
	if m.screen == ScreenLogin {
		return m.login.Init()
	}
	_, cmd := m.list.Start()
	return cmd
}

// Update handles messages
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.login, _ = m.login.Update(msg)
		m.list, _ = m.list.Update(msg)
		return m, nil

	case signedInMsg:
		sess := msg.session
		m.result.Session = &sess
		if m.opts.LoginOnly {
			return m, tea.Quit
		}
		return m.showEmployees(sess)

	case sessionExpiredMsg:
		m.log.Info().Msg("returning to login after session expiry")
		return m.showLogin("Your session has expired. Please sign in again.")

	case logoutRequestMsg:
		svc := m.auth
		ctx := m.ctx
		return m, func() tea.Msg {
			return logoutDoneMsg{err: svc.Logout(ctx)}
		}

	case logoutDoneMsg:
		if msg.err != nil {
			m.result.Err = msg.err
			return m, tea.Quit
		}
		m.result.Session = nil
		return m.showLogin("Signed out.")

	case editDoneMsg:
		if m.opts.EditID > 0 {
			m.result.Saved = msg.employee
			m.result.Err = msg.err
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	if m.screen == ScreenLogin {
		m.login, cmd = m.login.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m App) showLogin(notice string) (App, tea.Cmd) {
	m.screen = ScreenLogin
	m.login = NewLoginModel(m.ctx, m.auth, m.opts.DefaultEmail, m.opts.ReduceMotion).WithNotice(notice)
	if m.width > 0 {
		m.login, _ = m.login.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	return m, m.login.Init()
}

func (m App) showEmployees(sess session.Session) (App, tea.Cmd) {
	m.screen = ScreenEmployees
	m.list = NewListModel(m.ctx, m.coll, m.wf, sess, m.opts)
	if m.width > 0 {
		m.list, _ = m.list.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Start()
	return m, cmd
}

// View renders the current screen
func (m App) View() string {
	if m.screen == ScreenLogin {
		return m.login.View()
	}
	return m.list.View()
}
