package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ilhamrafi44/ayp/internal/auth"
)

type loginFocus int

const (
	loginFocusEmail loginFocus = iota
	loginFocusPassword
	loginFocusSubmit
)

// LoginModel is the sign-in form
type LoginModel struct {
	ctx  context.Context
	auth *auth.Service

	inputs []textinput.Model // email, password
	focus  loginFocus
	motion bool

	width  int
	height int

	submitting bool
	err        string
	notice     string
}

// NewLoginModel creates the form with email prefilled
func NewLoginModel(ctx context.Context, svc *auth.Service, email string, reduceMotion bool) LoginModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = newInput(reduceMotion)
	}

	inputs[0].Placeholder = "you@example.com"
	inputs[0].CharLimit = 254
	inputs[0].SetValue(email)

	inputs[1].Placeholder = "Password"
	inputs[1].EchoMode = textinput.EchoPassword
	inputs[1].EchoCharacter = '•'
	inputs[1].CharLimit = 128

	m := LoginModel{
		ctx:    ctx,
		auth:   svc,
		inputs: inputs,
		motion: !reduceMotion,
	}

	// Skip straight to the password when the email is known
	if strings.TrimSpace(email) != "" {
		m.focus = loginFocusPassword
	}
	m.inputs[m.focus].Focus()

	return m
}

// newInput returns a text input in the app's theme
func newInput(reduceMotion bool) textinput.Model {
	in := textinput.New()
	in.Width = 40
	in.Prompt = "› "
	in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	in.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	if reduceMotion {
		in.Cursor.SetMode(cursor.CursorStatic)
	}
	return in
}

// Init starts the cursor blinking
func (m LoginModel) Init() tea.Cmd {
	if !m.motion {
		return nil
	}
	return textinput.Blink
}

// WithNotice returns the form showing notice above the fields
func (m LoginModel) WithNotice(notice string) LoginModel {
	m.notice = notice
	return m
}

// Update handles messages
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		return m, emit(signedInMsg{session: msg.session})

	case tea.KeyMsg:
		if m.submitting {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "down":
			return m.setFocus((m.focus + 1) % 3)

		case "shift+tab", "up":
			return m.setFocus((m.focus + 2) % 3)

		case "enter":
			if m.focus == loginFocusEmail {
				return m.setFocus(loginFocusPassword)
			}
			return m.submit()
		}
	}

	if m.focus == loginFocusSubmit {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m LoginModel) setFocus(f loginFocus) (LoginModel, tea.Cmd) {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if loginFocus(i) == f {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

// submit validates locally and sends the credentials
func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	creds := auth.Credentials{
		Email:    m.inputs[0].Value(),
		Password: m.inputs[1].Value(),
	}
	if err := m.auth.Validate(creds); err != nil {
		m.err = err.Error()
		return m, nil
	}

	m.submitting = true
	m.err = ""
	m.notice = ""

	ctx, svc := m.ctx, m.auth
	return m, func() tea.Msg {
		sess, err := svc.Login(ctx, creds)
		return loginDoneMsg{session: sess, err: err}
	}
}

// View renders the form centered on screen
func (m LoginModel) View() string {
	var b strings.Builder

	logo := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render("ayp")
	b.WriteString(logo)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Sign in to manage employees"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(m.notice))
		b.WriteString("\n\n")
	}

	for i, label := range []string{"Email", "Password"} {
		style := labelStyle
		if loginFocus(i) == m.focus {
			style = style.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	label := "Sign in"
	if m.submitting {
		label = "Signing you in..."
	}
	b.WriteString(button(label, m.focus == loginFocusSubmit, true, m.submitting))

	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.err))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab switch field · enter sign in · esc quit"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 3).
		Width(52).
		Render(b.String())

	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
