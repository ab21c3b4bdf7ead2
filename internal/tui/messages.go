package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/session"
)

// loginDoneMsg carries the outcome of a sign-in request
type loginDoneMsg struct {
	session session.Session
	err     error
}

// signedInMsg tells the App a session was established
type signedInMsg struct {
	session session.Session
}

// employeesLoadedMsg carries the outcome of the list request
type employeesLoadedMsg struct {
	employees []models.Employee
	err       error
}

// employeeSavedMsg carries the outcome of a PATCH
type employeeSavedMsg struct {
	employee models.Employee
	err      error
}

// sessionExpiredMsg sends the user back to the login screen
type sessionExpiredMsg struct{}

// logoutRequestMsg asks the App to sign out
type logoutRequestMsg struct{}

// logoutDoneMsg carries the outcome of clearing the session
type logoutDoneMsg struct {
	err error
}

// editDoneMsg reports that the edit modal closed
type editDoneMsg struct {
	employee *models.Employee // nil when nothing was saved
	err      error
}

// emit wraps msg in a command
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
