package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ilhamrafi44/ayp/internal/editor"
	"github.com/ilhamrafi44/ayp/internal/models"
)

type modalFocus int

const (
	modalFocusName modalFocus = iota
	modalFocusEmail
	modalFocusStatus
	modalFocusCancel
	modalFocusSave
	modalFocusCount
)

// EditModal is the overlay editing one employee. The draft itself lives in
// the editor workflow; the inputs only mirror it
type EditModal struct {
	ctx    context.Context
	wf     *editor.Workflow
	inputs []textinput.Model // name, email
	focus  modalFocus
}

// NewEditModal creates a closed modal
func NewEditModal(ctx context.Context, wf *editor.Workflow, reduceMotion bool) EditModal {
	inputs := []textinput.Model{newInput(reduceMotion), newInput(reduceMotion)}
	inputs[0].Placeholder = "Full name"
	inputs[0].CharLimit = 255
	inputs[1].Placeholder = "name@example.com"
	inputs[1].CharLimit = 254
	return EditModal{ctx: ctx, wf: wf, inputs: inputs}
}

// Open prefills the modal from e, dropping any earlier draft
func (m EditModal) Open(e models.Employee) (EditModal, tea.Cmd) {
	m.wf.Open(e)
	d := m.wf.Draft()
	m.inputs[0].SetValue(d.Name)
	m.inputs[0].CursorEnd()
	m.inputs[1].SetValue(d.Email)
	m.inputs[1].CursorEnd()
	return m.setFocus(modalFocusName)
}

// IsOpen reports whether the modal is showing
func (m EditModal) IsOpen() bool { return m.wf.IsOpen() }

// Update handles keys while the modal is open
func (m EditModal) Update(msg tea.Msg) (EditModal, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focus == modalFocusName || m.focus == modalFocusEmail {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Nothing but quitting while the request is in flight
	if m.wf.State() == editor.StateSubmitting {
		if key.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		return m.cancel()

	case "tab", "down":
		return m.setFocus((m.focus + 1) % modalFocusCount)

	case "shift+tab", "up":
		return m.setFocus((m.focus + modalFocusCount - 1) % modalFocusCount)

	case "ctrl+s":
		return m.submit()

	case " ":
		if m.focus == modalFocusStatus {
			m.wf.Toggle()
			return m, nil
		}

	case "left", "right":
		switch m.focus {
		case modalFocusStatus:
			m.wf.Toggle()
			return m, nil
		case modalFocusCancel:
			return m.setFocus(modalFocusSave)
		case modalFocusSave:
			return m.setFocus(modalFocusCancel)
		}

	case "enter":
		switch m.focus {
		case modalFocusStatus:
			m.wf.Toggle()
			return m, nil
		case modalFocusCancel:
			return m.cancel()
		default:
			return m.submit()
		}
	}

	if m.focus > modalFocusEmail {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.focus == modalFocusName {
		m.wf.SetName(m.inputs[0].Value())
	} else {
		m.wf.SetEmail(m.inputs[1].Value())
	}
	return m, cmd
}

func (m EditModal) setFocus(f modalFocus) (EditModal, tea.Cmd) {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if modalFocus(i) == f {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m EditModal) cancel() (EditModal, tea.Cmd) {
	m.wf.Cancel()
	return m, emit(editDoneMsg{})
}

// submit validates the draft and fires the PATCH
func (m EditModal) submit() (EditModal, tea.Cmd) {
	id, patch, err := m.wf.BeginSubmit()
	if err != nil {
		return m, nil // validation message is on the workflow
	}

	ctx, wf := m.ctx, m.wf
	return m, func() tea.Msg {
		updated, err := wf.Send(ctx, id, patch)
		return employeeSavedMsg{employee: updated, err: err}
	}
}

// View renders the modal over a screen of width x height
func (m EditModal) View(width, height int) string {
	submitting := m.wf.State() == editor.StateSubmitting
	d := m.wf.Draft()

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText))
	b.WriteString(title.Render(fmt.Sprintf("Edit employee #%d", m.wf.Target().ID)))
	b.WriteString("\n\n")

	for i, label := range []string{"Name", "Email"} {
		b.WriteString(m.fieldLabel(label, modalFocus(i)))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.fieldLabel("Status", modalFocusStatus))
	b.WriteString("\n")
	b.WriteString(toggle(d.IsActive, m.focus == modalFocusStatus))
	b.WriteString("\n\n")

	if msg := m.wf.Err(); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n\n")
	}

	saveLabel := "Save"
	if submitting {
		saveLabel = "Saving..."
	}
	b.WriteString(lipgloss.JoinHorizontal(
		lipgloss.Center,
		button("Cancel", m.focus == modalFocusCancel, false, submitting),
		"   ",
		button(saveLabel, m.focus == modalFocusSave, true, submitting),
	))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab next · space toggle · ctrl+s save · esc cancel"))

	modal := lipgloss.NewStyle().
		Width(56).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentBright)).
		Background(lipgloss.Color(ColorCardBackground)).
		Padding(1, 2).
		Render(b.String())

	if width == 0 || height == 0 {
		return modal
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

func (m EditModal) fieldLabel(label string, f modalFocus) string {
	if m.focus == f {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).Render(label)
	}
	return labelStyle.Render(label)
}

// toggle renders the Active/Inactive switch
func toggle(on, focused bool) string {
	knob := "○━━"
	if on {
		knob = "━━●"
	}
	color := ColorDisabledText
	if on {
		color = ColorSuccess
	}
	sw := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(knob)
	if focused {
		sw = lipgloss.NewStyle().Underline(true).Render(sw)
	}
	return sw + " " + statusPill(on)
}
