package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ilhamrafi44/ayp/internal/editor"
	"github.com/ilhamrafi44/ayp/internal/employees"
	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/session"
)

const (
	disabledAction = "— disabled —"
	editAction     = "e edit"
)

// ListModel represents the employees screen
type ListModel struct {
	ctx  context.Context
	coll *employees.Collection
	wf   *editor.Workflow
	edit EditModal

	user  models.User
	token session.TokenInfo
	now   func() time.Time

	width  int
	height int

	selected    int
	currentPage int
	rowsPerPage int
	openID      int // employee to open once the list arrives
	notice      string
	shimmer     *ShimmerState
	spinner     spinner.Model
}

// NewListModel creates the employees screen for sess
func NewListModel(ctx context.Context, coll *employees.Collection, wf *editor.Workflow, sess session.Session, opts Options) ListModel {
	cfg := DefaultShimmerConfig()
	cfg.ReduceMotion = opts.ReduceMotion

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	info, _ := session.Inspect(sess.Token)

	return ListModel{
		ctx:         ctx,
		coll:        coll,
		wf:          wf,
		edit:        NewEditModal(ctx, wf, opts.ReduceMotion),
		user:        sess.User,
		token:       info,
		now:         time.Now,
		rowsPerPage: 10,
		openID:      opts.EditID,
		shimmer:     NewShimmerState(cfg),
		spinner:     sp,
	}
}

// Start begins loading the list
func (m ListModel) Start() (ListModel, tea.Cmd) {
	m.coll.Begin()
	m.selected = 0
	m.currentPage = 0
	m.notice = ""

	ctx, coll := m.ctx, m.coll
	fetch := func() tea.Msg {
		list, err := coll.Retrieve(ctx)
		return employeesLoadedMsg{employees: list, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, fetch, m.shimmer.Tick())
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		if m.edit.IsOpen() {
			return m, nil
		}
		return m, m.shimmer.Tick()

	case spinner.TickMsg:
		if m.coll.State() != employees.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// header(3) + column headers(2) + pagination(2) + help(2) + borders(4)
		m.rowsPerPage = max(3, m.height-13)
		m.currentPage = m.selected / m.rowsPerPage
		return m, nil

	case employeesLoadedMsg:
		err := m.coll.Complete(m.ctx, msg.employees, msg.err)
		if errors.Is(err, session.ErrSessionExpired) {
			return m, emit(sessionExpiredMsg{})
		}
		if err != nil || m.openID == 0 {
			return m, nil
		}
		return m.openPending()

	case employeeSavedMsg:
		err := m.wf.Finish(m.ctx, msg.employee, msg.err)
		if errors.Is(err, session.ErrSessionExpired) {
			return m, emit(sessionExpiredMsg{})
		}
		if err != nil {
			return m, nil // modal stays open with the message
		}
		saved := msg.employee
		return m, emit(editDoneMsg{employee: &saved})

	case editDoneMsg:
		m.shimmer.SetActive(true)
		m.shimmer.Reset()
		return m, m.shimmer.Tick()
	}

	if m.edit.IsOpen() {
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		return m.moveSelection(-1), nil

	case "down", "j":
		return m.moveSelection(1), nil

	case "left", "h":
		return m.turnPage(-1), nil

	case "right", "l":
		return m.turnPage(1), nil

	case "e", "enter":
		return m.openSelected()

	case "r":
		if m.coll.State() == employees.StateError {
			return m.Start()
		}

	case "L":
		if m.coll.State() != employees.StateLoading {
			return m, emit(logoutRequestMsg{})
		}
	}

	return m, nil
}

// moveSelection moves the cursor by delta rows, following page boundaries
func (m ListModel) moveSelection(delta int) ListModel {
	next := m.selected + delta
	if next < 0 || next >= m.coll.Len() {
		return m
	}
	m.selected = next
	m.currentPage = m.selected / m.rowsPerPage
	m.shimmer.Reset()
	return m
}

// turnPage moves by delta pages, keeping the selection on the visible page
func (m ListModel) turnPage(delta int) ListModel {
	next := m.currentPage + delta
	if next < 0 || next >= m.pageCount() {
		return m
	}
	m.currentPage = next

	first := m.currentPage * m.rowsPerPage
	last := min(first+m.rowsPerPage, m.coll.Len()) - 1
	if m.selected < first {
		m.selected = first
	}
	if m.selected > last {
		m.selected = last
	}
	m.shimmer.Reset()
	return m
}

func (m ListModel) pageCount() int {
	return (m.coll.Len() + m.rowsPerPage - 1) / m.rowsPerPage
}

// openSelected opens the modal for the selected row when it is editable
func (m ListModel) openSelected() (ListModel, tea.Cmd) {
	if m.coll.State() != employees.StateReady {
		return m, nil
	}
	e, ok := m.coll.At(m.selected)
	if !ok {
		return m, nil
	}
	if !employees.Editable(e) {
		m.notice = "Inactive employees cannot be edited."
		return m, nil
	}
	m.notice = ""
	m.shimmer.SetActive(false)

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Open(e)
	return m, cmd
}

// openPending opens the employee requested on the command line
func (m ListModel) openPending() (ListModel, tea.Cmd) {
	id := m.openID
	m.openID = 0

	for i, e := range m.coll.Employees() {
		if e.ID != id {
			continue
		}
		m.selected = i
		m.currentPage = i / m.rowsPerPage
		if !employees.Editable(e) {
			return m, emit(editDoneMsg{err: fmt.Errorf("employee #%d: %w", id, employees.ErrNotEditable)})
		}
		return m.openSelected()
	}
	return m, emit(editDoneMsg{err: fmt.Errorf("employee #%d not found", id)})
}

// View renders the screen
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.edit.IsOpen() {
		return m.edit.View(m.width, m.height)
	}

	var body string
	switch m.coll.State() {
	case employees.StateLoading, employees.StateIdle:
		body = m.spinner.View() + " " + labelStyle.Render("Loading employees...")
	case employees.StateError:
		body = errorStyle.Render(m.coll.Err()) + "\n\n" + helpStyle.Render("Press r to retry")
	case employees.StateExpired:
		body = errorStyle.Render(session.ErrSessionExpired.Error())
	default:
		if m.coll.Len() == 0 {
			body = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSecondaryText)).
				Italic(true).
				Render("No employees found.")
		} else {
			leftWidth := m.width * 62 / 100
			rightWidth := m.width - leftWidth - 1
			body = lipgloss.JoinHorizontal(
				lipgloss.Top,
				m.renderTable(leftWidth),
				" ",
				m.renderDetails(rightWidth),
			)
		}
	}

	parts := []string{m.renderHeader(), "", body}
	if m.notice != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(m.notice))
	}
	parts = append(parts, "", m.renderHelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the title and the signed-in user
func (m ListModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain)).
		Render("ayp · Employees")

	who := fmt.Sprintf("%s <%s>", m.user.Name, m.user.Email)
	if exp := m.token.ExpiryLabel(m.now()); exp != "" {
		who += " · " + exp
	}
	user := labelStyle.Render(who)

	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(user))
	return title + strings.Repeat(" ", gap) + user
}

// renderTable renders the current page of employees
func (m ListModel) renderTable(width int) string {
	var b strings.Builder

	avail := width - 4
	idWidth := 6
	statusWidth := 10
	actionWidth := 14
	rest := max(20, avail-idWidth-statusWidth-actionWidth-4)
	nameWidth := rest * 45 / 100
	emailWidth := rest - nameWidth

	columnHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Padding(0, 1)
	b.WriteString(columnHeaderStyle.Render(strings.Join([]string{
		pad("ID", idWidth),
		pad("NAME", nameWidth),
		pad("EMAIL", emailWidth),
		pad("STATUS", statusWidth),
		pad("ACTIONS", actionWidth),
	}, " ")))
	b.WriteString("\n\n")

	list := m.coll.Employees()
	start := m.currentPage * m.rowsPerPage
	end := min(start+m.rowsPerPage, len(list))

	for i := start; i < end; i++ {
		e := list[i]
		selected := i == m.selected

		name := truncate(e.Name, nameWidth-1)
		if selected {
			name = m.shimmer.Render(e.Name, nameWidth-1)
		}

		action := mutedStyle.Render(disabledAction)
		if employees.Editable(e) {
			action = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(editAction)
		}

		row := strings.Join([]string{
			pad(fmt.Sprintf("#%d", e.ID), idWidth),
			pad(name, nameWidth),
			pad(truncate(e.Email, emailWidth-1), emailWidth),
			pad(statusPill(e.IsActive), statusWidth),
			pad(action, actionWidth),
		}, " ")

		if selected {
			b.WriteString(lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1).
				Render(row))
		} else {
			b.WriteString(" " + row)
		}
		b.WriteString("\n")
	}

	if m.rowsPerPage < len(list) {
		pageInfo := fmt.Sprintf("Page %d/%d (%d employees)", m.currentPage+1, m.pageCount(), len(list))
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1).
			Render(pageInfo))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

// renderDetails renders the selected employee
func (m ListModel) renderDetails(width int) string {
	var b strings.Builder

	e, ok := m.coll.At(m.selected)
	if !ok {
		b.WriteString(labelStyle.Italic(true).Render("Select an employee to view details"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Width(width - 2).
			Render(e.Name))
		b.WriteString("\n\n")

		b.WriteString(labelStyle.Render("ID: "))
		b.WriteString(fmt.Sprintf("%d\n", e.ID))
		b.WriteString(labelStyle.Render("Email: "))
		b.WriteString(e.Email + "\n")
		b.WriteString(labelStyle.Render("Status: "))
		b.WriteString(statusPill(e.IsActive) + "\n\n")

		if employees.Editable(e) {
			b.WriteString(helpStyle.Render("Press e to edit"))
		} else {
			b.WriteString(mutedStyle.Render("Editing is disabled for inactive employees"))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

// renderHelpBar renders the help bar with hotkey hints
func (m ListModel) renderHelpBar() string {
	text := "↑/↓ nav · ←/→ page · e edit · L logout · q/esc quit"
	if m.coll.State() == employees.StateError {
		text = "r retry · L logout · q/esc quit"
	}
	return helpStyle.Align(lipgloss.Center).Width(m.width).Render(text)
}

// pad right-pads s to width visible cells
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
