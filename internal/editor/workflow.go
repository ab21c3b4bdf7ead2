// Package editor implements the short-lived edit session bound to one
// employee: prefill, validate, submit the patch, report the result
package editor

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ilhamrafi44/ayp/internal/api"
	"github.com/ilhamrafi44/ayp/internal/employees"
	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/session"
)

const updateFailed = "Failed to update employee"

// State of the workflow
type State int

const (
	StateClosed State = iota
	StatePrefilled
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StatePrefilled:
		return "prefilled"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

var (
	// ErrNotOpen is returned when submitting without an open draft
	ErrNotOpen = errors.New("no employee is being edited")
	// ErrBusy is returned when a submission is already in flight
	ErrBusy = errors.New("a save is already in progress")
)

// Updater patches an employee. *api.Client satisfies it
type Updater interface {
	UpdateEmployee(ctx context.Context, id int, patch api.EmployeePatch) (models.Employee, error)
}

// Draft is the local, uncommitted copy of the editable fields
type Draft struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	IsActive bool
}

// Workflow holds at most one draft. Opening a record discards whatever
// draft was open before
type Workflow struct {
	api      Updater
	coll     *employees.Collection
	store    session.Store
	validate *validator.Validate
	log      zerolog.Logger

	state  State
	target models.Employee
	draft  Draft
	err    string
}

// New returns a closed workflow committing successful edits into coll
func New(up Updater, coll *employees.Collection, store session.Store, log zerolog.Logger) *Workflow {
	return &Workflow{
		api:      up,
		coll:     coll,
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

// Open prefills a draft from e
func (w *Workflow) Open(e models.Employee) {
	w.target = e
	w.draft = Draft{Name: e.Name, Email: e.Email, IsActive: e.IsActive}
	w.err = ""
	w.state = StatePrefilled
}

// Cancel discards the draft. It has no effect while a save is in flight
func (w *Workflow) Cancel() {
	if w.state == StateSubmitting {
		return
	}
	w.close()
}

func (w *Workflow) close() {
	w.state = StateClosed
	w.target = models.Employee{}
	w.draft = Draft{}
	w.err = ""
}

// SetName changes the draft name
func (w *Workflow) SetName(name string) { w.draft.Name = name }

// SetEmail changes the draft e-mail
func (w *Workflow) SetEmail(email string) { w.draft.Email = email }

// SetActive sets the draft activation flag
func (w *Workflow) SetActive(active bool) { w.draft.IsActive = active }

// Toggle flips the draft activation flag
func (w *Workflow) Toggle() { w.draft.IsActive = !w.draft.IsActive }

// Validate checks the draft the way the form controls would. The service
// still has the final word
func (w *Workflow) Validate() error {
	d := w.trimmed()
	if err := w.validate.Struct(d); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func (w *Workflow) trimmed() Draft {
	return Draft{
		Name:     strings.TrimSpace(w.draft.Name),
		Email:    strings.TrimSpace(w.draft.Email),
		IsActive: w.draft.IsActive,
	}
}

// fieldError converts a single validation failure into a form message
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	default:
		return field + " is invalid"
	}
}

// Submit validates, sends the patch and applies the outcome
func (w *Workflow) Submit(ctx context.Context) (models.Employee, error) {
	id, patch, err := w.BeginSubmit()
	if err != nil {
		return models.Employee{}, err
	}
	updated, err := w.Send(ctx, id, patch)
	return updated, w.Finish(ctx, updated, err)
}

// BeginSubmit validates the draft and moves to the submitting state. A
// validation failure keeps the form open with the message set and never
// reaches the network
func (w *Workflow) BeginSubmit() (int, api.EmployeePatch, error) {
	switch w.state {
	case StateClosed:
		return 0, api.EmployeePatch{}, ErrNotOpen
	case StateSubmitting:
		return 0, api.EmployeePatch{}, ErrBusy
	}

	if err := w.Validate(); err != nil {
		w.err = err.Error()
		return 0, api.EmployeePatch{}, err
	}

	d := w.trimmed()
	w.err = ""
	w.state = StateSubmitting
	return w.target.ID, api.EmployeePatch{Name: d.Name, Email: d.Email, IsActive: d.IsActive}, nil
}

// Send performs the request only and does not touch the workflow
func (w *Workflow) Send(ctx context.Context, id int, patch api.EmployeePatch) (models.Employee, error) {
	return w.api.UpdateEmployee(ctx, id, patch)
}

// Finish applies the outcome of Send. On success the collection receives
// the service's record and the workflow closes. On failure the draft stays
// editable with the service's message. An authentication failure clears the
// session and returns session.ErrSessionExpired
func (w *Workflow) Finish(ctx context.Context, updated models.Employee, err error) error {
	if err != nil {
		if api.IsUnauthenticated(err) {
			if cerr := w.store.Clear(ctx); cerr != nil {
				w.log.Error().Err(cerr).Msg("failed to clear session")
			}
			w.close()
			w.log.Info().Msg("session rejected while saving employee")
			return session.ErrSessionExpired
		}
		w.state = StatePrefilled
		w.err = api.Message(err, updateFailed)
		w.log.Warn().Err(err).Int("id", w.target.ID).Msg("failed to update employee")
		return err
	}

	w.coll.ApplyUpdate(updated)
	w.log.Info().Int("id", updated.ID).Bool("active", updated.IsActive).Msg("employee updated")
	w.close()
	return nil
}

// State returns the current state
func (w *Workflow) State() State { return w.state }

// IsOpen reports whether a draft exists
func (w *Workflow) IsOpen() bool { return w.state != StateClosed }

// Draft returns the current draft
func (w *Workflow) Draft() Draft { return w.draft }

// Target returns the employee the draft was prefilled from
func (w *Workflow) Target() models.Employee { return w.target }

// Err returns the message shown under the form, "" if none
func (w *Workflow) Err() string { return w.err }
