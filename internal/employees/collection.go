// Package employees keeps the client's copy of the employee list in sync
// with the service
//
// The list is fetched once and afterwards only changed through
// ApplyUpdate with a record the service returned from a successful edit.
// Changes made to the service through any other channel stay invisible
// until the next fetch
package employees

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ilhamrafi44/ayp/internal/api"
	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/session"
)

// MaxEmployees is the documented upper bound of the list
const MaxEmployees = 1000

const fetchFailed = "Failed to load employees"

// State of the collection
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateExpired:
		return "expired"
	}
	return "unknown"
}

// Source lists employees. *api.Client satisfies it
type Source interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
}

// Collection holds the ordered list. It is driven from one goroutine at a
// time and is not safe for concurrent use
type Collection struct {
	src   Source
	store session.Store
	log   zerolog.Logger

	state State
	list  []models.Employee
	err   string
}

// New returns an idle collection
func New(src Source, store session.Store, log zerolog.Logger) *Collection {
	return &Collection{src: src, store: store, log: log}
}

// Fetch loads the list. It returns session.ErrSessionExpired after clearing
// the store when the service rejected the credential; any other failure is
// returned as is and kept for inline display
func (c *Collection) Fetch(ctx context.Context) error {
	c.Begin()
	list, err := c.Retrieve(ctx)
	return c.Complete(ctx, list, err)
}

// Begin moves to the loading state and drops the held list
func (c *Collection) Begin() {
	c.state = StateLoading
	c.list = nil
	c.err = ""
}

// Retrieve performs the request only. It does not touch the collection, so
// it can run off the UI goroutine
func (c *Collection) Retrieve(ctx context.Context) ([]models.Employee, error) {
	return c.src.ListEmployees(ctx)
}

// Complete applies the outcome of Retrieve
func (c *Collection) Complete(ctx context.Context, list []models.Employee, err error) error {
	if err != nil {
		c.list = nil
		if api.IsUnauthenticated(err) {
			c.state = StateExpired
			if cerr := c.store.Clear(ctx); cerr != nil {
				c.log.Error().Err(cerr).Msg("failed to clear session")
			}
			c.log.Info().Msg("session rejected while loading employees")
			return session.ErrSessionExpired
		}
		c.state = StateError
		c.err = api.Message(err, fetchFailed)
		c.log.Warn().Err(err).Msg("failed to load employees")
		return err
	}

	if len(list) > MaxEmployees {
		c.log.Warn().Int("count", len(list)).Int("max", MaxEmployees).Msg("employee list larger than expected")
	}
	c.list = append([]models.Employee(nil), list...)
	c.state = StateReady
	c.log.Debug().Int("count", len(c.list)).Msg("employees loaded")
	return nil
}

// ApplyUpdate replaces the employee with updated.ID in place and reports
// whether one was found. The list is left untouched otherwise
func (c *Collection) ApplyUpdate(updated models.Employee) bool {
	for i := range c.list {
		if c.list[i].ID == updated.ID {
			c.list[i] = updated
			return true
		}
	}
	c.log.Warn().Int("id", updated.ID).Msg("updated employee not in list")
	return false
}

// Employees returns a copy of the list in server order
func (c *Collection) Employees() []models.Employee {
	return append([]models.Employee(nil), c.list...)
}

// At returns the employee at position i
func (c *Collection) At(i int) (models.Employee, bool) {
	if i < 0 || i >= len(c.list) {
		return models.Employee{}, false
	}
	return c.list[i], true
}

// Find returns the employee with id
func (c *Collection) Find(id int) (models.Employee, bool) {
	for _, e := range c.list {
		if e.ID == id {
			return e, true
		}
	}
	return models.Employee{}, false
}

// Len returns the number of held employees
func (c *Collection) Len() int { return len(c.list) }

// State returns the current state
func (c *Collection) State() State { return c.state }

// Err returns the inline error message of the last fetch, "" if none
func (c *Collection) Err() string { return c.err }

// ErrNotEditable is returned when an edit is attempted on an inactive employee
var ErrNotEditable = errors.New("employee is inactive; editing is disabled")

// Editable reports whether e exposes the edit action. Inactive employees
// are shown with a disabled indicator instead
func Editable(e models.Employee) bool {
	return e.IsActive
}
