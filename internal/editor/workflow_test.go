package editor

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilhamrafi44/ayp/internal/api"
	"github.com/ilhamrafi44/ayp/internal/apitest"
	"github.com/ilhamrafi44/ayp/internal/employees"
	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/session"
)

type fixture struct {
	srv   *apitest.Server
	store *session.MemoryStore
	coll  *employees.Collection
	wf    *Workflow
}

func setup(t *testing.T) fixture {
	t.Helper()
	srv := apitest.New(t)
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), apitest.DemoToken, apitest.DemoUser))

	client := api.New(srv.URL, 5*time.Second, store, zerolog.Nop())
	coll := employees.New(client, store, zerolog.Nop())
	require.NoError(t, coll.Fetch(context.Background()))

	return fixture{
		srv:   srv,
		store: store,
		coll:  coll,
		wf:    New(client, coll, store, zerolog.Nop()),
	}
}

func (f fixture) employee(t *testing.T, id int) models.Employee {
	t.Helper()
	e, ok := f.coll.Find(id)
	require.True(t, ok)
	return e
}

func TestOpenPrefills(t *testing.T) {
	f := setup(t)
	assert.Equal(t, StateClosed, f.wf.State())

	f.wf.Open(f.employee(t, 1))
	assert.Equal(t, StatePrefilled, f.wf.State())
	assert.Equal(t, Draft{Name: "Ilham", Email: apitest.DemoEmail, IsActive: true}, f.wf.Draft())
}

func TestSubmit_CommitsServerRecordWithoutRefetch(t *testing.T) {
	f := setup(t)
	calls := f.srv.ListCalls()

	f.wf.Open(f.employee(t, 1))
	f.wf.SetName("New Name")
	f.wf.SetEmail("n@x.com")

	updated, err := f.wf.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Employee{ID: 1, Name: "New Name", Email: "n@x.com", IsActive: true}, updated)

	assert.Equal(t, StateClosed, f.wf.State())
	assert.Equal(t, updated, f.employee(t, 1))
	assert.Equal(t, 2, f.coll.Len())
	assert.Equal(t, calls, f.srv.ListCalls(), "edits never refetch")
}

func TestSubmit_ToggleDeactivates(t *testing.T) {
	f := setup(t)

	f.wf.Open(f.employee(t, 1))
	f.wf.Toggle()
	_, err := f.wf.Submit(context.Background())
	require.NoError(t, err)

	e := f.employee(t, 1)
	assert.False(t, e.IsActive)
	assert.False(t, employees.Editable(e))
}

func TestSubmit_ValidationStaysLocal(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(w *Workflow)
		message string
	}{
		{"blank name", func(w *Workflow) { w.SetName("   ") }, "name is required"},
		{"bad email", func(w *Workflow) { w.SetEmail("not-an-email") }, "email must be a valid email"},
		{"both", func(w *Workflow) { w.SetName(""); w.SetEmail("") }, "name is required; email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.wf.Open(f.employee(t, 1))
			tt.edit(f.wf)

			_, err := f.wf.Submit(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, tt.message, f.wf.Err())
			assert.Equal(t, StatePrefilled, f.wf.State())
			assert.Zero(t, f.srv.PatchCalls())
		})
	}
}

func TestSubmit_ServerRejectionKeepsDraft(t *testing.T) {
	f := setup(t)
	before := f.coll.Employees()

	f.wf.Open(f.employee(t, 1))
	f.wf.SetEmail("sari@example.com")

	_, err := f.wf.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatePrefilled, f.wf.State())
	assert.Equal(t, "The email has already been taken.", f.wf.Err())
	assert.Equal(t, "sari@example.com", f.wf.Draft().Email)
	assert.Equal(t, before, f.coll.Employees(), "failed edits never merge")

	// retry after fixing the field clears the error
	f.wf.SetEmail("ilham2@example.com")
	_, err = f.wf.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.wf.Err())
}

func TestSubmit_UnauthenticatedClearsSession(t *testing.T) {
	f := setup(t)
	f.srv.Revoke()

	f.wf.Open(f.employee(t, 1))
	_, err := f.wf.Submit(context.Background())
	require.ErrorIs(t, err, session.ErrSessionExpired)
	assert.Equal(t, StateClosed, f.wf.State())

	sess, lerr := f.store.Load(context.Background())
	require.NoError(t, lerr)
	assert.Nil(t, sess)
}

func TestCancelDiscards(t *testing.T) {
	f := setup(t)
	before := f.coll.Employees()

	f.wf.Open(f.employee(t, 1))
	f.wf.SetName("Never saved")
	f.wf.Cancel()

	assert.Equal(t, StateClosed, f.wf.State())
	assert.Equal(t, Draft{}, f.wf.Draft())
	assert.Equal(t, before, f.coll.Employees())
	assert.Zero(t, f.srv.PatchCalls())
}

func TestOpenSecondDiscardsFirst(t *testing.T) {
	f := setup(t)
	f.srv.SetEmployees([]models.Employee{
		{ID: 1, Name: "Ilham", Email: apitest.DemoEmail, IsActive: true},
		{ID: 3, Name: "Citra", Email: "citra@example.com", IsActive: true},
	})
	require.NoError(t, f.coll.Fetch(context.Background()))

	f.wf.Open(f.employee(t, 1))
	f.wf.SetName("draft one")
	f.wf.Open(f.employee(t, 3))

	assert.Equal(t, "Citra", f.wf.Draft().Name)
	assert.Equal(t, 3, f.wf.Target().ID)
}

func TestBeginSubmitGuards(t *testing.T) {
	f := setup(t)

	_, _, err := f.wf.BeginSubmit()
	assert.ErrorIs(t, err, ErrNotOpen)

	f.wf.Open(f.employee(t, 1))
	_, _, err = f.wf.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, StateSubmitting, f.wf.State())

	_, _, err = f.wf.BeginSubmit()
	assert.ErrorIs(t, err, ErrBusy)

	// cancel is ignored while the request is in flight
	f.wf.Cancel()
	assert.Equal(t, StateSubmitting, f.wf.State())
}

func TestBeginSubmitTrims(t *testing.T) {
	f := setup(t)
	f.wf.Open(f.employee(t, 1))
	f.wf.SetName("  Ilham R  ")

	id, patch, err := f.wf.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, api.EmployeePatch{Name: "Ilham R", Email: apitest.DemoEmail, IsActive: true}, patch)
}
