package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilhamrafi44/ayp/internal/apitest"
	"github.com/ilhamrafi44/ayp/internal/models"
	"github.com/ilhamrafi44/ayp/internal/session"
)

func newTestClient(baseURL string, store session.Store) *Client {
	return New(baseURL, 5*time.Second, store, zerolog.Nop())
}

func signedIn(t *testing.T) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), apitest.DemoToken, apitest.DemoUser))
	return store
}

// rawServer answers every request with status and body
func rawServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDecode_EnvelopeAndBareAreEquivalent(t *testing.T) {
	var enveloped, bare models.Employee
	require.NoError(t, decode(200, []byte(`{"data":{"id":1,"name":"Ilham","email":"ilham@example.com","isActive":true}}`), &enveloped))
	require.NoError(t, decode(200, []byte(`{"id":1,"name":"Ilham","email":"ilham@example.com","isActive":true}`), &bare))

	assert.Equal(t, bare, enveloped)
	assert.Equal(t, models.Employee{ID: 1, Name: "Ilham", Email: "ilham@example.com", IsActive: true}, bare)
}

func TestDecode_NullDataFallsBackToPayload(t *testing.T) {
	var out map[string]any
	require.NoError(t, decode(200, []byte(`{"data":null,"ok":true}`), &out))
	assert.Equal(t, true, out["ok"])
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		message string
	}{
		{"message from payload", 401, `{"message":"Invalid credentials"}`, KindUnauthenticated, "Invalid credentials"},
		{"validation message", 422, `{"message":"The email has already been taken.","errors":{}}`, KindAPI, "The email has already been taken."},
		{"unparsable error body", 500, `<html>oops</html>`, KindAPI, "Request failed with status 500"},
		{"empty error body", 503, ``, KindAPI, "Request failed with status 503"},
		{"error without message", 404, `{"error":"nope"}`, KindAPI, "Request failed with status 404"},
		{"401 without message", 401, ``, KindUnauthenticated, "Request failed with status 401"},
		{"garbage success body", 200, `not json at all`, KindMalformed, "not json at all"},
		{"empty success body", 200, ``, KindMalformed, "Unexpected response from server"},
		{"wrong shape", 200, `{"data":"a string"}`, KindMalformed, "Unexpected response from server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out models.Employee
			err := decode(tt.status, []byte(tt.body), &out)
			require.Error(t, err)

			var ae *Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.kind, ae.Kind)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, tt.kind == KindUnauthenticated, IsUnauthenticated(err))
		})
	}
}

func TestDecode_EmptyBodyWithoutTarget(t *testing.T) {
	assert.NoError(t, decode(204, nil, nil))
}

func TestDo_AttachesBearerWhenStored(t *testing.T) {
	srv := apitest.New(t)
	client := newTestClient(srv.URL, signedIn(t))

	list, err := client.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "Bearer "+apitest.DemoToken, srv.LastAuthorization())
}

func TestDo_NoTokenStillSends(t *testing.T) {
	srv := apitest.New(t)
	client := newTestClient(srv.URL, session.NewMemoryStore())

	_, err := client.ListEmployees(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthenticated(err))
	assert.Equal(t, "Unauthenticated.", err.Error())

	// the request reached the service without a credential
	assert.Equal(t, 1, srv.ListCalls())
	assert.Equal(t, "", srv.LastAuthorization())
}

func TestDo_Headers(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL+"/", signedIn(t))
	require.NoError(t, client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/ping", Body: map[string]string{"a": "b"}, NoAuth: true}, nil))

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.NotEmpty(t, got.Get("X-Request-Id"))
	assert.Empty(t, got.Get("Authorization"), "NoAuth must not attach the token")
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := newTestClient(url, nil)
	_, err := client.ListEmployees(context.Background())
	require.Error(t, err)

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindTransport, ae.Kind)
	assert.NotEmpty(t, ae.Message)
}

func TestLogin(t *testing.T) {
	srv := apitest.New(t)
	client := newTestClient(srv.URL, nil)

	t.Run("enveloped", func(t *testing.T) {
		res, err := client.Login(context.Background(), apitest.DemoEmail, apitest.DemoPassword)
		require.NoError(t, err)
		assert.Equal(t, apitest.DemoToken, res.Token)
		assert.Equal(t, apitest.DemoUser, res.User)
	})

	t.Run("bare", func(t *testing.T) {
		srv.Bare(true)
		defer srv.Bare(false)

		res, err := client.Login(context.Background(), apitest.DemoEmail, apitest.DemoPassword)
		require.NoError(t, err)
		assert.Equal(t, apitest.DemoToken, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.Login(context.Background(), apitest.DemoEmail, "nope")
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", err.Error())
	})
}

func TestListEmployees_EmptyShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"enveloped empty", `{"data":[]}`},
		{"bare empty", `[]`},
		{"enveloped null", `{"data":null}`},
		{"bare null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := rawServer(t, 200, tt.body)
			list, err := newTestClient(srv.URL, signedIn(t)).ListEmployees(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, list)
			assert.Empty(t, list)
		})
	}
}

func TestListEmployees_ObjectWithoutData(t *testing.T) {
	srv := rawServer(t, 200, `{"items":[]}`)
	_, err := newTestClient(srv.URL, signedIn(t)).ListEmployees(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Unexpected response from server", err.Error())
}

func TestListEmployees_SeededEmptyServer(t *testing.T) {
	srv := apitest.New(t)
	srv.SetEmployees([]models.Employee{})

	list, err := newTestClient(srv.URL, signedIn(t)).ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLogin_MissingToken(t *testing.T) {
	srv := rawServer(t, 200, `{"data":{"user":{"id":1}}}`)
	client := newTestClient(srv.URL, nil)

	_, err := client.Login(context.Background(), "a@b.c", "x")
	require.Error(t, err)
	assert.Equal(t, "Unexpected response from server", err.Error())
}

func TestUpdateEmployee(t *testing.T) {
	srv := apitest.New(t)
	client := newTestClient(srv.URL, signedIn(t))

	emp, err := client.UpdateEmployee(context.Background(), 1, EmployeePatch{Name: "New Name", Email: "n@x.com", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, models.Employee{ID: 1, Name: "New Name", Email: "n@x.com", IsActive: true}, emp)

	_, err = client.UpdateEmployee(context.Background(), 1, EmployeePatch{Name: "", Email: "n@x.com"})
	require.Error(t, err)
	assert.Equal(t, "The name field is required.", err.Error())
	assert.False(t, IsUnauthenticated(err))
}

func TestUpdateEmployee_EmptyRecord(t *testing.T) {
	srv := rawServer(t, 200, `{}`)
	client := newTestClient(srv.URL, nil)

	_, err := client.UpdateEmployee(context.Background(), 1, EmployeePatch{Name: "x"})
	require.Error(t, err)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindMalformed, ae.Kind)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil, "fallback"))
	assert.Equal(t, "fallback", Message(&Error{}, "fallback"))
	assert.Equal(t, "boom", Message(&Error{Message: "boom"}, "fallback"))
	assert.Equal(t, "unauthenticated", KindUnauthenticated.String())
}
