// Package apitest runs an in-process stand-in for the employee service
// so client code can be tested against real HTTP
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ilhamrafi44/ayp/internal/models"
)

const (
	DemoEmail    = "ilham@example.com"
	DemoPassword = "password123"
	DemoToken    = "abc123"
)

// DemoUser is the seeded account accepted by /auth/login
var DemoUser = models.User{ID: 1, Name: "Ilham", Email: DemoEmail}

// Server is a fake of the remote service. Fields may be changed between
// calls through the setter methods
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	employees  []models.Employee
	bare       bool
	listStatus int
	listBody   string
	patchBody  string
	revoked    bool

	listCalls  int
	patchCalls int
	lastAuth   string
}

// New starts a server seeded with two employees. It is closed on cleanup
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		employees: []models.Employee{
			{ID: 1, Name: "Ilham", Email: DemoEmail, IsActive: true},
			{ID: 2, Name: "Sari", Email: "sari@example.com", IsActive: false},
		},
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.POST("/auth/login", s.login)
	e.GET("/employees", s.list)
	e.PATCH("/employees/:id", s.patch)

	s.Server = httptest.NewServer(e)
	t.Cleanup(s.Close)
	return s
}

// SetEmployees replaces the seeded employees. An empty list is served as []
func (s *Server) SetEmployees(list []models.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append(make([]models.Employee, 0, len(list)), list...)
}

// Bare makes successful responses skip the {"data": ...} envelope
func (s *Server) Bare(bare bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bare = bare
}

// FailList makes GET /employees answer status with a raw body
func (s *Server) FailList(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listStatus = status
	s.listBody = body
}

// RawPatch makes PATCH answer 200 with a raw body
func (s *Server) RawPatch(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patchBody = body
}

// Revoke makes every authenticated call answer 401 "Unauthenticated."
func (s *Server) Revoke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = true
}

// ListCalls returns how many times GET /employees was hit
func (s *Server) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// PatchCalls returns how many times PATCH /employees/:id was hit
func (s *Server) PatchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patchCalls
}

// LastAuthorization returns the Authorization header of the last
// authenticated call, "" when none was sent
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// Employees returns the server-side copy of the employees
func (s *Server) Employees() []models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Employee(nil), s.employees...)
}

func (s *Server) reply(c echo.Context, v any) error {
	if s.bare {
		return c.JSON(http.StatusOK, v)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": v})
}

func (s *Server) authorized(c echo.Context) bool {
	s.lastAuth = c.Request().Header.Get("Authorization")
	return !s.revoked && s.lastAuth == "Bearer "+DemoToken
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
}

func (s *Server) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !strings.EqualFold(req.Email, DemoEmail) || req.Password != DemoPassword {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	}
	return s.reply(c, map[string]any{"user": DemoUser, "token": DemoToken})
}

func (s *Server) list(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listCalls++
	if s.listStatus != 0 {
		return c.Blob(s.listStatus, echo.MIMEApplicationJSON, []byte(s.listBody))
	}
	if !s.authorized(c) {
		return unauthenticated(c)
	}
	return s.reply(c, s.employees)
}

func (s *Server) patch(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		IsActive bool   `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.patchCalls++
	if !s.authorized(c) {
		return unauthenticated(c)
	}
	if s.patchBody != "" {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(s.patchBody))
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"message": "The name field is required."})
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Employee not found."})
	}
	for i := range s.employees {
		if s.employees[i].ID != id {
			continue
		}
		for j := range s.employees {
			if j != i && strings.EqualFold(s.employees[j].Email, req.Email) {
				return c.JSON(http.StatusUnprocessableEntity, map[string]string{"message": "The email has already been taken."})
			}
		}
		s.employees[i].Name = req.Name
		s.employees[i].Email = req.Email
		s.employees[i].IsActive = req.IsActive
		return s.reply(c, s.employees[i])
	}
	return c.JSON(http.StatusNotFound, map[string]string{"message": "Employee not found."})
}
