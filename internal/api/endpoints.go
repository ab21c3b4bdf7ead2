package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ilhamrafi44/ayp/internal/models"
)

// AuthResult is the login response
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// EmployeePatch carries the editable fields of an employee
type EmployeePatch struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token. The call is never authenticated
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var res AuthResult
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Email: email, Password: password},
		NoAuth: true,
	}, &res)
	if err != nil {
		return AuthResult{}, err
	}
	if res.Token == "" {
		return AuthResult{}, &Error{Kind: KindMalformed, Status: http.StatusOK, Message: unexpectedResponse}
	}
	return res, nil
}

// ListEmployees returns the employees in the order the service sent them.
// {"data": null} reads as an empty list
func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/employees"}, &raw); err != nil {
		return nil, err
	}

	list := []models.Employee{}
	if nullData(raw) {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, &Error{Kind: KindMalformed, Status: http.StatusOK, Message: unexpectedResponse, Body: raw, Err: err}
	}
	if list == nil {
		list = []models.Employee{}
	}
	return list, nil
}

// nullData reports whether payload is an envelope whose "data" is null
func nullData(payload json.RawMessage) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return false
	}
	data, ok := obj["data"]
	return ok && bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// UpdateEmployee patches one employee and returns the record as the
// service now has it
func (c *Client) UpdateEmployee(ctx context.Context, id int, patch EmployeePatch) (models.Employee, error) {
	var emp models.Employee
	err := c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/employees/%d", id),
		Body:   patch,
	}, &emp)
	if err != nil {
		return models.Employee{}, err
	}
	if emp.ID == 0 {
		return models.Employee{}, &Error{Kind: KindMalformed, Status: http.StatusOK, Message: unexpectedResponse}
	}
	return emp, nil
}
