package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectify_backend/internals/console/client"
)

type dept struct {
	ID   uuid.UUID `json:"department_id"`
	Name string    `json:"department_name"`
}

func server(t *testing.T, h http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/", time.Second)
}

func TestListSendsTokenAndPerPageAll(t *testing.T) {
	id := uuid.New()
	c := server(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/a/departments", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("per_page"))
		assert.Equal(t, "ce", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"message":"ok","data":[{"department_id":"`+id.String()+`","department_name":"Computer"}],"pagination":{"page":1}}`)
	})
	c.Token = "tok"

	rows, err := client.NewResource[dept](c, "/api/a/departments/").List(context.Background(), map[string]string{"q": "ce"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dept{ID: id, Name: "Computer"}, rows[0])
}

func TestCreateSendsJSONBody(t *testing.T) {
	c := server(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"department_name":"Civil"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"department_name":"Civil"}}`)
	})
	got, err := client.NewResource[dept](c, "/api/a/departments").Create(context.Background(), map[string]string{"department_name": "Civil"})
	require.NoError(t, err)
	assert.Equal(t, "Civil", got.Name)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	c := server(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"success":false,"message":"Validasi gagal","error_code":"VALIDATION_ERROR","errors":{"faculty_email":["email"],"faculty_name":["required"]}}`)
	})
	err := c.Do(context.Background(), "POST", "/api/a/faculties", nil, map[string]string{}, nil)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Equal(t, "Validasi gagal (faculty_email: email; faculty_name: required)", client.Message(err))
}

func TestUnreadableErrorFallsBack(t *testing.T) {
	c := server(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})
	err := c.Do(context.Background(), "GET", "/api/a/semesters", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, client.FallbackMessage, client.Message(err))

	blank := server(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"success":false,"message":"  "}`)
	})
	err = blank.Do(context.Background(), "GET", "/x", nil, nil, nil)
	assert.Equal(t, client.FallbackMessage, client.Message(err))
}

func TestNetworkErrorKeepsItsText(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := client.New(url, time.Second)
	err := c.Do(context.Background(), "GET", "/api/a/faculties", nil, nil, nil)
	require.Error(t, err)
	msg := client.Message(err)
	assert.NotEqual(t, client.FallbackMessage, msg)
	assert.Contains(t, msg, "/api/a/faculties")
	assert.Equal(t, err.Error(), msg)
	assert.Empty(t, client.Message(nil))
}

func TestPlainErrorMessage(t *testing.T) {
	assert.Equal(t, "dial tcp 127.0.0.1:3000: connection refused",
		client.Message(errors.New("dial tcp 127.0.0.1:3000: connection refused")))
	assert.Equal(t, client.FallbackMessage, client.Message(errors.New("   ")))
}

func TestLoginStoresToken(t *testing.T) {
	c := server(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			_, _ = io.WriteString(w, `{"success":true,"data":{"access_token":"abc","expires_at":"2025-01-01T00:00:00Z","user":{"email":"root@reflectify.test","role":"super_admin"}}}`)
		case "/api/auth/logout":
			assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `{"success":true,"data":null}`)
		}
	})
	res, err := c.Login(context.Background(), "root@reflectify.test", "password123")
	require.NoError(t, err)
	assert.Equal(t, "abc", c.Token)
	assert.Equal(t, "super_admin", res.User.Role)

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token)
}
