package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	database "reflectify_backend/internals/databases"
	authModel "reflectify_backend/internals/features/users/auth/model"
	formService "reflectify_backend/internals/features/feedback/forms/service"
	authService "reflectify_backend/internals/features/users/auth/service"
	routes "reflectify_backend/internals/route"
	"reflectify_backend/internals/services/mail"
)

type envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	ErrorCode  string              `json:"error_code"`
	Errors     map[string][]string `json:"errors"`
	Data       json.RawMessage     `json:"data"`
	Pagination struct {
		Page       int   `json:"page"`
		PerPage    int   `json:"per_page"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
		Count      int   `json:"count"`
	} `json:"pagination"`
}

type testAPI struct {
	t      *testing.T
	App    *fiber.App
	Stores *database.Stores
	Mailer *mail.ConsoleService
	Forms  *formService.FormService
	Token  string
	dev    bool
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	api := &testAPI{t: t, Stores: database.NewMemoryStores(), Mailer: mail.NewConsoleServiceMock()}

	tokens := authService.NewTokenService("test-secret", time.Hour)
	blacklist := authService.NewBlacklist(api.Stores.Blacklist, tokens)
	api.Forms = formService.NewFormService(api.Stores.Forms, api.Stores.OverrideStudents, api.Mailer, "Reflectify", "http://front.test")

	api.App = fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	routes.SetupRoutes(api.App, routes.Dependencies{
		Stores:        api.Stores,
		Tokens:        tokens,
		Blacklist:     blacklist,
		Forms:         api.Forms,
		IsDevelopment: func() bool { return api.dev },
		Environment:   "test",
	})

	_, err := authService.CreateAdmin(context.Background(), api.Stores.Admins, "root@reflectify.test", "Root", "password123", authModel.RoleSuperAdmin)
	require.NoError(t, err)
	api.Token = api.login("root@reflectify.test", "password123")
	return api
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	status, env := a.call("POST", "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, fiber.StatusOK, status, env.Message)
	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(a.t, sonic.Unmarshal(env.Data, &out))
	return out.AccessToken
}

// call mengirim request JSON dan decode envelope.
func (a *testAPI) call(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := a.App.Test(req, -1)
	require.NoError(a.t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(a.t, err)
	var env envelope
	if len(raw) > 0 {
		_ = sonic.Unmarshal(raw, &env)
	}
	return res.StatusCode, env
}

// admin: call dengan token super admin.
func (a *testAPI) admin(method, path string, body any) (int, envelope) {
	a.t.Helper()
	return a.call(method, path, a.Token, body)
}

// mustData: status harus want, data di-decode ke out.
func (a *testAPI) mustData(method, path string, body any, want int, out any) envelope {
	a.t.Helper()
	status, env := a.admin(method, path, body)
	require.Equal(a.t, want, status, "%s %s: %s %v", method, path, env.Message, env.Errors)
	if out != nil {
		require.NoError(a.t, sonic.Unmarshal(env.Data, out))
	}
	return env
}

func unmarshal(raw []byte, out any) error { return sonic.Unmarshal(raw, out) }
