// file: internals/console/client/client.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
)

// FallbackMessage dipakai kalau server tidak mengirim pesan yang bisa dibaca.
const FallbackMessage = "Request failed"

// APIError: response non-2xx dari API, message diambil dari envelope error.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Message: pesan yang layak ditampilkan ke user untuk err apa pun. Error
// non-API (transport, error lokal) ditampilkan apa adanya; FallbackMessage
// hanya kalau teksnya kosong.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if strings.TrimSpace(apiErr.Message) == "" {
			return FallbackMessage
		}
		return apiErr.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}

type envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	ErrorCode  string              `json:"error_code"`
	Errors     map[string][]string `json:"errors"`
	Data       json.RawMessage     `json:"data"`
	Pagination json.RawMessage     `json:"pagination"`
}

// Client bicara ke REST API admin dengan bearer token.
type Client struct {
	BaseURL string
	Token   string

	http *rest.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
	}
}

// Do mengirim request; body di-encode JSON, data envelope di-decode ke out
// (boleh nil).
func (c *Client) Do(ctx context.Context, method rest.Method, path string, query map[string]string, body, out any) error {
	req := rest.Request{
		Method:      method,
		BaseURL:     c.BaseURL + path,
		Headers:     map[string]string{"Accept": "application/json"},
		QueryParams: query,
	}
	if c.Token != "" {
		req.Headers["Authorization"] = "Bearer " + c.Token
	}
	if body != nil {
		b, err := sonic.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encode %s %s", method, path)
		}
		req.Body = b
		req.Headers["Content-Type"] = "application/json"
	}

	res, err := c.http.SendWithContext(ctx, req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}

	var env envelope
	decodeErr := sonic.UnmarshalString(res.Body, &env)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{Status: res.StatusCode, Message: FallbackMessage}
		if decodeErr == nil {
			apiErr.Code = env.ErrorCode
			apiErr.Fields = env.Errors
			if strings.TrimSpace(env.Message) != "" {
				apiErr.Message = env.Message
			}
		}
		return apiErr
	}
	if decodeErr != nil {
		return errors.Wrapf(decodeErr, "decode %s %s", method, path)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := sonic.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "decode data %s %s", method, path)
		}
	}
	return nil
}

/* ===================== AUTH ===================== */

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"user_name"`
	Role  string `json:"role"`
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// Login menyimpan token di client kalau berhasil.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	if err := c.Do(ctx, rest.Post, "/api/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &out); err != nil {
		return nil, err
	}
	c.Token = out.AccessToken
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.Do(ctx, rest.Post, "/api/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	c.Token = ""
	return nil
}

/* ===================== RESOURCE ===================== */

// Resource: CRUD standar di bawah satu path admin.
type Resource[T any] struct {
	c    *Client
	Path string
}

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, Path: strings.TrimRight(path, "/")}
}

// List ambil semua baris (per_page=all); filter tambahan lewat query.
func (r *Resource[T]) List(ctx context.Context, query map[string]string) ([]T, error) {
	q := map[string]string{"per_page": "all"}
	for k, v := range query {
		q[k] = v
	}
	var out []T
	if err := r.c.Do(ctx, rest.Get, r.Path, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id fmt.Stringer) (T, error) {
	var out T
	err := r.c.Do(ctx, rest.Get, r.Path+"/"+id.String(), nil, nil, &out)
	return out, err
}

func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := r.c.Do(ctx, rest.Post, r.Path, nil, body, &out)
	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, id fmt.Stringer, body any) (T, error) {
	var out T
	err := r.c.Do(ctx, rest.Patch, r.Path+"/"+id.String(), nil, body, &out)
	return out, err
}

func (r *Resource[T]) Delete(ctx context.Context, id fmt.Stringer) error {
	return r.c.Do(ctx, rest.Delete, r.Path+"/"+id.String(), nil, nil, nil)
}

func (r *Resource[T]) Restore(ctx context.Context, id fmt.Stringer) (T, error) {
	var out T
	err := r.c.Do(ctx, rest.Post, r.Path+"/"+id.String()+"/restore", nil, nil, &out)
	return out, err
}

// Action: POST /:id/<name> yang mengembalikan T (publish, close).
func (r *Resource[T]) Action(ctx context.Context, id fmt.Stringer, name string, out any) error {
	return r.c.Do(ctx, rest.Post, r.Path+"/"+id.String()+"/"+name, nil, nil, out)
}
