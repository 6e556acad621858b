package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/avaskin/contentforge/internal/config"
	"github.com/avaskin/contentforge/internal/errs"
	"github.com/avaskin/contentforge/internal/model"
)

type fakeAuth struct {
	registerErr error
	loginErr    error
	loginIP     string
	verifyErr   error
	verifyID    int64
}

func (f *fakeAuth) Register(_ context.Context, email, _ string) (model.User, error) {
	if f.registerErr != nil {
		return model.User{}, f.registerErr
	}
	return model.User{ID: 7, Email: email, CreatedAt: time.Now()}, nil
}

func (f *fakeAuth) LoginWithIP(_ context.Context, _, _, ip string) (model.Tokens, error) {
	f.loginIP = ip
	if f.loginErr != nil {
		return model.Tokens{}, f.loginErr
	}
	return model.Tokens{AccessToken: "tok-abc"}, nil
}

func (f *fakeAuth) VerifyToken(string) (int64, error) {
	if f.verifyErr != nil {
		return 0, f.verifyErr
	}
	return f.verifyID, nil
}

type fakeContent struct {
	generateErr error
	items       []model.ContentHistoryItem
	gotLimit    int
	gotUserID   int64
	getErr      error
	deleteErr   error
}

func (f *fakeContent) Generate(_ context.Context, userID int64, req model.GenerationRequest) (model.GenerationResult, error) {
	f.gotUserID = userID
	if f.generateErr != nil {
		return model.GenerationResult{}, f.generateErr
	}
	return model.GenerationResult{ID: 1, GeneratedContent: "text for " + req.Product, ModelUsed: "m"}, nil
}

func (f *fakeContent) History(_ context.Context, userID int64, limit int) ([]model.ContentHistoryItem, error) {
	f.gotUserID = userID
	f.gotLimit = limit
	return f.items, nil
}

func (f *fakeContent) GetOne(_ context.Context, userID, id int64) (model.ContentHistoryItem, error) {
	f.gotUserID = userID
	if f.getErr != nil {
		return model.ContentHistoryItem{}, f.getErr
	}
	return model.ContentHistoryItem{ID: id, GeneratedContent: "stored"}, nil
}

func (f *fakeContent) Delete(_ context.Context, userID, id int64) error {
	f.gotUserID = userID
	return f.deleteErr
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			ServiceName: "AI Content Generation Platform API",
			Version:     "1.0.0",
		},
	}
}

func newTestServer(auth *fakeAuth, content *fakeContent) *Server {
	return New(auth, content, testConfig(), zap.NewNop())
}

func jsonReq(method, path string, body any) *http.Request {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeDetail(t *testing.T, resp *http.Response) string {
	t.Helper()
	var out struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	return out.Detail
}

func TestHealth(t *testing.T) {
	app := newTestServer(&fakeAuth{}, &fakeContent{}).App()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var hs model.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		t.Fatal(err)
	}
	if hs.Status != "healthy" {
		t.Errorf("status = %q", hs.Status)
	}
	if hs.Service != "AI Content Generation Platform API" || hs.Version != "1.0.0" {
		t.Errorf("unexpected identity: %+v", hs)
	}
	if hs.AIConfigured["openai"] {
		t.Error("openai should be unconfigured without an API key")
	}
}

func TestRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		app := newTestServer(&fakeAuth{}, &fakeContent{}).App()

		resp, err := app.Test(jsonReq(http.MethodPost, "/auth/register", map[string]string{
			"email": "a@b.c", "password": "pw",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		var u model.User
		if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
			t.Fatal(err)
		}
		if u.ID != 7 || u.Email != "a@b.c" {
			t.Errorf("user = %+v", u)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		app := newTestServer(&fakeAuth{registerErr: errs.ErrAlreadyExists}, &fakeContent{}).App()

		resp, err := app.Test(jsonReq(http.MethodPost, "/auth/register", map[string]string{
			"email": "a@b.c", "password": "pw",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if got := decodeDetail(t, resp); got != "Email already registered" {
			t.Errorf("detail = %q", got)
		}
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		app := newTestServer(&fakeAuth{}, &fakeContent{}).App()

		resp, err := app.Test(jsonReq(http.MethodPost, "/auth/register", map[string]string{
			"email": "not-an-email", "password": "pw",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		fa := &fakeAuth{}
		app := newTestServer(fa, &fakeContent{}).App()

		resp, err := app.Test(jsonReq(http.MethodPost, "/auth/login", map[string]string{
			"email": "a@b.c", "password": "pw",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		var out struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		if out.AccessToken != "tok-abc" || out.TokenType != "bearer" {
			t.Errorf("body = %+v", out)
		}
		if fa.loginIP == "" {
			t.Error("client IP not passed to login")
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		app := newTestServer(&fakeAuth{loginErr: errs.ErrUnauthorized}, &fakeContent{}).App()

		resp, err := app.Test(jsonReq(http.MethodPost, "/auth/login", map[string]string{
			"email": "a@b.c", "password": "wrong",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if got := decodeDetail(t, resp); got != "Invalid credentials" {
			t.Errorf("detail = %q", got)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		app := newTestServer(&fakeAuth{loginErr: errs.ErrRateLimited}, &fakeContent{}).App()

		resp, err := app.Test(jsonReq(http.MethodPost, "/auth/login", map[string]string{
			"email": "a@b.c", "password": "pw",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		app := newTestServer(&fakeAuth{}, &fakeContent{}).App()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/history", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if got := decodeDetail(t, resp); got != "Not authenticated" {
			t.Errorf("detail = %q", got)
		}
	})

	t.Run("bad token", func(t *testing.T) {
		app := newTestServer(&fakeAuth{verifyErr: errs.ErrUnauthorized}, &fakeContent{}).App()

		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Authorization", "Bearer nope")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if got := decodeDetail(t, resp); got != "Could not validate credentials" {
			t.Errorf("detail = %q", got)
		}
	})

	t.Run("user id flows to service", func(t *testing.T) {
		fc := &fakeContent{}
		app := newTestServer(&fakeAuth{verifyID: 42}, fc).App()

		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Authorization", "bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if fc.gotUserID != 42 {
			t.Errorf("userID = %d, want 42", fc.gotUserID)
		}
	})
}

func TestGenerate(t *testing.T) {
	validBody := map[string]string{
		"content_type": "blog",
		"tone":         "casual",
		"length":       "medium",
		"product":      "Widget",
		"audience":     "devs",
	}

	t.Run("ok", func(t *testing.T) {
		app := newTestServer(&fakeAuth{verifyID: 1}, &fakeContent{}).App()

		req := jsonReq(http.MethodPost, "/api/generate", validBody)
		req.Header.Set("Authorization", "Bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		var res model.GenerationResult
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			t.Fatal(err)
		}
		if res.GeneratedContent != "text for Widget" {
			t.Errorf("content = %q", res.GeneratedContent)
		}
	})

	t.Run("unknown content type rejected", func(t *testing.T) {
		app := newTestServer(&fakeAuth{verifyID: 1}, &fakeContent{}).App()

		body := map[string]string{
			"content_type": "poem",
			"tone":         "casual",
			"length":       "medium",
			"product":      "Widget",
			"audience":     "devs",
		}
		req := jsonReq(http.MethodPost, "/api/generate", body)
		req.Header.Set("Authorization", "Bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})
}

func TestHistory(t *testing.T) {
	t.Run("empty list is JSON array", func(t *testing.T) {
		app := newTestServer(&fakeAuth{verifyID: 1}, &fakeContent{}).App()

		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		b, _ := io.ReadAll(resp.Body)
		if string(b) != "[]" {
			t.Errorf("body = %q, want []", b)
		}
	})

	t.Run("limit query forwarded", func(t *testing.T) {
		fc := &fakeContent{}
		app := newTestServer(&fakeAuth{verifyID: 1}, fc).App()

		req := httptest.NewRequest(http.MethodGet, "/api/history?limit=5", nil)
		req.Header.Set("Authorization", "Bearer tok")
		if _, err := app.Test(req); err != nil {
			t.Fatal(err)
		}
		if fc.gotLimit != 5 {
			t.Errorf("limit = %d, want 5", fc.gotLimit)
		}
	})
}

func TestContentByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		app := newTestServer(&fakeAuth{verifyID: 1}, &fakeContent{}).App()

		req := httptest.NewRequest(http.MethodGet, "/api/history/3", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})

	t.Run("not found", func(t *testing.T) {
		app := newTestServer(&fakeAuth{verifyID: 1}, &fakeContent{getErr: errs.ErrNotFound}).App()

		req := httptest.NewRequest(http.MethodGet, "/api/history/999", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if got := decodeDetail(t, resp); got != "Content not found" {
			t.Errorf("detail = %q", got)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		app := newTestServer(&fakeAuth{verifyID: 1}, &fakeContent{}).App()

		req := httptest.NewRequest(http.MethodGet, "/api/history/abc", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})
}

func TestDeleteContent(t *testing.T) {
	t.Run("no content on success", func(t *testing.T) {
		app := newTestServer(&fakeAuth{verifyID: 1}, &fakeContent{}).App()

		req := httptest.NewRequest(http.MethodDelete, "/api/history/3", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})

	t.Run("missing row", func(t *testing.T) {
		app := newTestServer(&fakeAuth{verifyID: 1}, &fakeContent{deleteErr: errs.ErrNotFound}).App()

		req := httptest.NewRequest(http.MethodDelete, "/api/history/3", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d", resp.StatusCode)
		}
	})
}
