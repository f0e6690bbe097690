package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{}
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
			if in.Username != "chef1" || in.Password != "password123" || in.Bio == nil || *in.Bio != "I cook" || in.ImageURL != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 1, Username: in.Username, PasswordHash: "secret-hash", Bio: in.Bio}, nil
		},
	}
	handler := NewAuthHandler(stub, sessions)

	req := jsonRequest(http.MethodPost, "/signup", `{"username":"chef1","password":"password123","bio":"I cook"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if sessions.loggedIn != 1 {
		t.Fatalf("expected session bound to 1, got %d", sessions.loggedIn)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1) || resp["username"] != "chef1" || resp["bio"] != "I cook" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if v, ok := resp["image_url"]; !ok || v != nil {
		t.Fatalf("expected image_url null, got %v (present=%v)", v, ok)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_ServiceErrorIsReturned(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"validation", domain.NewValidationError("username", "Username is required")},
		{"conflict", domain.ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			sessions := &stubSessions{}
			stub := &stubAuthService{
				signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
					return nil, tt.err
				},
			}
			handler := NewAuthHandler(stub, sessions)

			c := e.NewContext(jsonRequest(http.MethodPost, "/signup", `{"username":""}`), httptest.NewRecorder())
			if err := handler.Signup(c); !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if sessions.loggedIn != 0 {
				t.Fatal("session must not be bound on failure")
			}
		})
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubSessions{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/signup", "not-json"), rec)

	_ = handler.Signup(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{}
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
			if in.Username != "chef1" || in.Password != "password123" {
				t.Fatalf("unexpected args: %+v", in)
			}
			if in.ClientKey == "" {
				t.Fatal("expected a client key for throttling")
			}
			return &domain.User{ID: 3, Username: "chef1"}, nil
		},
	}
	handler := NewAuthHandler(stub, sessions)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/login", `{"username":"chef1","password":"password123"}`), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sessions.loggedIn != 3 {
		t.Fatalf("expected session bound to 3, got %d", sessions.loggedIn)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{}
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, sessions)

	c := e.NewContext(jsonRequest(http.MethodPost, "/login", `{"username":"chef1","password":"bad"}`), httptest.NewRecorder())

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.loggedIn != 0 {
		t.Fatal("session must not be bound on failure")
	}
}

func TestAuthHandler_Login_MalformedBodyTreatedAsBadCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
			if in.Username != "" || in.Password != "" {
				t.Fatalf("expected empty credentials, got %+v", in)
			}
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, &stubSessions{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/login", "{"), httptest.NewRecorder())

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_CheckSession(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		currentUserFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			if userID != 5 {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: 5, Username: "chef5", ImageURL: strPtr("http://img")}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubSessions{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/check_session", nil), rec)
	SetIdentity(c, Identity{UserID: 5})

	if err := handler.CheckSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"username":"chef5"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/check_session", nil), httptest.NewRecorder())
	SetIdentity(c, Identity{UserID: 9})
	if err := handler.CheckSession(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for a vanished user, got %v", err)
	}
}

func TestAuthHandler_CheckSession_NoIdentity(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		currentUserFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubSessions{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/check_session", nil), httptest.NewRecorder())
	if err := handler.CheckSession(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{loggedIn: 2}
	handler := NewAuthHandler(&stubAuthService{}, sessions)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/logout", nil), rec)
	SetIdentity(c, Identity{UserID: 2})

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d %q", rec.Code, rec.Body.String())
	}
	if !sessions.loggedOut {
		t.Fatal("expected session to be cleared")
	}
}
