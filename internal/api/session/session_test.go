package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

var secret = []byte("test-secret-test-secret-test-sec")

func newManager() *Manager {
	return NewManager(Options{CookieName: "recipe_session", MaxAge: time.Hour})
}

// serve runs fn behind the session middleware and returns the response.
func serve(t *testing.T, m *Manager, cookies []*http.Cookie, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := echosession.Middleware(m.NewCookieStore(secret))(fn)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestManager_LoginThenUserID(t *testing.T) {
	m := newManager()

	rec := serve(t, m, nil, func(c echo.Context) error {
		return m.Login(c, 7)
	})
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if !cookies[0].HttpOnly || cookies[0].SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie flags: %+v", cookies[0])
	}

	serve(t, m, cookies, func(c echo.Context) error {
		id, ok, err := m.UserID(c)
		if err != nil || !ok || id != 7 {
			t.Fatalf("expected user 7, got %d %v %v", id, ok, err)
		}
		return nil
	})
}

func TestManager_NoCookie(t *testing.T) {
	m := newManager()
	serve(t, m, nil, func(c echo.Context) error {
		if _, ok, err := m.UserID(c); ok || err != nil {
			t.Fatalf("expected no user, got ok=%v err=%v", ok, err)
		}
		return nil
	})
}

func TestManager_TamperedCookieIsAnonymous(t *testing.T) {
	m := newManager()
	rec := serve(t, m, nil, func(c echo.Context) error { return m.Login(c, 7) })
	cookie := rec.Result().Cookies()[0]
	cookie.Value = cookie.Value[:len(cookie.Value)-4] + "AAAA"

	serve(t, m, []*http.Cookie{cookie}, func(c echo.Context) error {
		if _, ok, err := m.UserID(c); ok || err != nil {
			t.Fatalf("expected anonymous session, got ok=%v err=%v", ok, err)
		}
		return nil
	})
}

func TestManager_LogoutExpiresCookie(t *testing.T) {
	m := newManager()
	rec := serve(t, m, nil, func(c echo.Context) error { return m.Login(c, 7) })

	rec = serve(t, m, rec.Result().Cookies(), func(c echo.Context) error {
		return m.Logout(c)
	})
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}
}
