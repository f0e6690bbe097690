// Package session binds the authenticated user id to the client's session
// cookie through echo-contrib/session.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// Options configures the session cookie.
type Options struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Manager reads and writes user_id in the named session.
type Manager struct {
	name    string
	options sessions.Options
}

func NewManager(opts Options) *Manager {
	return &Manager{
		name: opts.CookieName,
		options: sessions.Options{
			Path:     "/",
			MaxAge:   int(opts.MaxAge.Seconds()),
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// CookieOptions returns a copy of the cookie options for configuring a store.
func (m *Manager) CookieOptions() *sessions.Options {
	o := m.options
	return &o
}

// NewCookieStore returns a signed cookie store holding the values client side.
func (m *Manager) NewCookieStore(secret []byte) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = m.CookieOptions()
	store.MaxAge(m.options.MaxAge)
	return store
}

// UserID returns the user bound to the request's session, if any.
func (m *Manager) UserID(c echo.Context) (int64, bool, error) {
	sess, err := m.get(c)
	if err != nil {
		return 0, false, err
	}
	switch v := sess.Values[userIDKey].(type) {
	case int64:
		return v, v > 0, nil
	case int:
		return int64(v), v > 0, nil
	default:
		return 0, false, nil
	}
}

// Login binds userID to the session and writes the cookie.
func (m *Manager) Login(c echo.Context, userID int64) error {
	sess, err := m.get(c)
	if err != nil {
		return err
	}
	// Rotate server-side ids on login.
	sess.ID = ""
	sess.Options = m.CookieOptions()
	sess.Values[userIDKey] = userID
	return sess.Save(c.Request(), c.Response())
}

// Logout removes user_id. An emptied session also expires the cookie.
func (m *Manager) Logout(c echo.Context) error {
	sess, err := m.get(c)
	if err != nil {
		return err
	}
	delete(sess.Values, userIDKey)
	if len(sess.Values) == 0 {
		sess.Options.MaxAge = -1
	}
	return sess.Save(c.Request(), c.Response())
}

// get loads the session. A cookie that fails to decode (tampered, signed
// with a rotated secret or expired) yields the fresh session the store
// returned alongside the error.
func (m *Manager) get(c echo.Context) (*sessions.Session, error) {
	sess, err := echosession.Get(m.name, c)
	if err == nil {
		return sess, nil
	}
	var scErr securecookie.Error
	if sess != nil && errors.As(err, &scErr) && scErr.IsDecode() {
		return sess, nil
	}
	return nil, err
}
