package redis

import (
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore is a sessions.Store keeping values in Redis. The cookie only
// carries the signed session id.
// Key format: session:<id>
type SessionStore struct {
	client     Client
	codecs     []securecookie.Codec
	serializer securecookie.Serializer
	Options    *sessions.Options
}

// NewSessionStore builds a store signing ids with keyPairs, as
// securecookie.CodecsFromPairs expects them.
func NewSessionStore(client Client, keyPairs ...[]byte) *SessionStore {
	return &SessionStore{
		client:     client,
		codecs:     securecookie.CodecsFromPairs(keyPairs...),
		serializer: securecookie.GobEncoder{},
		Options: &sessions.Options{
			Path:   "/",
			MaxAge: int(defaultSessionTTL.Seconds()),
		},
	}
}

// Get returns the session cached for the request, loading it on first use.
func (s *SessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, tampered or
// expired cookie yields a fresh session and no error; only Redis failures are
// reported.
func (s *SessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	id, ok := s.cookieID(r, name)
	if !ok {
		return session, nil
	}

	data, err := s.client.Get(r.Context(), s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session, nil
		}
		return session, fmt.Errorf("load session: %w", err)
	}
	if err := s.serializer.Deserialize(data, &session.Values); err != nil {
		return session, nil
	}
	session.ID = id
	session.IsNew = false
	return session, nil
}

// Save writes the session values to Redis and sets the cookie. A negative
// MaxAge deletes the record and expires the cookie. Clearing session.ID
// issues a new id and deletes the record of the previous one.
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), s.key(session.ID)).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		// A cleared id means rotation: the record behind the request cookie
		// must not outlive it.
		if prev, ok := s.cookieID(r, session.Name()); ok {
			if err := s.client.Del(r.Context(), s.key(prev)).Err(); err != nil {
				return fmt.Errorf("delete previous session: %w", err)
			}
		}
		session.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
	}

	data, err := s.serializer.Serialize(session.Values)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if ttl == 0 {
		ttl = defaultSessionTTL
	}
	if err := s.client.Set(r.Context(), s.key(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("sign session id: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// cookieID returns the verified session id carried by the request cookie.
func (s *SessionStore) cookieID(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return "", false
	}
	return id, true
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
