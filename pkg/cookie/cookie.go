// Package cookie reads and writes HTTP cookies through a Manager that carries
// the application's cookie policy (path, domain, Secure, HttpOnly, SameSite)
// and, when a secret is configured, signs values with HMAC-SHA256 so tampering
// is detected on read.
package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrBadSig    = errors.New("cookie: invalid signature")
)

// minSecretLen is the shortest secret accepted for signing.
const minSecretLen = 32

// Manager issues cookies with a consistent attribute policy. The zero-ish
// default (via New) is path "/", HttpOnly, SameSite=Lax, no signing.
type Manager struct {
	secret    []byte
	badSecret bool
	policy    http.Cookie
}

// Option configures a Manager.
type Option func(*Manager)

// WithSecret enables signed cookies. Secrets shorter than 32 bytes are
// rejected: signed operations then fail with ErrBadSecret instead of
// signing weakly.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) < minSecretLen {
			m.badSecret = true
			return
		}
		m.secret = []byte(secret)
	}
}

// WithDomain scopes issued cookies to domain.
func WithDomain(domain string) Option {
	return func(m *Manager) { m.policy.Domain = domain }
}

// WithPath sets the cookie path. Defaults to "/".
func WithPath(path string) Option {
	return func(m *Manager) { m.policy.Path = path }
}

// WithSecure marks issued cookies HTTPS-only.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.policy.Secure = secure }
}

// WithHTTPOnly controls the HttpOnly flag. Defaults to true.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) { m.policy.HttpOnly = httpOnly }
}

// WithSameSite sets the SameSite attribute. Defaults to Lax.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.policy.SameSite = ss }
}

// New builds a Manager from the options.
func New(opts ...Option) *Manager {
	m := &Manager{
		policy: http.Cookie{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the plain value of the named cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie under the manager's policy.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.issue(name, value, maxAge))
}

// Delete expires the named cookie immediately.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.issue(name, "", -1))
}

// SetSigned writes the value together with its MAC. The signature covers the
// cookie name too, so a signed value cannot be replayed under another name.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if err := m.signingReady(); err != nil {
		return err
	}

	encoded := base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(m.mac(name, value))
	http.SetCookie(w, m.issue(name, encoded, maxAge))
	return nil
}

// GetSigned returns the value of a signed cookie after verifying its MAC.
// A malformed or tampered cookie fails with ErrBadSig.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if err := m.signingReady(); err != nil {
		return "", err
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	payload, sig, found := strings.Cut(raw, ".")
	if !found {
		return "", ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrBadSig
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrBadSig
	}

	if !hmac.Equal(got, m.mac(name, string(value))) {
		return "", ErrBadSig
	}
	return string(value), nil
}

func (m *Manager) signingReady() error {
	if m.badSecret {
		return ErrBadSecret
	}
	if m.secret == nil {
		return ErrNoSecret
	}
	return nil
}

func (m *Manager) mac(name, value string) []byte {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return h.Sum(nil)
}

func (m *Manager) issue(name, value string, maxAge int) *http.Cookie {
	c := m.policy
	c.Name = name
	c.Value = value
	c.MaxAge = maxAge
	return &c
}
