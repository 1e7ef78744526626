package api

import (
	"net/http"
	"path"
	"strings"

	"golang.org/x/oauth2"

	"github.com/Veraticus/smart-finance/internal/model"
)

// SessionSource supplies the current session, if any.
type SessionSource interface {
	Current() (model.Session, bool)
}

// AuthPrefix returns the path prefix of the authentication endpoint group for
// a backend mounted at basePath.
func AuthPrefix(basePath string) string {
	return path.Join("/", basePath, "auth") + "/"
}

// Authenticate returns req carrying the session's bearer token, or req itself
// when there is no session, the token is empty, or the request targets the
// authentication endpoints under authPrefix. An empty authPrefix matches an
// "/auth/" segment anywhere in the path. req is never modified.
func Authenticate(req *http.Request, sess *model.Session, authPrefix string) *http.Request {
	if req == nil || req.URL == nil || sess == nil || sess.Token == "" {
		return req
	}
	if isAuthPath(req.URL.Path, authPrefix) {
		return req
	}

	authed := req.Clone(req.Context())
	token := &oauth2.Token{AccessToken: sess.Token, TokenType: "Bearer"}
	token.SetAuthHeader(authed)
	return authed
}

func isAuthPath(p, authPrefix string) bool {
	if authPrefix == "" {
		return strings.Contains(p, AuthPrefix(""))
	}
	return strings.HasPrefix(p, authPrefix)
}

// AuthTransport authenticates every request from the current session.
type AuthTransport struct {
	Base       http.RoundTripper
	Source     SessionSource
	AuthPrefix string
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	var current *model.Session
	if t.Source != nil {
		if sess, ok := t.Source.Current(); ok {
			current = &sess
		}
	}
	return base.RoundTrip(Authenticate(req, current, t.AuthPrefix))
}

// WithAuth is the pipeline stage form of AuthTransport.
func WithAuth(source SessionSource, authPrefix string) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return &AuthTransport{Base: next, Source: source, AuthPrefix: authPrefix}
	}
}
