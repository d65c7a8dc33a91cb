package gopherweb

import "net/http"

// SessionParam is the query parameter the external session
// collaborator transports its token in. Gopher has no cookies, so
// session state rides as a token inside selector query strings.
const SessionParam = "_session"

// SessionCodec is the explicit boundary to the external session
// collaborator. Deriving, signing and verifying the correlation token
// is the collaborator's business, keyed by Config.SecretKey which
// this package only carries. No token scheme is assumed here.
type SessionCodec interface {
	// Open decodes and verifies a token into session data. An
	// invalid or missing token yields an empty, usable session.
	Open(token string) (map[string]string, error)

	// Seal encodes session data into a token safe to embed in a
	// selector query string.
	Seal(session map[string]string) (string, error)
}

// SessionToken extracts the raw session token from a request, or ""
// when the client sent none.
func SessionToken(r *http.Request) string {
	return r.URL.Query().Get(SessionParam)
}
