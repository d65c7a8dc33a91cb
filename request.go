package gopherweb

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// SchemeGopher is the URL scheme and protocol version token carried
// by synthetic requests.
const SchemeGopher = "gopher"

type contextKey int

const gopherRequestKey contextKey = iota

// httpRequest synthesizes the request handed to the host handler.
// Apart from the scheme and the "gopher" protocol token, the result
// is indistinguishable from a plain HTTP GET: method, URL, remote
// address and query string are all populated, so routing, reverse
// routing and application logic run unchanged.
func (g *GopherRequest) httpRequest(cfg Config, remoteAddr string) *http.Request {
	u, err := url.ParseRequestURI(g.Selector)
	if err != nil {
		// Selectors are opaque strings and need not be valid URIs.
		// Fall back to treating the whole selector as the path.
		u = &url.URL{Path: g.Selector}
	}
	u.Scheme = SchemeGopher
	u.Host = cfg.HostPort()

	if g.Search != "" {
		// Surface the index-search text as a query parameter so
		// handlers read it the same way they read HTML form input.
		q := u.Query()
		q.Set("q", g.Search)
		u.RawQuery = q.Encode()
	}

	req := &http.Request{
		Method:     http.MethodGet,
		URL:        u,
		Proto:      SchemeGopher,
		ProtoMajor: 0,
		ProtoMinor: 0,
		Header:     make(http.Header),
		Body:       http.NoBody,
		Host:       u.Host,
		RemoteAddr: remoteAddr,
		RequestURI: g.Selector,
	}

	ctx := context.WithValue(context.Background(), gopherRequestKey, g)
	return req.WithContext(ctx)
}

// FromRequest returns the GopherRequest a synthetic request was built
// from, or nil when the request arrived over HTTP.
func FromRequest(r *http.Request) *GopherRequest {
	g, _ := r.Context().Value(gopherRequestKey).(*GopherRequest)
	return g
}

// IsGopher reports whether the request arrived over the Gopher
// protocol.
func IsGopher(r *http.Request) bool {
	return FromRequest(r) != nil
}

// Scheme returns "gopher" or "http" depending on the transport the
// request arrived on, so application logic can branch on it.
func Scheme(r *http.Request) string {
	if IsGopher(r) {
		return SchemeGopher
	}
	return "http"
}

// Search returns the index-search text of a type 7 request, or the
// empty string.
func Search(r *http.Request) string {
	if g := FromRequest(r); g != nil {
		return g.Search
	}
	return ""
}

// ExternalURL builds an absolute gopher URL for a selector, injecting
// the item type the way Gopher URLs require:
//
//	gopher://host:port/1/some/menu
//
// On HTTP requests the item type is omitted and the configured scheme
// is used instead.
func ExternalURL(r *http.Request, cfg Config, t ItemType, selector string) string {
	if !strings.HasPrefix(selector, "/") {
		selector = "/" + selector
	}
	if IsGopher(r) {
		return SchemeGopher + "://" + cfg.HostPort() + "/" + string(t) + selector
	}
	return cfg.Scheme + "://" + cfg.HostPort() + selector
}
