package gopherweb

import (
	"io"
	"strings"
)

/*
 * Protocol detection happens on the first line of a fresh connection
 * and never consumes anything past it. A line matching the HTTP
 * request line grammar exactly is HTTP; everything else is a Gopher
 * selector. HTTP method tokens come from a fixed set, so a line that
 * superficially resembles both grammars resolves to Gopher.
 */

// httpMethods is the fixed method token set from RFC 9110 plus PATCH.
var httpMethods = map[string]bool{
	"GET":     true,
	"HEAD":    true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"CONNECT": true,
	"OPTIONS": true,
	"TRACE":   true,
	"PATCH":   true,
}

// readRequestLine reads up to and including the first LF, one byte at
// a time so nothing past the line is consumed. The raw bytes are
// returned for replay on the HTTP path. A peer that closes early or
// sends more than MaxRequestLen bytes without a line break yields
// ErrMalformedRequest.
func readRequestLine(conn io.Reader) ([]byte, error) {
	line := make([]byte, 0, 128)
	buf := make([]byte, 1)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			// Premature close, EOF included.
			return line, ErrMalformedRequest
		}
		if n == 0 {
			continue
		}

		line = append(line, buf[0])
		if buf[0] == '\n' {
			return line, nil
		}
		if len(line) >= MaxRequestLen {
			return line, ErrMalformedRequest
		}
	}
}

// isHTTPRequestLine reports whether the line matches
// `METHOD SP path SP HTTP/version` with a known method token.
func isHTTPRequestLine(line string) bool {
	line = trimLineEnd(line)
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return false
	}
	return httpMethods[parts[0]] && strings.HasPrefix(parts[2], "HTTP/")
}

// trimLineEnd strips a trailing CRLF, tolerating a bare LF.
func trimLineEnd(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// GopherRequest is the parsed form of a Gopher request line:
//
//	selector [TAB search [TAB gopher+ type]] CRLF
//
// An empty selector is normalized to "/" and a missing leading slash
// is added so the selector can be routed like an HTTP path.
type GopherRequest struct {
	// Selector identifies the requested resource, like an HTTP path.
	Selector string

	// Search is the query text of a type 7 index-search request,
	// empty otherwise.
	Search string

	// Plus is the Gopher+ type token, e.g. "1" on a full menu
	// re-request. Preserved for compatibility, otherwise unused.
	Plus string
}

// ParseGopherRequest parses the first line of a Gopher connection.
// The selector must not contain NUL or embedded CR/LF bytes.
func ParseGopherRequest(line string) (*GopherRequest, error) {
	line = trimLineEnd(line)
	if strings.ContainsAny(line, "\x00\r\n") {
		return nil, ErrMalformedRequest
	}

	req := new(GopherRequest)
	parts := strings.SplitN(line, Tab, 3)
	req.Selector = parts[0]
	if len(parts) > 1 {
		req.Search = parts[1]
	}
	if len(parts) > 2 {
		req.Plus = parts[2]
	}

	if req.Selector == "" {
		req.Selector = "/"
	}
	if !strings.HasPrefix(req.Selector, "/") {
		// Gopher does not require a leading slash, but request
		// routing does.
		req.Selector = "/" + req.Selector
	}

	return req, nil
}

// String serializes the request back to its wire form.
func (g *GopherRequest) String() string {
	line := g.Selector
	if g.Search != "" || g.Plus != "" {
		line += Tab + g.Search
	}
	if g.Plus != "" {
		line += Tab + g.Plus
	}
	return line + CrLf
}
