package gopherweb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequestLine(t *testing.T) {
	line, err := readRequestLine(strings.NewReader("/fun/xkcd\r\nextra bytes"))
	require.NoError(t, err)
	assert.Equal(t, []byte("/fun/xkcd\r\n"), line)
}

func TestReadRequestLineBareLF(t *testing.T) {
	line, err := readRequestLine(strings.NewReader("/fun\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("/fun\n"), line)
}

func TestReadRequestLineEOFBeforeBreak(t *testing.T) {
	_, err := readRequestLine(strings.NewReader("/half-a-line"))
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestReadRequestLineOversize(t *testing.T) {
	_, err := readRequestLine(strings.NewReader(strings.Repeat("a", MaxRequestLen+10) + "\r\n"))
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestIsHTTPRequestLine(t *testing.T) {
	cases := []struct {
		line string
		http bool
	}{
		{"GET / HTTP/1.1\r\n", true},
		{"POST /submit HTTP/1.0\r\n", true},
		{"DELETE /x HTTP/2\r\n", true},
		{"/fun/xkcd\r\n", false},
		{"\r\n", false},
		{"GET /\r\n", false},                 /* two parts only */
		{"FETCH / HTTP/1.1\r\n", false},      /* unknown method */
		{"GET / HTTP/1.1 extra\r\n", false},  /* four parts */
		{"GET / FTP/1.1\r\n", false},         /* wrong version token */
		{"selector with spaces\r\n", false},  /* three parts, no method */
		{"GET with tab\t/ HTTP/1.1", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.http, isHTTPRequestLine(c.line), "line %q", c.line)
	}
}

func TestParseGopherRequest(t *testing.T) {
	req, err := ParseGopherRequest("/fun/xkcd\r\n")
	require.NoError(t, err)
	assert.Equal(t, "/fun/xkcd", req.Selector)
	assert.Empty(t, req.Search)
	assert.Empty(t, req.Plus)
}

func TestParseGopherRequestSearch(t *testing.T) {
	req, err := ParseGopherRequest("/search\tgopher history\r\n")
	require.NoError(t, err)
	assert.Equal(t, "/search", req.Selector)
	assert.Equal(t, "gopher history", req.Search)
}

func TestParseGopherRequestPlus(t *testing.T) {
	req, err := ParseGopherRequest("/menu\t\t$\r\n")
	require.NoError(t, err)
	assert.Equal(t, "/menu", req.Selector)
	assert.Empty(t, req.Search)
	assert.Equal(t, "$", req.Plus)
}

func TestParseGopherRequestNormalizesSelector(t *testing.T) {
	req, err := ParseGopherRequest("\r\n")
	require.NoError(t, err)
	assert.Equal(t, "/", req.Selector)

	req, err = ParseGopherRequest("fun/xkcd\r\n")
	require.NoError(t, err)
	assert.Equal(t, "/fun/xkcd", req.Selector)
}

func TestParseGopherRequestRejectsControlBytes(t *testing.T) {
	_, err := ParseGopherRequest("/bad\x00selector\r\n")
	assert.ErrorIs(t, err, ErrMalformedRequest)

	_, err = ParseGopherRequest("/bad\rmiddle\r\n")
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestGopherRequestRoundTrip(t *testing.T) {
	for _, wire := range []string{
		"/fun/xkcd\r\n",
		"/search\tsome words\r\n",
		"/menu\tquery\t1\r\n",
	} {
		req, err := ParseGopherRequest(wire)
		require.NoError(t, err)
		assert.Equal(t, wire, req.String())
	}
}
