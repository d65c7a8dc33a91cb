package gopherweb

import (
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, cfg Config, handler http.Handler) string {
	t.Helper()

	cfg.Hostname = "example.com"
	cfg.Port = 70
	cfg.SysLog = &NullLogger{}
	cfg.AccLog = &NullLogger{}
	srv := NewServer(cfg, handler)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go srv.Serve(ln)
	t.Cleanup(func() { srv.Close() })

	return ln.Addr().String()
}

// exchange writes a raw request and reads until the server closes the
// connection.
func exchange(t *testing.T, addr, request string) string {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(5 * time.Second))
	_, err = io.WriteString(conn, request)
	require.NoError(t, err)

	body, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(body)
}

func echoHandler() http.Handler {
	m := testConfig().Menu()
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, m.Render(
			m.Dir("Home", "/"),
			"Welcome over "+Scheme(r),
		))
	})

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		query := Search(r)
		if query == "" {
			query = r.URL.Query().Get("q")
		}
		io.WriteString(w, "searched: "+query)
	})

	mux.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})

	return mux
}

func TestServeGopher(t *testing.T) {
	addr := startServer(t, Config{}, echoHandler())

	body := exchange(t, addr, "/\r\n")

	assert.Equal(t,
		"1Home\t/\texample.com\t70\r\n"+
			"iWelcome over gopher\tfake\texample.com\t0\r\n"+
			".\r\n",
		body)

	/* No HTTP framing leaks onto the Gopher wire */
	assert.NotContains(t, body, "HTTP/")
	assert.NotContains(t, body, "Content-Type")
}

func TestServeGopherSearch(t *testing.T) {
	addr := startServer(t, Config{}, echoHandler())

	body := exchange(t, addr, "/search\tgopher history\r\n")
	assert.Equal(t, "searched: gopher history", body)
}

func TestServeGopherEmptySelector(t *testing.T) {
	addr := startServer(t, Config{}, echoHandler())

	body := exchange(t, addr, "\r\n")
	assert.Contains(t, body, "1Home\t/\texample.com\t70\r\n")
}

func TestServeHTTPPassthrough(t *testing.T) {
	addr := startServer(t, Config{}, echoHandler())

	body := exchange(t, addr,
		"GET /search?q=deep+web HTTP/1.1\r\n"+
			"Host: example.com\r\n"+
			"Connection: close\r\n"+
			"\r\n")

	assert.True(t, strings.HasPrefix(body, "HTTP/1.1 200"), "got %q", body)
	assert.Contains(t, body, "\r\n\r\nsearched: deep web")
}

func TestServeHTTPKeepsStatusCodes(t *testing.T) {
	addr := startServer(t, Config{}, http.NotFoundHandler())

	body := exchange(t, addr,
		"GET /nope HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n")

	assert.True(t, strings.HasPrefix(body, "HTTP/1.1 404"), "got %q", body)
}

func TestMalformedRequestDroppedSilently(t *testing.T) {
	addr := startServer(t, Config{}, echoHandler())

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	/* An endless first line: the server hangs up without a byte */
	io.WriteString(conn, strings.Repeat("a", MaxRequestLen+100))

	body, _ := io.ReadAll(conn)
	assert.Empty(t, body)
}

func TestEarlyCloseDroppedSilently(t *testing.T) {
	addr := startServer(t, Config{}, echoHandler())

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	io.WriteString(conn, "/half")
	conn.Close()

	/* The server keeps serving afterwards */
	body := exchange(t, addr, "/\r\n")
	assert.Contains(t, body, "1Home")
}

func TestURLSelectorServesRedirectDocument(t *testing.T) {
	addr := startServer(t, Config{}, echoHandler())

	body := exchange(t, addr, "URL:http://example.org/page\r\n")

	assert.Contains(t, body, "<META HTTP-EQUIV=\"refresh\"")
	assert.Contains(t, body, "http://example.org/page")
	assert.NotContains(t, body, "HTTP/1") /* plain document, no framing */
}

func TestPanicBecomesErrorDocument(t *testing.T) {
	addr := startServer(t, Config{}, echoHandler())

	body := exchange(t, addr, "/boom\r\n")
	assert.Contains(t, body, "3500 Internal Server Error\tfake\texample.com\t0")
	assert.NotContains(t, body, "goroutine") /* stack traces are off by default */
}

func TestPanicStackTraceOptIn(t *testing.T) {
	addr := startServer(t, Config{ShowStackTrace: true}, echoHandler())

	body := exchange(t, addr, "/boom\r\n")
	assert.Contains(t, body, "3500 Internal Server Error")
	assert.Contains(t, body, "goroutine")
}

func TestMaxConnsSerializes(t *testing.T) {
	addr := startServer(t, Config{MaxConns: 1}, echoHandler())

	for i := 0; i < 3; i++ {
		body := exchange(t, addr, "/\r\n")
		assert.Contains(t, body, "1Home")
	}
}

func TestCloseStopsServing(t *testing.T) {
	cfg := Config{
		Hostname: "example.com",
		Port:     70,
		SysLog:   &NullLogger{},
		AccLog:   &NullLogger{},
	}
	srv := NewServer(cfg, echoHandler())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln)

	/* Make sure the accept loop is up before shutting down */
	exchange(t, ln.Addr().String(), "/\r\n")

	require.NoError(t, srv.Close())
	time.Sleep(50 * time.Millisecond)

	_, err = net.Dial("tcp", ln.Addr().String())
	assert.Error(t, err)
}
