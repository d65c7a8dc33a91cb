package gopherweb

import (
	"bytes"
	"errors"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// firstLineTimeout bounds how long a client may take to complete its
// first line. A stalled peer is dropped rather than pinning a worker.
const firstLineTimeout = 30 * time.Second

// Server answers both HTTP and Gopher on a single listener. Every
// accepted connection is classified by its first line: HTTP
// connections are replayed into an internal net/http server, Gopher
// connections are translated into synthetic GET requests and
// dispatched through the same Handler, one request per connection.
type Server struct {
	Handler http.Handler

	cfg     Config
	httpSrv *http.Server
	queue   *connQueue
	sem     chan struct{}

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

// NewServer returns a server dispatching to handler. The zero fields
// of cfg are filled with defaults.
func NewServer(cfg Config, handler http.Handler) *Server {
	s := &Server{
		Handler: handler,
		cfg:     cfg.withDefaults(),
	}
	if s.cfg.MaxConns > 0 {
		s.sem = make(chan struct{}, s.cfg.MaxConns)
	}
	return s
}

// Config returns the configuration the server runs with, defaults
// applied.
func (s *Server) Config() Config {
	return s.cfg
}

// ListenAndServe listens on the configured bind address and serves
// until Close.
func (s *Server) ListenAndServe() error {
	addr := net.JoinHostPort(s.cfg.BindAddr, strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.cfg.SysLog.Info("", "Listening: gopher://%s\n", ln.Addr())
	return s.Serve(ln)
}

// Serve accepts connections from ln. Each connection is handled in
// its own goroutine; when MaxConns is set the accept loop blocks once
// the cap is reached, serializing completely at MaxConns = 1.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return net.ErrClosed
	}
	s.listener = ln
	s.queue = newConnQueue(ln.Addr())
	s.httpSrv = &http.Server{Handler: s.Handler}
	s.mu.Unlock()

	go s.httpSrv.Serve(s.queue)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.cfg.SysLog.Error("", "Error accepting connection: %s\n", err.Error())
			continue
		}

		if s.sem != nil {
			s.sem <- struct{}{}
		}
		go func() {
			defer func() {
				if s.sem != nil {
					<-s.sem
				}
			}()
			s.serveConn(conn)
		}()
	}
}

// Close stops accepting and shuts the internal HTTP server down.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	if s.queue != nil {
		s.queue.Close()
	}
	if s.httpSrv != nil {
		s.httpSrv.Close()
	}
	return err
}

func (s *Server) serveConn(conn net.Conn) {
	/* Short connection id for access log correlation */
	connID := uuid.NewString()[:8]
	prefix := "(" + conn.RemoteAddr().String() + " " + connID + ") "

	conn.SetReadDeadline(time.Now().Add(firstLineTimeout))
	line, err := readRequestLine(conn)
	if err != nil {
		/* No valid selector known yet, drop without a response */
		s.cfg.AccLog.Error(prefix, "Dropped: %s\n", err.Error())
		conn.Close()
		return
	}
	conn.SetReadDeadline(time.Time{})

	if isHTTPRequestLine(string(line)) {
		/* Replay the consumed bytes and let net/http own the
		 * connection from here, keep-alive included. */
		if !s.queue.push(&replayConn{Conn: conn, head: bytes.NewReader(line)}) {
			conn.Close()
		}
		return
	}

	defer conn.Close()

	greq, err := ParseGopherRequest(string(line))
	if err != nil {
		s.cfg.AccLog.Error(prefix, "Dropped: %s\n", err.Error())
		return
	}

	/* A selector of the form URL:<target> asks for an HTML document
	 * redirecting old web-link-unaware clients to the target site. */
	if target, ok := urlSelectorTarget(greq.Selector); ok {
		s.cfg.AccLog.Info(prefix, "Redirect: %s\n", target)
		conn.Write(htmlRedirect(target))
		return
	}

	req := greq.httpRequest(s.cfg, conn.RemoteAddr().String())
	w := newResponseWriter(conn)

	func() {
		defer func() {
			if p := recover(); p != nil {
				s.cfg.SysLog.Error(prefix, "Panic serving %q: %v\n", greq.Selector, p)
				desc := ""
				if s.cfg.ShowStackTrace {
					desc = string(debug.Stack())
				}
				ServeError(w, req, s.cfg, http.StatusInternalServerError, desc)
			}
		}()
		s.Handler.ServeHTTP(w, req)
	}()

	s.cfg.AccLog.Info(prefix, "%d %q %db\n", w.status, greq.Selector, w.written)
}

// urlSelectorTarget extracts the target of a URL: selector, with or
// without the leading slash the selector normalization added.
func urlSelectorTarget(selector string) (string, bool) {
	raw := strings.TrimPrefix(selector, "/")
	if target, ok := strings.CutPrefix(raw, "URL:"); ok && target != "" {
		return target, true
	}
	return "", false
}

/*
 * connQueue feeds sniffed HTTP connections to the internal net/http
 * server through the net.Listener interface.
 */
type connQueue struct {
	conns chan net.Conn
	addr  net.Addr
	done  chan struct{}
	once  sync.Once
}

func newConnQueue(addr net.Addr) *connQueue {
	return &connQueue{
		conns: make(chan net.Conn),
		addr:  addr,
		done:  make(chan struct{}),
	}
}

func (q *connQueue) push(conn net.Conn) bool {
	select {
	case q.conns <- conn:
		return true
	case <-q.done:
		return false
	}
}

func (q *connQueue) Accept() (net.Conn, error) {
	select {
	case conn := <-q.conns:
		return conn, nil
	case <-q.done:
		return nil, net.ErrClosed
	}
}

func (q *connQueue) Close() error {
	q.once.Do(func() { close(q.done) })
	return nil
}

func (q *connQueue) Addr() net.Addr {
	return q.addr
}

// replayConn hands back the already consumed first line before
// reading from the socket again.
type replayConn struct {
	net.Conn
	head *bytes.Reader
}

func (c *replayConn) Read(p []byte) (int, error) {
	if c.head != nil {
		if c.head.Len() > 0 {
			return c.head.Read(p)
		}
		c.head = nil
	}
	return c.Conn.Read(p)
}
