package gopherweb

import (
	"net"
	"net/http"
)

// responseWriter adapts the host handler's response to the Gopher
// wire format. Gopher has no representation for a status line or
// headers, so both are discarded: body bytes go to the socket
// verbatim. No menu sentinel is appended here, that is a menu
// convention owned by Menu.Render, not a transfer framing concern.
// The status code is retained for the access log only.
type responseWriter struct {
	conn        net.Conn
	header      http.Header
	status      int
	written     int64
	wroteHeader bool
}

var _ http.ResponseWriter = (*responseWriter)(nil)

func newResponseWriter(conn net.Conn) *responseWriter {
	return &responseWriter{
		conn:   conn,
		header: make(http.Header),
		status: http.StatusOK,
	}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.conn.Write(b)
	w.written += int64(n)
	return n, err
}
