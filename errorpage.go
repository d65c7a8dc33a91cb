package gopherweb

import (
	"fmt"
	"io"
	"net/http"
	"path"
)

// ServeError writes an error document the client can actually render.
// HTTP requests get the stock net/http error response. Gopher clients
// cannot be redirected to an error page, so the response is a type 3
// error line followed by the wrapped description. There is no way to
// know whether the client asked for a menu, text or binary, so the
// shape is guessed from the selector: one with a file extension gets
// plain text, anything else a full menu document.
func ServeError(w http.ResponseWriter, r *http.Request, cfg Config, code int, desc string) {
	name := http.StatusText(code)
	if !IsGopher(r) {
		http.Error(w, fmt.Sprintf("%d %s", code, name), code)
		return
	}

	cfg = cfg.withDefaults()
	if desc == "" {
		desc = "An internal error has occurred"
	}

	wrapped, err := cfg.Formatter().Wrap(desc, 0, "")
	if err != nil {
		wrapped = desc
	}

	w.WriteHeader(code)
	if path.Ext(r.URL.Path) != "" {
		io.WriteString(w, fmt.Sprintf("Error: %d %s%s%s%s%s", code, name, CrLf, CrLf, wrapped, CrLf))
		return
	}

	menu := cfg.Menu()
	io.WriteString(w, menu.Render(menu.Error(code, name), "", wrapped))
}

// NotFound replies with a transport appropriate 404.
func NotFound(w http.ResponseWriter, r *http.Request, cfg Config) {
	ServeError(w, r, cfg, http.StatusNotFound, "")
}
