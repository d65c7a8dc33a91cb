package main

import (
	"fmt"
	"io"
	"net/http"
	"text/template"

	"github.com/gopherweb/gopherweb"
)

const homeTemplate = `{{banner "gopherweb"}}
{{center (letterspace "demo server" " ")}}

You are browsing over {{.Scheme}}.

{{(menu).Query "Search this server" "/search"}}
{{if .HasFiles}}{{(menu).Dir "Browse files" "/files"}}
{{end}}{{(menu).HTML "Project homepage" "http://example.com/gopherweb"}}
{{(menu).Text "Server capabilities" "/caps.txt"}}
`

// demoHandler wires a small application onto a plain http.ServeMux.
// Nothing in here is Gopher specific beyond the helpers it calls; the
// same handler answers HTTP requests untouched.
func demoHandler(cfg gopherweb.Config, serveDir string, info gopherweb.ServerInfo) (http.Handler, error) {
	tc := gopherweb.NewTemplateContext(cfg)
	home, err := template.New("home").Funcs(tc.FuncMap()).Parse(homeTemplate)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/caps.txt", gopherweb.CapsHandler(info))
	mux.Handle("/robots.txt", gopherweb.RobotsHandler())

	if serveDir != "" {
		dir := &gopherweb.Directory{
			Root:          serveDir,
			Prefix:        "/files",
			Menu:          tc.Menu,
			ShowTimestamp: true,
		}
		mux.Handle("/files", dir.Handler(cfg))
		mux.Handle("/files/", dir.Handler(cfg))
	}

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		query := gopherweb.Search(r)
		if query == "" {
			query = r.URL.Query().Get("q")
		}

		m := tc.Menu
		body := m.Render(
			m.Title("Search results"),
			"",
			fmt.Sprintf("You searched for: %q", query),
			"",
			m.Dir("Back home", "/"),
		)
		io.WriteString(w, body)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			gopherweb.NotFound(w, r, cfg)
			return
		}

		data := map[string]interface{}{
			"Scheme":   gopherweb.Scheme(r),
			"HasFiles": serveDir != "",
		}
		body, err := tc.RenderMenu(home, "home", data)
		if err != nil {
			gopherweb.ServeError(w, r, cfg, http.StatusInternalServerError, err.Error())
			return
		}
		io.WriteString(w, body)
	})

	return mux, nil
}
