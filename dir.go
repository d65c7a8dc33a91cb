package gopherweb

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const timestampFormat = "2006-01-02 15:04:05"

// Directory maps a sandboxed filesystem tree onto Gopher menus:
// subdirectories become type 1 entries, files get a type inferred
// from their extension, and any path that would escape the root is
// refused with ErrPathTraversal.
type Directory struct {
	Root   string // local filesystem root being served
	Prefix string // selector prefix the listing is mounted under
	Menu   *Menu

	// ShowTimestamp floats the modification time of each entry to
	// the right edge of the layout width.
	ShowTimestamp bool

	// Hidden names matching any of these patterns are left out of
	// listings.
	Hidden []*regexp.Regexp
}

// Resolve maps a selector-relative name to an absolute filesystem
// path inside the sandbox. Any ".." component fails before the path
// is even cleaned; a traversal attempt must never silently collapse
// back into the root.
func (d *Directory) Resolve(name string) (string, error) {
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %s", ErrPathTraversal, name)
		}
	}

	rel := strings.TrimPrefix(path.Clean("/"+name), "/")
	abs := filepath.Join(d.Root, filepath.FromSlash(rel))

	root := filepath.Clean(d.Root)
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}
	return abs, nil
}

func (d *Directory) hidden(name string) bool {
	for _, pattern := range d.Hidden {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

func (d *Directory) selector(rel string) string {
	return path.Join("/", d.Prefix, rel)
}

// Render builds the menu document for the directory named by rel.
func (d *Directory) Render(rel string) (string, error) {
	abs, err := d.Resolve(rel)
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return "", err
	}

	var items []interface{}

	rel = strings.Trim(path.Clean("/"+rel), "/")
	if rel != "" {
		parent := path.Dir(rel)
		if parent == "." {
			parent = ""
		}
		items = append(items, d.Menu.Dir("..", d.selector(parent)))
	}

	for _, ent := range entries {
		name := ent.Name()
		if strings.HasPrefix(name, ".") || d.hidden(name) {
			continue
		}

		display := name
		itemType := TypeDir
		switch {
		case ent.IsDir():
			display += "/"
		case ent.Type().IsRegular():
			itemType = GuessType(name)
		default:
			/* Sockets, devices and friends stay unlisted */
			continue
		}

		if d.ShowTimestamp {
			if info, err := ent.Info(); err == nil {
				stamp := info.ModTime().Format(timestampFormat)
				display = padLine(display, d.Menu.Width-len(stamp), AlignLeft, ' ') + stamp
			}
		}

		items = append(items, d.Menu.Entry(itemType, display, d.selector(path.Join(rel, name))))
	}

	return d.Menu.Render(items...), nil
}

// Handler serves the directory over both transports: directories as
// menus, files as raw bytes. Traversal attempts answer with a type 3
// error document on Gopher and a 403 on HTTP.
func (d *Directory) Handler(cfg Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/"), strings.Trim(d.Prefix, "/"))
		rel = strings.TrimPrefix(rel, "/")

		abs, err := d.Resolve(rel)
		if err != nil {
			ServeError(w, r, cfg, http.StatusForbidden, "The requested path is outside the served directory")
			return
		}

		info, err := os.Stat(abs)
		if err != nil {
			ServeError(w, r, cfg, http.StatusNotFound, "")
			return
		}

		if !info.IsDir() {
			http.ServeFile(w, r, abs)
			return
		}

		body, err := d.Render(rel)
		if err != nil {
			ServeError(w, r, cfg, http.StatusInternalServerError, "")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(body))
	})
}
