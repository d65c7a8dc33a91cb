package gopherweb

import (
	"bytes"
	"text/template"
)

// TemplateContext is the capability object handed into a template
// namespace. It exposes the text formatter and the menu builder as
// plain functions without assuming any particular template engine:
// FuncMap plugs into text/template and html/template, and the
// underlying methods can be bound into anything else.
type TemplateContext struct {
	Formatter *Formatter
	Menu      *Menu
}

func NewTemplateContext(cfg Config) *TemplateContext {
	cfg = cfg.withDefaults()
	return &TemplateContext{
		Formatter: cfg.Formatter(),
		Menu:      cfg.Menu(),
	}
}

func optionalWidth(width []int) int {
	if len(width) > 0 {
		return width[0]
	}
	return 0
}

// FuncMap exposes the layout and menu operations as template
// functions. Width arguments are optional; omitted means the
// configured default.
func (t *TemplateContext) FuncMap() template.FuncMap {
	f := t.Formatter
	m := t.Menu

	return template.FuncMap{
		"menu": func() *Menu { return m },

		"wrap": func(text string, width ...int) (string, error) {
			return f.Wrap(text, optionalWidth(width), "")
		},
		"ljust": func(text string, width ...int) (string, error) {
			return f.Ljust(text, optionalWidth(width))
		},
		"center": func(text string, width ...int) (string, error) {
			return f.Center(text, optionalWidth(width))
		},
		"rjust": func(text string, width ...int) (string, error) {
			return f.Rjust(text, optionalWidth(width))
		},
		"banner": func(text string, width ...int) (string, error) {
			return f.Banner(text, optionalWidth(width), "=", "|")
		},
		"underline": func(text string) string {
			return f.Underline(text, 0)
		},
		"float_right": func(left, right string, width ...int) (string, error) {
			return f.FloatRight(left, right, optionalWidth(width), ' ')
		},
		"figlet": func(text string, width ...int) string {
			return f.FigletText(text, optionalWidth(width))
		},
		"letterspace": func(text, sep string) string {
			return f.Join(text, sep)
		},
		"tabulate": func(rows [][]string, headers ...string) string {
			return f.TabulateRows(rows, headers)
		},
	}
}

// RenderMenu executes the named template and assembles its output
// into a complete menu document, sentinel included.
func (t *TemplateContext) RenderMenu(tpl *template.Template, name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return t.Menu.Render(buf.String()), nil
}
