package gopherweb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// menuLinePattern matches an already well formed menu line:
// type tag plus display string, selector, host and port, tab
// delimited.
var menuLinePattern = regexp.MustCompile(`^.+\t.*\t.*\t.*$`)

// Menu builds Gopher menu lines bound to a serving host and port.
// Entries pointing at the serving host inherit its port; entries
// pointing elsewhere default to the well known Gopher port 70.
type Menu struct {
	Host  string
	Port  int
	Width int
}

func NewMenu(host string, port, width int) *Menu {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Menu{Host: host, Port: port, Width: width}
}

// Entry is one line of a Gopher menu:
//
//	T<display> TAB <selector> TAB <host> TAB <port> CRLF
//
// Display, selector and host never contain TAB, CR or LF; the
// constructors strip them, since a single stray control byte corrupts
// the menu for every client. The sanitize-and-continue policy applies
// uniformly to all fields.
type Entry struct {
	Type     ItemType
	Display  string
	Selector string
	Host     string
	Port     int
}

// String renders the line without its CRLF terminator.
func (e Entry) String() string {
	return string(e.Type) + e.Display + Tab + e.Selector + Tab + e.Host + Tab + strconv.Itoa(e.Port)
}

// Bytes renders the full wire line, CRLF included.
func (e Entry) Bytes() []byte {
	return []byte(e.String() + CrLf)
}

// sanitizeField strips the bytes that would corrupt the tab and line
// delimited wire format.
func sanitizeField(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

// ValidateField is the strict counterpart of the sanitizing
// constructors for callers that prefer failing over silent cleanup.
func ValidateField(s string) error {
	if strings.ContainsAny(s, "\t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidMenuField, s)
	}
	return nil
}

// Entry builds a menu line pointing at the serving host.
func (m *Menu) Entry(t ItemType, display, selector string) Entry {
	return m.EntryTo(t, display, selector, m.Host, m.Port)
}

// EntryTo builds a menu line pointing at an arbitrary host. An empty
// host means the serving host; port 0 means the serving port for
// internal links and port 70 for external ones. Over-long selectors
// are truncated at the RFC 1436 limit.
func (m *Menu) EntryTo(t ItemType, display, selector, host string, port int) Entry {
	if host == "" {
		host = m.Host
	}
	if port == 0 {
		if host == m.Host {
			port = m.Port
		} else {
			port = 70
		}
	}

	selector = sanitizeField(selector)
	if len(selector) > MaxSelectorLen {
		selector = selector[:MaxSelectorLen]
	}

	return Entry{
		Type:     t,
		Display:  sanitizeField(display),
		Selector: selector,
		Host:     sanitizeField(host),
		Port:     port,
	}
}

/* Typed builders for the common link kinds */

func (m *Menu) Text(display, selector string) Entry {
	return m.Entry(TypeText, display, selector)
}

func (m *Menu) Dir(display, selector string) Entry {
	return m.Entry(TypeDir, display, selector)
}

func (m *Menu) Query(display, selector string) Entry {
	return m.Entry(TypeSearch, display, selector)
}

func (m *Menu) Bin(display, selector string) Entry {
	return m.Entry(TypeBinary, display, selector)
}

func (m *Menu) Gif(display, selector string) Entry {
	return m.Entry(TypeGif, display, selector)
}

func (m *Menu) Image(display, selector string) Entry {
	return m.Entry(TypeImage, display, selector)
}

func (m *Menu) Doc(display, selector string) Entry {
	return m.Entry(TypeDoc, display, selector)
}

func (m *Menu) Sound(display, selector string) Entry {
	return m.Entry(TypeSound, display, selector)
}

func (m *Menu) Video(display, selector string) Entry {
	return m.Entry(TypeVideo, display, selector)
}

// HTML builds a web link. The selector carries the literal URL:
// prefix so clients supporting the web-link extension resolve it,
// while older clients degrade to an opaque selector the server
// answers with a redirect document.
func (m *Menu) HTML(display, url string) Entry {
	return m.Entry(TypeHTML, display, "URL:"+url)
}

// Info builds an informational line. Info lines are never followed,
// so selector, host and port hold conventional placeholders.
func (m *Menu) Info(text string) Entry {
	return Entry{
		Type:     TypeInfo,
		Display:  sanitizeField(text),
		Selector: NullSelector,
		Host:     NullHost,
		Port:     NullPort,
	}
}

// Title builds a Gopher II TITLE line: an info line whose selector is
// the literal string TITLE.
func (m *Menu) Title(text string) Entry {
	return Entry{
		Type:     TypeInfo,
		Display:  sanitizeField(text),
		Selector: TitleSelector,
		Host:     NullHost,
		Port:     NullPort,
	}
}

// Error builds a type 3 error line. HTTP style status codes are well
// understood by clients and recommended by Gopher II.
func (m *Menu) Error(code int, message string) Entry {
	return Entry{
		Type:     TypeError,
		Display:  sanitizeField(fmt.Sprintf("%d %s", code, message)),
		Selector: NullSelector,
		Host:     NullHost,
		Port:     NullPort,
	}
}

// clampLine truncates the display string of a menu line to the layout
// width, plus one for the type tag. Selector, host and port are left
// alone.
func (m *Menu) clampLine(line string) string {
	parts := strings.SplitN(line, Tab, 2)
	if len(parts[0]) > m.Width+1 {
		parts[0] = parts[0][:m.Width+1]
	}
	return strings.Join(parts, Tab)
}

// Render assembles a complete menu document from an ordered mixture
// of entries and raw text. Raw strings are split on line boundaries;
// lines already shaped like menu lines pass through, everything else
// becomes an info line, with blank lines kept as a single space so
// vertical whitespace stays visible. The document ends with exactly
// one "." CRLF sentinel.
func (m *Menu) Render(items ...interface{}) string {
	var lines []string
	for _, item := range items {
		switch v := item.(type) {
		case Entry:
			lines = append(lines, m.clampLine(v.String()))
		case string:
			lines = append(lines, m.renderText(v)...)
		case fmt.Stringer:
			lines = append(lines, m.renderText(v.String())...)
		default:
			lines = append(lines, m.renderText(fmt.Sprint(v))...)
		}
	}

	lines = append(lines, End, "")
	return strings.Join(lines, CrLf)
}

func (m *Menu) renderText(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if menuLinePattern.MatchString(line) {
			lines = append(lines, m.clampLine(line))
			continue
		}
		if line == "" {
			line = " "
		}
		lines = append(lines, m.clampLine(m.Info(line).String()))
	}
	return lines
}
