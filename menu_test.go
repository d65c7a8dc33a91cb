package gopherweb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenu() *Menu {
	return NewMenu("example.com", 70, 70)
}

func TestEntrySerialization(t *testing.T) {
	m := testMenu()
	e := m.Entry(TypeDir, "Home", "/")
	assert.Equal(t, "1Home\t/\texample.com\t70", e.String())
	assert.Equal(t, []byte("1Home\t/\texample.com\t70\r\n"), e.Bytes())
}

func TestEntryWireShape(t *testing.T) {
	m := testMenu()
	entries := []Entry{
		m.Text("A text file", "/file.txt"),
		m.Query("Search", "/search"),
		m.Info("just some text"),
		m.Error(404, "Not Found"),
	}
	for _, e := range entries {
		wire := string(e.Bytes())
		assert.Equal(t, 3, strings.Count(wire, Tab))
		assert.True(t, strings.HasSuffix(wire, CrLf))
		assert.NotContains(t, strings.TrimSuffix(wire, CrLf), "\r")
		assert.NotContains(t, wire, "\n"+Tab)
	}
}

func TestEntrySanitizesControlBytes(t *testing.T) {
	m := testMenu()
	e := m.Entry(TypeText, "bad\tname\r\nhere", "/se\tlector")
	assert.Equal(t, "badnamehere", e.Display)
	assert.Equal(t, "/selector", e.Selector)

	// Exactly three tabs survive on the wire.
	assert.Equal(t, 3, strings.Count(string(e.Bytes()), Tab))
}

func TestEntrySelectorTruncated(t *testing.T) {
	m := testMenu()
	e := m.Entry(TypeText, "x", "/"+strings.Repeat("a", 300))
	assert.Len(t, e.Selector, MaxSelectorLen)
}

func TestEntryToPortDefaults(t *testing.T) {
	m := NewMenu("example.com", 7070, 70)

	// Internal link inherits the serving port.
	e := m.EntryTo(TypeDir, "here", "/x", "", 0)
	assert.Equal(t, "example.com", e.Host)
	assert.Equal(t, 7070, e.Port)

	// External link defaults to the well known port.
	e = m.EntryTo(TypeDir, "there", "/x", "other.org", 0)
	assert.Equal(t, 70, e.Port)
}

func TestInfoTitleError(t *testing.T) {
	m := testMenu()

	assert.Equal(t, "ihello\tfake\texample.com\t0", m.Info("hello").String())
	assert.Equal(t, "iWelcome\tTITLE\texample.com\t0", m.Title("Welcome").String())
	assert.Equal(t, "3404 Not Found\tfake\texample.com\t0", m.Error(404, "Not Found").String())
}

func TestHTMLEntryCarriesURLPrefix(t *testing.T) {
	m := testMenu()
	e := m.HTML("A website", "http://example.org/page")
	assert.Equal(t, TypeHTML, e.Type)
	assert.Equal(t, "URL:http://example.org/page", e.Selector)
}

func TestValidateField(t *testing.T) {
	assert.NoError(t, ValidateField("clean text"))
	assert.ErrorIs(t, ValidateField("has\ttab"), ErrInvalidMenuField)
	assert.ErrorIs(t, ValidateField("has\rcr"), ErrInvalidMenuField)
}

func TestRenderSentinel(t *testing.T) {
	m := testMenu()
	doc := m.Render(m.Dir("Home", "/"), "some text")

	assert.True(t, strings.HasSuffix(doc, CrLf+End+CrLf))

	// The sentinel appears exactly once, as the final line.
	var dots int
	for _, line := range strings.Split(doc, CrLf) {
		if line == End {
			dots++
		}
	}
	assert.Equal(t, 1, dots)
}

func TestRenderSentinelNotDuplicatedByContent(t *testing.T) {
	m := testMenu()
	doc := m.Render(".", "text\n.")

	var dots int
	for _, line := range strings.Split(doc, CrLf) {
		if line == End {
			dots++
		}
	}
	assert.Equal(t, 1, dots)
}

func TestRenderConvertsRawTextToInfoLines(t *testing.T) {
	m := testMenu()
	doc := m.Render("first\nsecond")

	lines := strings.Split(doc, CrLf)
	assert.Equal(t, "ifirst\tfake\texample.com\t0", lines[0])
	assert.Equal(t, "isecond\tfake\texample.com\t0", lines[1])
}

func TestRenderPreservesBlankLines(t *testing.T) {
	m := testMenu()
	doc := m.Render(m.Dir("a", "/a"), "", m.Dir("b", "/b"))

	lines := strings.Split(doc, CrLf)
	require.Len(t, lines, 5) // two entries, blank, sentinel, trailing empty
	assert.Equal(t, "i \tfake\texample.com\t0", lines[1])
}

func TestRenderPassesThroughEmbeddedMenuLines(t *testing.T) {
	m := testMenu()

	// Template output contains serialized entries mixed with text.
	raw := m.Dir("Home", "/").String() + "\nplain line"
	doc := m.Render(raw)

	lines := strings.Split(doc, CrLf)
	assert.Equal(t, "1Home\t/\texample.com\t70", lines[0])
	assert.Equal(t, "iplain line\tfake\texample.com\t0", lines[1])
}

func TestRenderClampsDisplayWidth(t *testing.T) {
	m := NewMenu("example.com", 70, 10)
	doc := m.Render(m.Dir(strings.Repeat("x", 50), "/x"))

	first := strings.Split(doc, CrLf)[0]
	display := strings.Split(first, Tab)[0]
	assert.Len(t, display, 11) // type tag plus width

	// Selector, host and port are untouched by the clamp.
	assert.True(t, strings.HasSuffix(first, "\t/x\texample.com\t70"))
}
