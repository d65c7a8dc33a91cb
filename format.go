package gopherweb

import (
	"strings"
)

// Align selects which side of the padding a line sits on.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// FigletFunc renders text as an ascii art banner no wider than width.
// The actual engine is a third party concern; the formatter only owns
// the invocation contract and falls back to the bare text on error.
type FigletFunc func(text string, width int) (string, error)

// TabulateFunc renders rows as an ascii table.
type TabulateFunc func(rows [][]string, headers []string) (string, error)

// Formatter lays out fixed width text for a protocol with no visual
// markup. All operations are pure, byte oriented over ASCII input,
// and treat a width argument of 0 as "use the default". Multi-line
// output joins with CRLF, matching the Gopher line convention. The
// only failure mode is a resolved width of zero or less.
type Formatter struct {
	Width    int
	Figlet   FigletFunc
	Tabulate TabulateFunc
}

func NewFormatter(width int) *Formatter {
	if width == 0 {
		width = DefaultWidth
	}
	return &Formatter{Width: width}
}

func (f *Formatter) resolve(width int) (int, error) {
	if width == 0 {
		width = f.Width
	}
	if width <= 0 {
		return 0, invalidWidth(width)
	}
	return width, nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// padLine pads a single line to width with fill, never truncating.
// On an odd padding remainder for centered text, the extra fill
// character goes to the right.
func padLine(line string, width int, align Align, fill rune) string {
	gap := width - len(line)
	if gap <= 0 {
		return line
	}
	switch align {
	case AlignRight:
		return strings.Repeat(string(fill), gap) + line
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(string(fill), left) + line + strings.Repeat(string(fill), gap-left)
	default:
		return line + strings.Repeat(string(fill), gap)
	}
}

// Pad pads every line of text independently to width. Lines already
// wider than width pass through untouched.
func (f *Formatter) Pad(text string, width int, align Align, fill rune) (string, error) {
	w, err := f.resolve(width)
	if err != nil {
		return "", err
	}
	if fill == 0 {
		fill = ' '
	}

	lines := splitLines(text)
	for i, line := range lines {
		lines[i] = padLine(line, w, align, fill)
	}
	return strings.Join(lines, CrLf), nil
}

// Ljust left-justifies text, space filled.
func (f *Formatter) Ljust(text string, width int) (string, error) {
	return f.Pad(text, width, AlignLeft, ' ')
}

// Center centers text, space filled.
func (f *Formatter) Center(text string, width int) (string, error) {
	return f.Pad(text, width, AlignCenter, ' ')
}

// Rjust right-justifies text, space filled.
func (f *Formatter) Rjust(text string, width int) (string, error) {
	return f.Pad(text, width, AlignRight, ' ')
}

// Banner surrounds text with a top and bottom rule of border repeated
// to width. A non-empty side string brackets each centered content
// line:
//
//	======================================
//	|            Hello World!            |
//	======================================
//
// Multi-line input shares one top and bottom rule.
func (f *Formatter) Banner(text string, width int, border, side string) (string, error) {
	w, err := f.resolve(width)
	if err != nil {
		return "", err
	}
	if border == "" {
		border = "="
	}

	offset := len(side)
	var lines []string
	for _, line := range splitLines(text) {
		centered := padLine(line, w, AlignCenter, ' ')
		if side != "" && len(centered) >= 2*offset {
			centered = side + centered[offset:len(centered)-offset] + side
		}
		lines = append(lines, centered)
	}

	rule := strings.Repeat(border, w)[:w]
	lines = append([]string{rule}, append(lines, rule)...)
	return strings.Join(lines, CrLf), nil
}

// Underline appends a rule under the text, as wide as the text's
// widest line rather than the configured width.
func (f *Formatter) Underline(text string, ch rune) string {
	if ch == 0 {
		ch = '-'
	}
	width := 0
	for _, line := range splitLines(text) {
		if len(line) > width {
			width = len(line)
		}
	}
	return text + CrLf + strings.Repeat(string(ch), width)
}

// Wrap greedily word-wraps each line of text to width minus the
// indent, prefixing every output line with indent. Words longer than
// the available width go on a line of their own, unsplit.
func (f *Formatter) Wrap(text string, width int, indent string) (string, error) {
	w, err := f.resolve(width)
	if err != nil {
		return "", err
	}
	avail := w - len(indent)
	if avail <= 0 {
		return "", invalidWidth(avail)
	}

	var out []string
	for _, line := range splitLines(text) {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := words[0]
		for _, word := range words[1:] {
			if len(cur)+1+len(word) <= avail {
				cur += " " + word
			} else {
				out = append(out, indent+cur)
				cur = word
			}
		}
		out = append(out, indent+cur)
	}
	return strings.Join(out, CrLf), nil
}

// FloatRight lays two blocks side by side: left block left-aligned,
// right block right-aligned, gap filled with fill. The shorter block
// is blank padded. When a combined line overflows, the rightmost
// width characters win.
func (f *Formatter) FloatRight(left, right string, width int, fill rune) (string, error) {
	w, err := f.resolve(width)
	if err != nil {
		return "", err
	}
	if fill == 0 {
		fill = ' '
	}

	leftLines := splitLines(left)
	rightLines := splitLines(right)
	n := len(leftLines)
	if len(rightLines) > n {
		n = len(rightLines)
	}

	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}

		padding := w - len(r)
		if padding < 0 {
			padding = 0
		}
		line := padLine(l, padding, AlignLeft, fill) + r
		if len(line) > w {
			line = line[len(line)-w:]
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, CrLf), nil
}

// Join inserts sep between every character of text, for letter
// spaced headers.
func (f *Formatter) Join(text, sep string) string {
	return strings.Join(strings.Split(text, ""), sep)
}

// FigletText renders text through the configured figlet engine,
// falling back to the bare text when no engine is set or rendering
// fails (a glyph can be too large for the width, among other engine
// errors).
func (f *Formatter) FigletText(text string, width int) string {
	w, err := f.resolve(width)
	if err != nil || f.Figlet == nil {
		return text
	}
	out, err := f.Figlet(text, w)
	if err != nil {
		return text
	}
	return out
}

// TabulateRows renders rows through the configured table engine, or a
// plain two-space column fallback. Either way every output line is
// space padded to the widest, so the table as a whole can be centered
// or right aligned afterwards.
func (f *Formatter) TabulateRows(rows [][]string, headers []string) string {
	var text string
	if f.Tabulate != nil {
		if out, err := f.Tabulate(rows, headers); err == nil {
			text = out
		}
	}
	if text == "" {
		var b strings.Builder
		if len(headers) > 0 {
			b.WriteString(strings.Join(headers, "  ") + "\n")
		}
		for _, row := range rows {
			b.WriteString(strings.Join(row, "  ") + "\n")
		}
		text = strings.TrimSuffix(b.String(), "\n")
	}

	lines := splitLines(text)
	width := 0
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}
	for i, line := range lines {
		lines[i] = padLine(line, width, AlignLeft, ' ')
	}
	return strings.Join(lines, CrLf)
}
