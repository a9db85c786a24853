package printer

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width and height
	FontWide   = 0x10
	FontTall   = 0x01
)

// Common paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// printable maps the typographic characters used on invoices to the
// ASCII the printer's default code page can show.
var printable = strings.NewReplacer(
	"—", "-",
	"–", "-",
	"×", "x",
	"•", "*",
	"’", "'",
	"€", "EUR",
)

// Document builds an ESC/POS byte stream for thermal printers.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document for a paper of charWidth characters.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = Width58mm
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends ESC @.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes s, wrapped to the paper width, followed by a line feed.
func (d *Document) Text(s string) *Document {
	for _, line := range Wrap(ToASCII(s), d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

// Separator prints a full-width line of char.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints key on the left and value flush right. A key too long
// to share the line with value wraps above it.
func (d *Document) KeyValue(key, value string) *Document {
	key, value = ToASCII(key), ToASCII(value)
	room := d.width - len(value) - 1
	if room < 1 {
		return d.Text(key).SetAlign(AlignRight).Text(value).SetAlign(AlignLeft)
	}

	lines := Wrap(key, room)
	if len(lines) == 0 {
		lines = []string{""}
	}
	for _, l := range lines[:len(lines)-1] {
		d.buf.WriteString(l)
		d.buf.WriteByte(LF)
	}
	last := lines[len(lines)-1]
	d.buf.WriteString(last)
	d.buf.WriteString(strings.Repeat(" ", d.width-len(last)-len(value)))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// KeyValueInt prints an integer value flush right.
func (d *Document) KeyValueInt(key string, value int) *Document {
	return d.KeyValue(key, strconv.Itoa(value))
}

// Indented prints s wrapped and indented by two spaces.
func (d *Document) Indented(s string) *Document {
	for _, line := range Wrap(ToASCII(s), d.width-2) {
		d.buf.WriteString("  ")
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// ToASCII folds accents and invoice symbols to plain ASCII. Anything left
// that the printer cannot show becomes '?'.
func ToASCII(s string) string {
	s = printable.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return '?'
		}
		return r
	}, folded)
}

// Wrap splits s into lines of at most width bytes, breaking on spaces
// where possible.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	for _, w := range words {
		for len(w) > width {
			if cur.Len() > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			lines = append(lines, w[:width])
			w = w[width:]
		}
		switch {
		case cur.Len() == 0:
			cur.WriteString(w)
		case cur.Len()+1+len(w) <= width:
			cur.WriteByte(' ')
			cur.WriteString(w)
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
