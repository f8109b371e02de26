package editor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"taskdeck/internal/toolbar"
)

// Notes are stored as markdown, so every toolbar mark is a pair of
// delimiters and every list type a line prefix.
type delimiters struct {
	open  string
	close string
}

var markDelimiters = map[toolbar.Mark]delimiters{
	toolbar.MarkStrong:    {"**", "**"},
	toolbar.MarkEm:        {"_", "_"},
	toolbar.MarkUnderline: {"<u>", "</u>"},
	toolbar.MarkStrike:    {"~~", "~~"},
	toolbar.MarkCode:      {"`", "`"},
}

var (
	orderedPrefix = regexp.MustCompile(`^(\s*)(\d+)\. `)
	bulletPrefix  = regexp.MustCompile(`^(\s*)[-*] `)
)

type span struct {
	start int // byte offset of the opening delimiter
	end   int // byte offset just past the closing delimiter
}

func findSpans(line string, d delimiters) []span {
	var out []span
	i := 0
	for i < len(line) {
		s := strings.Index(line[i:], d.open)
		if s < 0 {
			break
		}
		s += i
		bodyStart := s + len(d.open)
		e := strings.Index(line[bodyStart:], d.close)
		if e < 0 {
			break
		}
		e += bodyStart
		out = append(out, span{start: s, end: e + len(d.close)})
		i = e + len(d.close)
	}
	return out
}

// byteOffset converts a rune column into a byte offset into line.
func byteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line)
}

func runeColumn(line string, offset int) int {
	if offset > len(line) {
		offset = len(line)
	}
	return len([]rune(line[:offset]))
}

func spanAt(line string, col int, d delimiters) (span, bool) {
	off := byteOffset(line, col)
	for _, sp := range findSpans(line, d) {
		if sp.start <= off && off <= sp.end {
			return sp, true
		}
	}
	return span{}, false
}

// Inspect reports the formatting active at rune column col of line.
func Inspect(line string, col int) (toolbar.TextFormatting, toolbar.ListState) {
	active := func(m toolbar.Mark) bool {
		_, ok := spanAt(line, col, markDelimiters[m])
		return ok
	}
	formatting := toolbar.TextFormatting{
		StrongActive:    active(toolbar.MarkStrong),
		EmActive:        active(toolbar.MarkEm),
		UnderlineActive: active(toolbar.MarkUnderline),
		StrikeActive:    active(toolbar.MarkStrike),
		CodeActive:      active(toolbar.MarkCode),
	}
	lists := toolbar.ListState{
		OrderedListActive: orderedPrefix.MatchString(line),
		BulletListActive:  bulletPrefix.MatchString(line),
	}
	return formatting, lists
}

// ToggleMarkAt removes the mark's span around col if there is one. Otherwise
// it wraps the word under col, or inserts an empty pair with the cursor
// between the delimiters. It returns the new line and cursor column.
func ToggleMarkAt(line string, col int, mark toolbar.Mark) (string, int) {
	d, ok := markDelimiters[mark]
	if !ok {
		return line, col
	}
	off := byteOffset(line, col)
	if sp, ok := spanAt(line, col, d); ok {
		inner := line[sp.start+len(d.open) : sp.end-len(d.close)]
		out := line[:sp.start] + inner + line[sp.end:]
		newOff := off - len(d.open)
		if newOff < sp.start {
			newOff = sp.start
		}
		if newOff > sp.start+len(inner) {
			newOff = sp.start + len(inner)
		}
		return out, runeColumn(out, newOff)
	}
	start, end := wordBounds(line, off)
	if start == end {
		out := line[:off] + d.open + d.close + line[off:]
		return out, runeColumn(out, off+len(d.open))
	}
	out := line[:start] + d.open + line[start:end] + d.close + line[end:]
	return out, runeColumn(out, end+len(d.open)+len(d.close))
}

func wordBounds(line string, off int) (int, int) {
	isWord := func(r rune) bool { return !unicode.IsSpace(r) }
	runes := []rune(line)
	col := runeColumn(line, off)
	start, end := col, col
	for start > 0 && isWord(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWord(runes[end]) {
		end++
	}
	return byteOffset(line, start), byteOffset(line, end)
}

// ToggleListLine switches the list prefix of line. An existing prefix of the
// same kind is removed, one of the other kind is replaced. n is the number an
// ordered item gets. The returned delta is how far the cursor moves.
func ToggleListLine(line string, kind toolbar.ListKind, n int) (string, int) {
	indent, rest, current := splitListPrefix(line)
	var prefix string
	if current == nil || *current != kind {
		switch kind {
		case toolbar.OrderedList:
			if n < 1 {
				n = 1
			}
			prefix = strconv.Itoa(n) + ". "
		case toolbar.BulletList:
			prefix = "- "
		}
	}
	out := indent + prefix + rest
	return out, len([]rune(out)) - len([]rune(line))
}

func splitListPrefix(line string) (string, string, *toolbar.ListKind) {
	if m := orderedPrefix.FindStringSubmatch(line); m != nil {
		kind := toolbar.OrderedList
		return m[1], line[len(m[0]):], &kind
	}
	if m := bulletPrefix.FindStringSubmatch(line); m != nil {
		kind := toolbar.BulletList
		return m[1], line[len(m[0]):], &kind
	}
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	return line[:len(line)-len(trimmed)], trimmed, nil
}

// NextOrderedNumber returns the number an ordered item following prev gets.
func NextOrderedNumber(prev string) int {
	m := orderedPrefix.FindStringSubmatch(prev)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 1
	}
	return n + 1
}
