package details

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per wrap width. A fixed style avoids the terminal
	// background query WithAutoStyle performs, which can block.
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// renderMarkdown renders md for the given width. It falls back to the raw
// text when glamour fails.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	r := mdRenderers[width]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[width] = rr
		r = rr
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

var (
	breakTags     = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/tr|/h[1-6])\s*/?>`)
	listItemTag   = regexp.MustCompile(`(?i)<\s*li[^>]*>`)
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
	strictPolicy  = bluemonday.StrictPolicy()
)

// htmlToText turns an untrusted HTML body into plain text. Block-level
// closing tags become line breaks before every tag is stripped.
func htmlToText(body string) string {
	body = breakTags.ReplaceAllString(body, "\n")
	body = listItemTag.ReplaceAllString(body, "\n- ")
	body = strictPolicy.Sanitize(body)
	body = html.UnescapeString(body)
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.ReplaceAll(line, "\u00a0", " "), " \t\r")
	}
	body = strings.Join(lines, "\n")
	body = blankLineRuns.ReplaceAllString(body, "\n\n")
	return strings.TrimSpace(body)
}
