package report

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// HTML renders the Markdown report as a standalone HTML fragment. Section
// markers become level-two headings so tables start their own blocks.
func (d *Dashboard) HTML() []byte {
	return toHTML(d.Markdown())
}

func toHTML(md string) []byte {
	var b strings.Builder
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			b.WriteString("\n## ")
			b.WriteString(strings.Trim(line, "[]"))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(b.String()), p, r)
}
