package export

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText converts rendered section markup into a plain-text outline, one
// block per section, with line breaks preserved.
func PlainText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", &Error{Format: "text", Message: "failed to parse markup", Cause: err}
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")

	var blocks []string
	doc.Find("div.section").Each(func(_ int, s *goquery.Selection) {
		var lines []string
		s.Find("h1, h2").Each(func(_ int, h *goquery.Selection) {
			if text := strings.TrimSpace(h.Text()); text != "" {
				lines = append(lines, text)
			}
		})
		s.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := cleanWhitespace(p.Text()); text != "" {
				lines = append(lines, text)
			}
		})
		s.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				lines = append(lines, fmt.Sprintf("- %s", text))
			}
		})
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	})

	return strings.Join(blocks, "\n\n"), nil
}

// cleanWhitespace trims every line and drops blank ones
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
