package engine

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	htmlMarkupRe = regexp.MustCompile(`(?i)<(p|div|br|ul|ol|li|h[1-6]|strong|b|em|i|span|section|article|table|body|html)\b[^>]*>`)
	htmlNoiseRe  = regexp.MustCompile(`(?is)<(script|style|noscript|iframe|svg)[^>]*>.*?</(script|style|noscript|iframe|svg)>`)
	mdEscapeRe   = regexp.MustCompile(`\\([\\` + "`" + `*_{}\[\]()#+\-.!|>~])`)
	spaceRe      = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// LooksLikeHTML reports whether s carries HTML markup (a JD pasted from
// a careers page rather than typed or copied as text).
func LooksLikeHTML(s string) bool {
	return htmlMarkupRe.MatchString(s)
}

// NormalizeJDText turns a pasted HTML job description into plain text.
// Plain text is returned unchanged. HTML goes through html-to-markdown,
// then goquery, then regex tag stripping.
func NormalizeJDText(raw string) string {
	if !LooksLikeHTML(raw) {
		return raw
	}
	html := htmlNoiseRe.ReplaceAllString(raw, "")

	if md, err := htmltomarkdown.ConvertString(html); err == nil && strings.TrimSpace(md) != "" {
		return tidyText(mdEscapeRe.ReplaceAllString(md, "$1"))
	}
	if text := goqueryText(html); text != "" {
		return tidyText(text)
	}
	return tidyText(htmlTagRe.ReplaceAllString(html, " "))
}

func goqueryText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var lines []string
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, div").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 && goquery.NodeName(s) == "div" {
			return
		}
		if t := strings.TrimSpace(s.Text()); t != "" {
			lines = append(lines, t)
		}
	})
	if len(lines) == 0 {
		return strings.TrimSpace(doc.Find("body").Text())
	}
	return strings.Join(lines, "\n")
}

// tidyText collapses runs of spaces and blank lines.
func tidyText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRe.ReplaceAllString(line, " "))
	}
	out := strings.Join(lines, "\n")
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(out, "\n\n"))
}
