package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors mark the main content of a page. Local HTML sources are
// often small partials, so any match with text is taken.
var contentSelectors = []string{
	"main",
	"article",
	"[role=\"main\"]",
	"#content",
}

// noiseSelectors are elements removed from the content area before extraction.
var noiseSelectors = []string{
	"nav",
	"header",
	"footer",
	"script",
	"style",
	"noscript",
	"iframe",
	"template",
}

// Page is the part of an HTML source that goes into a bundle.
type Page struct {
	Title string // <title>, empty if the source has none
	HTML  string
}

// Extract parses an HTML source and isolates its content. With a selector,
// every match is kept in document order; without one, the first non-empty
// content element is used, falling back to the whole body.
func Extract(htmlBody []byte, selector string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return Page{}, fmt.Errorf("parsing html: %w", err)
	}

	page := Page{Title: strings.TrimSpace(doc.Find("head title").First().Text())}

	if selector == "" {
		sel := findContent(doc)
		sel.Find(strings.Join(noiseSelectors, ", ")).Remove()
		page.HTML, err = sel.Html()
		return page, err
	}

	matches := doc.Find(selector)
	if matches.Length() == 0 {
		return Page{}, fmt.Errorf("selector %q matched nothing", selector)
	}
	matches.Find(strings.Join(noiseSelectors, ", ")).Remove()

	parts := make([]string, 0, matches.Length())
	for _, node := range matches.EachIter() {
		html, err := goquery.OuterHtml(node)
		if err != nil {
			return Page{}, fmt.Errorf("rendering %q match: %w", selector, err)
		}
		parts = append(parts, html)
	}
	page.HTML = strings.Join(parts, "\n")
	return page, nil
}

func findContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		s := doc.Find(sel).First()
		if s.Length() > 0 && strings.TrimSpace(s.Text()) != "" {
			return s
		}
	}
	return doc.Find("body")
}
