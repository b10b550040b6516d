package converter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// removeTags are HTML tags that should be stripped entirely during conversion.
var removeTags = []string{
	"nav", "header", "footer", "aside", "script", "style", "noscript", "iframe",
}

var (
	multiBlankLines = regexp.MustCompile(`\n{3,}`)
	lineBreaks      = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// RemoveEmptyLines drops every empty or whitespace-only line and joins the
// rest with "\n". CRLF, CR and LF are all treated as line terminators.
func RemoveEmptyLines(text string) string {
	lines := strings.Split(lineBreaks.Replace(text), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// ConvertHTML converts an extracted HTML fragment to markdown.
func ConvertHTML(extractedHTML string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	for _, tag := range removeTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}

	md, err := conv.ConvertString(extractedHTML)
	if err != nil {
		return "", fmt.Errorf("html-to-markdown conversion: %w", err)
	}

	return CleanMarkdown(md), nil
}

// ConvertPage converts page content to markdown and, when the result does not
// open with a level-1 heading, adds "# <title>" on top.
func ConvertPage(title, contentHTML string) (string, error) {
	md, err := ConvertHTML(contentHTML)
	if err != nil {
		return "", err
	}
	if title == "" || strings.HasPrefix(md, "# ") {
		return md, nil
	}
	if md == "" {
		return "# " + title, nil
	}
	return "# " + title + "\n\n" + md, nil
}

// CleanMarkdown normalizes whitespace in markdown output.
func CleanMarkdown(md string) string {
	md = lineBreaks.Replace(md)

	// Collapse 3+ blank lines to 2
	md = multiBlankLines.ReplaceAllString(md, "\n\n")

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
