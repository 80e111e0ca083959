package latex

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inlineHTMLToTeX keeps the visible text of an inline HTML fragment.
// Tags are dropped, except <br> which becomes a forced line break.
func inlineHTMLToTeX(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; keep what was read.
			return b.String()
		case html.TextToken:
			b.WriteString(Escape(string(z.Text())))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Br {
				b.WriteString(` \\` + "\n")
			}
		}
	}
}

// htmlBlockText returns the text content of an HTML block with surrounding
// blanks removed. Comments and markup yield nothing.
func htmlBlockText(block string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(block))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text())
}
