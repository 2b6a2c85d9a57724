// Package htmltext reduces raw markup to clean visible text and
// harvests the content-relevant links a page carries.
package htmltext

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noiseSelector lists the element kinds removed before text extraction.
const noiseSelector = "script, style, noscript, header, footer, nav, aside"

// Clean parses markup, removes noise subtrees and returns the visible
// text with whitespace collapsed to single spaces. Parsing is always
// best-effort: malformed markup yields degraded text, never an error.
func Clean(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.Join(strings.Fields(markup), " ")
	}

	doc.Find(noiseSelector).Remove()

	var parts []string
	for _, root := range doc.Selection.Nodes {
		collectText(root, &parts)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// Links returns the unique absolute URLs of every anchor in markup,
// resolved against baseURL. Excluded: mailto and javascript targets,
// fragment-only hrefs, and the page's own URL. The result is sorted so
// logs and prompts stay reproducible; ordering carries no meaning.
func Links(markup, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	seen := map[string]struct{}{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "javascript:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if abs == "" || abs == baseURL {
			return
		}
		seen[abs] = struct{}{}
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}
