package builder

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pders01/castdex/internal/storage"
)

var episodeLink = regexp.MustCompile(`^\.\./episodes/([^/]+)/transcript\.md$`)

// topicLinks returns every link in a topic page that points at an episode
// transcript, in document order. The link text is the guest name.
func topicLinks(source []byte) []storage.TopicEpisode {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	links := []storage.TopicEpisode{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		m := episodeLink.FindStringSubmatch(string(link.Destination))
		if m == nil {
			return ast.WalkSkipChildren, nil
		}
		links = append(links, storage.TopicEpisode{
			Slug:  m[1],
			Guest: strings.TrimSpace(inlineText(link, source)),
		})
		return ast.WalkSkipChildren, nil
	})
	return links
}

func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(inlineText(c, source))
		}
	}
	return b.String()
}

// displayName turns a topic file stem into a heading: "product-market-fit"
// becomes "Product Market Fit".
func displayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}
