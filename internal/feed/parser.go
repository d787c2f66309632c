package feed

import (
	"fmt"
	"io"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// Enrichment is what a podcast or YouTube channel feed knows about one
// episode.
type Enrichment struct {
	Link        string
	VideoID     string
	Title       string
	Description string
	Published   time.Time
}

type Parser struct {
	parser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		parser: gofeed.NewParser(),
	}
}

// Parse reads an RSS or Atom document.
func (p *Parser) Parse(reader io.Reader) ([]Enrichment, error) {
	feed, err := p.parser.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	out := make([]Enrichment, 0, len(feed.Items))
	for _, item := range feed.Items {
		e := Enrichment{
			Link:        strings.TrimSpace(item.Link),
			VideoID:     extensionValue(item.Extensions, "yt", "videoId"),
			Title:       strings.TrimSpace(item.Title),
			Description: toText(description(item)),
		}
		if item.PublishedParsed != nil {
			e.Published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			e.Published = item.UpdatedParsed.UTC()
		}
		out = append(out, e)
	}
	return out, nil
}

// description prefers the item body and falls back to YouTube's
// media:group/media:description.
func description(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	if item.Content != "" {
		return item.Content
	}
	for _, group := range item.Extensions["media"]["group"] {
		for _, d := range group.Children["description"] {
			if d.Value != "" {
				return d.Value
			}
		}
	}
	return ""
}

func extensionValue(exts ext.Extensions, prefix, name string) string {
	for _, e := range exts[prefix][name] {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}

// toText converts an HTML fragment to markdown text. Input without tags
// is returned trimmed.
func toText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(md)
}
