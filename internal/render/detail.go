package render

import (
	"strings"

	"github.com/pders01/castdex/internal/storage"
	"github.com/pders01/castdex/internal/validation"
)

// Detail builds the markdown document for one episode. All feed text is
// escaped, so the only markup in the result is the document structure
// written here.
func Detail(ep storage.EpisodeDetail) string {
	var b strings.Builder

	title := Inline(ep.Title)
	if title == "" {
		title = Inline(ep.Slug)
	}
	b.WriteString("# " + EscapeMarkdown(title) + "\n\n")

	if guest := Inline(ep.Guest); guest != "" {
		b.WriteString("**Guest:** " + EscapeMarkdown(guest) + "  \n")
	}
	b.WriteString("**Published:** " + EscapeMarkdown(FormatDate(ep.EpisodeSummary)) + "  \n")
	b.WriteString("**Duration:** " + EscapeMarkdown(FormatDuration(ep.EpisodeSummary)) + "  \n")
	b.WriteString("**Views:** " + EscapeMarkdown(FormatNumber(ep.ViewCount)) + "\n\n")

	if link, err := validation.NewExternalURLValidator().Validate(ep.YouTubeURL); err == nil {
		b.WriteString("[Watch on YouTube](<" + link + ">)\n\n")
	}

	if desc := Sanitize(ep.Description); strings.TrimSpace(desc) != "" {
		b.WriteString("## Description\n\n")
		b.WriteString(paragraphs(desc))
		b.WriteString("\n\n")
	}

	if tags := Keywords(ep.Keywords, 0); len(tags) > 0 {
		b.WriteString("## Keywords\n\n")
		escaped := make([]string, len(tags))
		for i, t := range tags {
			escaped[i] = EscapeMarkdown(t)
		}
		b.WriteString(strings.Join(escaped, " · "))
		b.WriteString("\n\n")
	}

	b.WriteString("## Transcript\n\n")
	if t := Sanitize(ep.Transcript); strings.TrimSpace(t) != "" {
		b.WriteString(paragraphs(t))
	} else {
		b.WriteString("_No transcript available._")
	}
	b.WriteString("\n")

	return b.String()
}

// paragraphs escapes each line of s. Leading indentation is dropped so no
// line turns into a code block.
func paragraphs(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = EscapeMarkdown(strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
