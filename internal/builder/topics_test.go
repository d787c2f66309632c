package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/castdex/internal/storage"
)

func TestTopicLinks(t *testing.T) {
	page := `# Pricing

Episodes that cover pricing:

- [Alice Smith](../episodes/alice-smith/transcript.md) on value pricing
- [**Bob** Jones](../episodes/bob-jones/transcript.md)
- [Not an episode](https://example.org)
- [Wrong file](../episodes/carol/notes.md)

See also [Dan](../episodes/dan-ortiz/transcript.md).
`

	got := topicLinks([]byte(page))

	assert.Equal(t, []storage.TopicEpisode{
		{Slug: "alice-smith", Guest: "Alice Smith"},
		{Slug: "bob-jones", Guest: "Bob Jones"},
		{Slug: "dan-ortiz", Guest: "Dan"},
	}, got)
}

func TestTopicLinks_None(t *testing.T) {
	assert.Empty(t, topicLinks([]byte("# Empty topic\n")))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Product Market Fit", displayName("product-market-fit"))
	assert.Equal(t, "Ai", displayName("ai"))
	assert.Equal(t, "Leadership", displayName("leadership"))
}
