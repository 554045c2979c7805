package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnderscore(t *testing.T) {
	cases := map[string]string{
		"Name":          "name",
		"ImageURL":      "image_url",
		"RSSFeedURL":    "rss_feed_url",
		"LastScrapedAt": "last_scraped_at",
		"BandID":        "band_id",
		"Mp3File":       "mp3_file",
		"":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Underscore(in), in)
	}
}
