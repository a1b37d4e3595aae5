// Package ingest seeds the stub server's article corpus from real RSS
// feeds so the client has live-looking data to browse.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsdeck/types"
)

// Default ingestion settings.
const (
	DefaultFeedPreset = "hn"
	DefaultCount      = 20
)

// FeedPresets maps friendly names to RSS feed URLs.
var FeedPresets = map[string]string{
	"cna": "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml",
	"st":  "https://www.straitstimes.com/news/singapore/rss.xml",
	"hn":  "https://hnrss.org/newest",
	"tr":  "https://www.technologyreview.com/feed/",
}

// ResolveFeedURL maps a preset name to its URL, or returns the input
// unchanged when it is already a URL.
func ResolveFeedURL(feedInput string) string {
	if url, exists := FeedPresets[feedInput]; exists {
		return url
	}
	return feedInput
}

// FetchFeed retrieves and parses an RSS/Atom feed into articles.
func FetchFeed(feedURL string, maxCount int) ([]*types.Article, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(feed.Items), maxCount)
	articles := make([]*types.Article, 0, count)

	for i := 0; i < count; i++ {
		item := feed.Items[i]
		articles = append(articles, itemToArticle(feed, item))
	}
	return articles, nil
}

func itemToArticle(feed *gofeed.Feed, item *gofeed.Item) *types.Article {
	var publishedAt time.Time
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		publishedAt = *item.UpdatedParsed
	} else {
		publishedAt = time.Now()
	}

	author := ""
	if item.Author != nil {
		author = item.Author.Name
	}

	description := item.Description
	if description == "" {
		description = item.Content
	}

	a := &types.Article{
		ID:          types.GenerateID(item.Link),
		Title:       item.Title,
		Description: description,
		URL:         item.Link,
		Source:      feed.Title,
		Author:      author,
		Categories:  classify(item),
		Tags:        lowercaseAll(item.Categories),
		PublishedAt: publishedAt,
	}
	if item.Image != nil {
		a.ImageURL = item.Image.URL
	}
	return a
}

// classify maps feed-provided category strings onto the fixed category
// set the client filters by. Items with no recognizable category fall
// back to "world".
func classify(item *gofeed.Item) []string {
	known := map[string]bool{
		"technology": true, "business": true, "science": true, "health": true,
		"sports": true, "entertainment": true, "politics": true, "world": true,
	}
	aliases := map[string]string{
		"tech":      "technology",
		"sg":        "world",
		"singapore": "world",
		"economy":   "business",
		"finance":   "business",
		"sport":     "sports",
	}

	var out []string
	seen := map[string]bool{}
	for _, c := range item.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if mapped, ok := aliases[c]; ok {
			c = mapped
		}
		if known[c] && !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	if len(out) == 0 {
		out = []string{"world"}
	}
	return out
}

func lowercaseAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
