package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article represents a single news article as returned by the API.
// Views hold transient copies only; there is no client-side identity map,
// so the same article fetched twice yields two independent values.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Author      string    `json:"author,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Content     string    `json:"content,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// ArticleDetails is an article enriched with per-user and contextual data,
// as returned by GET /news/articles/:id.
type ArticleDetails struct {
	Article
	Saved   bool      `json:"saved"`
	Related []Article `json:"related,omitempty"`
}

// GenerateID creates a short, stable article ID by hashing its URL
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
