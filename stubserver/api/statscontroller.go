package api

import (
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"newsdeck/types"
)

const trendingWindow = 24 * time.Hour

func (s *Server) handleTrending(c *gin.Context) {
	articles, err := s.store.Articles(500)
	if err != nil {
		log.Printf("list articles failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Failed to load trending data")
		return
	}

	categoryCounts := map[string]int{}
	sourceCounts := map[string]int{}
	tagCounts := map[string]int{}
	var today []types.Article
	cutoff := time.Now().Add(-trendingWindow)

	for _, a := range articles {
		for _, cat := range a.Categories {
			categoryCounts[cat]++
		}
		if a.Source != "" {
			sourceCounts[a.Source]++
		}
		for _, tag := range a.Tags {
			tagCounts[tag]++
		}
		if a.PublishedAt.After(cutoff) && len(today) < 5 {
			today = append(today, a)
		}
	}

	totalUsers, err := s.store.UserCount()
	if err != nil {
		log.Printf("user count failed: %v", err)
	}
	totalArticles, err := s.store.ArticleCount()
	if err != nil {
		log.Printf("article count failed: %v", err)
	}

	c.JSON(http.StatusOK, types.TrendingResponse{
		Categories:    topCounts(categoryCounts, 8),
		Sources:       topCounts(sourceCounts, 5),
		Tags:          topCounts(tagCounts, 10),
		TotalArticles: totalArticles,
		TotalUsers:    totalUsers,
		TrendingToday: emptyIfNil(today),
	})
}

// topCounts converts a count map into entries sorted by count
// descending, name ascending on ties, truncated to n.
func topCounts(counts map[string]int, n int) []types.TrendingCategory {
	entries := make([]types.TrendingCategory, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, types.TrendingCategory{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
