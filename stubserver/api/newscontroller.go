package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsdeck/stubserver/store"
	"newsdeck/types"
)

const feedLimit = 50

func (s *Server) handleFeed(c *gin.Context) {
	articles, err := s.store.Articles(feedLimit)
	if err != nil {
		log.Printf("list articles failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Failed to load feed")
		return
	}

	// Articles matching the user's interests surface first, newest
	// first within each group.
	if u, err := s.store.UserByID(currentUserID(c)); err == nil && len(u.User.Interests) > 0 {
		articles = rankByInterests(articles, u.User.Interests)
	}

	c.JSON(http.StatusOK, types.FeedResponse{Articles: emptyIfNil(articles)})
}

func rankByInterests(articles []types.Article, interests []string) []types.Article {
	wanted := map[string]bool{}
	for _, i := range interests {
		wanted[strings.ToLower(i)] = true
	}
	matched := make([]types.Article, 0, len(articles))
	var rest []types.Article
	for _, a := range articles {
		hit := false
		for _, cat := range a.Categories {
			if wanted[strings.ToLower(cat)] {
				hit = true
				break
			}
		}
		if hit {
			matched = append(matched, a)
		} else {
			rest = append(rest, a)
		}
	}
	return append(matched, rest...)
}

func (s *Server) handleSearch(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	var categories []string
	if raw := c.Query("categories"); raw != "" {
		for _, cat := range strings.Split(raw, ",") {
			if cat = strings.ToLower(strings.TrimSpace(cat)); cat != "" {
				categories = append(categories, cat)
			}
		}
	}

	var articles []types.Article
	var err error
	if q != "" {
		articles, err = s.store.Search(q, feedLimit)
	} else {
		articles, err = s.store.Articles(feedLimit)
	}
	if err != nil {
		log.Printf("search failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Search failed")
		return
	}

	if len(categories) > 0 {
		articles = filterByCategories(articles, categories)
	}
	c.JSON(http.StatusOK, types.FeedResponse{Articles: emptyIfNil(articles)})
}

func filterByCategories(articles []types.Article, categories []string) []types.Article {
	wanted := map[string]bool{}
	for _, cat := range categories {
		wanted[cat] = true
	}
	var out []types.Article
	for _, a := range articles {
		for _, cat := range a.Categories {
			if wanted[strings.ToLower(cat)] {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func (s *Server) handleArticle(c *gin.Context) {
	id := c.Param("id")
	article, err := s.store.ArticleByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Flat message shape, no wrapping "error" object.
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		errorMessage(c, http.StatusInternalServerError, "Failed to load article")
		return
	}

	saved, err := s.store.IsSaved(currentUserID(c), id)
	if err != nil {
		log.Printf("saved check failed: %v", err)
	}

	details := types.ArticleDetails{
		Article: *article,
		Saved:   saved,
		Related: s.relatedTo(article),
	}
	c.JSON(http.StatusOK, details)
}

const relatedLimit = 3

// relatedTo picks other recent articles sharing a category.
func (s *Server) relatedTo(article *types.Article) []types.Article {
	candidates, err := s.store.Articles(feedLimit)
	if err != nil {
		return nil
	}
	shared := map[string]bool{}
	for _, cat := range article.Categories {
		shared[cat] = true
	}

	var related []types.Article
	for _, a := range candidates {
		if a.ID == article.ID {
			continue
		}
		for _, cat := range a.Categories {
			if shared[cat] {
				related = append(related, a)
				break
			}
		}
		if len(related) == relatedLimit {
			break
		}
	}
	return related
}

func (s *Server) handleSave(c *gin.Context) {
	var article types.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		errorMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if article.ID == "" {
		if article.URL == "" {
			errorMessage(c, http.StatusBadRequest, "Article ID or URL is required")
			return
		}
		article.ID = types.GenerateID(article.URL)
	}

	if err := s.store.SaveArticle(currentUserID(c), article); err != nil {
		log.Printf("save article failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Failed to save article")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article saved"})
}

func (s *Server) handleUnsave(c *gin.Context) {
	if err := s.store.UnsaveArticle(currentUserID(c), c.Param("id")); err != nil {
		log.Printf("unsave article failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Failed to remove article")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article removed"})
}

func (s *Server) handleSaved(c *gin.Context) {
	saved, err := s.store.SavedArticles(currentUserID(c))
	if err != nil {
		log.Printf("list saved failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Failed to load saved articles")
		return
	}
	c.JSON(http.StatusOK, types.SavedResponse{SavedArticles: emptyIfNil(saved)})
}

func emptyIfNil(articles []types.Article) []types.Article {
	if articles == nil {
		return []types.Article{}
	}
	return articles
}
