// Package store is the stub server's sqlite persistence: users,
// interests, the article corpus, and saved articles.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"newsdeck/types"
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	name TEXT,
	avatar_url TEXT,
	password_hash TEXT NOT NULL,
	interests TEXT NOT NULL DEFAULT '[]',
	join_date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS articles (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	url TEXT,
	source TEXT,
	author TEXT,
	image_url TEXT,
	categories TEXT NOT NULL DEFAULT '[]',
	tags TEXT NOT NULL DEFAULT '[]',
	content TEXT,
	published_at INTEGER
);

CREATE TABLE IF NOT EXISTS saved_articles (
	user_id TEXT NOT NULL,
	article_id TEXT NOT NULL,
	saved_at INTEGER NOT NULL,
	PRIMARY KEY (user_id, article_id)
);
`

// StoredUser couples the public user with its credential hash.
type StoredUser struct {
	User         types.User
	PasswordHash string
	JoinDate     string
}

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (and bootstraps) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new account. A duplicate email is reported as a
// distinct error so the controller can map it to a validation failure.
func (s *Store) CreateUser(u StoredUser) error {
	interests, _ := json.Marshal(u.User.Interests)
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, name, avatar_url, password_hash, interests, join_date) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.User.ID, u.User.Email, u.User.Name, u.User.AvatarURL, u.PasswordHash, string(interests), u.JoinDate,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ErrEmailTaken reports a register attempt with an existing email.
var ErrEmailTaken = fmt.Errorf("email already registered")

// ErrNotFound reports a missing row.
var ErrNotFound = sql.ErrNoRows

func scanUser(row *sql.Row) (*StoredUser, error) {
	var u StoredUser
	var interests string
	err := row.Scan(&u.User.ID, &u.User.Email, &u.User.Name, &u.User.AvatarURL, &u.PasswordHash, &interests, &u.JoinDate)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(interests), &u.User.Interests); err != nil {
		u.User.Interests = nil
	}
	return &u, nil
}

// UserByEmail looks up an account for login.
func (s *Store) UserByEmail(email string) (*StoredUser, error) {
	row := s.db.QueryRow(`SELECT id, email, name, avatar_url, password_hash, interests, join_date FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// UserByID looks up an account by ID.
func (s *Store) UserByID(id string) (*StoredUser, error) {
	row := s.db.QueryRow(`SELECT id, email, name, avatar_url, password_hash, interests, join_date FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// UpdateUser persists profile and interest changes.
func (s *Store) UpdateUser(u types.User) error {
	interests, _ := json.Marshal(u.Interests)
	_, err := s.db.Exec(
		`UPDATE users SET name = ?, avatar_url = ?, interests = ? WHERE id = ?`,
		u.Name, u.AvatarURL, string(interests), u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// UserCount returns the number of registered accounts.
func (s *Store) UserCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// UpsertArticle inserts or refreshes one article of the corpus.
func (s *Store) UpsertArticle(a types.Article) error {
	categories, _ := json.Marshal(a.Categories)
	tags, _ := json.Marshal(a.Tags)
	_, err := s.db.Exec(
		`INSERT INTO articles (id, title, description, url, source, author, image_url, categories, tags, content, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, description = excluded.description, content = excluded.content,
			image_url = excluded.image_url, categories = excluded.categories, tags = excluded.tags`,
		a.ID, a.Title, a.Description, a.URL, a.Source, a.Author, a.ImageURL,
		string(categories), string(tags), a.Content, a.PublishedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert article: %w", err)
	}
	return nil
}

func scanArticles(rows *sql.Rows) ([]types.Article, error) {
	defer rows.Close()

	var articles []types.Article
	for rows.Next() {
		var a types.Article
		var categories, tags string
		var published int64
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.URL, &a.Source, &a.Author, &a.ImageURL, &categories, &tags, &a.Content, &published); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(categories), &a.Categories)
		_ = json.Unmarshal([]byte(tags), &a.Tags)
		a.PublishedAt = time.Unix(published, 0).UTC()
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

const articleColumns = `id, title, description, url, source, author, image_url, categories, tags, content, published_at`

// Articles returns the newest articles, most recent first.
func (s *Store) Articles(limit int) ([]types.Article, error) {
	rows, err := s.db.Query(`SELECT `+articleColumns+` FROM articles ORDER BY published_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return scanArticles(rows)
}

// ArticleByID fetches a single article.
func (s *Store) ArticleByID(id string) (*types.Article, error) {
	rows, err := s.db.Query(`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNotFound
	}
	return &articles[0], nil
}

// Search filters the corpus by a case-insensitive term over title and
// description. Category filtering happens in the controller since
// categories are stored as JSON text.
func (s *Store) Search(q string, limit int) ([]types.Article, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	rows, err := s.db.Query(
		`SELECT `+articleColumns+` FROM articles
		 WHERE lower(title) LIKE ? OR lower(description) LIKE ?
		 ORDER BY published_at DESC LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return scanArticles(rows)
}

// ArticleCount returns the corpus size.
func (s *Store) ArticleCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&n)
	return n, err
}

// SaveArticle stores the article (if new) and marks it saved for the
// user. Saving twice is a no-op.
func (s *Store) SaveArticle(userID string, a types.Article) error {
	if err := s.UpsertArticle(a); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO saved_articles (user_id, article_id, saved_at) VALUES (?, ?, ?)`,
		userID, a.ID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}
	return nil
}

// UnsaveArticle drops the saved mark for the user.
func (s *Store) UnsaveArticle(userID, articleID string) error {
	_, err := s.db.Exec(`DELETE FROM saved_articles WHERE user_id = ? AND article_id = ?`, userID, articleID)
	if err != nil {
		return fmt.Errorf("failed to unsave article: %w", err)
	}
	return nil
}

// SavedArticles lists the user's saved articles, newest save first.
func (s *Store) SavedArticles(userID string) ([]types.Article, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.title, a.description, a.url, a.source, a.author, a.image_url, a.categories, a.tags, a.content, a.published_at
		 FROM articles a JOIN saved_articles sa ON sa.article_id = a.id
		 WHERE sa.user_id = ? ORDER BY sa.saved_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved articles: %w", err)
	}
	return scanArticles(rows)
}

// IsSaved reports whether the user saved the article.
func (s *Store) IsSaved(userID, articleID string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM saved_articles WHERE user_id = ? AND article_id = ?`, userID, articleID).Scan(&n)
	return n > 0, err
}
