package types

// Request and response envelopes for the aggregator REST API.
// The server is an external collaborator; only the shapes the client
// relies on are modeled here.

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// ProfileResponse wraps the user returned by GET/PUT /auth/profile.
type ProfileResponse struct {
	User *User `json:"user"`
}

// ProfileUpdateRequest is the body for PUT /auth/profile.
// Nil fields are omitted so the server keeps the current value.
type ProfileUpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// InterestsUpdateRequest is the body for PUT /auth/interests.
type InterestsUpdateRequest struct {
	Interests []string `json:"interests"`
}

// FeedResponse wraps GET /news/feed and GET /news/search results.
type FeedResponse struct {
	Articles []Article `json:"articles"`
}

// SavedResponse wraps GET /news/saved.
type SavedResponse struct {
	SavedArticles []Article `json:"savedArticles"`
}

// TrendingCategory is one entry of the trending dashboard breakdowns.
type TrendingCategory struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TrendingResponse is the payload of GET /stats/trending.
type TrendingResponse struct {
	Categories    []TrendingCategory `json:"categories"`
	Sources       []TrendingCategory `json:"sources"`
	Tags          []TrendingCategory `json:"tags"`
	TotalArticles int                `json:"totalArticles"`
	TotalUsers    int                `json:"totalUsers"`
	TrendingToday []Article          `json:"trendingToday"`
}

// ErrorPayload covers the error body shapes the API has been observed to
// return. Extraction precedence lives in the client package.
type ErrorPayload struct {
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}
