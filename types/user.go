package types

// User is the authenticated identity returned by the auth endpoints.
// The session store owns the single live copy; views read it only.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name,omitempty"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	Interests []string `json:"interests"`
}

// TokenPair holds the opaque credentials issued on login/register.
// Both tokens are persisted together and cleared together, never
// individually. The refresh flow itself is server-side only.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserStats is the profile statistics payload from GET /auth/stats.
type UserStats struct {
	SavedArticles int      `json:"savedArticles"`
	Categories    []string `json:"categories"`
	JoinDate      string   `json:"joinDate"`
}
