package models

import "time"

type Platform string

const (
	Twitter   Platform = "twitter"
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
	LinkedIn  Platform = "linkedin"
	Snapchat  Platform = "snapchat"
)

type PostStatus string

const (
	StatusPending   PostStatus = "pending"
	StatusPosted    PostStatus = "posted"
	StatusFailed    PostStatus = "failed"
	StatusCancelled PostStatus = "cancelled"
)

// IsTerminal reports whether a status permits no further transitions.
// Posts move forward only: pending is the sole non-terminal state.
func (s PostStatus) IsTerminal() bool {
	return s != StatusPending
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type SocialAccount struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Platform     Platform  `json:"platform"`
	AccountName  string    `json:"account_name"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Post struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Platforms      []Platform `json:"platforms"`
	Status         PostStatus `json:"status"`
	TelegramChatID int64      `json:"telegram_chat_id,omitempty"`
	ScheduledFor   *time.Time `json:"scheduled_for,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// PostResult is the persisted record of one delivery attempt to one platform.
type PostResult struct {
	ID             int64     `json:"id"`
	PostID         string    `json:"post_id"`
	Platform       Platform  `json:"platform"`
	Success        bool      `json:"success"`
	PlatformPostID string    `json:"platform_post_id,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	PostedAt       time.Time `json:"posted_at"`
}

// DeliveryOutcome is the transient per-platform result of a delivery attempt,
// produced by the delivery layer before it is persisted as a PostResult.
type DeliveryOutcome struct {
	Platform       Platform `json:"platform"`
	Success        bool     `json:"success"`
	PlatformPostID string   `json:"platform_post_id,omitempty"`
	Error          string   `json:"error,omitempty"`
}

type BotSettings struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	TelegramChatID   int64      `json:"telegram_chat_id,omitempty"`
	DefaultPlatforms []Platform `json:"default_platforms"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreatePostRequest struct {
	UserID         string     `json:"user_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Platforms      []Platform `json:"platforms"`
	TelegramChatID int64      `json:"telegram_chat_id,omitempty"`
	ScheduledFor   *time.Time `json:"scheduled_for,omitempty"`
}

type PublishResponse struct {
	Post    *Post             `json:"post"`
	Results []DeliveryOutcome `json:"results,omitempty"`
	Message string            `json:"message,omitempty"`
}

type SchedulerStatusResponse struct {
	ScheduledCount int      `json:"scheduled_count"`
	ScheduledPosts []string `json:"scheduled_posts"`
}

type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

type PlatformProfile struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
}
