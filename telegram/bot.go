package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"crosspost/database"
	"crosspost/models"
	"crosspost/utils"

	"github.com/google/uuid"
)

// Update mirrors the subset of the Bot API update payload the bot handles.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *Peer  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

type Peer struct {
	ID int64 `json:"id"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// Store is the persistence surface the bot needs.
type Store interface {
	GetSocialAccountsByUserID(userID string) ([]*models.SocialAccount, error)
	GetPostsByUserID(userID string, limit int) ([]*models.Post, error)
	GetBotSettingsByUserID(userID string) (*models.BotSettings, error)
	CreatePost(post *models.Post) error
	UpdatePostStatus(id string, status models.PostStatus) error
}

// PostScheduler is the scheduling surface the bot drives.
type PostScheduler interface {
	Schedule(postID string, dueAt time.Time)
	Cancel(postID string) bool
	ScheduledCount() int
	ScheduledIDs() []string
}

// Bot turns incoming slash-commands into the same post-creation flow the
// HTTP API uses. It is fed updates by the webhook handler.
type Bot struct {
	store     Store
	scheduler PostScheduler
	client    *Client
	now       func() time.Time
}

func NewBot(store Store, scheduler PostScheduler, client *Client) *Bot {
	return &Bot{
		store:     store,
		scheduler: scheduler,
		client:    client,
		now:       time.Now,
	}
}

const helpText = `🤖 Welcome to Social Media Cross-Poster Bot!

Commands:
/post Title | description | platform1,platform2 [| schedule time] - Create a post
/accounts - Show your connected accounts
/history - View your posting history
/status - Show scheduled posts
/cancel <post id> - Cancel a scheduled post
/help - Show this help message`

// HandleUpdate processes one webhook update. Errors are reported to the chat
// and logged; nothing propagates to the webhook handler.
func (b *Bot) HandleUpdate(update *Update) {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return
	}

	msg := update.Message
	cmd, ok := ParseCommand(msg.Text)
	if !ok {
		return
	}

	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID

	var reply string
	switch cmd.Name {
	case "start", "help":
		reply = helpText
	case "post":
		reply = b.handlePost(userID, chatID, cmd.Args)
	case "accounts":
		reply = b.handleAccounts(userID)
	case "history":
		reply = b.handleHistory(userID)
	case "status":
		reply = b.handleStatus()
	case "cancel":
		reply = b.handleCancel(cmd.Args)
	default:
		reply = "❓ Unknown command. Use /help to see what I can do."
	}

	if reply == "" {
		return
	}
	if err := b.client.Notify(chatID, reply); err != nil {
		utils.Warnf("Failed to reply to chat %d: %v", chatID, err)
	}
}

func (b *Bot) handlePost(userID string, chatID int64, args string) string {
	accounts, err := b.store.GetSocialAccountsByUserID(userID)
	if err != nil {
		utils.Errorf("Error loading accounts for %s: %v", userID, err)
		return "❌ Something went wrong. Please try again."
	}
	if len(accounts) == 0 {
		return "❌ You need to connect at least one social media account first. Use the web dashboard to get started."
	}

	var defaults []models.Platform
	settings, err := b.store.GetBotSettingsByUserID(userID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		utils.Errorf("Error loading bot settings for %s: %v", userID, err)
	}
	if settings != nil && settings.IsActive {
		defaults = settings.DefaultPlatforms
	}

	req, err := ParsePostArgs(args, defaults)
	if err != nil {
		return "❌ " + err.Error()
	}

	post := &models.Post{
		ID:             uuid.New().String(),
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Platforms:      req.Platforms,
		Status:         models.StatusPending,
		TelegramChatID: chatID,
		ScheduledFor:   req.ScheduledFor,
		CreatedAt:      b.now(),
	}

	if err := b.store.CreatePost(post); err != nil {
		utils.Errorf("Error creating post for %s: %v", userID, err)
		return "❌ Failed to create the post. Please try again."
	}

	if post.ScheduledFor != nil && post.ScheduledFor.After(b.now()) {
		b.scheduler.Schedule(post.ID, *post.ScheduledFor)
		return fmt.Sprintf("⏰ Post scheduled for %s\n🆔 %s",
			post.ScheduledFor.Format("2006-01-02 15:04"), post.ID)
	}

	// Immediate posts run through the same scheduler pipeline; the delivery
	// summary arrives as a separate message once all platforms finish.
	b.scheduler.Schedule(post.ID, b.now())
	return fmt.Sprintf("🚀 Posting now to %s...", joinPlatforms(post.Platforms))
}

func (b *Bot) handleAccounts(userID string) string {
	accounts, err := b.store.GetSocialAccountsByUserID(userID)
	if err != nil {
		utils.Errorf("Error loading accounts for %s: %v", userID, err)
		return "❌ Something went wrong. Please try again."
	}

	if len(accounts) == 0 {
		return "📱 No accounts connected yet.\n\nTo connect accounts, please use the web dashboard."
	}

	var b2 strings.Builder
	b2.WriteString("📱 Your Connected Accounts:\n\n")
	for i, account := range accounts {
		status := "❌"
		if account.IsActive {
			status = "✅"
		}
		fmt.Fprintf(&b2, "%d. %s %s - @%s\n", i+1, status,
			strings.ToUpper(string(account.Platform)), account.AccountName)
	}
	return b2.String()
}

func (b *Bot) handleHistory(userID string) string {
	posts, err := b.store.GetPostsByUserID(userID, 10)
	if err != nil {
		utils.Errorf("Error loading history for %s: %v", userID, err)
		return "❌ Something went wrong. Please try again."
	}

	if len(posts) == 0 {
		return "📝 No posts found. Use /post to create your first post!"
	}

	var b2 strings.Builder
	b2.WriteString("📝 Your Recent Posts:\n\n")
	for i, post := range posts {
		status := "⏳"
		switch post.Status {
		case models.StatusPosted:
			status = "✅"
		case models.StatusFailed:
			status = "❌"
		case models.StatusCancelled:
			status = "🚫"
		}
		fmt.Fprintf(&b2, "%d. %s %s\n   📅 %s | 📱 %s\n\n", i+1, status, post.Title,
			post.CreatedAt.Format("2006-01-02"), joinPlatforms(post.Platforms))
	}
	return b2.String()
}

func (b *Bot) handleStatus() string {
	count := b.scheduler.ScheduledCount()
	if count == 0 {
		return "⏰ No posts are currently scheduled."
	}

	var b2 strings.Builder
	fmt.Fprintf(&b2, "⏰ %d scheduled post(s):\n\n", count)
	for _, id := range b.scheduler.ScheduledIDs() {
		fmt.Fprintf(&b2, "🆔 %s\n", id)
	}
	return b2.String()
}

func (b *Bot) handleCancel(args string) string {
	postID := strings.TrimSpace(args)
	if postID == "" {
		return "❌ Usage: /cancel <post id>"
	}

	if !b.scheduler.Cancel(postID) {
		return "❌ No scheduled post found with that id."
	}

	if err := b.store.UpdatePostStatus(postID, models.StatusCancelled); err != nil {
		utils.Errorf("Error marking post %s cancelled: %v", postID, err)
	}
	return "🚫 Post cancelled successfully."
}

func joinPlatforms(platforms []models.Platform) string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
