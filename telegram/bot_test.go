package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"crosspost/database"
	"crosspost/models"
)

type fakeStore struct {
	mu sync.Mutex

	GetSocialAccountsByUserIDFunc func(userID string) ([]*models.SocialAccount, error)
	GetPostsByUserIDFunc          func(userID string, limit int) ([]*models.Post, error)
	GetBotSettingsByUserIDFunc    func(userID string) (*models.BotSettings, error)

	createdPosts []*models.Post
	statuses     map[string]models.PostStatus
}

func (f *fakeStore) GetSocialAccountsByUserID(userID string) ([]*models.SocialAccount, error) {
	if f.GetSocialAccountsByUserIDFunc != nil {
		return f.GetSocialAccountsByUserIDFunc(userID)
	}
	return nil, nil
}

func (f *fakeStore) GetPostsByUserID(userID string, limit int) ([]*models.Post, error) {
	if f.GetPostsByUserIDFunc != nil {
		return f.GetPostsByUserIDFunc(userID, limit)
	}
	return nil, nil
}

func (f *fakeStore) GetBotSettingsByUserID(userID string) (*models.BotSettings, error) {
	if f.GetBotSettingsByUserIDFunc != nil {
		return f.GetBotSettingsByUserIDFunc(userID)
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) CreatePost(post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdPosts = append(f.createdPosts, post)
	return nil
}

func (f *fakeStore) UpdatePostStatus(id string, status models.PostStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = make(map[string]models.PostStatus)
	}
	f.statuses[id] = status
	return nil
}

type fakeScheduler struct {
	mu        sync.Mutex
	scheduled map[string]time.Time
	cancelled []string
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{scheduled: make(map[string]time.Time)}
}

func (f *fakeScheduler) Schedule(postID string, dueAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled[postID] = dueAt
}

func (f *fakeScheduler) Cancel(postID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.scheduled[postID]; !ok {
		return false
	}
	delete(f.scheduled, postID)
	f.cancelled = append(f.cancelled, postID)
	return true
}

func (f *fakeScheduler) ScheduledCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scheduled)
}

func (f *fakeScheduler) ScheduledIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.scheduled))
	for id := range f.scheduled {
		ids = append(ids, id)
	}
	return ids
}

// testBot wires a Bot against an httptest Telegram API and returns a function
// that drains the replies the bot sent.
func testBot(t *testing.T, store *fakeStore, scheduler *fakeScheduler) (*Bot, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var replies []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad sendMessage payload: %v", err)
		}
		mu.Lock()
		replies = append(replies, req.Text)
		mu.Unlock()
		json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-token", server.Client())
	client.apiBase = server.URL

	return NewBot(store, scheduler, client), func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), replies...)
	}
}

func update(text string) *Update {
	return &Update{
		UpdateID: 1,
		Message: &Message{
			MessageID: 1,
			From:      &Peer{ID: 7},
			Chat:      Chat{ID: 100},
			Text:      text,
		},
	}
}

func TestBotHelpCommand(t *testing.T) {
	bot, replies := testBot(t, &fakeStore{}, newFakeScheduler())

	bot.HandleUpdate(update("/help"))

	got := replies()
	if len(got) != 1 || !strings.Contains(got[0], "/post") {
		t.Fatalf("unexpected replies: %v", got)
	}
}

func TestBotIgnoresPlainMessages(t *testing.T) {
	bot, replies := testBot(t, &fakeStore{}, newFakeScheduler())

	bot.HandleUpdate(update("hello there"))
	bot.HandleUpdate(nil)
	bot.HandleUpdate(&Update{})

	if got := replies(); len(got) != 0 {
		t.Fatalf("bot replied to non-commands: %v", got)
	}
}

func TestBotPostRequiresConnectedAccount(t *testing.T) {
	bot, replies := testBot(t, &fakeStore{}, newFakeScheduler())

	bot.HandleUpdate(update("/post Title | description | twitter"))

	got := replies()
	if len(got) != 1 || !strings.Contains(got[0], "connect at least one") {
		t.Fatalf("unexpected replies: %v", got)
	}
}

func TestBotPostImmediate(t *testing.T) {
	store := &fakeStore{
		GetSocialAccountsByUserIDFunc: func(userID string) ([]*models.SocialAccount, error) {
			return []*models.SocialAccount{{ID: "a1", Platform: models.Twitter, IsActive: true}}, nil
		},
	}
	scheduler := newFakeScheduler()
	bot, replies := testBot(t, store, scheduler)

	bot.HandleUpdate(update("/post Title | description | twitter"))

	if len(store.createdPosts) != 1 {
		t.Fatalf("created %d posts, want 1", len(store.createdPosts))
	}
	post := store.createdPosts[0]
	if post.UserID != "7" || post.TelegramChatID != 100 || post.Status != models.StatusPending {
		t.Fatalf("unexpected post: %+v", post)
	}
	if _, ok := scheduler.scheduled[post.ID]; !ok {
		t.Fatal("immediate post was not handed to the scheduler")
	}
	got := replies()
	if len(got) != 1 || !strings.Contains(got[0], "Posting now") {
		t.Fatalf("unexpected replies: %v", got)
	}
}

func TestBotPostScheduled(t *testing.T) {
	store := &fakeStore{
		GetSocialAccountsByUserIDFunc: func(userID string) ([]*models.SocialAccount, error) {
			return []*models.SocialAccount{{ID: "a1", Platform: models.Twitter, IsActive: true}}, nil
		},
	}
	scheduler := newFakeScheduler()
	bot, replies := testBot(t, store, scheduler)

	when := time.Now().Add(time.Hour).Format("2006-01-02 15:04")
	bot.HandleUpdate(update("/post Title | description | twitter | " + when))

	if len(store.createdPosts) != 1 {
		t.Fatalf("created %d posts, want 1", len(store.createdPosts))
	}
	post := store.createdPosts[0]
	if post.ScheduledFor == nil {
		t.Fatal("scheduled post has no scheduled time")
	}
	if _, ok := scheduler.scheduled[post.ID]; !ok {
		t.Fatal("scheduled post was not armed")
	}
	got := replies()
	if len(got) != 1 || !strings.Contains(got[0], "Post scheduled") {
		t.Fatalf("unexpected replies: %v", got)
	}
}

func TestBotPostUsesDefaultPlatforms(t *testing.T) {
	store := &fakeStore{
		GetSocialAccountsByUserIDFunc: func(userID string) ([]*models.SocialAccount, error) {
			return []*models.SocialAccount{{ID: "a1", Platform: models.Facebook, IsActive: true}}, nil
		},
		GetBotSettingsByUserIDFunc: func(userID string) (*models.BotSettings, error) {
			return &models.BotSettings{
				UserID:           userID,
				DefaultPlatforms: []models.Platform{models.Facebook, models.LinkedIn},
				IsActive:         true,
			}, nil
		},
	}
	bot, _ := testBot(t, store, newFakeScheduler())

	bot.HandleUpdate(update("/post Title | description"))

	if len(store.createdPosts) != 1 {
		t.Fatalf("created %d posts, want 1", len(store.createdPosts))
	}
	platforms := store.createdPosts[0].Platforms
	if len(platforms) != 2 || platforms[0] != models.Facebook || platforms[1] != models.LinkedIn {
		t.Fatalf("platforms = %v, want bot-settings defaults", platforms)
	}
}

func TestBotCancel(t *testing.T) {
	store := &fakeStore{}
	scheduler := newFakeScheduler()
	scheduler.scheduled["p1"] = time.Now().Add(time.Hour)
	bot, replies := testBot(t, store, scheduler)

	bot.HandleUpdate(update("/cancel p1"))

	if status := store.statuses["p1"]; status != models.StatusCancelled {
		t.Fatalf("post status = %s, want %s", status, models.StatusCancelled)
	}
	got := replies()
	if len(got) != 1 || !strings.Contains(got[0], "cancelled") {
		t.Fatalf("unexpected replies: %v", got)
	}

	// Cancelling again finds nothing armed.
	bot.HandleUpdate(update("/cancel p1"))
	got = replies()
	if len(got) != 2 || !strings.Contains(got[1], "No scheduled post") {
		t.Fatalf("unexpected replies: %v", got)
	}
}

func TestBotStatus(t *testing.T) {
	scheduler := newFakeScheduler()
	scheduler.scheduled["p1"] = time.Now().Add(time.Hour)
	bot, replies := testBot(t, &fakeStore{}, scheduler)

	bot.HandleUpdate(update("/status"))

	got := replies()
	if len(got) != 1 || !strings.Contains(got[0], "1 scheduled post") || !strings.Contains(got[0], "p1") {
		t.Fatalf("unexpected replies: %v", got)
	}
}
