package publishers

import (
	"context"
	"strings"
	"testing"
	"time"

	"crosspost/config"
	"crosspost/models"
)

func configuredConfig() *config.Config {
	return &config.Config{
		TwitterAPIKey:        "key",
		FacebookAppID:        "app",
		FacebookAppSecret:    "secret",
		InstagramAccessToken: "token",
		LinkedInClientID:     "client",
	}
}

func platformAccount(platform models.Platform) *models.SocialAccount {
	return &models.SocialAccount{
		ID:          "acc-1",
		UserID:      "user-1",
		Platform:    platform,
		AccountName: "bot",
		AccessToken: "token",
		IsActive:    true,
	}
}

func testPost() *models.Post {
	return &models.Post{ID: "p1", UserID: "user-1", Title: "hi", Description: "there"}
}

func TestPublishersSuccess(t *testing.T) {
	cfg := configuredConfig()

	tests := []struct {
		platform  models.Platform
		publisher PlatformPublisher
		prefix    string
	}{
		{models.Twitter, NewTwitterPublisher(cfg), "tw_"},
		{models.Facebook, NewFacebookPublisher(cfg), "fb_"},
		{models.Instagram, NewInstagramPublisher(cfg), "ig_"},
		{models.LinkedIn, NewLinkedInPublisher(cfg), "li_"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			outcome := tt.publisher.Publish(context.Background(), testPost(), platformAccount(tt.platform))
			if !outcome.Success {
				t.Fatalf("Publish failed: %s", outcome.Error)
			}
			if outcome.Platform != tt.platform {
				t.Errorf("Platform = %s, want %s", outcome.Platform, tt.platform)
			}
			if !strings.HasPrefix(outcome.PlatformPostID, tt.prefix) {
				t.Errorf("PlatformPostID = %q, want %q prefix", outcome.PlatformPostID, tt.prefix)
			}
		})
	}
}

func TestPublishersRequireAccountToken(t *testing.T) {
	cfg := configuredConfig()

	tests := []struct {
		platform  models.Platform
		publisher PlatformPublisher
	}{
		{models.Twitter, NewTwitterPublisher(cfg)},
		{models.Facebook, NewFacebookPublisher(cfg)},
		{models.Instagram, NewInstagramPublisher(cfg)},
		{models.LinkedIn, NewLinkedInPublisher(cfg)},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			outcome := tt.publisher.Publish(context.Background(), testPost(), nil)
			if outcome.Success {
				t.Fatal("Publish succeeded without an account")
			}
			if !strings.Contains(outcome.Error, "credentials") {
				t.Errorf("error = %q, want a credentials error", outcome.Error)
			}
		})
	}
}

func TestPublishersRequireAppConfig(t *testing.T) {
	cfg := &config.Config{} // nothing configured

	outcome := NewTwitterPublisher(cfg).Publish(context.Background(), testPost(), platformAccount(models.Twitter))
	if outcome.Success {
		t.Fatal("Publish succeeded with no API credentials configured")
	}
	if outcome.Error != "Twitter API credentials not configured" {
		t.Fatalf("error = %q", outcome.Error)
	}
}

func TestPublishHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	outcome := NewTwitterPublisher(configuredConfig()).Publish(ctx, testPost(), platformAccount(models.Twitter))

	if outcome.Success {
		t.Fatal("Publish succeeded despite an expired context")
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("Publish ignored the context deadline (took %s)", elapsed)
	}
}

func TestStoryPublishers(t *testing.T) {
	cfg := configuredConfig()
	cfg.SnapchatClientID = "client"
	cfg.SnapchatClientSecret = "secret"

	tests := []struct {
		platform  models.Platform
		publisher StoryPublisher
		prefix    string
	}{
		{models.Instagram, NewInstagramPublisher(cfg), "ig_story_"},
		{models.Snapchat, NewSnapchatPublisher(cfg), "sc_story_"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			outcome := tt.publisher.PublishStory(context.Background(), "story text", "", platformAccount(tt.platform))
			if !outcome.Success {
				t.Fatalf("PublishStory failed: %s", outcome.Error)
			}
			if !strings.HasPrefix(outcome.PlatformPostID, tt.prefix) {
				t.Errorf("PlatformPostID = %q, want %q prefix", outcome.PlatformPostID, tt.prefix)
			}
		})
	}
}
