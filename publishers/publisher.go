package publishers

import (
	"context"
	"time"

	"crosspost/models"
)

// PlatformPublisher attempts to publish a post to one external platform.
// Implementations never return an error: every failure is expressed as a
// DeliveryOutcome with Success=false so one platform cannot abort another.
type PlatformPublisher interface {
	Publish(ctx context.Context, post *models.Post, account *models.SocialAccount) models.DeliveryOutcome
}

// StoryPublisher is implemented by platforms that support ephemeral stories.
type StoryPublisher interface {
	PublishStory(ctx context.Context, content, imageURL string, account *models.SocialAccount) models.DeliveryOutcome
}

// simulateCall stands in for the real platform API round trip. It honours
// context cancellation so per-attempt timeouts are observed.
func simulateCall(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
