package publishers

import (
	"context"
	"fmt"
	"time"

	"crosspost/config"
	"crosspost/models"

	"github.com/google/uuid"
)

type InstagramPublisher struct {
	cfg *config.Config
}

func NewInstagramPublisher(cfg *config.Config) *InstagramPublisher {
	return &InstagramPublisher{cfg: cfg}
}

func (i *InstagramPublisher) Publish(ctx context.Context, post *models.Post, account *models.SocialAccount) models.DeliveryOutcome {
	if account == nil || account.AccessToken == "" {
		return models.DeliveryOutcome{
			Platform: models.Instagram,
			Success:  false,
			Error:    "Missing Instagram credentials",
		}
	}

	if i.cfg.InstagramAccessToken == "" {
		return models.DeliveryOutcome{
			Platform: models.Instagram,
			Success:  false,
			Error:    "Instagram API credentials not configured",
		}
	}

	if err := simulateCall(ctx, 500*time.Millisecond); err != nil {
		return models.DeliveryOutcome{
			Platform: models.Instagram,
			Success:  false,
			Error:    fmt.Sprintf("Instagram posting failed: %v", err),
		}
	}

	return models.DeliveryOutcome{
		Platform:       models.Instagram,
		Success:        true,
		PlatformPostID: fmt.Sprintf("ig_%s", uuid.New().String()[:8]),
	}
}

// PublishStory posts an ephemeral story with an optional image.
func (i *InstagramPublisher) PublishStory(ctx context.Context, content, imageURL string, account *models.SocialAccount) models.DeliveryOutcome {
	if account == nil || account.AccessToken == "" {
		return models.DeliveryOutcome{
			Platform: models.Instagram,
			Success:  false,
			Error:    "Missing Instagram credentials",
		}
	}

	if i.cfg.InstagramAccessToken == "" {
		return models.DeliveryOutcome{
			Platform: models.Instagram,
			Success:  false,
			Error:    "Instagram API credentials not configured",
		}
	}

	if err := simulateCall(ctx, 500*time.Millisecond); err != nil {
		return models.DeliveryOutcome{
			Platform: models.Instagram,
			Success:  false,
			Error:    fmt.Sprintf("Instagram story posting failed: %v", err),
		}
	}

	return models.DeliveryOutcome{
		Platform:       models.Instagram,
		Success:        true,
		PlatformPostID: fmt.Sprintf("ig_story_%s", uuid.New().String()[:8]),
	}
}
