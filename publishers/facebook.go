package publishers

import (
	"context"
	"fmt"
	"time"

	"crosspost/config"
	"crosspost/models"

	"github.com/google/uuid"
)

type FacebookPublisher struct {
	cfg *config.Config
}

func NewFacebookPublisher(cfg *config.Config) *FacebookPublisher {
	return &FacebookPublisher{cfg: cfg}
}

func (f *FacebookPublisher) Publish(ctx context.Context, post *models.Post, account *models.SocialAccount) models.DeliveryOutcome {
	if account == nil || account.AccessToken == "" {
		return models.DeliveryOutcome{
			Platform: models.Facebook,
			Success:  false,
			Error:    "Missing Facebook credentials",
		}
	}

	if f.cfg.FacebookAppID == "" {
		return models.DeliveryOutcome{
			Platform: models.Facebook,
			Success:  false,
			Error:    "Facebook API credentials not configured",
		}
	}

	if err := simulateCall(ctx, 500*time.Millisecond); err != nil {
		return models.DeliveryOutcome{
			Platform: models.Facebook,
			Success:  false,
			Error:    fmt.Sprintf("Facebook posting failed: %v", err),
		}
	}

	return models.DeliveryOutcome{
		Platform:       models.Facebook,
		Success:        true,
		PlatformPostID: fmt.Sprintf("fb_%s", uuid.New().String()[:8]),
	}
}
