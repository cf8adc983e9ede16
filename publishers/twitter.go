package publishers

import (
	"context"
	"fmt"
	"time"

	"crosspost/config"
	"crosspost/models"

	"github.com/google/uuid"
)

type TwitterPublisher struct {
	cfg *config.Config
}

func NewTwitterPublisher(cfg *config.Config) *TwitterPublisher {
	return &TwitterPublisher{cfg: cfg}
}

func (t *TwitterPublisher) Publish(ctx context.Context, post *models.Post, account *models.SocialAccount) models.DeliveryOutcome {
	if account == nil || account.AccessToken == "" {
		return models.DeliveryOutcome{
			Platform: models.Twitter,
			Success:  false,
			Error:    "Missing Twitter credentials",
		}
	}

	if t.cfg.TwitterAPIKey == "" {
		return models.DeliveryOutcome{
			Platform: models.Twitter,
			Success:  false,
			Error:    "Twitter API credentials not configured",
		}
	}

	if err := simulateCall(ctx, 500*time.Millisecond); err != nil {
		return models.DeliveryOutcome{
			Platform: models.Twitter,
			Success:  false,
			Error:    fmt.Sprintf("Twitter posting failed: %v", err),
		}
	}

	return models.DeliveryOutcome{
		Platform:       models.Twitter,
		Success:        true,
		PlatformPostID: fmt.Sprintf("tw_%s", uuid.New().String()[:8]),
	}
}
