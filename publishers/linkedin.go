package publishers

import (
	"context"
	"fmt"
	"time"

	"crosspost/config"
	"crosspost/models"

	"github.com/google/uuid"
)

type LinkedInPublisher struct {
	cfg *config.Config
}

func NewLinkedInPublisher(cfg *config.Config) *LinkedInPublisher {
	return &LinkedInPublisher{cfg: cfg}
}

func (l *LinkedInPublisher) Publish(ctx context.Context, post *models.Post, account *models.SocialAccount) models.DeliveryOutcome {
	if account == nil || account.AccessToken == "" {
		return models.DeliveryOutcome{
			Platform: models.LinkedIn,
			Success:  false,
			Error:    "Missing LinkedIn credentials",
		}
	}

	if l.cfg.LinkedInClientID == "" {
		return models.DeliveryOutcome{
			Platform: models.LinkedIn,
			Success:  false,
			Error:    "LinkedIn API credentials not configured",
		}
	}

	if err := simulateCall(ctx, 500*time.Millisecond); err != nil {
		return models.DeliveryOutcome{
			Platform: models.LinkedIn,
			Success:  false,
			Error:    fmt.Sprintf("LinkedIn posting failed: %v", err),
		}
	}

	return models.DeliveryOutcome{
		Platform:       models.LinkedIn,
		Success:        true,
		PlatformPostID: fmt.Sprintf("li_%s", uuid.New().String()[:8]),
	}
}
