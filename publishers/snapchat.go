package publishers

import (
	"context"
	"fmt"
	"time"

	"crosspost/config"
	"crosspost/models"

	"github.com/google/uuid"
)

// SnapchatPublisher only supports stories; Snapchat has no feed posts.
type SnapchatPublisher struct {
	cfg *config.Config
}

func NewSnapchatPublisher(cfg *config.Config) *SnapchatPublisher {
	return &SnapchatPublisher{cfg: cfg}
}

func (s *SnapchatPublisher) PublishStory(ctx context.Context, content, imageURL string, account *models.SocialAccount) models.DeliveryOutcome {
	if account == nil || account.AccessToken == "" {
		return models.DeliveryOutcome{
			Platform: models.Snapchat,
			Success:  false,
			Error:    "Missing Snapchat credentials",
		}
	}

	if s.cfg.SnapchatClientID == "" {
		return models.DeliveryOutcome{
			Platform: models.Snapchat,
			Success:  false,
			Error:    "Snapchat API credentials not configured",
		}
	}

	if err := simulateCall(ctx, 500*time.Millisecond); err != nil {
		return models.DeliveryOutcome{
			Platform: models.Snapchat,
			Success:  false,
			Error:    fmt.Sprintf("Snapchat story posting failed: %v", err),
		}
	}

	return models.DeliveryOutcome{
		Platform:       models.Snapchat,
		Success:        true,
		PlatformPostID: fmt.Sprintf("sc_story_%s", uuid.New().String()[:8]),
	}
}
