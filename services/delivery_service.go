package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"crosspost/database"
	"crosspost/metrics"
	"crosspost/models"
	"crosspost/publishers"
	"crosspost/utils"
)

// DeliveryStore is the persistence surface the delivery layer needs.
type DeliveryStore interface {
	GetActiveAccount(userID string, platform models.Platform) (*models.SocialAccount, error)
	GetSocialAccountsByUserID(userID string) ([]*models.SocialAccount, error)
	SavePostResult(postID string, outcome models.DeliveryOutcome) error
}

// DeliveryService fans a post out to each of its target platforms. Platform
// attempts are independent: one failure never blocks or aborts the others,
// and every attempt produces exactly one DeliveryOutcome.
type DeliveryService struct {
	store           DeliveryStore
	publishers      map[models.Platform]publishers.PlatformPublisher
	storyPublishers map[models.Platform]publishers.StoryPublisher
	cipher          *utils.TokenCipher
	timeout         time.Duration
	collector       *metrics.Collector
}

type DeliveryConfig struct {
	Store           DeliveryStore
	Publishers      map[models.Platform]publishers.PlatformPublisher
	StoryPublishers map[models.Platform]publishers.StoryPublisher
	Cipher          *utils.TokenCipher
	Timeout         time.Duration
	Collector       *metrics.Collector
}

func NewDeliveryService(cfg DeliveryConfig) *DeliveryService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &DeliveryService{
		store:           cfg.Store,
		publishers:      cfg.Publishers,
		storyPublishers: cfg.StoryPublishers,
		cipher:          cfg.Cipher,
		timeout:         timeout,
		collector:       cfg.Collector,
	}
}

// DeliverPost attempts delivery to every platform declared on the post and
// returns one outcome per platform, in the post's platform order. Each
// outcome is persisted as a post result before the call returns.
func (ds *DeliveryService) DeliverPost(ctx context.Context, post *models.Post) []models.DeliveryOutcome {
	var wg sync.WaitGroup
	outcomes := make([]models.DeliveryOutcome, len(post.Platforms))

	for i, platform := range post.Platforms {
		wg.Add(1)
		go func(idx int, plt models.Platform) {
			defer wg.Done()

			outcome := ds.deliverOne(ctx, post, plt)
			outcomes[idx] = outcome

			if err := ds.store.SavePostResult(post.ID, outcome); err != nil {
				utils.Errorf("Failed to save post result for %s/%s: %v", post.ID, plt, err)
			}
		}(i, platform)
	}

	wg.Wait()
	return outcomes
}

func (ds *DeliveryService) deliverOne(ctx context.Context, post *models.Post, platform models.Platform) models.DeliveryOutcome {
	publisher, ok := ds.publishers[platform]
	if !ok {
		return models.DeliveryOutcome{
			Platform: platform,
			Success:  false,
			Error:    "Platform not supported",
		}
	}

	account, err := ds.lookupAccount(post.UserID, platform)
	if err != nil {
		return models.DeliveryOutcome{
			Platform: platform,
			Success:  false,
			Error:    "No active account for platform",
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, ds.timeout)
	defer cancel()

	start := time.Now()
	outcome := publisher.Publish(attemptCtx, post, account)

	if ds.collector != nil {
		ds.collector.RecordDelivery(string(platform), outcome.Success)
		ds.collector.RecordDeliveryLatency(time.Since(start))
	}

	return outcome
}

// DeliverStory posts a story to the user's active Instagram and Snapchat
// accounts. Story outcomes are transient; they are not persisted as post
// results because stories have no backing post row.
func (ds *DeliveryService) DeliverStory(ctx context.Context, userID, content, imageURL string) ([]models.DeliveryOutcome, error) {
	accounts, err := ds.store.GetSocialAccountsByUserID(userID)
	if err != nil {
		return nil, err
	}

	outcomes := []models.DeliveryOutcome{}
	for _, account := range accounts {
		if !account.IsActive {
			continue
		}

		publisher, ok := ds.storyPublishers[account.Platform]
		if !ok {
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, ds.timeout)
		decrypted := ds.decryptAccount(account)
		outcome := publisher.PublishStory(attemptCtx, content, imageURL, decrypted)
		cancel()

		if ds.collector != nil {
			ds.collector.RecordDelivery(string(account.Platform), outcome.Success)
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// TestConnection performs a lightweight validity check of a platform token.
func (ds *DeliveryService) TestConnection(platform models.Platform, accessToken string) bool {
	if accessToken == "" {
		return false
	}
	_, supported := ds.publishers[platform]
	if !supported {
		_, supported = ds.storyPublishers[platform]
	}
	return supported
}

func (ds *DeliveryService) lookupAccount(userID string, platform models.Platform) (*models.SocialAccount, error) {
	account, err := ds.store.GetActiveAccount(userID, platform)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			utils.Errorf("Account lookup failed for user %s platform %s: %v", userID, platform, err)
		}
		return nil, err
	}

	return ds.decryptAccount(account), nil
}

// decryptAccount returns a copy with the stored token decrypted, leaving the
// persisted record untouched.
func (ds *DeliveryService) decryptAccount(account *models.SocialAccount) *models.SocialAccount {
	if ds.cipher == nil {
		return account
	}

	token, err := ds.cipher.Decrypt(account.AccessToken)
	if err != nil {
		utils.Warnf("Failed to decrypt token for account %s: %v", account.ID, err)
		return account
	}

	decrypted := *account
	decrypted.AccessToken = token
	return &decrypted
}
