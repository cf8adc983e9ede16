package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"crosspost/database"
	"crosspost/metrics"
	"crosspost/models"
	"crosspost/utils"

	"github.com/robfig/cron/v3"
)

// PostStore is the persistence surface the scheduler needs.
type PostStore interface {
	GetPost(id string) (*models.Post, error)
	GetPendingScheduled() ([]*models.Post, error)
	ListOverduePending(now time.Time) ([]*models.Post, error)
	UpdatePostStatus(id string, status models.PostStatus) error
}

// Deliverer executes the per-platform delivery attempts for one post.
type Deliverer interface {
	DeliverPost(ctx context.Context, post *models.Post) []models.DeliveryOutcome
}

// Notifier receives a best-effort delivery summary. Failures are logged and
// swallowed; they never influence the post's status.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// Scheduler arms one cancellable timer per scheduled post and guarantees each
// schedule request results in at most one execution. An armed entry exists
// for a post id iff a live timer will eventually fire delivery for it exactly
// once; re-scheduling cancels the previous timer before arming a new one.
type Scheduler struct {
	mu       sync.Mutex
	entries  map[string]*time.Timer
	inflight map[string]struct{}
	stopped  bool

	store     PostStore
	deliverer Deliverer
	notifier  Notifier
	collector *metrics.Collector
	cron      *cron.Cron

	// now is injectable for tests.
	now func() time.Time

	// catchUpOverdue fires posts whose scheduled time elapsed while the
	// process was down instead of leaving them pending.
	catchUpOverdue bool
	sweepSpec      string
}

type SchedulerConfig struct {
	Store          PostStore
	Deliverer      Deliverer
	Notifier       Notifier
	Collector      *metrics.Collector
	CatchUpOverdue bool
	// SweepSpec is a cron expression for the overdue-post recovery sweep,
	// e.g. "@every 1m". Empty disables the sweep. The sweep only runs when
	// CatchUpOverdue is set.
	SweepSpec string
}

func NewScheduler(cfg SchedulerConfig) *Scheduler {
	return &Scheduler{
		entries:        make(map[string]*time.Timer),
		inflight:       make(map[string]struct{}),
		store:          cfg.Store,
		deliverer:      cfg.Deliverer,
		notifier:       cfg.Notifier,
		collector:      cfg.Collector,
		cron:           cron.New(),
		now:            time.Now,
		catchUpOverdue: cfg.CatchUpOverdue,
		sweepSpec:      cfg.SweepSpec,
	}
}

// Schedule arms delivery of a post at dueAt. A due time at or before now
// executes the full delivery pipeline synchronously before returning. Any
// previously armed timer for the same post is cancelled first, so calling
// Schedule twice still yields exactly one execution.
func (s *Scheduler) Schedule(postID string, dueAt time.Time) {
	delay := dueAt.Sub(s.now())

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}

	if existing, ok := s.entries[postID]; ok {
		existing.Stop()
		delete(s.entries, postID)
		s.updateGauge()
		utils.Warnf("Post %s was already armed; re-arming", postID)
	}

	if delay <= 0 {
		s.mu.Unlock()
		s.Execute(postID)
		return
	}

	s.entries[postID] = time.AfterFunc(delay, func() { s.fire(postID) })
	s.updateGauge()
	s.mu.Unlock()

	utils.Infof("Post %s scheduled for %s", postID, dueAt.UTC().Format(time.RFC3339))
}

// fire is the timer callback. The entry is removed before execution so a
// Cancel arriving once delivery has begun is a no-op.
func (s *Scheduler) fire(postID string) {
	s.mu.Lock()
	delete(s.entries, postID)
	s.updateGauge()
	stopped := s.stopped
	s.mu.Unlock()

	if stopped {
		return
	}

	s.Execute(postID)
}

// Cancel removes an armed entry. It returns true only when a live timer was
// stopped; cancelling an already-fired, already-cancelled or never-scheduled
// post returns false and has no effect.
func (s *Scheduler) Cancel(postID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.entries[postID]
	if !ok {
		return false
	}

	timer.Stop()
	delete(s.entries, postID)
	s.updateGauge()
	utils.Infof("Cancelled scheduled post: %s", postID)
	return true
}

// Execute runs the delivery pipeline for one post: fetch, deliver to every
// target platform, persist the aggregate status, and send the optional
// notification summary. Nothing escapes this method; every failure terminates
// in a post status plus a log line.
func (s *Scheduler) Execute(postID string) {
	s.mu.Lock()
	if _, running := s.inflight[postID]; running {
		s.mu.Unlock()
		utils.Warnf("Post %s is already executing; skipping duplicate execution", postID)
		return
	}
	s.inflight[postID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, postID)
		s.mu.Unlock()
	}()

	utils.Infof("Executing scheduled post: %s", postID)

	post, err := s.store.GetPost(postID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// The post may have been deleted out-of-band; not fatal.
			utils.Warnf("Post %s not found", postID)
			return
		}
		utils.Errorf("Error loading post %s: %v", postID, err)
		s.forceFailed(postID)
		return
	}

	if post.Status != models.StatusPending {
		utils.Warnf("Post %s is %s, not pending; skipping execution", postID, post.Status)
		return
	}

	outcomes := s.deliverer.DeliverPost(context.Background(), post)

	successCount := 0
	for _, outcome := range outcomes {
		if outcome.Success {
			successCount++
		}
	}

	newStatus := models.StatusFailed
	if successCount > 0 {
		newStatus = models.StatusPosted
	}

	if err := s.store.UpdatePostStatus(postID, newStatus); err != nil {
		utils.Errorf("Error updating status for post %s: %v", postID, err)
		if newStatus != models.StatusFailed {
			s.forceFailed(postID)
		}
		newStatus = models.StatusFailed
	}

	if s.collector != nil {
		s.collector.RecordExecution(string(newStatus))
	}

	if post.TelegramChatID != 0 && s.notifier != nil {
		summary := formatDeliverySummary(post, outcomes, successCount)
		if err := s.notifier.Notify(post.TelegramChatID, summary); err != nil {
			utils.Warnf("Failed to send delivery summary for post %s: %v", postID, err)
		}
	}

	utils.Infof("Post %s executed: %s (%d/%d platforms succeeded)",
		postID, newStatus, successCount, len(outcomes))
}

func (s *Scheduler) forceFailed(postID string) {
	if err := s.store.UpdatePostStatus(postID, models.StatusFailed); err != nil {
		utils.Errorf("Error forcing post %s to failed: %v", postID, err)
	}
}

// Restore re-arms timers for persisted pending posts after a restart. Posts
// whose scheduled time already elapsed are fired immediately when
// CatchUpOverdue is set and left pending otherwise.
func (s *Scheduler) Restore() error {
	utils.Infof("Initializing post scheduler...")

	posts, err := s.store.GetPendingScheduled()
	if err != nil {
		return fmt.Errorf("load scheduled posts: %w", err)
	}

	armed, caughtUp, stranded := 0, 0, 0
	for _, post := range posts {
		if post.ScheduledFor == nil {
			continue
		}

		if post.ScheduledFor.After(s.now()) {
			s.Schedule(post.ID, *post.ScheduledFor)
			armed++
			continue
		}

		if s.catchUpOverdue {
			s.Execute(post.ID)
			caughtUp++
		} else {
			utils.Warnf("Post %s was due %s and remains pending (CATCH_UP_OVERDUE=false)",
				post.ID, post.ScheduledFor.UTC().Format(time.RFC3339))
			stranded++
		}
	}

	utils.Infof("Loaded %d scheduled posts (%d caught up, %d left pending)", armed, caughtUp, stranded)
	return nil
}

// Start restores persisted schedules and, when configured, starts the
// recovery sweep that picks up overdue pending posts.
func (s *Scheduler) Start() error {
	if err := s.Restore(); err != nil {
		return err
	}

	if s.catchUpOverdue && s.sweepSpec != "" {
		if _, err := s.cron.AddFunc(s.sweepSpec, s.sweep); err != nil {
			return fmt.Errorf("register recovery sweep: %w", err)
		}
		s.cron.Start()
		utils.Infof("Recovery sweep registered: %s", s.sweepSpec)
	}

	return nil
}

// sweep executes overdue pending posts that have no live timer. The inflight
// guard in Execute keeps a sweep racing a timer from delivering twice.
func (s *Scheduler) sweep() {
	posts, err := s.store.ListOverduePending(s.now())
	if err != nil {
		utils.Errorf("Recovery sweep failed to list overdue posts: %v", err)
		return
	}

	for _, post := range posts {
		s.mu.Lock()
		_, armed := s.entries[post.ID]
		s.mu.Unlock()
		if armed {
			continue
		}

		utils.Warnf("Recovery sweep picking up overdue post %s", post.ID)
		s.Execute(post.ID)
	}
}

// Stop cancels every armed timer and prevents further arming. In-flight
// executions run to completion.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for id, timer := range s.entries {
		timer.Stop()
		delete(s.entries, id)
	}
	s.updateGauge()
	s.mu.Unlock()

	s.cron.Stop()
	utils.Infof("Scheduler stopped")
}

// ScheduledCount returns the number of live armed entries.
func (s *Scheduler) ScheduledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// ScheduledIDs returns the post ids with live armed entries.
func (s *Scheduler) ScheduledIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	return ids
}

// updateGauge must be called with s.mu held.
func (s *Scheduler) updateGauge() {
	if s.collector != nil {
		s.collector.SetArmedPosts(len(s.entries))
	}
}

func formatDeliverySummary(post *models.Post, outcomes []models.DeliveryOutcome, successCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Scheduled Post Results:\n\n")
	fmt.Fprintf(&b, "📝 \"%s\"\n", post.Title)
	fmt.Fprintf(&b, "✅ Successful: %d\n", successCount)
	fmt.Fprintf(&b, "❌ Failed: %d\n\n", len(outcomes)-successCount)

	lines := make([]string, len(outcomes))
	for i, outcome := range outcomes {
		mark := "❌"
		if outcome.Success {
			mark = "✅"
		}
		lines[i] = fmt.Sprintf("%s %s", mark, strings.ToUpper(string(outcome.Platform)))
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}
