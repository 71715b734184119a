package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/pkg/logger"
)

const (
	defaultSessionSpec      = "@hourly"
	defaultVerificationSpec = "@daily"
	defaultInvitationSpec   = "@daily"
)

// Cleaner coordinates background maintenance tasks: purging expired sessions,
// removing stale verification challenges, and expiring pending invitations.
type Cleaner struct {
	db   *gorm.DB
	cron *cron.Cron
	now  func() time.Time
	log  *zap.Logger

	sessionSchedule      string
	verificationSchedule string
	invitationSchedule   string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for cleanup comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithSessionSchedule overrides the cron specification for session cleanup.
func WithSessionSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.sessionSchedule = spec
		}
	}
}

// WithVerificationSchedule overrides the cron specification for verification cleanup.
func WithVerificationSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.verificationSchedule = spec
		}
	}
}

// WithInvitationSchedule overrides the cron specification for invitation expiry.
func WithInvitationSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.invitationSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults.
func NewCleaner(db *gorm.DB, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		db:                   db,
		now:                  time.Now,
		sessionSchedule:      defaultSessionSpec,
		verificationSchedule: defaultVerificationSpec,
		invitationSchedule:   defaultInvitationSpec,
		log:                  logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers cleanup jobs with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.db == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.sessionSchedule, func() {
		if _, err := CleanupSessions(context.Background(), c.db, c.now()); err != nil {
			c.log.Warn("session cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	if _, err := c.cron.AddFunc(c.verificationSchedule, func() {
		if _, err := CleanupVerifications(context.Background(), c.db, c.now()); err != nil {
			c.log.Warn("verification cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	if _, err := c.cron.AddFunc(c.invitationSchedule, func() {
		if _, err := ExpireInvitations(context.Background(), c.db, c.now()); err != nil {
			c.log.Warn("invitation expiry failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all cleanup routines sequentially. Primarily used in tests
// and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.db == nil {
		return nil
	}

	now := c.now()

	var errs error
	if _, err := CleanupSessions(ctx, c.db, now); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := CleanupVerifications(ctx, c.db, now); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := ExpireInvitations(ctx, c.db, now); err != nil {
		errs = multierr.Append(errs, err)
	}

	return errs
}

// CleanupSessions removes sessions whose expiry has passed.
func CleanupSessions(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("cleanup sessions: db is required")
	}

	result := db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// CleanupVerifications removes expired verification challenges.
func CleanupVerifications(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("cleanup verifications: db is required")
	}

	result := db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.Verification{})
	return result.RowsAffected, result.Error
}

// ExpireInvitations marks pending invitations past their expiry as expired.
// Rows are kept so workspace admins can see and re-issue lapsed invites.
func ExpireInvitations(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("expire invitations: db is required")
	}

	result := db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("status = ? AND expires_at <= ?", models.InvitationPending, now).
		Update("status", models.InvitationExpired)
	return result.RowsAffected, result.Error
}
