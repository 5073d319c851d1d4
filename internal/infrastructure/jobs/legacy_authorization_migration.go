package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"appraiser-auth.backend/pkg/logger"
)

const legacyMigrationBatch = 100

type legacyMigrator interface {
	MigrateAllLegacy(ctx context.Context, limit int) (int, error)
}

// LegacyAuthorizationMigrationJob backfills mapping rows for identities enrolled
// before the authorization map existed
type LegacyAuthorizationMigrationJob struct {
	migrator legacyMigrator
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewLegacyAuthorizationMigrationJob(migrator legacyMigrator, interval time.Duration) *LegacyAuthorizationMigrationJob {
	return &LegacyAuthorizationMigrationJob{
		migrator: migrator,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs one pass immediately, then every interval until ctx is done or Stop is called
func (j *LegacyAuthorizationMigrationJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting legacy authorization migration job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.migrate(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Legacy authorization migration job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Legacy authorization migration job stopped")
			return
		case <-ticker.C:
			j.migrate(ctx)
		}
	}
}

func (j *LegacyAuthorizationMigrationJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

// migrate drains the backlog batch by batch; a batch that migrates nothing ends the pass
func (j *LegacyAuthorizationMigrationJob) migrate(ctx context.Context) {
	total := 0
	for ctx.Err() == nil {
		n, err := j.migrator.MigrateAllLegacy(ctx, legacyMigrationBatch)
		total += n
		if err != nil {
			logger.Error(ctx, "Legacy authorization migration failed", zap.Int("migrated", total), zap.Error(err))
			return
		}
		if n == 0 {
			break
		}
	}

	if total > 0 {
		logger.Info(ctx, "Legacy authorizations migrated", zap.Int("count", total))
	}
}
