package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/internal/domain/repositories"
	"appraiser-auth.backend/pkg/logger"
)

const (
	serviceStatusOnline  = "online"
	serviceStatusOffline = "offline"
)

// MatchingUsecase identifies an appraiser from a probe image against the whole gallery
type MatchingUsecase struct {
	appraiserRepo repositories.AppraiserRepository
	thresholds    repositories.ThresholdStore
	extractor     FaceExtractor
	scanTimeout   time.Duration
}

// NewMatchingUsecase creates a new matching usecase; scanTimeout <= 0 disables the gallery deadline
func NewMatchingUsecase(
	appraiserRepo repositories.AppraiserRepository,
	thresholds repositories.ThresholdStore,
	extractor FaceExtractor,
	scanTimeout time.Duration,
) *MatchingUsecase {
	return &MatchingUsecase{
		appraiserRepo: appraiserRepo,
		thresholds:    thresholds,
		extractor:     extractor,
		scanTimeout:   scanTimeout,
	}
}

// Identify runs a 1:N search. No match is a valid result, not an error.
func (u *MatchingUsecase) Identify(ctx context.Context, image []byte) (*entities.MatchResult, error) {
	start := time.Now()
	defer func() { identifyDuration.Observe(time.Since(start).Seconds()) }()

	face, err := detectSingleFace(ctx, u.extractor, image)
	if err != nil {
		identificationsTotal.WithLabelValues(outcomeFor(err)).Inc()
		return nil, err
	}

	// one snapshot per call, concurrent updates apply to the next call
	threshold, err := u.thresholds.Current(ctx)
	if err != nil {
		identificationsTotal.WithLabelValues(outcomeError).Inc()
		return nil, err
	}

	gallery, err := u.loadGallery(ctx)
	if err != nil {
		identificationsTotal.WithLabelValues(outcomeFor(err)).Inc()
		return nil, err
	}

	best, skipped := BestMatch(face.Embedding, gallery, threshold.Value)
	for _, s := range skipped {
		logger.Warn(ctx, "Skipping gallery entry",
			zap.String("appraiser_id", s.Entry.AppraiserID),
			zap.Error(s.Err),
		)
	}
	gallerySkippedTotal.Add(float64(len(skipped)))

	result := &entities.MatchResult{
		BBox:             face.BBox,
		Threshold:        threshold.Value,
		ThresholdVersion: threshold.Version,
		GallerySize:      len(gallery),
		Skipped:          len(skipped),
	}
	if best == nil {
		identificationsTotal.WithLabelValues(outcomeNoMatch).Inc()
		result.Message = entities.NoMatchMessage
		return result, nil
	}

	identificationsTotal.WithLabelValues(outcomeMatch).Inc()
	logger.Info(ctx, "Appraiser identified",
		zap.String("appraiser_id", best.Entry.AppraiserID),
		zap.Float64("similarity", best.Similarity),
		zap.Float64("threshold", threshold.Value),
	)
	result.Recognized = true
	result.Message = fmt.Sprintf("Recognized %s", best.Entry.Name)
	result.Appraiser = &entities.MatchedAppraiser{
		DBID:        best.Entry.ID,
		AppraiserID: best.Entry.AppraiserID,
		Name:        best.Entry.Name,
		Similarity:  best.Similarity,
		BankID:      best.Entry.BankID,
		BranchID:    best.Entry.BranchID,
	}
	return result, nil
}

func (u *MatchingUsecase) loadGallery(ctx context.Context) ([]*entities.GalleryEntry, error) {
	scanCtx := ctx
	if u.scanTimeout > 0 {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, u.scanTimeout)
		defer cancel()
	}

	gallery, err := u.appraiserRepo.ListGallery(scanCtx)
	if err != nil {
		if errors.Is(scanCtx.Err(), context.DeadlineExceeded) {
			logger.Warn(ctx, "Gallery scan timed out", zap.Duration("timeout", u.scanTimeout))
			return nil, fmt.Errorf("%w: gallery scan timed out", domainerrors.ErrServiceUnavailable)
		}
		return nil, err
	}
	return gallery, nil
}

// UpdateThreshold validates and stores a new threshold
func (u *MatchingUsecase) UpdateThreshold(ctx context.Context, value float64) (*entities.ThresholdUpdate, error) {
	if err := ValidateThreshold(value); err != nil {
		return nil, err
	}

	old, next, err := u.thresholds.Set(ctx, value)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Match threshold updated",
		zap.Float64("old", old.Value),
		zap.Float64("new", next.Value),
		zap.Int64("version", next.Version),
	)
	return &entities.ThresholdUpdate{
		Success:      true,
		Message:      fmt.Sprintf("Threshold updated from %.2f to %.2f", old.Value, next.Value),
		OldThreshold: old.Value,
		NewThreshold: next.Value,
		Version:      next.Version,
	}, nil
}

// GetThreshold returns the current threshold snapshot
func (u *MatchingUsecase) GetThreshold(ctx context.Context) (entities.ThresholdConfig, error) {
	return u.thresholds.Current(ctx)
}

// Status reports extractor availability with the active threshold and gallery size
func (u *MatchingUsecase) Status(ctx context.Context) (*entities.FaceServiceStatus, error) {
	threshold, err := u.thresholds.Current(ctx)
	if err != nil {
		return nil, err
	}
	size, err := u.appraiserRepo.CountGallery(ctx)
	if err != nil {
		return nil, err
	}

	status := &entities.FaceServiceStatus{
		Available:        true,
		ServiceStatus:    serviceStatusOnline,
		Threshold:        threshold.Value,
		ThresholdVersion: threshold.Version,
		GallerySize:      size,
	}
	if err := u.extractor.Health(ctx); err != nil {
		logger.Warn(ctx, "Face extractor health check failed", zap.Error(err))
		status.Available = false
		status.ServiceStatus = serviceStatusOffline
	}
	return status, nil
}
