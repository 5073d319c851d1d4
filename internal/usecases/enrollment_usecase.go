package usecases

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/internal/domain/repositories"
	"appraiser-auth.backend/pkg/logger"
	"appraiser-auth.backend/pkg/utils"
)

const maxListLimit = 200

// EnrollmentUsecase registers appraiser faces and their primary tenant
type EnrollmentUsecase struct {
	appraiserRepo repositories.AppraiserRepository
	authRepo      repositories.AuthorizationRepository
	tenants       *TenantResolver
	extractor     FaceExtractor
	uow           repositories.UnitOfWork
}

// NewEnrollmentUsecase creates a new enrollment usecase
func NewEnrollmentUsecase(
	appraiserRepo repositories.AppraiserRepository,
	authRepo repositories.AuthorizationRepository,
	tenants *TenantResolver,
	extractor FaceExtractor,
	uow repositories.UnitOfWork,
) *EnrollmentUsecase {
	return &EnrollmentUsecase{
		appraiserRepo: appraiserRepo,
		authRepo:      authRepo,
		tenants:       tenants,
		extractor:     extractor,
		uow:           uow,
	}
}

// Enroll stores the appraiser's face embedding, overwriting any earlier enrollment of the
// same appraiser id, and authorizes the resolved tenant.
func (u *EnrollmentUsecase) Enroll(ctx context.Context, input *entities.EnrollInput) (*entities.EnrollmentResult, error) {
	name := strings.TrimSpace(input.Name)
	appraiserID := entities.NormalizeAppraiserID(input.AppraiserID)
	if name == "" || appraiserID == "" {
		enrollmentsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, fmt.Errorf("%w: name and appraiser_id are required", domainerrors.ErrInvalidInput)
	}
	if utf8.RuneCountInString(appraiserID) > entities.MaxAppraiserIDLength {
		enrollmentsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, fmt.Errorf("%w: appraiser_id exceeds %d characters", domainerrors.ErrInvalidInput, entities.MaxAppraiserIDLength)
	}
	if utf8.RuneCountInString(name) > entities.MaxNameLength {
		enrollmentsTotal.WithLabelValues(outcomeRejected).Inc()
		return nil, fmt.Errorf("%w: name exceeds %d characters", domainerrors.ErrInvalidInput, entities.MaxNameLength)
	}

	face, err := detectSingleFace(ctx, u.extractor, input.Image)
	if err != nil {
		enrollmentsTotal.WithLabelValues(outcomeFor(err)).Inc()
		logger.Warn(ctx, "Enrollment rejected", zap.String("appraiser_id", appraiserID), zap.Error(err))
		return nil, err
	}

	encoding, err := face.Embedding.Encode()
	if err != nil {
		enrollmentsTotal.WithLabelValues(outcomeUnavailable).Inc()
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrServiceUnavailable, err)
	}

	bank, branch, err := u.tenants.Resolve(ctx, input)
	if err != nil {
		enrollmentsTotal.WithLabelValues(outcomeFor(err)).Inc()
		return nil, err
	}

	imageRef := input.ImageRef
	if imageRef == "" {
		imageRef = base64.StdEncoding.EncodeToString(input.Image)
	}

	appraiser := &entities.Appraiser{
		AppraiserID:  appraiserID,
		Name:         name,
		FaceEncoding: null.StringFrom(encoding),
		ImageData:    imageRef,
		Status:       entities.IdentityStatusRegistered,
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		appraiser.Email = null.StringFrom(email)
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		appraiser.Phone = null.StringFrom(phone)
	}
	if bank != nil {
		appraiser.BankID = null.Int64From(bank.ID)
	}
	if branch != nil {
		appraiser.BranchID = null.Int64From(branch.ID)
	}

	var created, mappingCreated bool
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = u.appraiserRepo.Upsert(u.uow.WithLock(txCtx), appraiser)
		if err != nil {
			return err
		}
		if bank == nil || branch == nil {
			return nil
		}
		_, mappingCreated, err = u.authRepo.Upsert(txCtx, appraiserID, bank.ID, branch.ID)
		return err
	})
	if err != nil {
		enrollmentsTotal.WithLabelValues(outcomeError).Inc()
		logger.Error(ctx, "Failed to persist enrollment", zap.String("appraiser_id", appraiserID), zap.Error(err))
		return nil, err
	}

	enrollmentsTotal.WithLabelValues(outcomeSuccess).Inc()
	logger.Info(ctx, "Appraiser enrolled",
		zap.String("appraiser_id", appraiserID),
		zap.Bool("updated", !created),
		zap.Bool("mapping_created", mappingCreated),
	)

	verb := "registered"
	if !created {
		verb = "updated"
	}
	result := &entities.EnrollmentResult{
		Success:        true,
		Message:        fmt.Sprintf("Appraiser %s %s successfully", name, verb),
		AppraiserID:    appraiserID,
		DBID:           appraiser.ID,
		BBox:           face.BBox,
		Updated:        !created,
		MappingCreated: mappingCreated,
	}
	if bank != nil {
		result.BankID = &bank.ID
	}
	if branch != nil {
		result.BranchID = &branch.ID
	}
	return result, nil
}

// ListRegistered pages through enrolled appraisers
func (u *EnrollmentUsecase) ListRegistered(ctx context.Context, page, limit int) ([]*entities.RegisteredAppraiser, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit, maxListLimit)
	items, total, err := u.appraiserRepo.List(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}

	out := make([]*entities.RegisteredAppraiser, 0, len(items))
	for _, a := range items {
		out = append(out, &entities.RegisteredAppraiser{
			ID:              a.ID,
			AppraiserID:     a.AppraiserID,
			Name:            a.Name,
			BankID:          a.BankID,
			BranchID:        a.BranchID,
			HasFaceEncoding: a.HasFaceEncoding(),
			CreatedAt:       a.CreatedAt,
		})
	}
	return out, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// FaceInfo reports every detected face without matching
func (u *EnrollmentUsecase) FaceInfo(ctx context.Context, image []byte) (*entities.FaceInfoResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is required", domainerrors.ErrInvalidInput)
	}
	faces, err := u.extractor.Detect(ctx, image)
	if err != nil {
		return nil, err
	}
	if faces == nil {
		faces = []entities.DetectedFace{}
	}
	return &entities.FaceInfoResult{FaceCount: len(faces), Faces: faces}, nil
}

// ClearFace drops the embedding so the appraiser leaves the gallery; the identity row stays
func (u *EnrollmentUsecase) ClearFace(ctx context.Context, appraiserID string) error {
	appraiserID = entities.NormalizeAppraiserID(appraiserID)
	if appraiserID == "" {
		return fmt.Errorf("%w: appraiser_id is required", domainerrors.ErrInvalidInput)
	}
	if err := u.appraiserRepo.ClearFaceEncoding(ctx, appraiserID); err != nil {
		return err
	}
	logger.Info(ctx, "Appraiser face cleared", zap.String("appraiser_id", appraiserID))
	return nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrServiceUnavailable):
		return outcomeUnavailable
	case errors.Is(err, domainerrors.ErrNoFaceDetected),
		errors.Is(err, domainerrors.ErrMultipleFacesDetected),
		errors.Is(err, domainerrors.ErrInvalidImage),
		errors.Is(err, domainerrors.ErrInvalidInput):
		return outcomeRejected
	default:
		return outcomeError
	}
}
