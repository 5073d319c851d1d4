package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/internal/domain/repositories"
	"appraiser-auth.backend/pkg/logger"
)

// AuthorizationUsecase decides whether a named appraiser may operate at a bank/branch
type AuthorizationUsecase struct {
	appraiserRepo repositories.AppraiserRepository
	authRepo      repositories.AuthorizationRepository
	tenantRepo    repositories.TenantRepository
	tenants       *TenantResolver
}

// NewAuthorizationUsecase creates a new authorization usecase
func NewAuthorizationUsecase(
	appraiserRepo repositories.AppraiserRepository,
	authRepo repositories.AuthorizationRepository,
	tenantRepo repositories.TenantRepository,
	tenants *TenantResolver,
) *AuthorizationUsecase {
	return &AuthorizationUsecase{
		appraiserRepo: appraiserRepo,
		authRepo:      authRepo,
		tenantRepo:    tenantRepo,
		tenants:       tenants,
	}
}

// VerifyAuthorized checks every identity carrying the name, oldest first. An active mapping
// authorizes; otherwise a matching legacy primary tenant does, unless that mapping was revoked.
// With MigrateLegacy the legacy grant is written as a mapping row.
func (u *AuthorizationUsecase) VerifyAuthorized(ctx context.Context, input *entities.VerifyInput) (*entities.AuthorizationResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.BankID <= 0 || input.BranchID <= 0 {
		return nil, fmt.Errorf("%w: name, bank_id and branch_id are required", domainerrors.ErrInvalidInput)
	}

	candidates, err := u.appraiserRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		authorizationChecksTotal.WithLabelValues(string(entities.AuthorizationStatusNotRegistered), "").Inc()
		return &entities.AuthorizationResult{
			Status:  entities.AuthorizationStatusNotRegistered,
			Message: fmt.Sprintf("Appraiser '%s' is not registered", name),
		}, nil
	}

	for _, c := range candidates {
		mapping, err := u.authRepo.Get(ctx, c.AppraiserID, input.BankID, input.BranchID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		if mapping != nil && mapping.IsActive {
			return u.authorized(ctx, c, input, entities.AuthorizationSourceMapping, false), nil
		}
		if mapping != nil || !c.HasPrimaryTenant(input.BankID, input.BranchID) {
			continue
		}

		migrated := false
		if input.MigrateLegacy {
			_, created, err := u.authRepo.Upsert(ctx, c.AppraiserID, input.BankID, input.BranchID)
			if err != nil {
				return nil, err
			}
			migrated = created
			if created {
				legacyMigrationsTotal.Inc()
				logger.Info(ctx, "Legacy authorization migrated",
					zap.String("appraiser_id", c.AppraiserID),
					zap.Int64("bank_id", input.BankID),
					zap.Int64("branch_id", input.BranchID),
				)
			}
		}
		return u.authorized(ctx, c, input, entities.AuthorizationSourceLegacy, migrated), nil
	}

	registeredAt, err := u.registeredTenants(ctx, candidates, input)
	if err != nil {
		return nil, err
	}
	authorizationChecksTotal.WithLabelValues(string(entities.AuthorizationStatusRegisteredElsewhere), "").Inc()
	return &entities.AuthorizationResult{
		Status:       entities.AuthorizationStatusRegisteredElsewhere,
		Exists:       true,
		Message:      fmt.Sprintf("Appraiser '%s' is registered at a different bank/branch", name),
		RegisteredAt: registeredAt,
	}, nil
}

func (u *AuthorizationUsecase) authorized(
	ctx context.Context,
	a *entities.Appraiser,
	input *entities.VerifyInput,
	source entities.AuthorizationSource,
	migrated bool,
) *entities.AuthorizationResult {
	authorizationChecksTotal.WithLabelValues(string(entities.AuthorizationStatusAuthorized), string(source)).Inc()
	ref := u.tenants.Describe(ctx, entities.TenantRef{BankID: input.BankID, BranchID: input.BranchID})
	return &entities.AuthorizationResult{
		Status:     entities.AuthorizationStatusAuthorized,
		Exists:     true,
		Authorized: true,
		Message:    fmt.Sprintf("Appraiser '%s' is authorized for this bank/branch", a.Name),
		Appraiser: &entities.AuthorizedAppraiser{
			ID:          a.ID,
			AppraiserID: a.AppraiserID,
			Name:        a.Name,
			BankID:      ref.BankID,
			BranchID:    ref.BranchID,
			BankName:    ref.BankName,
			BranchName:  ref.BranchName,
		},
		Source:   source,
		Migrated: migrated,
	}
}

// registeredTenants lists active mappings of the candidates, falling back to their primary
// tenant unless that mapping was revoked. The requested tenant is never listed.
func (u *AuthorizationUsecase) registeredTenants(ctx context.Context, candidates []*entities.Appraiser, input *entities.VerifyInput) ([]entities.TenantRef, error) {
	seen := map[[2]int64]bool{{input.BankID, input.BranchID}: true}
	var out []entities.TenantRef
	add := func(bankID, branchID int64) {
		key := [2]int64{bankID, branchID}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, u.tenants.Describe(ctx, entities.TenantRef{BankID: bankID, BranchID: branchID}))
	}

	for _, c := range candidates {
		mappings, err := u.authRepo.ListActiveByAppraiser(ctx, c.AppraiserID)
		if err != nil {
			return nil, err
		}
		for _, m := range mappings {
			add(m.BankID, m.BranchID)
		}
		if len(mappings) > 0 {
			continue
		}
		ref, ok := c.PrimaryTenant()
		if !ok || seen[[2]int64{ref.BankID, ref.BranchID}] {
			continue
		}
		revoked, err := u.authRepo.Get(ctx, c.AppraiserID, ref.BankID, ref.BranchID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		if revoked == nil {
			add(ref.BankID, ref.BranchID)
		}
	}
	return out, nil
}

// MigrateLegacyAuthorization writes the mapping for the appraiser's primary tenant.
// A revoked mapping is left alone.
func (u *AuthorizationUsecase) MigrateLegacyAuthorization(ctx context.Context, appraiserID string) (*entities.MigrationResult, error) {
	appraiser, err := u.appraiserRepo.GetByAppraiserID(ctx, entities.NormalizeAppraiserID(appraiserID))
	if err != nil {
		return nil, err
	}

	ref, ok := appraiser.PrimaryTenant()
	if !ok {
		return &entities.MigrationResult{
			AppraiserID: appraiser.AppraiserID,
			Message:     "Appraiser has no legacy bank/branch",
		}, nil
	}

	existing, err := u.authRepo.Get(ctx, appraiser.AppraiserID, ref.BankID, ref.BranchID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return &entities.MigrationResult{
			AppraiserID: appraiser.AppraiserID,
			Tenant:      u.tenants.Describe(ctx, ref),
			Message:     "Mapping already exists",
		}, nil
	}

	if _, _, err := u.authRepo.Upsert(ctx, appraiser.AppraiserID, ref.BankID, ref.BranchID); err != nil {
		return nil, err
	}
	legacyMigrationsTotal.Inc()
	logger.Info(ctx, "Legacy authorization migrated",
		zap.String("appraiser_id", appraiser.AppraiserID),
		zap.Int64("bank_id", ref.BankID),
		zap.Int64("branch_id", ref.BranchID),
	)
	return &entities.MigrationResult{
		AppraiserID: appraiser.AppraiserID,
		Migrated:    true,
		Tenant:      u.tenants.Describe(ctx, ref),
		Message:     "Legacy bank/branch migrated to authorization mapping",
	}, nil
}

// MigrateAllLegacy backfills up to limit identities whose primary tenant has no mapping row
func (u *AuthorizationUsecase) MigrateAllLegacy(ctx context.Context, limit int) (int, error) {
	pending, err := u.appraiserRepo.ListUnmappedLegacy(ctx, limit)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, a := range pending {
		ref, ok := a.PrimaryTenant()
		if !ok {
			continue
		}
		_, created, err := u.authRepo.Upsert(ctx, a.AppraiserID, ref.BankID, ref.BranchID)
		if err != nil {
			return migrated, err
		}
		if created {
			migrated++
			legacyMigrationsTotal.Inc()
		}
	}
	return migrated, nil
}

// GrantAuthorization activates a mapping for an enrolled appraiser
func (u *AuthorizationUsecase) GrantAuthorization(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, bool, error) {
	appraiser, err := u.appraiserRepo.GetByAppraiserID(ctx, entities.NormalizeAppraiserID(appraiserID))
	if err != nil {
		return nil, false, err
	}
	if err := u.checkTenant(ctx, bankID, branchID); err != nil {
		return nil, false, err
	}

	mapping, created, err := u.authRepo.Upsert(ctx, appraiser.AppraiserID, bankID, branchID)
	if err != nil {
		return nil, false, err
	}
	logger.Info(ctx, "Authorization granted",
		zap.String("appraiser_id", appraiser.AppraiserID),
		zap.Int64("bank_id", bankID),
		zap.Int64("branch_id", branchID),
	)
	return mapping, created, nil
}

// RevokeAuthorization soft deletes an active mapping
func (u *AuthorizationUsecase) RevokeAuthorization(ctx context.Context, appraiserID string, bankID, branchID int64) error {
	id := entities.NormalizeAppraiserID(appraiserID)
	if err := u.authRepo.Deactivate(ctx, id, bankID, branchID); err != nil {
		return err
	}
	logger.Info(ctx, "Authorization revoked",
		zap.String("appraiser_id", id),
		zap.Int64("bank_id", bankID),
		zap.Int64("branch_id", branchID),
	)
	return nil
}

// ListAuthorizations returns the active mappings of an enrolled appraiser
func (u *AuthorizationUsecase) ListAuthorizations(ctx context.Context, appraiserID string) ([]*entities.AuthorizationMapping, error) {
	appraiser, err := u.appraiserRepo.GetByAppraiserID(ctx, entities.NormalizeAppraiserID(appraiserID))
	if err != nil {
		return nil, err
	}
	return u.authRepo.ListActiveByAppraiser(ctx, appraiser.AppraiserID)
}

func (u *AuthorizationUsecase) checkTenant(ctx context.Context, bankID, branchID int64) error {
	if bankID <= 0 || branchID <= 0 {
		return fmt.Errorf("%w: bank_id and branch_id are required", domainerrors.ErrInvalidInput)
	}
	if _, err := u.tenantRepo.GetBankByID(ctx, bankID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown bank_id %d", domainerrors.ErrInvalidInput, bankID)
		}
		return err
	}
	branch, err := u.tenantRepo.GetBranchByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown branch_id %d", domainerrors.ErrInvalidInput, branchID)
		}
		return err
	}
	if branch.BankID != bankID {
		return fmt.Errorf("%w: branch %d does not belong to bank %d", domainerrors.ErrInvalidInput, branchID, bankID)
	}
	return nil
}
