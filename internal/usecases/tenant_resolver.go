package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/internal/domain/repositories"
	"appraiser-auth.backend/pkg/logger"
)

// TenantResolver turns enrollment tenant hints into existing bank/branch rows.
// Names are registered on first use; code lookups are cached per instance.
type TenantResolver struct {
	tenantRepo repositories.TenantRepository
	codeMaxLen int
	banks      *expirable.LRU[string, *entities.Bank]
	branches   *expirable.LRU[string, *entities.Branch]
}

func NewTenantResolver(tenantRepo repositories.TenantRepository, codeMaxLen, cacheSize int, ttl time.Duration) *TenantResolver {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	return &TenantResolver{
		tenantRepo: tenantRepo,
		codeMaxLen: codeMaxLen,
		banks:      expirable.NewLRU[string, *entities.Bank](cacheSize, nil, ttl),
		branches:   expirable.NewLRU[string, *entities.Branch](cacheSize, nil, ttl),
	}
}

// Resolve returns the bank and branch for an enrollment. Explicit ids win over names and must exist.
// A branch without a bank is ignored, so the result is (nil, nil), (bank, nil) or (bank, branch).
func (r *TenantResolver) Resolve(ctx context.Context, input *entities.EnrollInput) (*entities.Bank, *entities.Branch, error) {
	bank, err := r.resolveBank(ctx, input)
	if err != nil || bank == nil {
		if err == nil && (input.BranchID > 0 || strings.TrimSpace(input.Branch) != "") {
			logger.Debug(ctx, "Branch given without bank, ignoring", zap.String("branch", input.Branch))
		}
		return nil, nil, err
	}

	branch, err := r.resolveBranch(ctx, bank, input)
	if err != nil {
		return nil, nil, err
	}
	return bank, branch, nil
}

func (r *TenantResolver) resolveBank(ctx context.Context, input *entities.EnrollInput) (*entities.Bank, error) {
	if input.BankID > 0 {
		bank, err := r.tenantRepo.GetBankByID(ctx, input.BankID)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown bank_id %d", domainerrors.ErrInvalidInput, input.BankID)
		}
		return bank, err
	}

	name := strings.TrimSpace(input.Bank)
	code := NormalizeTenantCode(name, r.codeMaxLen)
	if code == "" {
		return nil, nil
	}
	if bank, ok := r.banks.Get(code); ok {
		tenantCacheHitsTotal.Inc()
		return bank, nil
	}
	tenantCacheMissesTotal.Inc()

	bank, created, err := r.tenantRepo.GetOrCreateBank(ctx, code, name, BankShortName(name))
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info(ctx, "Bank registered on first use", zap.String("bank_code", code), zap.Int64("bank_id", bank.ID))
	}
	r.banks.Add(code, bank)
	return bank, nil
}

func (r *TenantResolver) resolveBranch(ctx context.Context, bank *entities.Bank, input *entities.EnrollInput) (*entities.Branch, error) {
	if input.BranchID > 0 {
		branch, err := r.tenantRepo.GetBranchByID(ctx, input.BranchID)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown branch_id %d", domainerrors.ErrInvalidInput, input.BranchID)
		}
		if err != nil {
			return nil, err
		}
		if branch.BankID != bank.ID {
			return nil, fmt.Errorf("%w: branch %d does not belong to bank %d", domainerrors.ErrInvalidInput, branch.ID, bank.ID)
		}
		return branch, nil
	}

	name := strings.TrimSpace(input.Branch)
	code := NormalizeTenantCode(name, r.codeMaxLen)
	if code == "" {
		return nil, nil
	}
	key := fmt.Sprintf("%d:%s", bank.ID, code)
	if branch, ok := r.branches.Get(key); ok {
		tenantCacheHitsTotal.Inc()
		return branch, nil
	}
	tenantCacheMissesTotal.Inc()

	branch, created, err := r.tenantRepo.GetOrCreateBranch(ctx, bank.ID, code, name)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info(ctx, "Branch registered on first use",
			zap.Int64("bank_id", bank.ID),
			zap.String("branch_code", code),
			zap.Int64("branch_id", branch.ID),
		)
	}
	r.branches.Add(key, branch)
	return branch, nil
}

// Describe fills bank and branch names for display; unknown ids keep empty names
func (r *TenantResolver) Describe(ctx context.Context, ref entities.TenantRef) entities.TenantRef {
	if bank, err := r.tenantRepo.GetBankByID(ctx, ref.BankID); err == nil {
		ref.BankName = bank.Name
	}
	if branch, err := r.tenantRepo.GetBranchByID(ctx, ref.BranchID); err == nil {
		ref.BranchName = branch.Name
	}
	return ref
}
