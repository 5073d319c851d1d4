package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/internal/interfaces/http/response"
)

type AuthorizationService interface {
	VerifyAuthorized(ctx context.Context, input *entities.VerifyInput) (*entities.AuthorizationResult, error)
	MigrateLegacyAuthorization(ctx context.Context, appraiserID string) (*entities.MigrationResult, error)
	MigrateAllLegacy(ctx context.Context, limit int) (int, error)
	GrantAuthorization(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, bool, error)
	RevokeAuthorization(ctx context.Context, appraiserID string, bankID, branchID int64) error
	ListAuthorizations(ctx context.Context, appraiserID string) ([]*entities.AuthorizationMapping, error)
}

// AuthorizationHandler handles bank/branch authorization endpoints
type AuthorizationHandler struct {
	service AuthorizationService
}

// NewAuthorizationHandler creates a new authorization handler
func NewAuthorizationHandler(service AuthorizationService) *AuthorizationHandler {
	return &AuthorizationHandler{service: service}
}

type tenantRequest struct {
	BankID   int64 `json:"bank_id" form:"bank_id" binding:"required"`
	BranchID int64 `json:"branch_id" form:"branch_id" binding:"required"`
}

// Verify checks whether a named appraiser may operate at a bank branch.
// Legacy grants are written as mapping rows unless ?migrate=false.
// POST /api/v1/appraisers/verify
func (h *AuthorizationHandler) Verify(c *gin.Context) {
	var input entities.VerifyInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	migrate, err := strconv.ParseBool(c.DefaultQuery("migrate", "true"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("migrate must be a boolean"))
		return
	}
	input.MigrateLegacy = migrate

	result, err := h.service.VerifyAuthorized(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "result": result})
}

// List returns the active authorizations of an appraiser
// GET /api/v1/appraisers/:appraiserId/authorizations
func (h *AuthorizationHandler) List(c *gin.Context) {
	mappings, err := h.service.ListAuthorizations(c.Request.Context(), c.Param("appraiserId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "authorizations": mappings})
}

// Grant authorizes an appraiser at a bank branch
// POST /api/v1/appraisers/:appraiserId/authorizations
func (h *AuthorizationHandler) Grant(c *gin.Context) {
	var req tenantRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	mapping, created, err := h.service.GrantAuthorization(c.Request.Context(), c.Param("appraiserId"), req.BankID, req.BranchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"success": true, "created": created, "authorization": mapping})
}

// Revoke deactivates an authorization
// DELETE /api/v1/appraisers/:appraiserId/authorizations?bank_id=1&branch_id=2
func (h *AuthorizationHandler) Revoke(c *gin.Context) {
	var req tenantRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.service.RevokeAuthorization(c.Request.Context(), c.Param("appraiserId"), req.BankID, req.BranchID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "message": "Authorization revoked"})
}

// Migrate writes the legacy primary tenant of one appraiser as a mapping row
// POST /api/v1/appraisers/:appraiserId/authorizations/migrate
func (h *AuthorizationHandler) Migrate(c *gin.Context) {
	result, err := h.service.MigrateLegacyAuthorization(c.Request.Context(), c.Param("appraiserId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "result": result})
}

// MigrateAll backfills mapping rows for appraisers that only carry a legacy tenant
// POST /api/v1/authorizations/migrate-legacy?limit=100
func (h *AuthorizationHandler) MigrateAll(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		response.Error(c, domainerrors.BadRequest("limit must be a positive integer"))
		return
	}

	migrated, err := h.service.MigrateAllLegacy(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "migrated": migrated})
}
