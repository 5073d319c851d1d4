package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/internal/interfaces/http/response"
	"appraiser-auth.backend/pkg/utils"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, input *entities.EnrollInput) (*entities.EnrollmentResult, error)
	ListRegistered(ctx context.Context, page, limit int) ([]*entities.RegisteredAppraiser, utils.PaginationMeta, error)
	FaceInfo(ctx context.Context, image []byte) (*entities.FaceInfoResult, error)
	ClearFace(ctx context.Context, appraiserID string) error
}

type MatchingService interface {
	Identify(ctx context.Context, image []byte) (*entities.MatchResult, error)
	UpdateThreshold(ctx context.Context, value float64) (*entities.ThresholdUpdate, error)
	GetThreshold(ctx context.Context) (entities.ThresholdConfig, error)
	Status(ctx context.Context) (*entities.FaceServiceStatus, error)
}

// FaceHandler handles enrollment and recognition endpoints
type FaceHandler struct {
	enrollment EnrollmentService
	matching   MatchingService
}

// NewFaceHandler creates a new face handler
func NewFaceHandler(enrollment EnrollmentService, matching MatchingService) *FaceHandler {
	return &FaceHandler{enrollment: enrollment, matching: matching}
}

type registerRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	AppraiserID string `json:"appraiser_id" form:"appraiser_id" binding:"required"`
	Image       string `json:"image" form:"image"`
	Bank        string `json:"bank" form:"bank"`
	Branch      string `json:"branch" form:"branch"`
	BankID      int64  `json:"bank_id" form:"bank_id"`
	BranchID    int64  `json:"branch_id" form:"branch_id"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
}

type imageRequest struct {
	Image string `json:"image" form:"image"`
}

type thresholdRequest struct {
	Threshold *float64 `json:"threshold" form:"threshold" binding:"required"`
}

// Register enrolls (or re-enrolls) an appraiser face
// POST /api/v1/face/register
func (h *FaceHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	img, err := readImage(c, req.Image)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.enrollment.Enroll(c.Request.Context(), &entities.EnrollInput{
		Name:        req.Name,
		AppraiserID: req.AppraiserID,
		Image:       img.Raw,
		ImageRef:    img.DataURL,
		Bank:        req.Bank,
		Branch:      req.Branch,
		BankID:      req.BankID,
		BranchID:    req.BranchID,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusCreated
	if result.Updated {
		status = http.StatusOK
	}
	response.Success(c, status, result)
}

// Recognize identifies the appraiser in a capture
// POST /api/v1/face/recognize
func (h *FaceHandler) Recognize(c *gin.Context) {
	img, ok := h.bindImage(c)
	if !ok {
		return
	}

	result, err := h.matching.Identify(c.Request.Context(), img.Raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "result": result})
}

// Info reports the faces detected in a capture without matching
// POST /api/v1/face/info
func (h *FaceHandler) Info(c *gin.Context) {
	img, ok := h.bindImage(c)
	if !ok {
		return
	}

	result, err := h.enrollment.FaceInfo(c.Request.Context(), img.Raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "result": result})
}

func (h *FaceHandler) bindImage(c *gin.Context) (*capturedImage, bool) {
	var req imageRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return nil, false
	}
	img, err := readImage(c, req.Image)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return img, true
}

// ListAppraisers lists enrolled appraisers
// GET /api/v1/face/appraisers?page=1&limit=50
func (h *FaceHandler) ListAppraisers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, meta, err := h.enrollment.ListRegistered(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"success":    true,
		"appraisers": items,
		"meta":       meta,
	})
}

// ClearFace removes the stored embedding of an appraiser
// DELETE /api/v1/face/appraisers/:appraiserId/face
func (h *FaceHandler) ClearFace(c *gin.Context) {
	appraiserID := c.Param("appraiserId")
	if err := h.enrollment.ClearFace(c.Request.Context(), appraiserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"message": "Face data cleared",
	})
}

// Status reports extractor reachability and the active threshold
// GET /api/v1/face/status
func (h *FaceHandler) Status(c *gin.Context) {
	status, err := h.matching.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	code := http.StatusOK
	if !status.Available {
		code = http.StatusServiceUnavailable
	}
	response.Success(c, code, status)
}

// GetThreshold returns the active match threshold
// GET /api/v1/face/threshold
func (h *FaceHandler) GetThreshold(c *gin.Context) {
	cfg, err := h.matching.GetThreshold(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"success":   true,
		"threshold": cfg.Value,
		"version":   cfg.Version,
		"updatedAt": cfg.UpdatedAt,
	})
}

// UpdateThreshold replaces the match threshold
// POST /api/v1/face/threshold
func (h *FaceHandler) UpdateThreshold(c *gin.Context) {
	var req thresholdRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.matching.UpdateThreshold(c.Request.Context(), *req.Threshold)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
