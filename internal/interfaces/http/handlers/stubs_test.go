package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"appraiser-auth.backend/internal/domain/entities"
	"appraiser-auth.backend/pkg/utils"
)

type enrollmentServiceStub struct {
	enrollFn    func(ctx context.Context, input *entities.EnrollInput) (*entities.EnrollmentResult, error)
	listFn      func(ctx context.Context, page, limit int) ([]*entities.RegisteredAppraiser, utils.PaginationMeta, error)
	faceInfoFn  func(ctx context.Context, image []byte) (*entities.FaceInfoResult, error)
	clearFaceFn func(ctx context.Context, appraiserID string) error
}

func (s *enrollmentServiceStub) Enroll(ctx context.Context, input *entities.EnrollInput) (*entities.EnrollmentResult, error) {
	return s.enrollFn(ctx, input)
}
func (s *enrollmentServiceStub) ListRegistered(ctx context.Context, page, limit int) ([]*entities.RegisteredAppraiser, utils.PaginationMeta, error) {
	return s.listFn(ctx, page, limit)
}
func (s *enrollmentServiceStub) FaceInfo(ctx context.Context, image []byte) (*entities.FaceInfoResult, error) {
	return s.faceInfoFn(ctx, image)
}
func (s *enrollmentServiceStub) ClearFace(ctx context.Context, appraiserID string) error {
	return s.clearFaceFn(ctx, appraiserID)
}

type matchingServiceStub struct {
	identifyFn     func(ctx context.Context, image []byte) (*entities.MatchResult, error)
	updateFn       func(ctx context.Context, value float64) (*entities.ThresholdUpdate, error)
	getThresholdFn func(ctx context.Context) (entities.ThresholdConfig, error)
	statusFn       func(ctx context.Context) (*entities.FaceServiceStatus, error)
}

func (s *matchingServiceStub) Identify(ctx context.Context, image []byte) (*entities.MatchResult, error) {
	return s.identifyFn(ctx, image)
}
func (s *matchingServiceStub) UpdateThreshold(ctx context.Context, value float64) (*entities.ThresholdUpdate, error) {
	return s.updateFn(ctx, value)
}
func (s *matchingServiceStub) GetThreshold(ctx context.Context) (entities.ThresholdConfig, error) {
	return s.getThresholdFn(ctx)
}
func (s *matchingServiceStub) Status(ctx context.Context) (*entities.FaceServiceStatus, error) {
	return s.statusFn(ctx)
}

type authorizationServiceStub struct {
	verifyFn     func(ctx context.Context, input *entities.VerifyInput) (*entities.AuthorizationResult, error)
	migrateFn    func(ctx context.Context, appraiserID string) (*entities.MigrationResult, error)
	migrateAllFn func(ctx context.Context, limit int) (int, error)
	grantFn      func(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, bool, error)
	revokeFn     func(ctx context.Context, appraiserID string, bankID, branchID int64) error
	listFn       func(ctx context.Context, appraiserID string) ([]*entities.AuthorizationMapping, error)
}

func (s *authorizationServiceStub) VerifyAuthorized(ctx context.Context, input *entities.VerifyInput) (*entities.AuthorizationResult, error) {
	return s.verifyFn(ctx, input)
}
func (s *authorizationServiceStub) MigrateLegacyAuthorization(ctx context.Context, appraiserID string) (*entities.MigrationResult, error) {
	return s.migrateFn(ctx, appraiserID)
}
func (s *authorizationServiceStub) MigrateAllLegacy(ctx context.Context, limit int) (int, error) {
	return s.migrateAllFn(ctx, limit)
}
func (s *authorizationServiceStub) GrantAuthorization(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, bool, error) {
	return s.grantFn(ctx, appraiserID, bankID, branchID)
}
func (s *authorizationServiceStub) RevokeAuthorization(ctx context.Context, appraiserID string, bankID, branchID int64) error {
	return s.revokeFn(ctx, appraiserID, bankID, branchID)
}
func (s *authorizationServiceStub) ListAuthorizations(ctx context.Context, appraiserID string) ([]*entities.AuthorizationMapping, error) {
	return s.listFn(ctx, appraiserID)
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
