package usecases_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"appraiser-auth.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// Mock AppraiserRepository
type MockAppraiserRepository struct {
	mock.Mock
}

func (m *MockAppraiserRepository) GetByAppraiserID(ctx context.Context, appraiserID string) (*entities.Appraiser, error) {
	args := m.Called(ctx, appraiserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appraiser), args.Error(1)
}

func (m *MockAppraiserRepository) Upsert(ctx context.Context, appraiser *entities.Appraiser) (bool, error) {
	args := m.Called(ctx, appraiser)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppraiserRepository) FindByName(ctx context.Context, name string) ([]*entities.Appraiser, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appraiser), args.Error(1)
}

func (m *MockAppraiserRepository) ListGallery(ctx context.Context) ([]*entities.GalleryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GalleryEntry), args.Error(1)
}

func (m *MockAppraiserRepository) CountGallery(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppraiserRepository) List(ctx context.Context, limit, offset int) ([]*entities.Appraiser, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Appraiser), args.Get(1).(int64), args.Error(2)
}

func (m *MockAppraiserRepository) ClearFaceEncoding(ctx context.Context, appraiserID string) error {
	args := m.Called(ctx, appraiserID)
	return args.Error(0)
}

func (m *MockAppraiserRepository) ListUnmappedLegacy(ctx context.Context, limit int) ([]*entities.Appraiser, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appraiser), args.Error(1)
}

// Mock AuthorizationRepository
type MockAuthorizationRepository struct {
	mock.Mock
}

func (m *MockAuthorizationRepository) Upsert(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, bool, error) {
	args := m.Called(ctx, appraiserID, bankID, branchID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entities.AuthorizationMapping), args.Bool(1), args.Error(2)
}

func (m *MockAuthorizationRepository) Get(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, error) {
	args := m.Called(ctx, appraiserID, bankID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AuthorizationMapping), args.Error(1)
}

func (m *MockAuthorizationRepository) ListActiveByAppraiser(ctx context.Context, appraiserID string) ([]*entities.AuthorizationMapping, error) {
	args := m.Called(ctx, appraiserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AuthorizationMapping), args.Error(1)
}

func (m *MockAuthorizationRepository) Deactivate(ctx context.Context, appraiserID string, bankID, branchID int64) error {
	args := m.Called(ctx, appraiserID, bankID, branchID)
	return args.Error(0)
}

// Mock TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) GetBankByID(ctx context.Context, id int64) (*entities.Bank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bank), args.Error(1)
}

func (m *MockTenantRepository) GetBankByCode(ctx context.Context, code string) (*entities.Bank, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bank), args.Error(1)
}

func (m *MockTenantRepository) GetOrCreateBank(ctx context.Context, code, name, shortName string) (*entities.Bank, bool, error) {
	args := m.Called(ctx, code, name, shortName)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entities.Bank), args.Bool(1), args.Error(2)
}

func (m *MockTenantRepository) GetBranchByID(ctx context.Context, id int64) (*entities.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Branch), args.Error(1)
}

func (m *MockTenantRepository) GetBranchByCode(ctx context.Context, bankID int64, code string) (*entities.Branch, error) {
	args := m.Called(ctx, bankID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Branch), args.Error(1)
}

func (m *MockTenantRepository) GetOrCreateBranch(ctx context.Context, bankID int64, code, name string) (*entities.Branch, bool, error) {
	args := m.Called(ctx, bankID, code, name)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entities.Branch), args.Bool(1), args.Error(2)
}

// Mock ThresholdStore
type MockThresholdStore struct {
	mock.Mock
}

func (m *MockThresholdStore) Current(ctx context.Context) (entities.ThresholdConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.ThresholdConfig), args.Error(1)
}

func (m *MockThresholdStore) Set(ctx context.Context, value float64) (entities.ThresholdConfig, entities.ThresholdConfig, error) {
	args := m.Called(ctx, value)
	return args.Get(0).(entities.ThresholdConfig), args.Get(1).(entities.ThresholdConfig), args.Error(2)
}

// Mock FaceExtractor
type MockFaceExtractor struct {
	mock.Mock
}

func (m *MockFaceExtractor) Detect(ctx context.Context, image []byte) ([]entities.DetectedFace, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.DetectedFace), args.Error(1)
}

func (m *MockFaceExtractor) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func face(embedding ...float64) entities.DetectedFace {
	return entities.DetectedFace{
		Embedding:  entities.Embedding(embedding),
		BBox:       entities.BoundingBox{10, 20, 110, 140},
		Confidence: 0.99,
	}
}
