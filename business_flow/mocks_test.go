package businessflow

import (
	"context"
	"time"

	"github.com/amirphl/Rentora/app/services"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/pricing"
	"github.com/stretchr/testify/mock"
)

func ptrOrNil[T any](v any) *T {
	if v == nil {
		return nil
	}
	return v.(*T)
}

func sliceOrNil[T any](v any) []*T {
	if v == nil {
		return nil
	}
	return v.([]*T)
}

// baseRepoMock covers the generic Repository methods for one entity/filter pair
type baseRepoMock[T any, F any] struct {
	mock.Mock
}

func (m *baseRepoMock[T, F]) ByID(ctx context.Context, id uint) (*T, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[T](args.Get(0)), args.Error(1)
}

func (m *baseRepoMock[T, F]) ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error) {
	args := m.Called(ctx, filter, orderBy, limit, offset)
	return sliceOrNil[T](args.Get(0)), args.Error(1)
}

func (m *baseRepoMock[T, F]) Save(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *baseRepoMock[T, F]) SaveBatch(ctx context.Context, entities []*T) error {
	return m.Called(ctx, entities).Error(0)
}

func (m *baseRepoMock[T, F]) Count(ctx context.Context, filter F) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *baseRepoMock[T, F]) Exists(ctx context.Context, filter F) (bool, error) {
	args := m.Called(ctx, filter)
	return args.Bool(0), args.Error(1)
}

type mockAdminRepo struct {
	baseRepoMock[models.Admin, models.AdminFilter]
}

func (m *mockAdminRepo) ByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	return ptrOrNil[models.Admin](args.Get(0)), args.Error(1)
}

func (m *mockAdminRepo) UpdateLastLogin(ctx context.Context, adminID uint, at time.Time) error {
	return m.Called(ctx, adminID, at).Error(0)
}

type mockCompanyRepo struct {
	baseRepoMock[models.Company, models.CompanyFilter]
}

func (m *mockCompanyRepo) BySlug(ctx context.Context, slug string) (*models.Company, error) {
	args := m.Called(ctx, slug)
	return ptrOrNil[models.Company](args.Get(0)), args.Error(1)
}

func (m *mockCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	return m.Called(ctx, company).Error(0)
}

type mockBiddingRepo struct {
	baseRepoMock[models.BiddingConfig, models.BiddingConfigFilter]
}

func (m *mockBiddingRepo) ByCompanyID(ctx context.Context, companyID uint) (*models.BiddingConfig, error) {
	args := m.Called(ctx, companyID)
	return ptrOrNil[models.BiddingConfig](args.Get(0)), args.Error(1)
}

func (m *mockBiddingRepo) Upsert(ctx context.Context, companyID uint, tiers pricing.BiddingTiers, adminID *uint) (*models.BiddingConfig, error) {
	args := m.Called(ctx, companyID, tiers, adminID)
	return ptrOrNil[models.BiddingConfig](args.Get(0)), args.Error(1)
}

type mockRateCardRepo struct {
	baseRepoMock[models.RateCard, models.RateCardFilter]
}

func (m *mockRateCardRepo) LatestActive(ctx context.Context, companyID uint, vehicleClass string) (*models.RateCard, error) {
	args := m.Called(ctx, companyID, vehicleClass)
	return ptrOrNil[models.RateCard](args.Get(0)), args.Error(1)
}

type mockBookingRepo struct {
	baseRepoMock[models.Booking, models.BookingFilter]
}

func (m *mockBookingRepo) ByReference(ctx context.Context, reference string) (*models.Booking, error) {
	args := m.Called(ctx, reference)
	return ptrOrNil[models.Booking](args.Get(0)), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uint, from, to models.BookingStatus, completedAt *time.Time) error {
	return m.Called(ctx, id, from, to, completedAt).Error(0)
}

func (m *mockBookingRepo) ListCompletedInPeriod(ctx context.Context, companyID uint, from, to time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, companyID, from, to)
	return sliceOrNil[models.Booking](args.Get(0)), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAdminTokens(adminID uint) (string, string, error) {
	args := m.Called(adminID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) ValidateAdminToken(ctx context.Context, token string) (*services.AdminTokenClaims, error) {
	args := m.Called(ctx, token)
	return ptrOrNil[services.AdminTokenClaims](args.Get(0)), args.Error(1)
}

func (m *mockTokenService) RefreshAdminTokens(ctx context.Context, refreshToken string) (*services.AdminTokenClaims, string, string, error) {
	args := m.Called(ctx, refreshToken)
	return ptrOrNil[services.AdminTokenClaims](args.Get(0)), args.String(1), args.String(2), args.Error(3)
}

func (m *mockTokenService) RevokeToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenService) IsTokenRevoked(ctx context.Context, tokenID string) bool {
	return m.Called(ctx, tokenID).Bool(0)
}

func (m *mockTokenService) AccessTokenTTL() time.Duration {
	return time.Hour
}

type mockCaptcha struct {
	mock.Mock
}

func (m *mockCaptcha) GenerateRotate(ctx context.Context) (*services.RotateChallenge, error) {
	args := m.Called(ctx)
	return ptrOrNil[services.RotateChallenge](args.Get(0)), args.Error(1)
}

func (m *mockCaptcha) VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool {
	return m.Called(ctx, challengeID, userAngle).Bool(0)
}

func (m *mockCaptcha) Close() {}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, companyID uint) (pricing.BiddingTiers, bool, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(pricing.BiddingTiers), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, companyID uint, tiers pricing.BiddingTiers) error {
	return m.Called(ctx, companyID, tiers).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, companyID uint) error {
	return m.Called(ctx, companyID).Error(0)
}

// recordingPublisher keeps published events in memory
type recordingPublisher struct {
	events []services.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event services.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }
