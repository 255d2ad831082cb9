package businessflow

import (
	"context"
	"testing"

	"github.com/amirphl/Rentora/app/dto"
	"github.com/amirphl/Rentora/models"
	"github.com/amirphl/Rentora/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCompany(t *testing.T) {
	repo := new(mockCompanyRepo)
	repo.On("BySlug", mock.Anything, "sunny-wheels").Return(nil, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*models.Company")).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(*models.Company)
			c.ID = 1
			c.UUID = uuid.New()
		}).
		Return(nil)

	got, err := NewCompanyFlow(repo).CreateCompany(context.Background(), &dto.CreateCompanyRequest{Name: "  Sunny Wheels "}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Sunny Wheels", got.Name)
	assert.Equal(t, "sunny-wheels", got.Slug)
	assert.Equal(t, utils.DefaultCurrency, got.Currency)
	assert.Equal(t, utils.DefaultCommissionRatePct, got.CommissionRatePct)
	assert.True(t, utils.IsTrue(got.IsActive))
	assert.NotEmpty(t, got.UUID)
}

func TestCreateCompany_ExplicitFields(t *testing.T) {
	repo := new(mockCompanyRepo)
	repo.On("BySlug", mock.Anything, "sw-lisbon").Return(nil, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	got, err := NewCompanyFlow(repo).CreateCompany(context.Background(), &dto.CreateCompanyRequest{
		Name:              "Sunny Wheels",
		Slug:              "SW Lisbon",
		Currency:          "GBP",
		CommissionRatePct: utils.ToPtr(12.5),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sw-lisbon", got.Slug)
	assert.Equal(t, "GBP", got.Currency)
	assert.Equal(t, 12.5, got.CommissionRatePct)
}

func TestCreateCompany_Errors(t *testing.T) {
	repo := new(mockCompanyRepo)
	repo.On("BySlug", mock.Anything, "sunny-wheels").Return(testCompany(), nil)
	flow := NewCompanyFlow(repo)

	_, err := flow.CreateCompany(context.Background(), &dto.CreateCompanyRequest{Name: "Sunny Wheels"}, nil)
	assert.True(t, IsCompanySlugExists(err))

	_, err = flow.CreateCompany(context.Background(), &dto.CreateCompanyRequest{Name: "!!!"}, nil)
	assert.True(t, IsInvalidCompany(err))

	_, err = flow.CreateCompany(context.Background(), &dto.CreateCompanyRequest{Name: " "}, nil)
	assert.True(t, IsInvalidCompany(err))
}

func TestGetCompany(t *testing.T) {
	repo := new(mockCompanyRepo)
	expectCompany(repo, testCompany())
	missing := uuid.New()
	repo.On("ByFilter", mock.Anything, models.CompanyFilter{UUID: &missing}, "", 1, 0).Return([]*models.Company{}, nil)
	flow := NewCompanyFlow(repo)

	got, err := flow.GetCompany(context.Background(), testCompanyUUID.String())
	require.NoError(t, err)
	assert.Equal(t, "sunny-wheels", got.Slug)

	_, err = flow.GetCompany(context.Background(), missing.String())
	assert.True(t, IsCompanyNotFound(err))
}

func TestListCompanies(t *testing.T) {
	repo := new(mockCompanyRepo)
	repo.On("Count", mock.Anything, models.CompanyFilter{}).Return(int64(45), nil)
	repo.On("ByFilter", mock.Anything, models.CompanyFilter{}, "name ASC", 20, 20).Return([]*models.Company{testCompany()}, nil)
	flow := NewCompanyFlow(repo)

	got, err := flow.ListCompanies(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, dto.PaginationInfo{Total: 45, Page: 2, PageSize: 20, TotalPages: 3}, got.Pagination)

	_, err = flow.ListCompanies(context.Background(), 1, 101)
	assert.True(t, IsInvalidPageSize(err))

	_, err = flow.ListCompanies(context.Background(), -1, 10)
	assert.True(t, IsInvalidPage(err))
}
