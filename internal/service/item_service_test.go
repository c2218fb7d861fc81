package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/repository"
)

// recordingItemRepo captures the filters the service derives from the
// caller's scope.
type recordingItemRepo struct {
	fakeItemRepo
	statsCompany *string
	statsOffice  *string
	statsPartner *string
	listFilter   repository.ItemFilter
}

func (f *recordingItemRepo) Stats(_ context.Context, companyCode, officeCode, partnerID *string) ([]repository.CategoryCount, []string, error) {
	f.statsCompany = companyCode
	f.statsOffice = officeCode
	f.statsPartner = partnerID
	return []repository.CategoryCount{{Category: domain.CategoryBuildingInfra, Count: 2}}, []string{"3F"}, nil
}

func (f *recordingItemRepo) List(_ context.Context, filter repository.ItemFilter) ([]domain.Item, error) {
	f.listFilter = filter
	return nil, nil
}

func newItemService(repo repository.ItemRepository) *ItemService {
	return NewItemService(0, ItemDependencies{ItemRepo: repo})
}

func TestItemStatsBoundedByContractorPartner(t *testing.T) {
	repo := &recordingItemRepo{}
	svc := newItemService(repo)

	partnerID := "PTR-9"
	contractor := domain.Principal{ID: "ct1", Role: domain.RoleContractor, PartnerID: &partnerID}

	_, _, err := svc.Stats(context.Background(), contractor)
	require.NoError(t, err)

	require.NotNil(t, repo.statsPartner, "contractor aggregates must carry the partner filter")
	assert.Equal(t, "PTR-9", *repo.statsPartner)
	assert.Nil(t, repo.statsCompany, "partner pin is the contractor boundary, not company")
	assert.Nil(t, repo.statsOffice)
}

func TestItemStatsBoundedByCompanyAndOffice(t *testing.T) {
	repo := &recordingItemRepo{}
	svc := newItemService(repo)

	counts, floors, err := svc.Stats(context.Background(), staffPrincipal())
	require.NoError(t, err)

	require.NotNil(t, repo.statsCompany)
	assert.Equal(t, "C001", *repo.statsCompany)
	require.NotNil(t, repo.statsOffice)
	assert.Equal(t, "O001", *repo.statsOffice)
	assert.Nil(t, repo.statsPartner)
	assert.Len(t, counts, 1)
	assert.Equal(t, []string{"3F"}, floors)
}

func TestItemStatsUnrestrictedForSystemAdmin(t *testing.T) {
	repo := &recordingItemRepo{}
	svc := newItemService(repo)

	admin := domain.Principal{ID: "sys", Role: domain.RoleSystemAdmin, CompanyCode: "C001"}
	_, _, err := svc.Stats(context.Background(), admin)
	require.NoError(t, err)

	assert.Nil(t, repo.statsCompany)
	assert.Nil(t, repo.statsOffice)
	assert.Nil(t, repo.statsPartner)
}

func TestItemListCarriesContractorPartnerFilter(t *testing.T) {
	repo := &recordingItemRepo{}
	svc := newItemService(repo)

	partnerID := "PTR-9"
	contractor := domain.Principal{ID: "ct1", Role: domain.RoleContractor, PartnerID: &partnerID}

	_, err := svc.List(context.Background(), contractor, ItemListFilter{})
	require.NoError(t, err)

	require.NotNil(t, repo.listFilter.PartnerID)
	assert.Equal(t, "PTR-9", *repo.listFilter.PartnerID)
}
