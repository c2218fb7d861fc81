package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

type fakePartnerRepo struct {
	partners map[string]*domain.Partner
	deleted  []string
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{partners: map[string]*domain.Partner{}}
}

func (f *fakePartnerRepo) Create(_ context.Context, partner *domain.Partner) error {
	clone := *partner
	f.partners[partner.ID] = &clone
	return nil
}

func (f *fakePartnerRepo) Update(_ context.Context, partner *domain.Partner) error {
	if _, ok := f.partners[partner.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *partner
	f.partners[partner.ID] = &clone
	return nil
}

func (f *fakePartnerRepo) GetByID(_ context.Context, id string) (*domain.Partner, error) {
	partner, ok := f.partners[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *partner
	return &clone, nil
}

func (f *fakePartnerRepo) List(_ context.Context, _ repository.PartnerFilter) ([]domain.Partner, error) {
	return nil, nil
}

func (f *fakePartnerRepo) MarkDeleted(_ context.Context, id string) error {
	partner, ok := f.partners[id]
	if !ok {
		return pgx.ErrNoRows
	}
	partner.Status = domain.RecordStatusInactive
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePartnerRepo) CreateContact(_ context.Context, contact *domain.PartnerContact) error {
	contact.ID = "generated-contact-id"
	return nil
}

func (f *fakePartnerRepo) ListContacts(_ context.Context, _ string) ([]domain.PartnerContact, error) {
	return nil, nil
}

func (f *fakePartnerRepo) GetContactByLoginID(_ context.Context, _ string) (*domain.PartnerContact, error) {
	return nil, pgx.ErrNoRows
}

func seedPartner(repo *fakePartnerRepo, id string) {
	repo.partners[id] = &domain.Partner{
		ID:     id,
		Name:   "Sunrise Facilities",
		Status: domain.RecordStatusActive,
	}
}

func TestPartnerDeleteRequiresSystemAdmin(t *testing.T) {
	repo := newFakePartnerRepo()
	seedPartner(repo, "PTR-1")
	svc := NewPartnerService(repo, nil, 0)

	companyAdmin := domain.Principal{ID: "ca1", Role: domain.RoleCompanyAdmin, CompanyCode: "C001"}
	err := svc.Delete(context.Background(), companyAdmin, "PTR-1")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeRoleNotAllowed, domainErr.Code)
	assert.Empty(t, repo.deleted)
	assert.Equal(t, domain.RecordStatusActive, repo.partners["PTR-1"].Status)
}

func TestPartnerDeleteMarksInactive(t *testing.T) {
	repo := newFakePartnerRepo()
	seedPartner(repo, "PTR-1")
	svc := NewPartnerService(repo, nil, 0)

	sysAdmin := domain.Principal{ID: "sys", Role: domain.RoleSystemAdmin, CompanyCode: "C001"}
	err := svc.Delete(context.Background(), sysAdmin, "PTR-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"PTR-1"}, repo.deleted)
	assert.Equal(t, domain.RecordStatusInactive, repo.partners["PTR-1"].Status)
}

func TestPartnerDeleteUnknownID(t *testing.T) {
	repo := newFakePartnerRepo()
	svc := NewPartnerService(repo, nil, 0)

	sysAdmin := domain.Principal{ID: "sys", Role: domain.RoleSystemAdmin, CompanyCode: "C001"}
	err := svc.Delete(context.Background(), sysAdmin, "PTR-missing")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
