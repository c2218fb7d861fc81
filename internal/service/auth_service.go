package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/config"
	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// AuthService coordinates login flows for accounts and partner contacts.
type AuthService struct {
	accounts   repository.AccountRepository
	partners   repository.PartnerRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	PartnerRepo repository.PartnerRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		partners:   deps.PartnerRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates a company-hierarchy account.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (domain.Principal, string, time.Time, error) {
	account, err := s.accounts.GetByID(ctx, loginID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Principal{}, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return domain.Principal{}, "", time.Time{}, apperrors.MapError(err)
	}
	if account.Status != domain.RecordStatusActive {
		return domain.Principal{}, "", time.Time{}, apperrors.NewUnauthorized("account inactive")
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return domain.Principal{}, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	principal := domain.Principal{
		ID:          account.ID,
		Name:        account.Name,
		Role:        account.Role,
		CompanyCode: account.CompanyCode,
		OfficeCode:  account.OfficeCode,
	}
	token, expiresAt, err := s.tokenMgr.GenerateToken(principal)
	if err != nil {
		return domain.Principal{}, "", time.Time{}, apperrors.MapError(err)
	}
	_ = s.accounts.TouchLogin(ctx, account.ID)
	return principal, token, expiresAt, nil
}

// LoginContractor authenticates a partner contact and issues a
// partner-scoped contractor token.
func (s *AuthService) LoginContractor(ctx context.Context, loginID, password string) (domain.Principal, string, time.Time, error) {
	contact, err := s.partners.GetContactByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Principal{}, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return domain.Principal{}, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(contact.PasswordHash, password); err != nil {
		return domain.Principal{}, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	partnerID := contact.PartnerID
	principal := domain.Principal{
		ID:        contact.LoginID,
		Name:      contact.Name,
		Role:      domain.RoleContractor,
		PartnerID: &partnerID,
	}
	token, expiresAt, err := s.tokenMgr.GenerateToken(principal)
	if err != nil {
		return domain.Principal{}, "", time.Time{}, apperrors.MapError(err)
	}
	return principal, token, expiresAt, nil
}

// ChangePassword rotates the caller's own password.
func (s *AuthService) ChangePassword(ctx context.Context, p domain.Principal, current, next string) error {
	if p.IsContractor() {
		return apperrors.NewForbidden("contractor passwords are managed by the partner admin")
	}
	account, err := s.accounts.GetByID(ctx, p.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized("current password mismatch")
	}
	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	account.PasswordHash = hash
	account.IsFirstLogin = false
	return apperrors.MapError(s.accounts.Update(ctx, account))
}
