package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims carries the full scope identity so the engine can build a Principal
// without a storage round trip.
type Claims struct {
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	CompanyCode string  `json:"company_code,omitempty"`
	OfficeCode  string  `json:"office_code,omitempty"`
	PartnerID   *string `json:"partner_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the principal.
func (tm *TokenManager) GenerateToken(p domain.Principal) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &Claims{
		Name:        p.Name,
		Role:        string(p.Role),
		CompanyCode: p.CompanyCode,
		OfficeCode:  p.OfficeCode,
		PartnerID:   p.PartnerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Principal reconstructs the immutable request principal from verified claims.
func (c *Claims) Principal() (domain.Principal, error) {
	role := domain.Role(c.Role)
	if !role.Valid() {
		return domain.Principal{}, errors.New("unknown role in token")
	}
	return domain.Principal{
		ID:          c.Subject,
		Name:        c.Name,
		Role:        role,
		CompanyCode: c.CompanyCode,
		OfficeCode:  c.OfficeCode,
		PartnerID:   c.PartnerID,
	}, nil
}
