package service

import (
	"errors"
	"fmt"
	"time"

	"claim-escrow-engine/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

// principalClaims is the identity provider's token body.
type principalClaims struct {
	Role          string `json:"role"`
	WalletAddress string `json:"wallet_address,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService using HS256 JWT.
// Production tokens are minted by the identity provider; Generate serves
// claimsctl and tests.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed JWT for the given principal.
func (s *JWTTokenService) Generate(p domain.Principal) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := principalClaims{
		Role:          string(p.Role),
		WalletAddress: p.WalletAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a JWT token, returning the principal it carries.
func (s *JWTTokenService) Validate(tokenString string) (*domain.Principal, error) {
	var claims principalClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("missing subject claim")
	}

	role := domain.Role(claims.Role)
	switch role {
	case domain.RoleClaimant, domain.RoleAdjuster, domain.RoleAdmin:
	default:
		return nil, fmt.Errorf("unrecognized role %q", claims.Role)
	}

	return &domain.Principal{
		UserID:        claims.Subject,
		Role:          role,
		WalletAddress: claims.WalletAddress,
	}, nil
}
