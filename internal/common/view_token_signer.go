package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"trippilot/skyview/internal/constants"
)

var (
	ErrTokenInvalid = errors.New("invalid view token")
	ErrTokenRevoked = errors.New("view token revoked")
)

// ViewClaims identifies the view a token grants access to.
type ViewClaims struct {
	ViewID    string
	TokenID   string
	ExpiresAt time.Time
}

// ViewTokenSigner issues and checks the bearer tokens handed out when a
// view is mounted. Revoked token ids are kept in the cache until the token
// would have expired anyway.
type ViewTokenSigner struct {
	secretKey []byte
	ttl       time.Duration
	cache     CacheInterface
}

func NewViewTokenSigner(secretKey []byte, ttl time.Duration, cache CacheInterface) *ViewTokenSigner {
	return &ViewTokenSigner{
		secretKey: secretKey,
		ttl:       ttl,
		cache:     cache,
	}
}

// Issue signs a token for viewID.
func (s *ViewTokenSigner) Issue(viewID string) (string, *ViewClaims, error) {
	now := time.Now()
	vc := &ViewClaims{
		ViewID:    viewID,
		TokenID:   uuid.New().String(),
		ExpiresAt: now.Add(s.ttl),
	}

	claims := jwt.MapClaims{
		"view_id": vc.ViewID,
		"jti":     vc.TokenID,
		"exp":     vc.ExpiresAt.Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, vc, nil
}

// Validate parses tokenString and rejects revoked tokens.
func (s *ViewTokenSigner) Validate(ctx context.Context, tokenString string) (*ViewClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	viewID, ok := claims["view_id"].(string)
	if !ok || viewID == "" {
		return nil, fmt.Errorf("%w: missing view_id claim", ErrTokenInvalid)
	}
	tokenID, ok := claims["jti"].(string)
	if !ok || tokenID == "" {
		return nil, fmt.Errorf("%w: missing jti claim", ErrTokenInvalid)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrTokenInvalid)
	}

	revoked, err := s.isRevoked(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return &ViewClaims{
		ViewID:    viewID,
		TokenID:   tokenID,
		ExpiresAt: exp.Time,
	}, nil
}

// Revoke invalidates the token with tokenID until expiresAt.
func (s *ViewTokenSigner) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, string(constants.CachePrefixRevokedToken)+tokenID, true, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *ViewTokenSigner) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	found, err := s.cache.GetJSON(ctx, string(constants.CachePrefixRevokedToken)+tokenID, &revoked)
	if err != nil {
		return false, err
	}
	return found && revoked, nil
}
