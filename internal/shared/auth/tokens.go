package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"music-store-server/internal/shared/models"
)

// Identity is the user payload embedded verbatim into both token kinds. It
// must never contain the password hash.
type Identity struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Username    string    `json:"username,omitempty"`
	Role        string    `json:"role"`
	IsActivated bool      `json:"is_activated"`
	BasketID    string    `json:"basket_id,omitempty"`
}

// Claims are the JWT claims carried by access and refresh tokens.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// NewIdentity builds the token payload for a user.
func NewIdentity(u *models.User) Identity {
	return Identity{
		UserID:      u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		IsActivated: u.IsActivated,
	}
}

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	AccessExpiresAt  time.Time `json:"-"`
	RefreshExpiresAt time.Time `json:"-"`
}

// Codec signs and verifies the two classes of bearer tokens. The access and
// refresh secrets are distinct keys with independent expiry policies, so a
// token minted for one purpose is rejected by the other verifier.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewCodec creates a token codec. The two secrets must differ; reusing one
// key for both purposes would make cross-purpose token confusion possible.
func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("access and refresh secrets must be distinct")
	}
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}, nil
}

// RefreshTTL reports the refresh token lifetime, used for cookie max-age and
// session TTLs.
func (c *Codec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

// Issue produces two independently signed tokens from the same payload.
func (c *Codec) Issue(identity Identity) (*TokenPair, error) {
	now := time.Now()
	pair := &TokenPair{
		AccessExpiresAt:  now.Add(c.accessTTL),
		RefreshExpiresAt: now.Add(c.refreshTTL),
	}

	var err error
	pair.AccessToken, err = c.sign(identity, now, pair.AccessExpiresAt, c.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	pair.RefreshToken, err = c.sign(identity, now, pair.RefreshExpiresAt, c.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return pair, nil
}

func (c *Codec) sign(identity Identity, now, expiresAt time.Time, secret []byte) (string, error) {
	claims := &Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   identity.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccess checks signature and expiry of an access token. Any failure
// (bad signature, malformed token, expired, wrong purpose) yields an error
// that callers must treat as "unauthenticated".
func (c *Codec) VerifyAccess(token string) (*Claims, error) {
	return c.verify(token, c.accessSecret)
}

// VerifyRefresh checks signature and expiry of a refresh token.
func (c *Codec) VerifyRefresh(token string) (*Claims, error) {
	return c.verify(token, c.refreshSecret)
}

func (c *Codec) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}
