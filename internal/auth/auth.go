// Package auth verifies the bearer tokens that carry the caller's identity.
// Tokens are HS256 JWTs with the claims sub, name, can_manage_limits and exp.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const identityKey = "auth.identity"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is the authenticated caller.
type Identity struct {
	UserID          string
	Name            string
	CanManageLimits bool
}

type Authenticator struct {
	secret []byte
	now    func() time.Time
}

func NewAuthenticator(secret string) (*Authenticator, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for id valid for ttl.
func (a *Authenticator) Issue(id Identity, ttl time.Duration) (string, error) {
	if id.UserID == "" {
		return "", errors.New("user id is required")
	}
	now := a.now()
	claims := jwt.MapClaims{
		"sub":               id.UserID,
		"name":              id.Name,
		"can_manage_limits": id.CanManageLimits,
		"iat":               now.Unix(),
		"exp":               now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of a token and returns its identity.
func (a *Authenticator) Parse(tokenString string) (Identity, error) {
	claims := jwt.MapClaims{}
	// Expiry is checked below against the authenticator's clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !claims.VerifyExpiresAt(a.now().Unix(), true) {
		return Identity{}, fmt.Errorf("%w: missing or past exp", ErrInvalidToken)
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return Identity{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}
	name, _ := claims["name"].(string)
	manage, _ := claims["can_manage_limits"].(bool)

	return Identity{UserID: sub, Name: name, CanManageLimits: manage}, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// identity for FromContext.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		id, err := a.Parse(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", ErrInvalidToken.Error())
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireManager lets through only identities allowed to manage limits.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := FromContext(c)
		if !ok || !id.CanManageLimits {
			abort(c, http.StatusForbidden, "forbidden", "not allowed to manage limits")
			return
		}
		c.Next()
	}
}

func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// WithIdentity stores id as if Middleware had authenticated it.
func WithIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}
