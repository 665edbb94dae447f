package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"homechef-api/models"
	"homechef-api/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	identityKey = "identity"
	userKey     = "user"
)

// Identity is the caller as asserted by the identity provider
type Identity struct {
	Email   string
	Name    string
	Subject string
}

// TokenVerifier validates a bearer credential with the identity provider
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 tokens signed with the provider's shared secret
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTVerifier(secret, issuer, audience string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer, audience: audience}
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenStr string) (*Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, errors.New("token has no email claim")
	}
	return &Identity{Email: claims.Email, Name: claims.Name, Subject: claims.Subject}, nil
}

// GenerateToken mints a token the JWTVerifier accepts; used by the CLI and tests
func GenerateToken(secret, issuer, email, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// AuthRequired validates the bearer token and injects the identity into context
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access: " + err.Error()})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RoleRequired loads the caller's user record and enforces one of the allowed
// roles. Roles change on approval, so they are read from the store, not the token.
func RoleRequired(users store.UserRepository, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), identity.Email)
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: no account for " + identity.Email})
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		for _, r := range roles {
			if user.Role == r {
				c.Set(userKey, user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message": "Forbidden: requires role " + rolesString(roles),
		})
	}
}

func rolesString(roles []models.UserRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}

// GetIdentity returns the verified caller, or nil on public routes
func GetIdentity(c *gin.Context) *Identity {
	val, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := val.(*Identity)
	return identity
}

// GetEmail returns the verified caller's email
func GetEmail(c *gin.Context) string {
	if identity := GetIdentity(c); identity != nil {
		return identity.Email
	}
	return ""
}

// GetUser returns the user record loaded by RoleRequired, if any
func GetUser(c *gin.Context) *models.User {
	val, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}
