package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

const actorContextKey = "auth_actor"

// Service issues bearer tokens and authenticates incoming requests.
type Service struct {
	secret []byte
	ttl    time.Duration
	users  repository.UserRepository
}

func NewService(secret string, ttl time.Duration, users repository.UserRepository) *Service {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		users:  users,
	}
}

// IssueToken mints a signed session token for the user.
func (s *Service) IssueToken(userID string) (string, error) {
	return GenerateToken(userID, s.secret, s.ttl)
}

// TokenTTL reports the configured token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.ttl
}

// Middleware validates bearer tokens and stores the authenticated actor in
// the context. The user row is re-read on every request so role changes and
// deletions take effect immediately rather than at token expiry.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "authorization required")
			return
		}
		userID, err := UserIDFromToken(tokenString, s.secret)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		actor, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFromContext retrieves the authenticated user from the gin context.
func ActorFromContext(c *gin.Context) (*domain.User, bool) {
	val, ok := c.Get(actorContextKey)
	if !ok {
		return nil, false
	}
	actor, ok := val.(*domain.User)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "authentication_error",
		"message": msg,
	})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
