package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "petbook/database/repository/user"
	"petbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserRole  = "userRole"
)

const identityCacheTTL = time.Hour

// AuthMiddleware validates the Bearer token on every protected request and
// attaches the resolved identity to the gin context. The identity is cached in
// Redis to skip the user lookup; a missing or failing cache degrades to a
// repository lookup.
func AuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado, nenhum token fornecido"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado, token falhou"})
			return
		}

		if email, role, ok := cachedIdentity(userID); ok {
			c.Set(CtxUserID, userID)
			c.Set(CtxUserEmail, email)
			c.Set(CtxUserRole, role)
			c.Next()
			return
		}

		usr, err := repo.GetByID(userID)
		if err != nil {
			utils.GetLogger().Error("auth: failed to resolve user", zap.String("id", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado, token falhou"})
			return
		}
		if usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Usuário não encontrado, token falhou"})
			return
		}

		cacheIdentity(userID, usr.Email, usr.Role)

		c.Set(CtxUserID, usr.ID)
		c.Set(CtxUserEmail, usr.Email)
		c.Set(CtxUserRole, usr.Role)
		c.Next()
	}
}

// cachedIdentity reads "email|role" from the auth cache. Any error counts as a miss.
func cachedIdentity(userID string) (email, role string, ok bool) {
	client := utils.GetAuthCacheClient()
	if client == nil {
		return "", "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := client.Get(ctx, utils.AuthCachePrefix+userID).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Debug("auth cache read failed", zap.Error(err))
		}
		return "", "", false
	}
	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	_ = client.Expire(ctx, utils.AuthCachePrefix+userID, identityCacheTTL).Err()
	return parts[0], parts[1], true
}

func cacheIdentity(userID, email, role string) {
	client := utils.GetAuthCacheClient()
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = client.Set(ctx, utils.AuthCachePrefix+userID, email+"|"+role, identityCacheTTL).Err()
}
