package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blogfolio/blogfolio/utils"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthRequired guards a route group behind a valid, unrevoked access token.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)
		if !ok {
			utils.Message(ctx, http.StatusUnauthorized, "missing or malformed authorization header")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			utils.Message(ctx, http.StatusUnauthorized, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil || claims.TokenType != utils.TokenTypeAccess {
			utils.Message(ctx, http.StatusUnauthorized, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}
