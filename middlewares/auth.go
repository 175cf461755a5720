package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event_booking_go/utils"
)

const (
	isAuthKey = "isAuth"
	userIDKey = "userId"
)

type ctxKey struct{}

// TokenValidator resolves a bearer token to a user id.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// IsAuth never rejects a request. It only records whether a valid bearer
// token was sent and, if so, whose it is. Handlers decide what needs auth.
func IsAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(isAuthKey, false)

		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.Next()
			return
		}

		userHex, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			c.Next()
			return
		}
		userID, err := primitive.ObjectIDFromHex(userHex)
		if err != nil {
			c.Next()
			return
		}

		c.Set(isAuthKey, true)
		c.Set(userIDKey, userID)
		c.Request = c.Request.WithContext(ContextWithUser(c.Request.Context(), userID))
		c.Next()
	}
}

// RequireAuth rejects requests IsAuth did not authenticate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user of the request.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	if !c.GetBool(isAuthKey) {
		return primitive.NilObjectID, false
	}
	v, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

func ContextWithUser(ctx context.Context, userID primitive.ObjectID) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(ctxKey{}).(primitive.ObjectID)
	return id, ok && !id.IsZero()
}

var _ TokenValidator = (*utils.TokenIssuer)(nil)
