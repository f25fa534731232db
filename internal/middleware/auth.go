package middleware

import (
	"net/http"
	"strings"

	"tenaypos/internal/apierror"
	"tenaypos/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const ClaimsKey = "claims"

// JWTClaims are the custom claims embedded in every access token. Permission
// flags travel in the token so services authorize from the explicit actor,
// never from ambient state.
type JWTClaims struct {
	UserID      string            `json:"user_id"`
	Username    string            `json:"username"`
	Role        string            `json:"role"`
	Permissions model.Permissions `json:"permissions"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetActor builds the typed actor from the JWT claims in the Gin context.
func GetActor(c *gin.Context) model.Actor {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	id, _ := uuid.Parse(claims.UserID)
	return model.Actor{
		ID:          id,
		Username:    claims.Username,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}
}
