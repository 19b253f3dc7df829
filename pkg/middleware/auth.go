package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Role 认证主体的角色
type Role string

const (
	RoleUser    Role = "user"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// Principal 认证协作方提供的可信调用者身份。
// 引擎信任这里的 (UserID, Role)，并在每次操作前自行做所有权/角色检查。
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin 管理员能力判定
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Owns 所有权能力判定
func (p Principal) Owns(ownerID string) bool { return p.UserID != "" && p.UserID == ownerID }

type principalContextKey struct{}

// WithPrincipal 将认证主体放入 context
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFrom 从 context 中取出认证主体
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

type authClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GinAuthMiddleware 解析 Bearer JWT 并注入 Principal；没有或无效的令牌直接拒绝
func GinAuthMiddleware(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
		if err != nil || !token.Valid || claims.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		role := Role(claims.Role)
		switch role {
		case RoleUser, RoleCreator, RoleAdmin:
		default:
			role = RoleUser
		}

		principal := Principal{UserID: claims.UserID, Role: role}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}
