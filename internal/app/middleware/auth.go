// internal/app/middleware/auth.go
package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hollowpress/hollow-press/internal/pkg/auth"
	"github.com/hollowpress/hollow-press/pkg/response"
)

type Middleware struct {
	jwtSecret []byte
}

func NewMiddleware(jwtSecret []byte) *Middleware {
	return &Middleware{jwtSecret: jwtSecret}
}

// bearerToken 从 Authorization 头中取出 Bearer Token
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// JWTAuth 是一个强制性的JWT认证中间件
func (m *Middleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "请求未携带Token或格式不正确，无权限访问")
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenString, m.jwtSecret)
		if err != nil {
			log.Printf("[JWTAuth] JWT token解析失败: %v", err)
			response.Fail(c, http.StatusUnauthorized, "无效或过期的Token")
			c.Abort()
			return
		}

		c.Set(auth.ClaimsKey, claims)
		c.Next()
	}
}

// JWTAuthOptional 是一个可选的JWT认证中间件。
// 没有Token或Token无效时按游客处理，搜索接口不能因为过期Token而不可用。
func (m *Middleware) JWTAuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(tokenString, m.jwtSecret)
		if err != nil {
			log.Printf("[JWTAuthOptional] Token解析失败，按游客处理: %v", err)
			c.Next()
			return
		}

		c.Set(auth.ClaimsKey, claims)
		c.Next()
	}
}

// AdminAuth 是一个管理员权限验证中间件，需要放在 JWTAuth 之后
func (m *Middleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			log.Printf("[AdminAuth] 错误: 上下文中没有找到认证信息 %s", auth.ClaimsKey)
			response.Fail(c, http.StatusForbidden, "权限信息获取失败")
			c.Abort()
			return
		}

		if !auth.IsAdmin(claims) {
			log.Printf("[AdminAuth] 权限不足: UserID=%s, UserGroupID=%s", claims.UserID, claims.UserGroupID)
			response.Fail(c, http.StatusForbidden, "权限不足：此操作需要管理员权限")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClaimsFrom 读取认证中间件写入的 claims
func ClaimsFrom(c *gin.Context) (*auth.CustomClaims, bool) {
	value, exists := c.Get(auth.ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.CustomClaims)
	return claims, ok && claims != nil
}

// IsPrivileged 判断当前请求是否来自管理员
func IsPrivileged(c *gin.Context) bool {
	claims, ok := ClaimsFrom(c)
	return ok && auth.IsAdmin(claims)
}
