package middleware

import (
	"net/http"

	"github.com/Damarkevich/hw05-final/internal/pkg"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "user_id"
	SessionCookie    = "yatube_session"
	LoginPath        = "/auth/login/"
)

// TokenStore 会话校验用到的只读部分
type TokenStore interface {
	GetUserToken(userID uint64) (string, error)
}

// AuthRequired 浏览器端登录保护：没登录重定向到登录页并带上 next 参数
func AuthRequired(tokens TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := sessionUser(c, tokens)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath+"?next="+c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, uid)
		c.Next()
	}
}

// CurrentUser 软校验：识别出登录用户就放进上下文，识别不出也放行
func CurrentUser(tokens TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := sessionUser(c, tokens); ok {
			c.Set(ContextUserIDKey, uid)
		}
		c.Next()
	}
}

// sessionUser 解析 cookie 里的 token 并和会话存储比对
func sessionUser(c *gin.Context, tokens TokenStore) (uint64, bool) {
	tokenStr, err := c.Cookie(SessionCookie)
	if err != nil || tokenStr == "" {
		return 0, false
	}

	claims, err := pkg.ParseAccess(tokenStr)
	if err != nil {
		return 0, false
	}

	originToken, err := tokens.GetUserToken(claims.UserID)
	if err != nil || originToken != tokenStr {
		return 0, false
	}
	return claims.UserID, true
}
