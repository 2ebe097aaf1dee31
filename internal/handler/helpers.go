package handler

import (
	"net/http"

	"github.com/Damarkevich/hw05-final/internal/middleware"

	"github.com/gin-gonic/gin"
)

// currentUserID 取 auth 中间件放进上下文的登录用户
func currentUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// NotFound 自定义 404 页，未知路由和查无数据共用
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{"Path": c.Request.URL.Path})
	c.Abort()
}
