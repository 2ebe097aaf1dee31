package handler

import (
	"net/http"

	"github.com/Damarkevich/hw05-final/internal/pkg"
	"github.com/Damarkevich/hw05-final/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc      *service.FollowService
	pageSize int
}

func NewFollowHandler(svc *service.FollowService, pageSize int) *FollowHandler {
	if pageSize <= 0 {
		pageSize = pkg.DefaultPageSize
	}
	return &FollowHandler{svc: svc, pageSize: pageSize}
}

// FollowIndex 关注流：已关注作者的帖子合并分页
func (h *FollowHandler) FollowIndex(c *gin.Context) {
	uid, _ := currentUserID(c)
	posts, err := h.svc.Feed(c.Request.Context(), uid)
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	page := pkg.Paginate(posts, c.Query("page"), h.pageSize)
	c.HTML(http.StatusOK, "follow.html", gin.H{"Page": page})
}

// Follow 关注作者。重复关注和自关注都静默放过，统一跳回作者主页。
func (h *FollowHandler) Follow(c *gin.Context) {
	uid, _ := currentUserID(c)
	username := c.Param("username")
	if err := h.svc.Follow(c.Request.Context(), uid, username); err != nil {
		if service.IsNotFound(err) {
			NotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

// Unfollow 取关（幂等），跳回作者主页
func (h *FollowHandler) Unfollow(c *gin.Context) {
	uid, _ := currentUserID(c)
	username := c.Param("username")
	if err := h.svc.Unfollow(c.Request.Context(), uid, username); err != nil {
		if service.IsNotFound(err) {
			NotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
