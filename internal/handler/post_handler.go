package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/Damarkevich/hw05-final/internal/model"
	"github.com/Damarkevich/hw05-final/internal/pkg"
	"github.com/Damarkevich/hw05-final/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	svc      *service.PostService
	follows  *service.FollowService
	pageSize int
	mediaDir string
}

func NewPostHandler(svc *service.PostService, follows *service.FollowService, pageSize int, mediaDir string) *PostHandler {
	if pageSize <= 0 {
		pageSize = pkg.DefaultPageSize
	}
	return &PostHandler{
		svc:      svc,
		follows:  follows,
		pageSize: pageSize,
		mediaDir: mediaDir,
	}
}

// Index 首页帖子列表（路由上套了整页缓存）
func (h *PostHandler) Index(c *gin.Context) {
	posts, err := h.svc.ListAll()
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	page := pkg.Paginate(posts, c.Query("page"), h.pageSize)
	c.HTML(http.StatusOK, "index.html", gin.H{"Page": page})
}

// GroupPosts 分组页，slug 不存在 404
func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, posts, err := h.svc.ListGroup(c.Param("slug"))
	if err != nil {
		if service.IsNotFound(err) {
			NotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	page := pkg.Paginate(posts, c.Query("page"), h.pageSize)
	c.HTML(http.StatusOK, "group_list.html", gin.H{
		"Group": group,
		"Page":  page,
	})
}

// Profile 个人主页：作者的帖子 + 帖子总数 + 当前用户是否已关注
func (h *PostHandler) Profile(c *gin.Context) {
	author, posts, count, err := h.svc.ListAuthor(c.Param("username"))
	if err != nil {
		if service.IsNotFound(err) {
			NotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "server error")
		return
	}

	following := false
	if uid, ok := currentUserID(c); ok && uid != author.ID {
		following, _ = h.follows.IsFollowing(c.Request.Context(), uid, author.ID)
	}

	page := pkg.Paginate(posts, c.Query("page"), h.pageSize)
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Author":    author,
		"Page":      page,
		"PostCount": count,
		"Following": following,
	})
}

// Detail 帖子详情 + 分页评论 + 评论表单
func (h *PostHandler) Detail(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	h.renderDetail(c, post, http.StatusOK, "")
}

// CreateForm 建帖表单
func (h *PostHandler) CreateForm(c *gin.Context) {
	groups, _ := h.svc.ListGroups()
	c.HTML(http.StatusOK, "create_post.html", gin.H{
		"Text":    "",
		"Groups":  groups,
		"GroupID": uint64(0),
	})
}

// Create 建帖提交。校验失败重渲染表单，不落库。
func (h *PostHandler) Create(c *gin.Context) {
	uid, _ := currentUserID(c)
	text := c.PostForm("text")
	groupID, ok := h.formGroupID(c)
	if !ok {
		h.renderCreateForm(c, text, nil, "unknown group")
		return
	}

	image, err := h.saveImage(c)
	if err != nil {
		h.renderCreateForm(c, text, groupID, "image upload failed")
		return
	}

	post, err := h.svc.CreatePost(uid, text, groupID, image)
	if err != nil {
		if errors.Is(err, service.ErrTextRequired) {
			h.renderCreateForm(c, text, groupID, "text is required")
			return
		}
		c.String(http.StatusInternalServerError, "server error")
		return
	}

	author, err := h.svc.GetUser(post.AuthorID)
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// EditForm 编辑表单。非作者静默跳回详情页，不给错误页。
func (h *PostHandler) EditForm(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	uid, _ := currentUserID(c)
	if post.AuthorID != uid {
		c.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}
	groups, _ := h.svc.ListGroups()
	c.HTML(http.StatusOK, "create_post.html", gin.H{
		"IsEdit":  true,
		"Post":    post,
		"Text":    post.Text,
		"GroupID": groupValue(post.GroupID),
		"Groups":  groups,
	})
}

// Edit 编辑提交，作者本人限定
func (h *PostHandler) Edit(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	uid, _ := currentUserID(c)
	if post.AuthorID != uid {
		c.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}

	text := c.PostForm("text")
	groupID, okGroup := h.formGroupID(c)
	if !okGroup {
		h.renderEditForm(c, post, text, nil, "unknown group")
		return
	}
	image, err := h.saveImage(c)
	if err != nil {
		h.renderEditForm(c, post, text, groupID, "image upload failed")
		return
	}

	if err := h.svc.UpdatePost(post, text, groupID, image); err != nil {
		if errors.Is(err, service.ErrTextRequired) {
			h.renderEditForm(c, post, text, groupID, "text is required")
			return
		}
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(post.ID))
}

// AddComment 评论提交。空正文重渲染详情页并带字段错误。
func (h *PostHandler) AddComment(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	uid, _ := currentUserID(c)

	if _, err := h.svc.AddComment(uid, post.ID, c.PostForm("text")); err != nil {
		if errors.Is(err, service.ErrTextRequired) {
			h.renderDetail(c, post, http.StatusOK, "text is required")
			return
		}
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(post.ID))
}

// loadPost 解析 :id 并查帖子，失败时已渲染 404
func (h *PostHandler) loadPost(c *gin.Context) (*model.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		NotFound(c)
		return nil, false
	}
	post, err := h.svc.GetPost(id)
	if err != nil {
		if service.IsNotFound(err) {
			NotFound(c)
			return nil, false
		}
		c.String(http.StatusInternalServerError, "server error")
		c.Abort()
		return nil, false
	}
	return post, true
}

func (h *PostHandler) renderDetail(c *gin.Context, post *model.Post, status int, commentError string) {
	comments, err := h.svc.ListComments(post.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	authorPostCount, _ := h.svc.CountByAuthor(post.AuthorID)
	page := pkg.Paginate(comments, c.Query("page"), h.pageSize)
	c.HTML(status, "post_detail.html", gin.H{
		"Post":            post,
		"AuthorPostCount": authorPostCount,
		"Comments":        page,
		"CommentError":    commentError,
	})
}

func (h *PostHandler) renderCreateForm(c *gin.Context, text string, groupID *uint64, formError string) {
	groups, _ := h.svc.ListGroups()
	c.HTML(http.StatusOK, "create_post.html", gin.H{
		"Text":    text,
		"GroupID": groupValue(groupID),
		"Groups":  groups,
		"Error":   formError,
	})
}

func (h *PostHandler) renderEditForm(c *gin.Context, post *model.Post, text string, groupID *uint64, formError string) {
	groups, _ := h.svc.ListGroups()
	c.HTML(http.StatusOK, "create_post.html", gin.H{
		"IsEdit":  true,
		"Post":    post,
		"Text":    text,
		"GroupID": groupValue(groupID),
		"Groups":  groups,
		"Error":   formError,
	})
}

// formGroupID 解析可选的分组选择，空值表示不挂分组
func (h *PostHandler) formGroupID(c *gin.Context) (*uint64, bool) {
	raw := c.PostForm("group")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// saveImage 可选配图：存进 media 目录，文件名用 uuid 防冲突
func (h *PostHandler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// 没传图不是错误
		return "", nil
	}
	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.mediaDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// groupValue 给模板用：没选分组时是 0
func groupValue(id *uint64) uint64 {
	if id == nil {
		return 0
	}
	return *id
}

func postDetailPath(id uint64) string {
	return "/posts/" + strconv.FormatUint(id, 10) + "/"
}
