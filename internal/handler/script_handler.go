package handler

import (
	"net/http"
	"strconv"

	"Nexus_Protocols/internal/service"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ScriptHandler struct {
	svc *service.ScriptService
}

// UploadReq 上传脚本请求体。必填校验在服务层做，错误文案保持一致
type UploadReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Category    string   `json:"category"`
	Thumbnail   string   `json:"thumbnail"`
	Links       []string `json:"links"`
}

func NewScriptHandler(db *gorm.DB, rdb *goredis.Client) *ScriptHandler {
	return &ScriptHandler{
		svc: service.NewScriptService(db, rdb),
	}
}

func (h *ScriptHandler) Upload(c *gin.Context) {
	var req UploadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	script, err := h.svc.Submit(c.Request.Context(), userIDFromCtx(c), service.ScriptSubmission{
		Name:        req.Name,
		Description: req.Description,
		Code:        req.Code,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
		Links:       req.Links,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"script": script})
}

// List 目录浏览：搜索+分类过滤+排序+分页
func (h *ScriptHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	scripts, err := h.svc.List(c.Request.Context(),
		c.Query("search"), c.Query("category"), c.DefaultQuery("sort", "newest"), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list scripts failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scripts": scripts})
}

func (h *ScriptHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid script id"})
		return
	}

	// 公共接口上viewer可能为0，此时每次访问都计浏览
	detail, err := h.svc.Get(c.Request.Context(), id, userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"script": detail})
}

// Mine 作者本人的脚本管理列表，含待审与已过审
func (h *ScriptHandler) Mine(c *gin.Context) {
	scripts, err := h.svc.Mine(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list scripts failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scripts": scripts})
}

func (h *ScriptHandler) Save(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid script id"})
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), userIDFromCtx(c), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (h *ScriptHandler) SavedList(c *gin.Context) {
	scripts, err := h.svc.SavedList(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list saved scripts failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scripts": scripts})
}
