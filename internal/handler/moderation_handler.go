package handler

import (
	"net/http"
	"strconv"

	"Nexus_Protocols/internal/middleware"
	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/pkg"
	"Nexus_Protocols/internal/service"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ModerationHandler 审核队列、举报队列与用户管理（moderator及以上）
type ModerationHandler struct {
	moderation *service.ModerationService
	reports    *service.ReportService
	admin      *service.AdminService
}

func NewModerationHandler(db *gorm.DB, rdb *goredis.Client, smtp pkg.SMTPConfig) *ModerationHandler {
	return &ModerationHandler{
		moderation: service.NewModerationService(db, rdb, smtp),
		reports:    service.NewReportService(db, rdb),
		admin:      service.NewAdminService(db, rdb),
	}
}

func actorFromCtx(c *gin.Context) *model.User {
	if v, ok := c.Get(middleware.ContextUserKey); ok {
		if u, ok2 := v.(*model.User); ok2 {
			return u
		}
	}
	return nil
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *ModerationHandler) Pending(c *gin.Context) {
	scripts, err := h.moderation.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list pending failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scripts": scripts})
}

func (h *ModerationHandler) Approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	script, err := h.moderation.Approve(c.Request.Context(), id, userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"script": script})
}

func (h *ModerationHandler) Reject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.moderation.Reject(c.Request.Context(), id, userIDFromCtx(c)); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *ModerationHandler) Reports(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list reports failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// DismissReport 幂等删除
func (h *ModerationHandler) DismissReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.reports.Dismiss(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "dismiss report failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *ModerationHandler) Users(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))

	users, err := h.admin.ListUsers(c.Request.Context(), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list users failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateRole 授予admin角色时要求操作者本身是admin
func (h *ModerationHandler) UpdateRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	actor := actorFromCtx(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
		return
	}

	user, err := h.admin.UpdateRole(c.Request.Context(), actor.Role, id, req.Role)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *ModerationHandler) UpdateRank(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req struct {
		Rank *string `json:"rank" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	rank := *req.Rank
	if rank == "none" {
		rank = model.RankNone
	}

	user, err := h.admin.UpdateRank(c.Request.Context(), id, rank)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
