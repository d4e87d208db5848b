package handler

import (
	"net/http"

	"Nexus_Protocols/internal/service"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AdminHandler 仅admin可用的操作：余额充值与执行器管理
type AdminHandler struct {
	admin     *service.AdminService
	executors *service.ExecutorService
}

func NewAdminHandler(db *gorm.DB, rdb *goredis.Client) *AdminHandler {
	return &AdminHandler{
		admin:     service.NewAdminService(db, rdb),
		executors: service.NewExecutorService(db, rdb),
	}
}

// AddBalance 正整数充值，非法金额返回400
func (h *AdminHandler) AddBalance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.admin.AddBalance(c.Request.Context(), id, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type ExecutorReq struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Rating         float64  `json:"rating"`
	DownloadsLabel string   `json:"downloads"`
	Status         string   `json:"status"`
	Features       []string `json:"features"`
	DownloadURL    string   `json:"downloadUrl"`
}

func executorInput(req ExecutorReq) service.ExecutorInput {
	return service.ExecutorInput{
		Name:           req.Name,
		Description:    req.Description,
		Rating:         req.Rating,
		DownloadsLabel: req.DownloadsLabel,
		Status:         req.Status,
		Features:       req.Features,
		DownloadURL:    req.DownloadURL,
	}
}

func (h *AdminHandler) CreateExecutor(c *gin.Context) {
	var req ExecutorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	executor, err := h.executors.Create(c.Request.Context(), executorInput(req))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"executor": executor})
}

func (h *AdminHandler) UpdateExecutor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ExecutorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	executor, err := h.executors.Update(c.Request.Context(), id, executorInput(req))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"executor": executor})
}

func (h *AdminHandler) DeleteExecutor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.executors.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "delete executor failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
