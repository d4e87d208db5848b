package handler

import (
	"net/http"

	"Nexus_Protocols/internal/service"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ExecutorHandler 执行器目录的公开只读入口
type ExecutorHandler struct {
	svc *service.ExecutorService
}

func NewExecutorHandler(db *gorm.DB, rdb *goredis.Client) *ExecutorHandler {
	return &ExecutorHandler{
		svc: service.NewExecutorService(db, rdb),
	}
}

func (h *ExecutorHandler) List(c *gin.Context) {
	executors, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list executors failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"executors": executors})
}
