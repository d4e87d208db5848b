package handler

import (
	"net/http"
	"strconv"

	"Nexus_Protocols/internal/service"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// EngagementHandler 点赞/评分/评论/举报
type EngagementHandler struct {
	reactions *service.ReactionService
	ratings   *service.RatingService
	comments  *service.CommentService
	reports   *service.ReportService
}

func NewEngagementHandler(db *gorm.DB, rdb *goredis.Client) *EngagementHandler {
	return &EngagementHandler{
		reactions: service.NewReactionService(db, rdb),
		ratings:   service.NewRatingService(db, rdb),
		comments:  service.NewCommentService(db, rdb),
		reports:   service.NewReportService(db, rdb),
	}
}

func scriptIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid script id"})
		return 0, false
	}
	return id, true
}

func (h *EngagementHandler) react(c *gin.Context, do func(c *gin.Context, scriptID uint64) (string, error)) {
	scriptID, ok := scriptIDParam(c)
	if !ok {
		return
	}

	result, err := do(c, scriptID)
	if err != nil {
		fail(c, err)
		return
	}

	likes, dislikes, err := h.reactions.Counts(c.Request.Context(), userIDFromCtx(c), scriptID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "load counts failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "likes": likes, "dislikes": dislikes})
}

func (h *EngagementHandler) Like(c *gin.Context) {
	h.react(c, func(c *gin.Context, scriptID uint64) (string, error) {
		return h.reactions.Like(c.Request.Context(), userIDFromCtx(c), scriptID)
	})
}

func (h *EngagementHandler) Dislike(c *gin.Context) {
	h.react(c, func(c *gin.Context, scriptID uint64) (string, error) {
		return h.reactions.Dislike(c.Request.Context(), userIDFromCtx(c), scriptID)
	})
}

func (h *EngagementHandler) Rate(c *gin.Context) {
	scriptID, ok := scriptIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Score int `json:"score" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	avg, count, err := h.ratings.Rate(c.Request.Context(), userIDFromCtx(c), scriptID, req.Score)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": avg, "ratingCount": count})
}

func (h *EngagementHandler) Comment(c *gin.Context) {
	scriptID, ok := scriptIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.comments.Comment(c.Request.Context(), userIDFromCtx(c), scriptID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (h *EngagementHandler) Report(c *gin.Context) {
	scriptID, ok := scriptIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	report, err := h.reports.File(c.Request.Context(), userIDFromCtx(c), scriptID, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
