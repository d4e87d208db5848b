package router

import (
	"Nexus_Protocols/internal/handler"
	"Nexus_Protocols/internal/middleware"
	"Nexus_Protocols/internal/pkg"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB, rdb *goredis.Client, smtp pkg.SMTPConfig) *gin.Engine {
	r := gin.Default()

	user := handler.NewUserHandler(db, rdb)
	script := handler.NewScriptHandler(db, rdb)
	engagement := handler.NewEngagementHandler(db, rdb)
	moderation := handler.NewModerationHandler(db, rdb, smtp)
	admin := handler.NewAdminHandler(db, rdb)
	executor := handler.NewExecutorHandler(db, rdb)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.GET("/:id", user.Profile)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 脚本目录公开接口
	scriptGroup := r.Group("/api/script")
	{
		scriptGroup.GET("/list", script.List)
		scriptGroup.GET("/:id", script.Detail)
	}

	// 执行器目录公开接口
	executorGroup := r.Group("/api/executor")
	{
		executorGroup.GET("/list", executor.List)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware(rdb))
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.GET("/me", user.Me)
		authGroup.PUT("/profile", user.UpdateProfile)
		authGroup.POST("/change-password", user.ChangePassword)

		authGroup.POST("/scripts/upload", script.Upload)
		authGroup.GET("/scripts/mine", script.Mine)
		authGroup.GET("/scripts/saved", script.SavedList)
		authGroup.POST("/scripts/:id/save", script.Save)

		authGroup.POST("/scripts/:id/like", engagement.Like)
		authGroup.POST("/scripts/:id/dislike", engagement.Dislike)
		authGroup.POST("/scripts/:id/rate", engagement.Rate)
		authGroup.POST("/scripts/:id/comment", engagement.Comment)
		authGroup.POST("/scripts/:id/report", engagement.Report)
	}

	// 审核相关接口（moderator及以上）
	modGroup := r.Group("/api/mod")
	modGroup.Use(middleware.AuthMiddleware(rdb), middleware.RequireModerator(db))
	{
		modGroup.GET("/pending", moderation.Pending)
		modGroup.POST("/scripts/:id/approve", moderation.Approve)
		modGroup.POST("/scripts/:id/reject", moderation.Reject)
		modGroup.GET("/reports", moderation.Reports)
		modGroup.DELETE("/reports/:id", moderation.DismissReport)
		modGroup.GET("/users", moderation.Users)
		modGroup.POST("/users/:id/role", moderation.UpdateRole)
		modGroup.POST("/users/:id/rank", moderation.UpdateRank)
	}

	// 管理员接口
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(rdb), middleware.RequireAdmin(db))
	{
		adminGroup.POST("/users/:id/balance", admin.AddBalance)
		adminGroup.POST("/executors", admin.CreateExecutor)
		adminGroup.PUT("/executors/:id", admin.UpdateExecutor)
		adminGroup.DELETE("/executors/:id", admin.DeleteExecutor)
	}

	return r
}
