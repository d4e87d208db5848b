package middleware

import (
	"net/http"

	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/repository/mysql"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const ContextUserKey = "current_user"

// RequireModerator moderator/admin放行。角色直接查库，降权立即生效
func RequireModerator(db *gorm.DB) gin.HandlerFunc {
	return requireRole(db, func(u *model.User) bool { return u.IsModerator() })
}

// RequireAdmin 仅admin放行
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return requireRole(db, func(u *model.User) bool { return u.IsAdmin() })
}

func requireRole(db *gorm.DB, allowed func(*model.User) bool) gin.HandlerFunc {
	repo := &mysql.UserRepository{DB: db}

	return func(c *gin.Context) {
		userIDAny, exists := c.Get(ContextUserIDKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
			return
		}

		user, err := repo.FindByID(userIDAny.(uint64))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
			return
		}

		if !allowed(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "no permission"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}
