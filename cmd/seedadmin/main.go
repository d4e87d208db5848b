package main

import (
	"errors"
	"fmt"

	"Nexus_Protocols/internal/config"
	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/repository/mysql"
	"Nexus_Protocols/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 初始化特权管理员账号，按邮箱/用户名幂等，重复执行不会重建
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	db, err := mysql.InitDB(cfg.MySQLDSN)
	if err != nil {
		panic(err)
	}

	db.AutoMigrate(&model.User{})

	var existing model.User
	err = db.Where("email = ? OR username = ?", cfg.AdminEmail, cfg.AdminUsername).
		First(&existing).Error
	if err == nil {
		fmt.Printf("admin already exists: %s (#%d)\n", existing.Username, existing.ID)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		panic(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	admin := model.User{
		Email:    cfg.AdminEmail,
		Username: cfg.AdminUsername,
		Password: string(hash),
		Avatar:   service.DefaultAvatar(cfg.AdminUsername),
		Role:     model.RoleAdmin,
		Rank:     model.RankPro,
		Balance:  50000,
	}
	if err := db.Create(&admin).Error; err != nil {
		panic(err)
	}

	fmt.Printf("admin created: %s (#%d)\n", admin.Username, admin.ID)
}
