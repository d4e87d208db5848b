package main

import (
	"context"

	"Nexus_Protocols/internal/config"
	"Nexus_Protocols/internal/model"
	"Nexus_Protocols/internal/pkg"
	"Nexus_Protocols/internal/repository/mysql"
	"Nexus_Protocols/internal/repository/redis"
	"Nexus_Protocols/internal/router"
	"Nexus_Protocols/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := pkg.InitLogger(); err != nil {
		panic(err)
	}
	defer pkg.Logger.Sync()

	db, err := mysql.InitDB(cfg.MySQLDSN)
	if err != nil {
		panic(err)
	}

	// 连接redis
	rdb, err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		panic(err)
	}

	// 自动建表（开发阶段 OK）
	db.AutoMigrate(
		&model.User{},
		&model.Script{},
		&model.ScriptReaction{},
		&model.ScriptRating{},
		&model.ScriptComment{},
		&model.SavedScript{},
		&model.Report{},
		&model.Executor{},
		&model.ModerationOutbox{},
	)

	// 审核事件出箱中继：未配置kafka时退化为日志输出
	sender := service.LogSender
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(db, sender)
	go relayer.Run(context.Background())

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	// Gin
	r := router.InitRouter(db, rdb, smtp)
	pkg.Logger.Info("server starting", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		pkg.Logger.Fatal("server exited", zap.Error(err))
	}
}
