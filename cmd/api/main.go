package main

import (
	"context"
	"log"
	"os"

	"github.com/Damarkevich/hw05-final/internal/config"
	"github.com/Damarkevich/hw05-final/internal/model"
	"github.com/Damarkevich/hw05-final/internal/pkg"
	"github.com/Damarkevich/hw05-final/internal/repository/mysql"
	"github.com/Damarkevich/hw05-final/internal/repository/redis"
	"github.com/Damarkevich/hw05-final/internal/router"
	"github.com/Damarkevich/hw05-final/internal/service"
)

func main() {
	cfg, err := config.Load(os.Getenv("YATUBE_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	pkg.SetAccessSecret(cfg.JWTSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		log.Fatal(err)
	}

	// 连接redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatal(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.SocialOutbox{},
	); err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// outbox 投递：配了 kafka 就推 kafka，没配先打日志
	var sender service.Sender = service.LogSender
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Fatal(err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(mysql.DB, sender).Run(ctx)

	// Gin
	r := router.InitRouter(&router.Deps{
		DB:       mysql.DB,
		Cache:    &redis.PageCacheRepository{},
		Sessions: &redis.TokenRepository{},
		Codes:    &redis.ResetCodeRepository{},
		Cfg:      cfg,
	})
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
