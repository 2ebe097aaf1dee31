package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config 服务全部配置。支持 config.yaml + YATUBE_ 前缀环境变量覆盖。
type Config struct {
	Addr string `mapstructure:"addr"`

	MySQLDSN string `mapstructure:"mysql_dsn"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`

	PageSize int           `mapstructure:"page_size"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	MediaDir string `mapstructure:"media_dir"`

	JWTSecret string `mapstructure:"jwt_secret"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SMTPFrom     string `mapstructure:"smtp_from"`
}

// Load 读取配置。path 为空时在当前目录找 config.yaml，找不到就全用默认值。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("YATUBE")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("mysql_dsn", "user:password@tcp(127.0.0.1:3306)/yatube?charset=utf8mb4&parseTime=True")
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("kafka_topic", "social-events")
	v.SetDefault("page_size", 10)
	v.SetDefault("cache_ttl", 20*time.Second)
	v.SetDefault("media_dir", "media")
	v.SetDefault("jwt_secret", "secret-key")
	v.SetDefault("smtp_port", 587)

	if err := v.ReadInConfig(); err != nil {
		// 没有配置文件不算错误
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
