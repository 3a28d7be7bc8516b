package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config 汇总运行服务所需的全部配置，统一从环境变量读取。
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Admin   AdminConfig   `mapstructure:"admin"`
	DB      DBConfig      `mapstructure:"db"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
}

// APIConfig 包含 HTTP 服务设置。
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	GinMode    string `mapstructure:"gin_mode"`
	// PublicCacheMaxAge 控制公开读取接口的 Cache-Control max-age（秒）。
	PublicCacheMaxAge int `mapstructure:"public_cache_max_age"`
}

// SessionConfig 包含后台会话 Cookie 设置。
type SessionConfig struct {
	Secret string `mapstructure:"secret"`
	Name   string `mapstructure:"name"`
}

// AdminConfig 保存唯一的管理员静态凭证。
// PasswordHash 配置后优先于 Password，使用 bcrypt 校验。
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

// DBConfig 包含 SQLite 数据库设置。
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// MinIOConfig 包含对象存储连接设置。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
	// PublicBaseURL 为反向代理后对外可见的访问前缀，用于拼接上传结果 URL。
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// SMTPConfig 包含联系表单通知邮件的投递设置，Host 为空时禁用通知。
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// Load 读取环境变量并返回配置，缺失项使用安全默认值。
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad 包装 Load，失败时 panic。
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.gin_mode", "release")
	v.SetDefault("api.public_cache_max_age", 60)
	v.SetDefault("session.secret", "devfolio-dev-secret")
	v.SetDefault("session.name", "devfolio_session")
	v.SetDefault("db.path", "devfolio.db")
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "devfolio")
	v.SetDefault("smtp.port", 587)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.listen_addr":          "LISTEN_ADDR",
		"api.gin_mode":             "GIN_MODE",
		"api.public_cache_max_age": "PUBLIC_CACHE_MAX_AGE",
		"session.secret":           "SESSION_SECRET",
		"session.name":             "SESSION_NAME",
		"admin.username":           "ADMIN_USERNAME",
		"admin.password":           "ADMIN_PASSWORD",
		"admin.password_hash":      "ADMIN_PASSWORD_HASH",
		"db.path":                  "DATABASE_PATH",
		"minio.endpoint":           "MINIO_ENDPOINT",
		"minio.access_key_id":      "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":  "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":            "MINIO_USE_SSL",
		"minio.bucket":             "MINIO_BUCKET",
		"minio.public_base_url":    "MINIO_PUBLIC_BASE_URL",
		"smtp.host":                "SMTP_HOST",
		"smtp.port":                "SMTP_PORT",
		"smtp.username":            "SMTP_USERNAME",
		"smtp.password":            "SMTP_PASSWORD",
		"smtp.from":                "SMTP_FROM",
		"smtp.to":                  "SMTP_TO",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.ListenAddr == "" {
		return errors.New("listen addr is required")
	}
	if cfg.Admin.Username == "" {
		return errors.New("admin username is required")
	}
	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		return errors.New("admin password or password hash is required")
	}
	if cfg.DB.Path == "" {
		return errors.New("database path is required")
	}
	return nil
}
