package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const (
	configPathEnv     = "CONFIG_PATH"
	defaultConfigPath = "config.yaml"
	defaultJWTSecret  = "change-me"
)

// ErrInsecureSecret release 模式下 JWT 密钥为空或仍是内置默认值
var ErrInsecureSecret = errors.New("jwt access secret must be set in release mode")

var (
	instance *Config
	mu       sync.RWMutex
)

// Init 加载配置文件并应用环境变量，失败时直接 panic
func Init() {
	c, err := Load(os.Getenv(configPathEnv))
	if err != nil {
		panic(err)
	}
	Set(c)
}

// Get 返回全局配置，未初始化时返回默认配置
func Get() *Config {
	mu.RLock()
	c := instance
	mu.RUnlock()
	if c != nil {
		return c
	}

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = Default()
	}
	return instance
}

// Set 替换全局配置，测试中用于注入
func Set(c *Config) {
	mu.Lock()
	instance = c
	mu.Unlock()
}

// Default 只包含内置默认值，不读取文件与环境变量
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	// 默认值均为基础类型，解码不会失败
	_ = v.Unmarshal(&c)
	return &c
}

// Load 依次应用默认值、yaml 文件（可缺省）与环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = defaultConfigPath
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("apply env: %w", err)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Check 拒绝不能上线的组合，目前只有 release 模式下的默认密钥
func (c *Config) Check() error {
	if c.Mode == ModeRelease && (c.JWT.AccessSecret == "" || c.JWT.AccessSecret == defaultJWTSecret) {
		return ErrInsecureSecret
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "5050")
	v.SetDefault("prefix", "api")
	v.SetDefault("mode", string(ModeDebug))
	v.SetDefault("app_name", "WSU Event Notifier")
	v.SetDefault("frontend_url", "http://localhost:5173")

	v.SetDefault("mysql.host", "127.0.0.1")
	v.SetDefault("mysql.port", "3306")
	v.SetDefault("mysql.username", "root")
	v.SetDefault("mysql.db_name", "campus_notifier")

	v.SetDefault("redis.port", "6379")

	v.SetDefault("jwt.access_secret", defaultJWTSecret)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("otel.service_name", "campus-notifier")

	v.SetDefault("mail.driver", string(MailDriverSMTP))
	v.SetDefault("mail.from_name", "WSU Event Notifier")
	v.SetDefault("mail.smtp_host", "smtp.gmail.com")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.concurrency", 8)
	v.SetDefault("mail.send_timeout", "30s")

	v.SetDefault("storage.driver", string(StorageDriverLocal))
	v.SetDefault("storage.home", "./upload")
	v.SetDefault("storage.base_url", "/static")
}
