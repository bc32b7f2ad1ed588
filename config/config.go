package config

import "time"

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host        string   `envconfig:"HOST" mapstructure:"host"`
	Port        string   `envconfig:"PORT" mapstructure:"port"`
	Prefix      string   `envconfig:"PREFIX" mapstructure:"prefix"`
	Mode        Mode     `envconfig:"MODE" mapstructure:"mode"`
	AppName     string   `envconfig:"APP_NAME" mapstructure:"app_name"`
	FrontendURL string   `envconfig:"FRONTEND_URL" mapstructure:"frontend_url"`
	AdminEmails []string `envconfig:"ADMIN_EMAILS" mapstructure:"admin_emails"` // 使用这些邮箱注册的账号直接获得管理员角色
	Mysql       Mysql    `mapstructure:"mysql"`
	Redis       Redis    `mapstructure:"redis"`
	JWT         JWT      `mapstructure:"jwt"`
	Log         Log      `mapstructure:"log"`
	Sentry      Sentry   `mapstructure:"sentry"`
	OTel        OTel     `mapstructure:"otel"`
	Mail        Mail     `mapstructure:"mail"`
	Storage     Storage  `mapstructure:"storage"`
	S3          S3       `mapstructure:"s3"`
}

type Mysql struct {
	// DSN 完整连接串，设置后忽略其余字段
	DSN      string `envconfig:"DATABASE_URL" mapstructure:"dsn"`
	Host     string `envconfig:"MYSQL_HOST" mapstructure:"host"`
	Port     string `envconfig:"MYSQL_PORT" mapstructure:"port"`
	Username string `envconfig:"MYSQL_USERNAME" mapstructure:"username"`
	Password string `envconfig:"MYSQL_PASSWORD" mapstructure:"password"`
	DBName   string `envconfig:"MYSQL_DB_NAME" mapstructure:"db_name"`
}

type Redis struct {
	Host     string `envconfig:"REDIS_HOST" mapstructure:"host"`
	Port     string `envconfig:"REDIS_PORT" mapstructure:"port"`
	Password string `envconfig:"REDIS_PASSWORD" mapstructure:"password"`
	DB       int    `envconfig:"REDIS_DB" mapstructure:"db"`
}

// Enabled 未配置 Host 时不连接 Redis
func (r Redis) Enabled() bool {
	return r.Host != ""
}

type JWT struct {
	AccessSecret string `envconfig:"SECRET" mapstructure:"access_secret"`
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string        `envconfig:"SENTRY_DSN" mapstructure:"dsn"`
	Environment string        `envconfig:"SENTRY_ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64       `envconfig:"SENTRY_SAMPLE_RATE" mapstructure:"sample_rate"`
	Tracing     SentryTracing `mapstructure:"tracing"`
}

type SentryTracing struct {
	DBSlowThresholdMs    int  `envconfig:"DB_SLOW_THRESHOLD_MS" mapstructure:"db_slow_threshold_ms"`
	RedisSlowThresholdMs int  `envconfig:"REDIS_SLOW_THRESHOLD_MS" mapstructure:"redis_slow_threshold_ms"`
	TraceHTTPCalls       bool `envconfig:"TRACE_HTTP_CALLS" mapstructure:"trace_http_calls"`
}

type OTel struct {
	Enable      bool   `envconfig:"OTEL_ENABLE" mapstructure:"enable"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" mapstructure:"service_name"`
	AgentHost   string `envconfig:"OTEL_AGENT_HOST" mapstructure:"agent_host"`
	AgentPort   string `envconfig:"OTEL_AGENT_PORT" mapstructure:"agent_port"`
}

type MailDriver string

const (
	MailDriverSMTP MailDriver = "smtp"
	MailDriverHTTP MailDriver = "http"
)

type Mail struct {
	Driver      MailDriver    `envconfig:"MAIL_DRIVER" mapstructure:"driver"`
	FromName    string        `envconfig:"MAIL_FROM_NAME" mapstructure:"from_name"`
	Username    string        `envconfig:"EMAIL_USER" mapstructure:"username"`
	Password    string        `envconfig:"EMAIL_PASS" mapstructure:"password"`
	SMTPHost    string        `envconfig:"MAIL_SMTP_HOST" mapstructure:"smtp_host"`
	SMTPPort    int           `envconfig:"MAIL_SMTP_PORT" mapstructure:"smtp_port"`
	APIURL      string        `envconfig:"MAIL_API_URL" mapstructure:"api_url"`
	APIKey      string        `envconfig:"MAIL_API_KEY" mapstructure:"api_key"`
	Concurrency int           `envconfig:"MAIL_CONCURRENCY" mapstructure:"concurrency"`
	SendTimeout time.Duration `envconfig:"MAIL_SEND_TIMEOUT" mapstructure:"send_timeout"`
}

type StorageDriver string

const (
	StorageDriverLocal StorageDriver = "local"
	StorageDriverS3    StorageDriver = "s3"
)

type Storage struct {
	Driver  StorageDriver `envconfig:"STORAGE_DRIVER" mapstructure:"driver"`
	Home    string        `envconfig:"STORAGE_HOME" mapstructure:"home"`
	BaseURL string        `envconfig:"STORAGE_BASE_URL" mapstructure:"base_url"`
}

type S3 struct {
	Endpoint        string `envconfig:"S3_ENDPOINT" mapstructure:"endpoint"`
	BaseURL         string `envconfig:"S3_BASE_URL" mapstructure:"base_url"`
	Bucket          string `envconfig:"S3_BUCKET" mapstructure:"bucket"`
	Region          string `envconfig:"S3_REGION" mapstructure:"region"`
	AccessKey       string `envconfig:"S3_ACCESS_KEY" mapstructure:"access_key"`
	SecretAccessKey string `envconfig:"S3_SECRET_KEY" mapstructure:"secret_key"`
	Prefix          string `envconfig:"S3_PREFIX" mapstructure:"prefix"`
	UsePathStyle    bool   `envconfig:"S3_PATH_STYLE" mapstructure:"path_style"`
}
