package structures

import (
	"net/http"
	"time"
)

// BoardConfig holds the four settings every invocation needs. They come from
// the execution environment only and have no defaults.
type BoardConfig struct {
	Year          string `env:"AOC_YEAR,required"`
	Board         string `env:"AOC_BOARD,required"`
	SessionCookie string `env:"AOC_SESSION_COOKIE,required"`
	WebhookURL    string `env:"SLACK_WEBHOOK_URL,required" validate:"fullUrl"`
}

type FetchConfig struct {
	BaseURL   string        `yaml:"baseUrl" validate:"required|fullUrl"`
	UserAgent string        `yaml:"userAgent" validate:"required"`
	Timeout   time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type OutputConfig struct {
	Timezone string `yaml:"timezone" validate:"required"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"uint"`
	Dir   string `yaml:"dir"`
}

type Persistence struct {
	FilePath string `yaml:"filePath" validate:"required"`
}

type ScheduleConfig struct {
	Enabled bool   `yaml:"enabled"`
	Spec    string `yaml:"spec" validate:"required"`
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Board       BoardConfig    `mapstructure:"-"`
	Fetch       FetchConfig    `yaml:"fetch"`
	Output      OutputConfig   `yaml:"output"`
	Logger      LoggerConfig   `yaml:"logger"`
	Persistence Persistence    `yaml:"persistence"`
	Schedule    ScheduleConfig `yaml:"schedule"`
	WebServer   Server         `yaml:"webServer"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath  string
	EnvFile     string
	DebugMode   bool
	PostToSlack bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}
