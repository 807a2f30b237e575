package providers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aocbot/internal/structures"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrConfig = errors.New("configuration error")

const AppName = "aocbot"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrConfig, flags.ConfigPath, err)
		}
	}

	v.BindEnv("logger.level", "AOCBOT_LOG_LEVEL")
	v.BindEnv("logger.dir", "AOCBOT_LOG_DIR")
	v.BindEnv("fetch.baseUrl", "AOCBOT_BASE_URL")
	v.BindEnv("fetch.userAgent", "AOCBOT_USER_AGENT")
	v.BindEnv("output.timezone", "AOCBOT_TIMEZONE")
	v.BindEnv("persistence.filePath", "AOCBOT_STATE_FILE")
	v.BindEnv("schedule.enabled", "AOCBOT_SCHEDULE_ENABLED")
	v.BindEnv("schedule.spec", "AOCBOT_SCHEDULE")
	v.BindEnv("webServer.port", "AOCBOT_PORT")
	v.BindEnv("cache.enabled", "AOCBOT_CACHE_ENABLED")
	v.BindEnv("metrics.enabled", "AOCBOT_METRICS_ENABLED")

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("%w: unable to decode into config struct: %w", ErrConfig, err)
	}

	environ, err := loadEnvironment(flags.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	board, err := NewBoardConfig(environ)
	if err != nil {
		return nil, err
	}
	conf.Board = board

	if err := NewCnfValidator(&conf).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// NewBoardConfig reads the four board settings from environ. A missing key
// fails with an error naming it.
// Keys are matched case-insensitively, so deployments that export the
// lowercase aoc_year-style names keep working; an upper-case key wins when
// both forms are set.
func NewBoardConfig(environ map[string]string) (structures.BoardConfig, error) {
	var board structures.BoardConfig
	if err := env.ParseWithOptions(&board, env.Options{Environment: foldKeys(environ)}); err != nil {
		return structures.BoardConfig{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return board, nil
}

func foldKeys(environ map[string]string) map[string]string {
	out := make(map[string]string, len(environ))
	for key, value := range environ {
		upper := strings.ToUpper(key)
		if key == upper {
			out[key] = value
			continue
		}
		if _, ok := environ[upper]; !ok {
			out[upper] = value
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fetch.baseUrl", "https://adventofcode.com")
	v.SetDefault("fetch.userAgent", "aocbot private leaderboard notifier")
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("output.timezone", "Europe/Copenhagen")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("persistence.filePath", "aocbot-state.json")
	v.SetDefault("schedule.enabled", false)
	v.SetDefault("schedule.spec", "*/15 * * * *")
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 14*time.Minute)
	v.SetDefault("metrics.enabled", false)
}

// loadEnvironment returns the process environment with the entries of the
// override file (if any) layered on top. Override keys are upper-cased so
// files written with lowercase setting names still match.
func loadEnvironment(path string) (map[string]string, error) {
	environ := env.ToMap(os.Environ())
	if path == "" {
		return environ, nil
	}

	overrides, err := readOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}
	for key, value := range overrides {
		environ[strings.ToUpper(key)] = value
	}
	return environ, nil
}

func readOverrides(path string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		out := make(map[string]string, len(v.AllKeys()))
		for _, key := range v.AllKeys() {
			out[key] = v.GetString(key)
		}
		return out, nil
	default:
		return godotenv.Read(path)
	}
}
