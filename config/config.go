package config

import (
	"os"
	"path"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/hernoufM/memthol/clock"
	"github.com/hernoufM/memthol/logzer"
)

var (
	once sync.Once
	cfg  *Config
)

// LogLevel defines levels in logrus-style
type LogLevel int

// Enum levels
const (
	Error LogLevel = iota
	Warn
	Info
	Debug
	Trace
)

func (l LogLevel) String() string {
	return [...]string{"Error", "Warn", "Info", "Debug", "Trace"}[l]
}

// TimeKit defines the time layer configuration
// see GetConfig() for defaults
type TimeKit struct {
	// SkewTolerance accepts backward movement of the monotonic source
	// before Elapsed reports clock skew
	SkewTolerance time.Duration `env:"SKEWTOLERANCE" yaml:"skewTolerance"`
	// ExpirySweep is the cleanup interval of the expiry registry
	// if 0 expired entries are only dropped on access
	ExpirySweep time.Duration `env:"EXPIRYSWEEP" yaml:"expirySweep"`

	// LogFile accepts file path to log in addition to stdout
	LogFile        string `env:"LOGFILE" yaml:"logFile"`
	LogFileMaxSize int64  `env:"LOGFILEMAXSIZE" yaml:"logFileMaxSize"`
	// Log files are rotated count times before being removed.
	// If count is 0, old versions are removed rather than rotated.
	LogFileRotate int      `env:"LOGFILEROTATE" yaml:"logFileRotate"`
	LogLevel      LogLevel `env:"LOGLEVEL" yaml:"logLevel"`
	LogColors     bool     `env:"LOGCOLORS" yaml:"logColors"`
	LogTimeFormat string   `env:"LOGTIMEFORMAT" yaml:"logTimeFormat"`
}

// Config defines the memthol time layer configuration
type Config struct {
	TimeKit TimeKit `envPrefix:"TIMEKIT_" yaml:"timekit"`
}

func defaults() Config {
	return Config{
		TimeKit: TimeKit{
			SkewTolerance:  clock.DefaultTolerance,
			ExpirySweep:    time.Minute,
			LogFileMaxSize: 1024 * 1024 * 10, // 10MB
			LogFileRotate:  5,
			LogLevel:       1,
			LogColors:      false,
			LogTimeFormat:  time.RFC3339,
		},
	}
}

// GetConfig implements Singleton pattern
func GetConfig() *Config {
	once.Do(func() {
		/* merge defaults, file, and env */
		applyFlags()
		cfg = new(Config)
		*cfg = defaults()
		if data, err := os.ReadFile(cfg.ConfigPath()); err != nil {
			log.Warn().Err(err).
				Str("configPath", cfg.ConfigPath()).
				Msg("could not read config")
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				log.Err(err).
					Str("configData", string(data)).
					Str("configPath", cfg.ConfigPath()).
					Msg("could not parse config")
			}
		}
		if err := applyEnv(cfg); err != nil {
			log.Warn().Err(err).
				Msg("could not apply env vars")
		}
		/* init logger and update the clock source */
		cfg.initLogger()
		clock.Default.SetTolerance(cfg.TimeKit.SkewTolerance)
	})
	return cfg
}

// ConfigPath returns config file path
func (cfg Config) ConfigPath() string {
	configPath := os.Getenv(ConfigEnv)
	if configPath == "" {
		configPath = ConfigName
		if wd, err := os.Getwd(); err == nil {
			configPath = path.Join(wd, ConfigName)
		}
	}
	return configPath
}

func (cfg Config) initLogger() {
	if cfg.TimeKit.LogLevel > 4 {
		cfg.TimeKit.LogLevel = 4
	}
	if cfg.TimeKit.LogLevel < 0 {
		cfg.TimeKit.LogLevel = 0
	}
	lvl := [...]zerolog.Level{3, 2, 1, 0, -1}[cfg.TimeKit.LogLevel]
	opts := []logzer.Option{
		logzer.WithColors(cfg.TimeKit.LogColors),
		logzer.WithLevel(lvl),
		logzer.WithTimeFormat(cfg.TimeKit.LogTimeFormat),
	}
	if cfg.TimeKit.LogFile != "" {
		opts = append(opts, logzer.WithLogFile(&logzer.LogFile{
			Path:     cfg.TimeKit.LogFile,
			MaxBytes: cfg.TimeKit.LogFileMaxSize,
			Backups:  cfg.TimeKit.LogFileRotate,
		}))
	}
	w := logzer.NewLoggerWriter(opts...)
	log.Logger = zerolog.New(w).
		With().Timestamp().Caller().Logger()
}
