package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint: gochecknoglobals

// Config represents the application configuration structure.
// It contains settings for the environment, the game server, the HTTP API, the
// database connection, background workers and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" validate:"required" yaml:"environment"`

	// Log contains optional file output settings on top of stdout logging
	Log struct {
		// File is the path of a rotated log file. Empty disables file output.
		File string `env:"LOG_FILE" env-default:"" yaml:"file"`
		// MaxSizeMB is the size a log file may reach before it is rotated
		MaxSizeMB int `env:"LOG_MAX_SIZE_MB" env-default:"100" validate:"gte=1" yaml:"maxSizeMB"`
		// MaxBackups is the number of rotated files to keep
		MaxBackups int `env:"LOG_MAX_BACKUPS" env-default:"3" validate:"gte=0" yaml:"maxBackups"`
		// MaxAgeDays is the number of days rotated files are kept
		MaxAgeDays int `env:"LOG_MAX_AGE_DAYS" env-default:"28" validate:"gte=0" yaml:"maxAgeDays"`
	} `yaml:"log"`

	// Server contains the TCP game server configuration
	Server struct {
		// Addr is the address and port the game server listens on
		Addr string `env:"SERVER_ADDR" env-default:":4000" validate:"required" yaml:"addr"`
		// MaxLineBytes bounds a single message sent by a client
		MaxLineBytes int `env:"SERVER_MAX_LINE_BYTES" env-default:"65536" validate:"gte=64" yaml:"maxLineBytes"`
		// WriteTimeout is the maximum time a single message write to a client may take
		WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"5s" validate:"gt=0" yaml:"writeTimeout"`
		// BannedNames lists player names that are refused at handshake
		BannedNames []string `env:"SERVER_BANNED_NAMES" env-separator:"," yaml:"bannedNames"`
	} `yaml:"server"`

	// Game contains the race configuration
	Game struct {
		// StateInterval is how often player states are broadcast during a race
		StateInterval time.Duration `env:"GAME_STATE_INTERVAL" env-default:"200ms" validate:"gt=0" yaml:"stateInterval"`
		// RaceTimeout stops a race that is still running after this long. A negative value disables it.
		RaceTimeout time.Duration `env:"GAME_RACE_TIMEOUT" env-default:"5m" yaml:"raceTimeout"`
		// TextMode selects where race texts come from
		TextMode string `env:"GAME_TEXT_MODE" env-default:"corpus" validate:"oneof=static file corpus markov" yaml:"textMode"` //nolint: lll
		// TextFile is the text used when TextMode is "file"
		TextFile string `env:"GAME_TEXT_FILE" env-default:"" validate:"required_if=TextMode file" yaml:"textFile"`
		// CorpusFile is the training corpus used when TextMode is "markov". Empty uses the embedded passages.
		CorpusFile string `env:"GAME_CORPUS_FILE" env-default:"" yaml:"corpusFile"`
		// ModelFile caches the trained markov model. Empty disables caching.
		ModelFile string `env:"GAME_MODEL_FILE" env-default:"" yaml:"modelFile"`
		// Words is the number of words a generated text contains
		Words int `env:"GAME_WORDS" env-default:"30" validate:"gte=1,lte=1000" yaml:"words"`
	} `yaml:"game"`

	// Session contains the session lifecycle configuration
	Session struct {
		// MaxPlayers is the maximum number of players in a session
		MaxPlayers int `env:"SESSION_MAX_PLAYERS" env-default:"5" validate:"gte=1,lte=100" yaml:"maxPlayers"`
		// IdleTimeout is how long an empty session is kept before it is removed
		IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" env-default:"10m" validate:"gt=0" yaml:"idleTimeout"`
		// ReapInterval is how often idle sessions are looked for
		ReapInterval time.Duration `env:"SESSION_REAP_INTERVAL" env-default:"1m" validate:"gt=0" yaml:"reapInterval"`
	} `yaml:"session"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" validate:"required" yaml:"addr"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" validate:"startswith=/" yaml:"metricsPath"`
		// AllowedOrigins lists the origins allowed by CORS and the WebSocket upgrader. Empty allows any origin.
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-separator:"," yaml:"allowedOrigins"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Enabled turns race persistence, the leaderboard and background workers on
		Enabled bool `env:"DATABASE_ENABLED" yaml:"enabled"`
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" validate:"gte=1,lte=65535" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"typeracer" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" validate:"gte=1" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Worker contains the background job configuration
	Worker struct {
		// MaxWorkers is the number of player stats jobs processed concurrently
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"4" validate:"gte=1" yaml:"maxWorkers"`
	} `yaml:"worker"`

	// JWT contains the keys used for the admin endpoints
	JWT struct {
		// PublicKey is the PEM encoded RSA public key admin tokens are verified with
		PublicKey string `env:"JWT_PUBLIC_KEY" env-default:"" yaml:"publicKey"`
		// PrivateKey is the PEM encoded RSA private key the jwt command signs with
		PrivateKey string `env:"JWT_PRIVATE_KEY" env-default:"" yaml:"privateKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled and validated Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its validate tags.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", strings.TrimPrefix(e.Namespace(), "Config."), e.Tag()))
	}

	return fmt.Errorf("config validation failed: %s", strings.Join(msgs, "; "))
}
