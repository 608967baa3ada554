package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/battleship-duel/internal"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

type Config struct {
	Stage    string
	Logging  LoggingConfig
	Record   RecordConfig
	Game     GameConfig
	Spectate SpectateConfig
}

type LoggingConfig struct {
	Level  string
	Pretty bool
}

type RecordConfig struct {
	Path           string
	PlayerOneFleet string
	PlayerTwoFleet string
}

type GameConfig struct {
	MaxPlacementAttempts int
	// Zero means a random seed
	Seed uint64
}

type SpectateConfig struct {
	Enabled           bool
	Port              int
	AllowedOrigins    []string
	RequestsPerSecond float64
	BurstSize         int
}

// Load reads .env outside of prod, then the environment.
func Load() (*Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(".env"); err != nil {
			log.Debug().Msg("no .env file found, using system environment variables")
		}
	}

	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func load() (*Config, error) {
	attempts, err := strconv.Atoi(internal.GetEnv("MAX_PLACEMENT_ATTEMPTS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("MAX_PLACEMENT_ATTEMPTS: %w", err)
	}

	seed, err := strconv.ParseUint(internal.GetEnv("SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("SEED: %w", err)
	}

	port, err := strconv.Atoi(internal.GetEnv("PORT", "9191"))
	if err != nil {
		return nil, fmt.Errorf("PORT: %w", err)
	}

	rps, err := strconv.ParseFloat(internal.GetEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(internal.GetEnv("RATE_LIMIT_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}

	return &Config{
		Stage: internal.GetEnv("STAGE", StageDev),
		Logging: LoggingConfig{
			Level:  internal.GetEnv("LOG_LEVEL", "info"),
			Pretty: internal.GetEnv("LOG_PRETTY", "true") == "true",
		},
		Record: RecordConfig{
			Path:           internal.GetEnv("RECORD_PATH", "game_state.txt"),
			PlayerOneFleet: internal.GetEnv("PLAYER1_FLEET_PATH", "player_1.txt"),
			PlayerTwoFleet: internal.GetEnv("PLAYER2_FLEET_PATH", "player_2.txt"),
		},
		Game: GameConfig{
			MaxPlacementAttempts: attempts,
			Seed:                 seed,
		},
		Spectate: SpectateConfig{
			Enabled:           internal.GetEnv("SPECTATE_ENABLED", "false") == "true",
			Port:              port,
			AllowedOrigins:    splitOrigins(internal.GetEnv("ALLOWED_ORIGINS", "*")),
			RequestsPerSecond: rps,
			BurstSize:         burst,
		},
	}, nil
}

func splitOrigins(raw string) []string {
	origins := make([]string, 0, 2)
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) Validate() error {
	if c.Stage != StageDev && c.Stage != StageProd {
		return fmt.Errorf("stage must be either %s or %s, got: %s", StageDev, StageProd, c.Stage)
	}
	if c.Game.MaxPlacementAttempts <= 0 {
		return fmt.Errorf("max placement attempts must be positive, got: %d", c.Game.MaxPlacementAttempts)
	}
	if strings.TrimSpace(c.Record.Path) == "" {
		return fmt.Errorf("record path must not be empty")
	}
	if c.Spectate.Enabled {
		if c.Spectate.Port <= 0 || c.Spectate.Port > 65535 {
			return fmt.Errorf("invalid spectate port: %d", c.Spectate.Port)
		}
		if c.Spectate.RequestsPerSecond <= 0 || c.Spectate.BurstSize <= 0 {
			return fmt.Errorf("rate limit must be positive, rps: %v burst: %d", c.Spectate.RequestsPerSecond, c.Spectate.BurstSize)
		}
	}
	return nil
}
