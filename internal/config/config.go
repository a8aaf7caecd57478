package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jordan-pw/minesweeper/internal/mines"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

type LogConfig struct {
	Level      string `json:"level" yaml:"level"`
	File       string `json:"file" yaml:"file"`
	MaxSize    int    `json:"max_size" yaml:"max_size"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAge     int    `json:"max_age" yaml:"max_age"`
}

type GameConfig struct {
	Width     int `json:"width" yaml:"width"`
	Height    int `json:"height" yaml:"height"`
	MineCount int `json:"mine_count" yaml:"mine_count"`
	MaxWidth  int `json:"max_width" yaml:"max_width"`
	MaxHeight int `json:"max_height" yaml:"max_height"`
	// Seed makes mine placement reproducible when non-zero.
	Seed uint64 `json:"seed" yaml:"seed"`
}

func (g GameConfig) Params() mines.GameParams {
	return mines.GameParams{Width: g.Width, Height: g.Height, MineCount: g.MineCount}
}

// CheckSize rejects boards larger than the server is willing to hold.
func (g GameConfig) CheckSize(p mines.GameParams) error {
	if p.Width > g.MaxWidth || p.Height > g.MaxHeight {
		return fmt.Errorf(
			"%w: %dx%d exceeds %dx%d",
			mines.ErrInvalidConfiguration, p.Width, p.Height, g.MaxWidth, g.MaxHeight,
		)
	}
	return nil
}

type SessionConfig struct {
	IdleTimeout   Duration `json:"idle_timeout" yaml:"idle_timeout"`
	SweepInterval Duration `json:"sweep_interval" yaml:"sweep_interval"`
}

type JwtConfig struct {
	Secret        string   `json:"secret" yaml:"secret"`
	TokenLifetime Duration `json:"token_lifetime" yaml:"token_lifetime"`
}

type CookiesConfig struct {
	Domain   string `json:"domain" yaml:"domain"`
	Secure   bool   `json:"secure" yaml:"secure"`
	SameSite string `json:"same_site" yaml:"same_site"`
}

type CorsConfig struct {
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

type Config struct {
	Mode    string        `json:"mode" yaml:"mode"`
	Addr    string        `json:"addr" yaml:"addr"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Game    GameConfig    `json:"game" yaml:"game"`
	Session SessionConfig `json:"session" yaml:"session"`
	Jwt     JwtConfig     `json:"jwt" yaml:"jwt"`
	Cookies CookiesConfig `json:"cookies" yaml:"cookies"`
	Cors    CorsConfig    `json:"cors" yaml:"cors"`
}

func Default() Config {
	return Config{
		Mode: ModeProduction,
		Addr: ":8080",
		Log: LogConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Game: GameConfig{
			Width:     9,
			Height:    9,
			MineCount: 3,
			MaxWidth:  100,
			MaxHeight: 100,
		},
		Session: SessionConfig{
			IdleTimeout:   Duration{30 * time.Minute},
			SweepInterval: Duration{time.Minute},
		},
		Jwt: JwtConfig{
			TokenLifetime: Duration{24 * time.Hour},
		},
		Cookies: CookiesConfig{
			Secure:   true,
			SameSite: "strict",
		},
	}
}

// Load reads the file at path over Default and applies env overrides.
// Files ending in .yaml or .yml are YAML, anything else is JSON. An empty
// path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(b, &cfg)
		default:
			err = json.Unmarshal(b, &cfg)
		}
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if addr, ok := os.LookupEnv("MINES_ADDR"); ok {
		c.Addr = addr
	}
	if mode, ok := os.LookupEnv("MINES_MODE"); ok {
		c.Mode = mode
	}
	if secret, ok := os.LookupEnv("MINES_JWT_SECRET"); ok {
		c.Jwt.Secret = secret
	}
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok && development != "0" {
		c.Mode = ModeDevelopment
	}
}

func (c Config) Validate() error {
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if err := c.Game.Params().Validate(); err != nil {
		return fmt.Errorf("default game: %w", err)
	}
	if err := c.Game.CheckSize(c.Game.Params()); err != nil {
		return fmt.Errorf("default game: %w", err)
	}
	if c.Session.IdleTimeout.Duration <= 0 || c.Session.SweepInterval.Duration <= 0 {
		return fmt.Errorf("session timeouts must be positive")
	}
	if c.Jwt.TokenLifetime.Duration <= 0 {
		return fmt.Errorf("jwt token lifetime must be positive")
	}
	if _, err := parseSameSite(c.Cookies.SameSite); err != nil {
		return err
	}
	return nil
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                   c.Mode,
		"addr":                   c.Addr,
		"log_level":              c.Log.Level,
		"log_file":               c.Log.File,
		"game_default":           c.Game.Params().String(),
		"game_max":               fmt.Sprintf("%dx%d", c.Game.MaxWidth, c.Game.MaxHeight),
		"game_seeded":            c.Game.Seed != 0,
		"session_idle_timeout":   c.Session.IdleTimeout.String(),
		"session_sweep_interval": c.Session.SweepInterval.String(),
		"jwt_token_lifetime":     c.Jwt.TokenLifetime.String(),
		"cookies_domain":         c.Cookies.Domain,
		"cors_allowed_origins":   c.Cors.AllowedOrigins,
	}
}

func (c Config) Production() bool {
	return c.Mode == ModeProduction
}

func (c Config) Development() bool {
	return c.Mode != ModeProduction
}
