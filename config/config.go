package config

import (
	"embed"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"go-tycoon/balance"
	"go-tycoon/deck"
	"go-tycoon/engine"
	"go-tycoon/entities"
	"go-tycoon/pattern"
	"go-tycoon/service"
)

//go:embed defaults/sectors.txt defaults/names.txt
var defaults embed.FS

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Files struct {
	Sectors string `json:"sectors" mapstructure:"sectors"`
	Names   string `json:"names" mapstructure:"names"`
}

type StoreConfig struct {
	Kind      string        `json:"kind" mapstructure:"kind"`
	RedisAddr string        `json:"redisAddr" mapstructure:"redis_addr"`
	RedisDB   int           `json:"redisDb" mapstructure:"redis_db"`
	TTL       time.Duration `json:"ttl" mapstructure:"ttl"`
}

// DatabaseConfig enables the SQL deck export when DSN is set.
type DatabaseConfig struct {
	Driver string `json:"driver" mapstructure:"driver"`
	DSN    string `json:"dsn" mapstructure:"dsn"`
}

type ServerConfig struct {
	Addr      string `json:"addr" mapstructure:"addr"`
	JWTSecret string `json:"-" mapstructure:"jwt_secret"`
	// TokenTTL is the lifetime of tokens printed by -token.
	TokenTTL time.Duration `json:"tokenTtl" mapstructure:"token_ttl"`
}

type Config struct {
	Sectors []entities.Sector `json:"sectors" mapstructure:"sectors"`
	// Names maps a sector name to its pool of card names.
	Names    map[string][]string  `json:"names" mapstructure:"names"`
	Files    Files                `json:"files" mapstructure:"files"`
	Pattern  pattern.Options      `json:"pattern" mapstructure:"pattern"`
	Balance  balance.Config       `json:"balance" mapstructure:"balance"`
	Engine   engine.Config        `json:"engine" mapstructure:"engine"`
	Search   service.SearchConfig `json:"search" mapstructure:"search"`
	Survey   service.SurveyConfig `json:"survey" mapstructure:"survey"`
	Exclude  []deck.ExcludeRule   `json:"exclude" mapstructure:"exclude"`
	Store    StoreConfig          `json:"store" mapstructure:"store"`
	Database DatabaseConfig       `json:"database" mapstructure:"database"`
	Server   ServerConfig         `json:"server" mapstructure:"server"`
}

// Default returns the built-in configuration, including the embedded
// sectors and name pools.
func Default() *Config {
	cfg := &Config{
		Pattern: pattern.DefaultOptions(),
		Balance: balance.DefaultConfig(),
		Engine:  engine.DefaultConfig(),
		Search:  service.DefaultSearchConfig(),
		Survey:  service.DefaultSurveyConfig(),
		Exclude: []deck.ExcludeRule{{Points: 5, Bonus: 4}},
		Store: StoreConfig{
			Kind:      StoreMemory,
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
		},
		Database: DatabaseConfig{Driver: "sqlite"},
		Server:   ServerConfig{Addr: ":8000", TokenTTL: 24 * time.Hour},
	}

	sectors, err := defaults.ReadFile("defaults/sectors.txt")
	if err != nil {
		panic(err)
	}
	names, err := defaults.ReadFile("defaults/names.txt")
	if err != nil {
		panic(err)
	}
	if cfg.Sectors, err = ParseSectors(string(sectors)); err != nil {
		panic(fmt.Sprintf("embedded sectors: %v", err))
	}
	if cfg.Names, err = ParseNames(string(names), cfg.Sectors); err != nil {
		panic(fmt.Sprintf("embedded names: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path over the defaults, applies the sector and
// name files it points to, then the environment overrides. An empty path
// yields the defaults with the overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	if err := cfg.loadFiles(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToIntHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		// lists and maps in the file replace the defaults instead of merging
		ZeroFields: true,
		Result:     c,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(data.(string))
		}
		return data, nil
	}
}

func (c *Config) loadFiles() error {
	if c.Files.Sectors != "" {
		data, err := os.ReadFile(c.Files.Sectors)
		if err != nil {
			return fmt.Errorf("read sectors: %w", err)
		}
		if c.Sectors, err = ParseSectors(string(data)); err != nil {
			return fmt.Errorf("%s: %w", c.Files.Sectors, err)
		}
	}
	if c.Files.Names != "" {
		data, err := os.ReadFile(c.Files.Names)
		if err != nil {
			return fmt.Errorf("read names: %w", err)
		}
		if c.Names, err = ParseNames(string(data), c.Sectors); err != nil {
			return fmt.Errorf("%s: %w", c.Files.Names, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Store.Kind = StoreRedis
		c.Store.RedisAddr = addr
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Store.RedisDB = n
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.Server.JWTSecret = secret
	}
	return nil
}

// NamePools orders the name pools by sector color.
func (c *Config) NamePools() [][]string {
	pools := make([][]string, len(c.Sectors))
	for i, s := range c.Sectors {
		pools[i] = c.Names[s.Name]
	}
	return pools
}

// ChipNames lists the narration name of each color's chips.
func (c *Config) ChipNames() []string {
	chips := make([]string, len(c.Sectors))
	for i, s := range c.Sectors {
		chips[i] = s.Chip
	}
	return chips
}

func (c *Config) DeckRules() deck.Rules {
	return deck.ExcludeAny(c.Exclude...)
}

// EngineConfig is the engine configuration with the sectors' chip names.
func (c *Config) EngineConfig() engine.Config {
	e := c.Engine
	e.ChipNames = c.ChipNames()
	return e
}

func (c *Config) SearchConfig() service.SearchConfig {
	s := c.Search
	s.Engine = c.EngineConfig()
	return s
}

func (c *Config) SurveyConfig() service.SurveyConfig {
	s := c.Survey
	s.Engine = c.EngineConfig()
	return s
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var err error
	if len(c.Sectors) != entities.ColorCount {
		err = multierr.Append(err, fmt.Errorf("config: %d sectors, want %d", len(c.Sectors), entities.ColorCount))
	}
	seen := make(map[string]bool)
	for i, s := range c.Sectors {
		switch {
		case s.Name == "":
			err = multierr.Append(err, fmt.Errorf("config: sector %d has no name", i))
		case seen[s.Name]:
			err = multierr.Append(err, fmt.Errorf("config: sector %q listed twice", s.Name))
		case s.Chip == "":
			err = multierr.Append(err, fmt.Errorf("config: sector %q has no chip name", s.Name))
		}
		seen[s.Name] = true
		if len(c.Names[s.Name]) == 0 {
			err = multierr.Append(err, fmt.Errorf("config: no names for sector %q", s.Name))
		}
	}
	for name := range c.Names {
		if !seen[name] {
			err = multierr.Append(err, fmt.Errorf("config: names given for unknown sector %q", name))
		}
	}

	err = multierr.Append(err, c.Pattern.Validate())
	err = multierr.Append(err, c.Balance.Validate())
	err = multierr.Append(err, c.EngineConfig().Validate())
	if c.Search.MaxGames < 1 {
		err = multierr.Append(err, fmt.Errorf("config: search max games must be positive, got %d", c.Search.MaxGames))
	}
	if c.Survey.Games < 1 {
		err = multierr.Append(err, fmt.Errorf("config: survey games must be positive, got %d", c.Survey.Games))
	}
	switch c.Store.Kind {
	case StoreMemory, StoreRedis:
	default:
		err = multierr.Append(err, fmt.Errorf("config: unknown store kind %q", c.Store.Kind))
	}
	if c.Server.TokenTTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("config: server token ttl must be positive, got %s", c.Server.TokenTTL))
	}
	if c.Database.DSN != "" && c.Database.Driver != "mysql" && c.Database.Driver != "sqlite" {
		err = multierr.Append(err, fmt.Errorf("config: unknown database driver %q", c.Database.Driver))
	}
	return err
}
