package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-tycoon/entities"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	pools := cfg.NamePools()
	if len(pools) != entities.ColorCount {
		t.Fatalf("pools = %d, want %d", len(pools), entities.ColorCount)
	}
	for c, pool := range pools {
		if len(pool) < 19 {
			t.Errorf("color %d has %d names, want at least 19", c, len(pool))
		}
	}
	if got := cfg.EngineConfig().ChipNames; got[0] != "ivory" || got[5] != "purple" {
		t.Errorf("chip names = %v", got)
	}
	if !cfg.DeckRules().Exclude(5, 4) || cfg.DeckRules().Exclude(5, 3) {
		t.Error("default exclusion should drop exactly 5 points with a +4 bonus")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tycoon.yaml", `
balance:
  trials: "2500"
  workers: 4
engine:
  player_names: [Ann, Bo]
search:
  max_games: 1000
  criteria:
    max_rounds: 50
exclude: []
store:
  ttl: 90m
server:
  token_ttl: 2h
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Balance.Trials != 2500 || cfg.Balance.Workers != 4 {
		t.Errorf("balance = %+v", cfg.Balance)
	}
	if cfg.Balance.Seed != 99169 {
		t.Errorf("seed = %d, want the default kept", cfg.Balance.Seed)
	}
	if got := cfg.Engine.PlayerNames; len(got) != 2 || got[1] != "Bo" {
		t.Errorf("player names = %v, want the list replaced", got)
	}
	if cfg.Engine.WinningScore != 25 {
		t.Errorf("winning score = %d, want the default kept", cfg.Engine.WinningScore)
	}
	if cfg.Search.MaxGames != 1000 || cfg.Search.Criteria.MaxRounds != 50 {
		t.Errorf("search = %+v", cfg.Search)
	}
	if cfg.Server.TokenTTL != 2*time.Hour || cfg.Server.Addr != ":8000" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Search.Criteria.MinWildcards != 1 {
		t.Errorf("criteria lost its defaults: %+v", cfg.Search.Criteria)
	}
	if len(cfg.Exclude) != 0 || cfg.DeckRules().Exclude(5, 4) {
		t.Errorf("exclude = %v, want none", cfg.Exclude)
	}
	if cfg.Store.TTL != 90*time.Minute {
		t.Errorf("ttl = %v", cfg.Store.TTL)
	}
}

func TestLoadNameFiles(t *testing.T) {
	dir := t.TempDir()
	var names strings.Builder
	for _, s := range []string{"A", "B", "C", "D", "E", "F"} {
		for i := 0; i < 3; i++ {
			names.WriteString(s + "\tCard " + s + string(rune('0'+i)) + "\n")
		}
	}
	sectors := writeFile(t, dir, "sectors.txt", "A #111111 gold\nB #222222\nC #333333\nD #444444\nE #555555\nF #666666\n")
	namesPath := writeFile(t, dir, "names.txt", names.String())
	path := writeFile(t, dir, "tycoon.yaml", "files:\n  sectors: "+sectors+"\n  names: "+namesPath+"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sectors[0].Chip != "gold" || cfg.Sectors[1].Chip != "red" {
		t.Errorf("chips = %q, %q", cfg.Sectors[0].Chip, cfg.Sectors[1].Chip)
	}
	if got := cfg.NamePools()[2]; len(got) != 3 || got[0] != "Card C0" {
		t.Errorf("pool C = %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseSectors("Farming ivory\n"); err == nil {
		t.Error("expected an error for a sector without a hex color")
	}
	sectors, err := ParseSectors("Farming #ffffff\n\nMining #000000\n")
	if err != nil {
		t.Fatalf("ParseSectors: %v", err)
	}
	if len(sectors) != 2 {
		t.Fatalf("sectors = %v", sectors)
	}
	if _, err := ParseNames("Fishing\tTrawler\n", sectors); err == nil {
		t.Error("expected an error for an unknown sector")
	}
	if _, err := ParseNames("Farming Barn\n", sectors); err == nil {
		t.Error("expected an error for a line without a tab")
	}
}

func TestValidateAggregates(t *testing.T) {
	cfg := Default()
	cfg.Sectors = cfg.Sectors[:5]
	cfg.Balance.Trials = 0
	cfg.Store.Kind = "disk"
	cfg.Server.TokenTTL = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"5 sectors", "trials", "store kind", "unknown sector", "token ttl"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DB_DSN", "file:deck.db")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Kind != StoreRedis || cfg.Store.RedisAddr != "cache:6379" || cfg.Store.RedisDB != 3 {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Database.DSN != "file:deck.db" || cfg.Server.JWTSecret != "s3cret" {
		t.Errorf("database/server = %+v / %+v", cfg.Database, cfg.Server)
	}

	t.Setenv("REDIS_DB", "three")
	if _, err := Load(""); err == nil {
		t.Error("expected an error for a non-numeric REDIS_DB")
	}
}
