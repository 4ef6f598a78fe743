package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tycoon/config"
	"go-tycoon/controller"
	"go-tycoon/deck"
	"go-tycoon/engine"
	"go-tycoon/repository"
	"go-tycoon/router"
	"go-tycoon/service"
	"go-tycoon/utils"
	"go-tycoon/ws"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are built in)")
	outDir := flag.String("out", "out", "directory for the deck table and the example game")
	serve := flag.Bool("serve", false, "serve the deck and recorded games over HTTP after the run")
	addr := flag.String("addr", "", "HTTP listen address (overrides server.addr)")
	survey := flag.Bool("survey", false, "play a survey of random games and write the length histogram")
	verbose := flag.Bool("verbose", false, "development logging")
	workers := flag.Int("workers", -1, "workers for simulation, search and survey (0 = one per CPU)")
	token := flag.String("token", "", "print an API access token for this user id and exit")
	flag.Parse()

	var log *zap.Logger
	var err error
	if *verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("❌ failed to load config", zap.Error(err))
	}
	if *workers >= 0 {
		cfg.Balance.Workers = *workers
		cfg.Search.Workers = *workers
		cfg.Survey.Workers = *workers
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ invalid config", zap.Error(err))
	}
	if *token != "" {
		t, err := issueToken(cfg.Server, *token)
		if err != nil {
			log.Fatal("❌ failed to issue token", zap.Error(err))
		}
		fmt.Println(t)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *outDir, *survey, *serve, log); err != nil {
		log.Fatal("❌ run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, outDir string, survey, serve bool, log *zap.Logger) error {
	pipeline := &service.Pipeline{
		Patterns: cfg.Pattern,
		Balance:  cfg.Balance,
		Names:    cfg.NamePools(),
		Rules:    cfg.DeckRules(),
		Log:      log,
	}
	out, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}
	if err := writeFile(filepath.Join(outDir, "deck.tsv"), func(w *bufio.Writer) error {
		return deck.WriteSummary(w, out.Deck.Cards)
	}); err != nil {
		return err
	}
	if cfg.Database.DSN != "" {
		if err := exportDeck(ctx, cfg.Database, out, log); err != nil {
			return err
		}
	}

	store, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	games := service.NewGameService(store, log)

	example, seed, err := service.SearchExample(ctx, out.Deck.Cards, cfg.SearchConfig(), log)
	switch {
	case errors.Is(err, service.ErrNoExample):
		log.Warn("❌ no example game found", zap.Error(err))
	case err != nil:
		return err
	default:
		if err := writeExample(outDir, example); err != nil {
			return err
		}
		if _, err := games.Save(ctx, seed, example); err != nil {
			return err
		}
	}

	if survey {
		stats, err := service.Survey(ctx, out.Deck.Cards, cfg.SurveyConfig(), log)
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(outDir, "lengths.tsv"), func(w *bufio.Writer) error {
			return stats.WriteHistogram(w)
		}); err != nil {
			return err
		}
	}

	if !serve {
		return nil
	}
	return serveHTTP(ctx, cfg.Server, out, games, log)
}

func openStore(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (repository.GameStore, error) {
	if cfg.Kind != config.StoreRedis {
		return repository.NewMemoryStore(), nil
	}
	rdb, err := repository.InitRedis(ctx, cfg.RedisAddr, cfg.RedisDB, log)
	if err != nil {
		return nil, err
	}
	return repository.NewRedisStore(rdb, cfg.TTL, log), nil
}

func exportDeck(ctx context.Context, cfg config.DatabaseConfig, out *service.Output, log *zap.Logger) error {
	db, err := repository.OpenDeckDB(cfg.Driver, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	exporter, err := repository.NewDeckExporter(ctx, db, log)
	if err != nil {
		return err
	}
	rows := deck.Rows(out.Deck.Cards)
	if err := exporter.Export(ctx, rows); err != nil {
		return err
	}
	stored, err := exporter.Load(ctx)
	if err != nil {
		return err
	}
	if len(stored) != len(rows) {
		return fmt.Errorf("deck export: %d cards stored, want %d", len(stored), len(rows))
	}
	return nil
}

// issueToken signs an access token for the /api routes with the configured
// secret.
func issueToken(cfg config.ServerConfig, userID string) (string, error) {
	if cfg.JWTSecret == "" {
		return "", errors.New("no jwt secret configured (server.jwt_secret or JWT_SECRET)")
	}
	return utils.GenerateAccessToken([]byte(cfg.JWTSecret), userID, cfg.TokenTTL)
}

// writeExample writes the narration both as plain sentences and as the raw
// event feed.
func writeExample(outDir string, r *engine.Result) error {
	if err := writeFile(filepath.Join(outDir, "example.txt"), func(w *bufio.Writer) error {
		for _, e := range r.Events {
			if e.Message == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "[%d] %s\n", e.Turn, e.Message); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(outDir, "example.json"), func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	})
}

func writeFile(path string, write func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func serveHTTP(ctx context.Context, cfg config.ServerConfig, out *service.Output, games *service.GameService, log *zap.Logger) error {
	r := gin.Default()
	router.InitRouter(r, controller.New(out, games, log), ws.NewHub(games, log), cfg.JWTSecret)

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	log.Info("✅ server listening", zap.String("addr", cfg.Addr), zap.Bool("auth", cfg.JWTSecret != ""))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
