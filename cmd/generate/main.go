package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/jwebster45206/vault-world/internal/config"
	"github.com/jwebster45206/vault-world/internal/logger"
	"github.com/jwebster45206/vault-world/internal/manual"
	"github.com/jwebster45206/vault-world/internal/storage"
	"github.com/jwebster45206/vault-world/pkg/options"
	"github.com/jwebster45206/vault-world/pkg/vault"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	dataDir := flags.String("data", cfg.DataDir, "directory holding game.json, items.json, locations.json and regions.json")
	seed := flags.Uint64("seed", 0, "generation seed (0 picks one at random)")
	spoilerPath := flags.String("spoiler", "", "write the spoiler log to this file instead of stdout")
	width := flags.Int("width", manual.DefaultSpoilerWidth, "spoiler log line width")
	store := flags.Bool("store", false, "save the result to Redis (requires REDIS_URL)")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: generate [flags] player.yaml...\n\n%s", flags.FlagUsages())
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("at least one player settings file is required")
	}
	if *store && cfg.RedisURL == "" {
		return errors.New("--store requires REDIS_URL")
	}

	log := logger.Setup(cfg)

	data, err := manual.LoadData(os.DirFS(*dataDir))
	if err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	var genOpts []manual.Option
	if *seed != 0 {
		genOpts = append(genOpts, manual.WithSeed(*seed))
	}
	gen := manual.NewGenerator(data, vault.NewHooks(log), log, genOpts...)

	for _, path := range flags.Args() {
		if err := addPlayer(gen, path, log); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := writeSpoiler(gen, *spoilerPath, *width, stdout); err != nil {
		return err
	}

	if *store {
		if err := saveResult(ctx, cfg, result, log); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Saved result %s\n", result.ID)
	}
	return nil
}

func addPlayer(gen *manual.Generator, path string, log *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open player settings: %w", err)
	}
	defer f.Close()

	ps, err := options.LoadPlayerSettings(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	slot, err := gen.AddPlayerSettings(ps)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.WithPlayer(log, slot, ps.Name).Debug("Loaded player settings", "path", path)
	return nil
}

func writeSpoiler(gen *manual.Generator, path string, width int, stdout io.Writer) error {
	if path == "" {
		return gen.WriteSpoiler(stdout, width)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create spoiler file: %w", err)
	}
	if err := gen.WriteSpoiler(f, width); err != nil {
		f.Close()
		return fmt.Errorf("failed to write spoiler: %w", err)
	}
	return f.Close()
}

func saveResult(ctx context.Context, cfg *config.Config, result *manual.Result, log *slog.Logger) error {
	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.ResultTTL, log)
	if err != nil {
		return err
	}
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		return err
	}
	return store.SaveResult(ctx, result)
}
