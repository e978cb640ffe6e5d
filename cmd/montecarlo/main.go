package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
	"github.com/jblackburn/alembic/internal/montecarlo"
)

func main() {
	simulations := flag.Int("n", 1000, "number of trials")
	workers := flag.Int("workers", 4, "concurrent trial workers")
	seed := flag.Uint64("seed", 1, "random seed")
	invSize := flag.Int("inv-size", 7, "ingredients per generated inventory (0 = random size)")
	skill := flag.Int("skill", model.DefaultSkill, "actor alchemy skill")
	alchemistRank := flag.Int("alchemist-rank", 0, "alchemist perk rank (0-5)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, *simulations, *workers, *seed, *invSize, *skill, *alchemistRank); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, simulations, workers int, seed uint64, invSize, skill, alchemistRank int) error {
	catalog, err := data.Load()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	actor, err := model.NewActorProfile(int32(skill), 0, int32(alchemistRank), false, false, false, false, false)
	if err != nil {
		return fmt.Errorf("building actor profile: %w", err)
	}

	runner, err := montecarlo.NewRunner(montecarlo.Config{
		Simulations: simulations,
		Workers:     workers,
		Seed:        seed,
	})
	if err != nil {
		return err
	}

	exp := &montecarlo.ExhaustExperiment{
		Catalog:       catalog,
		Actor:         actor,
		InventorySize: invSize,
	}

	summary, err := runner.Run(ctx, exp)
	if err != nil {
		return fmt.Errorf("monte carlo run: %w", err)
	}

	fmt.Printf("experiment:    %s\n", summary.Experiment)
	fmt.Printf("trials:        %d\n", summary.Trials)
	fmt.Printf("total potions: %d\n", summary.TotalPotions)
	fmt.Printf("mean potions:  %.2f\n", summary.MeanPotions)
	fmt.Printf("min/max:       %d / %d\n", summary.MinPotions, summary.MaxPotions)
	fmt.Printf("total value:   %d gold\n", summary.TotalValue)
	fmt.Printf("elapsed:       %s\n", summary.Elapsed)
	return nil
}
