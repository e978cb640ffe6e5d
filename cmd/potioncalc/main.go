package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jblackburn/alembic/internal/alchemy"
	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
)

func main() {
	skill := flag.Int("skill", 39, "actor alchemy skill")
	fortify := flag.Int("fortify", 17, "fortify alchemy enchantment percent")
	alchemistRank := flag.Int("alchemist-rank", 1, "alchemist perk rank (0-5)")
	ingredients := flag.String("ingredients", "", "comma-separated ingredient names (default: sample list)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	names := []string{
		"Blue Mountain Flower",
		"Butterfly Wing",
		"Wheat",
		"Hanging Moss",
		"Giant's Toe",
		"Creep Cluster",
		"Blisterwort",
		"Glowing Mushroom",
	}
	if *ingredients != "" {
		names = names[:0]
		for _, name := range strings.Split(*ingredients, ",") {
			names = append(names, strings.TrimSpace(name))
		}
	}

	if err := run(*skill, *fortify, *alchemistRank, names); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(skill, fortify, alchemistRank int, names []string) error {
	catalog, err := data.Load()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	for _, name := range names {
		if catalog.Ingredient(name) != nil {
			continue
		}
		if suggestion := catalog.NearestIngredient(name); suggestion != "" {
			return fmt.Errorf("unknown ingredient %q (did you mean %q?)", name, suggestion)
		}
		return fmt.Errorf("unknown ingredient %q", name)
	}

	actor, err := model.NewActorProfile(int32(skill), int32(fortify), int32(alchemistRank), false, false, false, false, false)
	if err != nil {
		return fmt.Errorf("building actor profile: %w", err)
	}

	potions := alchemy.GeneratePotions(names, actor, catalog)
	sort.SliceStable(potions, func(i, j int) bool {
		return potions[i].TotalValue > potions[j].TotalValue
	})

	fmt.Printf("Total potions: %d\n\n", len(potions))
	for i, p := range potions {
		fmt.Printf("--- Potion %d ---\n", i+1)
		fmt.Printf("%s\n", p.Name)
		fmt.Printf("Ingredients: %s\n", strings.Join(p.Ingredients, ", "))
		fmt.Printf("Total value: %d gold\n", p.TotalValue)
		fmt.Println("Effects:")
		for _, e := range p.Effects {
			fmt.Printf("  - %s (%d gold)\n", e.Description, e.Value)
		}
		fmt.Println()
	}
	return nil
}
