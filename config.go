package main

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls the game shell. Environment variables set the defaults and
// command-line flags override them.
type Config struct {
	TPS       int      `env:"BRAWLER_TPS"        envDefault:"60"`
	Seed      int64    `env:"BRAWLER_SEED"       envDefault:"1"`
	Debug     bool     `env:"BRAWLER_DEBUG"`
	PrefabDir string   `env:"BRAWLER_PREFAB_DIR" envDefault:"prefabs"`
	HotReload bool     `env:"BRAWLER_HOT_RELOAD" envDefault:"true"`
	Player    string   `env:"BRAWLER_PLAYER"     envDefault:"brawler.yaml"`
	Enemies   []string `env:"BRAWLER_ENEMIES"    envDefault:"thug.yaml" envSeparator:","`
}

// LoadConfig parses the environment, then the given command-line arguments.
func LoadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("brawler", flag.ContinueOnError)
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation ticks per second")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for sound and particle choices")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "draw hitboxes, hurtboxes and fighter state")
	fs.StringVar(&cfg.PrefabDir, "prefabs", cfg.PrefabDir, "prefab directory read before the embedded copies (empty disables)")
	fs.BoolVar(&cfg.HotReload, "reload", cfg.HotReload, "watch the prefab directory and reload actions and scripts")
	fs.StringVar(&cfg.Player, "player", cfg.Player, "player character prefab")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		cfg.Enemies = fs.Args()
	}

	if cfg.TPS <= 0 {
		return cfg, fmt.Errorf("tps must be positive, got %d", cfg.TPS)
	}
	return cfg, nil
}
