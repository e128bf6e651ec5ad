package randomizertool

import (
	"errors"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/louisbranch/sagashuffle/internal/platform/cmd"
	"github.com/louisbranch/sagashuffle/internal/randomizer"
)

// Config holds configuration for the randomizer command. SAGASHUFFLE_*
// environment variables set the defaults and flags override them.
type Config struct {
	DumpPath    string `env:"DUMP" envDefault:"tables.json"`
	OutPath     string `env:"OUT"`
	MapDataPath string `env:"MAPDATA" envDefault:"mapdata.json"`
	MapDataOut  string `env:"MAPDATA_OUT"`
	Seed        string `env:"SEED"`
	DBPath      string `env:"DB_PATH"`
	Locale      string `env:"LOCALE" envDefault:"en-US"`
	// SettingsPath, when set, is loaded (or created) and summarised.
	SettingsPath string `env:"SETTINGS"`

	ArtsLow             int `env:"ARTS_LOW" envDefault:"170"`
	ArtsHigh            int `env:"ARTS_HIGH" envDefault:"216"`
	ReservedCharacter   int `env:"RESERVED_CHARACTER" envDefault:"18"`
	SkillDescriptionMin int `env:"SKILL_DESCRIPTION_MIN" envDefault:"1"`

	// Skip lists passes to leave alone.
	Skip []string `env:"SKIP" envSeparator:","`
	// Filters holds pass=expression entries.
	Filters []string `env:"FILTERS" envSeparator:";"`

	List       bool
	ListLimit  int
	PageToken  string
	SeedFilter string
	ShowRun    int64
}

// ParseConfig loads environment defaults and then parses flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	skip := strings.Join(cfg.Skip, ",")
	fs.StringVar(&cfg.DumpPath, "dump", cfg.DumpPath, "table dump JSON to randomize")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "randomized dump path (default: <dump>.randomized.json)")
	fs.StringVar(&cfg.MapDataPath, "mapdata", cfg.MapDataPath, "map data file with chest contents (empty to skip chests)")
	fs.StringVar(&cfg.MapDataOut, "mapdata-out", cfg.MapDataOut, "randomized map data path (default: <mapdata>.randomized.json)")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed text (empty for a fresh seed)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "spoiler log database path (empty to skip)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for status output")
	fs.StringVar(&cfg.SettingsPath, "settings", cfg.SettingsPath, "quality-of-life settings file to load or create")
	fs.IntVar(&cfg.ArtsLow, "arts-low", cfg.ArtsLow, "first art id to shuffle")
	fs.IntVar(&cfg.ArtsHigh, "arts-high", cfg.ArtsHigh, "art id after the last one to shuffle")
	fs.IntVar(&cfg.ReservedCharacter, "reserved-character", cfg.ReservedCharacter, "character id never shuffled (-1 for none)")
	fs.IntVar(&cfg.SkillDescriptionMin, "skill-description-min", cfg.SkillDescriptionMin, "placeholder skill description length")
	fs.StringVar(&skip, "skip", skip, "comma separated passes to skip")
	fs.Func("filter", "pass=lua expression narrowing a pass (repeatable)", func(value string) error {
		cfg.Filters = append(cfg.Filters, value)
		return nil
	})
	fs.BoolVar(&cfg.List, "list", false, "list recorded runs")
	fs.IntVar(&cfg.ListLimit, "limit", 20, "runs shown per -list page")
	fs.StringVar(&cfg.PageToken, "page-token", "", "continue a previous -list")
	fs.StringVar(&cfg.SeedFilter, "seed-filter", "", "only -list runs drawn from this seed")
	fs.Int64Var(&cfg.ShowRun, "show", 0, "show one recorded run with its mappings")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Skip = splitList(skip)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if (c.List || c.ShowRun != 0) && strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db-path is required to read the spoiler log")
	}
	if c.List || c.ShowRun != 0 {
		return nil
	}
	if strings.TrimSpace(c.DumpPath) == "" {
		return errors.New("dump is required")
	}
	for _, name := range c.Skip {
		if !slices.Contains(randomizer.PassOrder, name) {
			return fmt.Errorf("unknown pass %q in skip", name)
		}
	}
	for _, entry := range c.Filters {
		if _, _, err := parseFilter(entry); err != nil {
			return err
		}
	}
	return nil
}

func parseFilter(entry string) (pass, expr string, err error) {
	pass, expr, ok := strings.Cut(entry, "=")
	pass = strings.TrimSpace(pass)
	if !ok || strings.TrimSpace(expr) == "" {
		return "", "", fmt.Errorf("filter %q must look like pass=expression", entry)
	}
	if !slices.Contains(randomizer.PassOrder, pass) {
		return "", "", fmt.Errorf("unknown pass %q in filter", pass)
	}
	return pass, expr, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
