// Package randomizertool implements the randomizer command: it randomizes a
// table dump and its chest data, prints the pass status and records the run
// in the spoiler log.
package randomizertool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/louisbranch/sagashuffle/internal/core/shuffle"
	"github.com/louisbranch/sagashuffle/internal/mapdata"
	apperrors "github.com/louisbranch/sagashuffle/internal/platform/errors"
	"github.com/louisbranch/sagashuffle/internal/predicate"
	"github.com/louisbranch/sagashuffle/internal/random"
	"github.com/louisbranch/sagashuffle/internal/randomizer"
	"github.com/louisbranch/sagashuffle/internal/storage"
	storagesqlite "github.com/louisbranch/sagashuffle/internal/storage/sqlite"
	"github.com/louisbranch/sagashuffle/internal/tables"
	"github.com/louisbranch/sagashuffle/internal/tuning"
)

// Run executes the command using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	if cfg.List || cfg.ShowRun != 0 {
		store, err := storagesqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open spoiler log: %w", err)
		}
		defer store.Close()
		if cfg.ShowRun != 0 {
			return showRun(ctx, store, cfg.ShowRun, out)
		}
		return listRuns(ctx, store, cfg, out)
	}

	if strings.TrimSpace(cfg.SettingsPath) != "" {
		settings, err := tuning.Load(cfg.SettingsPath)
		if err != nil {
			return fmt.Errorf("load settings: %w", localized(err, cfg.Locale))
		}
		writeSettings(out, settings)
	}

	session, err := newSession(cfg)
	if err != nil {
		return localized(err, cfg.Locale)
	}
	log.Printf("randomizing %s with seed %d", cfg.DumpPath, session.Seed())

	dump, err := readJSON[tables.Dump](cfg.DumpPath)
	if err != nil {
		return err
	}

	var chests randomizer.ChestLoader
	if path := strings.TrimSpace(cfg.MapDataPath); path != "" {
		chests = randomizer.ChestFile(path)
	}
	report, err := session.Run(ctx, &dump, chests)
	if err != nil {
		return localized(err, cfg.Locale)
	}

	outPath := outputPath(cfg.OutPath, cfg.DumpPath, ".randomized.json")
	if err := writeJSON(outPath, dump); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", outPath)
	if data := session.ChestData(); data != nil {
		chestPath := outputPath(cfg.MapDataOut, cfg.MapDataPath, ".randomized.json")
		if err := mapdata.WriteFile(chestPath, data); err != nil {
			return fmt.Errorf("write map data %s: %w", chestPath, err)
		}
		fmt.Fprintf(out, "wrote %s\n", chestPath)
	}

	for _, line := range report.Status(cfg.Locale) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, report.Summary(cfg.Locale))
	for _, failed := range report.Failed() {
		log.Printf("pass %s failed: %v", failed.Name, failed.Err)
	}

	if strings.TrimSpace(cfg.DBPath) == "" {
		return nil
	}
	store, err := storagesqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open spoiler log: %w", err)
	}
	defer store.Close()
	id, err := store.PutRun(ctx, runRecord(session, report, time.Now()))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	fmt.Fprintf(out, "recorded run %d\n", id)
	return nil
}

func newSession(cfg Config) (*randomizer.Session, error) {
	opts := []randomizer.Option{
		randomizer.WithArtsRange(cfg.ArtsLow, cfg.ArtsHigh),
		randomizer.WithReservedCharacter(cfg.ReservedCharacter),
		randomizer.WithSkillDescriptionMin(cfg.SkillDescriptionMin),
		randomizer.WithDisabledPasses(cfg.Skip...),
	}
	for _, entry := range cfg.Filters {
		pass, expr, err := parseFilter(entry)
		if err != nil {
			return nil, err
		}
		p, err := predicate.Compile(expr)
		if err != nil {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeFilterInvalid, "filter "+pass, map[string]string{"Table": pass}, err)
		}
		opts = append(opts, randomizer.WithFilter(pass, p))
	}

	if strings.TrimSpace(cfg.Seed) == "" {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("draw seed: %w", err)
		}
		return randomizer.NewSessionWithSeed(seed, opts...), nil
	}
	return randomizer.NewSession(cfg.Seed, opts...)
}

func runRecord(session *randomizer.Session, report randomizer.Report, now time.Time) storage.RunRecord {
	record := storage.RunRecord{
		Seed:      report.Seed,
		CreatedAt: now,
		Mappings:  map[string]shuffle.Mapping{},
	}
	for _, p := range report.Passes {
		pass := storage.PassRecord{Name: p.Name, State: p.State.String(), Detail: p.Detail}
		if p.Err != nil {
			pass.Error = p.Err.Error()
		}
		record.Passes = append(record.Passes, pass)
	}
	for _, space := range session.Spaces() {
		if m, ok := session.Mapping(space); ok {
			record.Mappings[space] = m
		}
	}
	return record
}

func listRuns(ctx context.Context, store storage.RunStore, cfg Config, out io.Writer) error {
	query := storage.RunQuery{PageSize: cfg.ListLimit, PageToken: cfg.PageToken}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if strings.TrimSpace(cfg.SeedFilter) != "" {
		seed, err := random.ParseSeed(cfg.SeedFilter)
		if err != nil {
			return localized(err, cfg.Locale)
		}
		query.Seed = &seed
	}
	page, err := store.QueryRuns(ctx, query)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(page.Runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	for _, run := range page.Runs {
		counts := map[randomizer.State]int{}
		for _, p := range run.Passes {
			if state, ok := randomizer.ParseState(p.State); ok {
				counts[state]++
			}
		}
		fmt.Fprintf(out, "%d\tseed %d\t%s\t%d/%d applied, %d failed\n",
			run.ID, run.Seed, run.CreatedAt.Format(time.RFC3339),
			counts[randomizer.StateApplied], len(run.Passes), counts[randomizer.StateFailed])
	}
	if page.NextPageToken != "" {
		fmt.Fprintf(out, "next page: -page-token %s\n", page.NextPageToken)
	}
	return nil
}

func showRun(ctx context.Context, store storage.RunStore, id int64, out io.Writer) error {
	run, err := store.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("get run %d: %w", id, err)
	}
	fmt.Fprintf(out, "run %d seed %d at %s\n", run.ID, run.Seed, run.CreatedAt.Format(time.RFC3339))
	for _, p := range run.Passes {
		if _, ok := randomizer.ParseState(p.State); !ok {
			return fmt.Errorf("run %d pass %s: unknown state %q", id, p.Name, p.State)
		}
		line := fmt.Sprintf("  %s: %s", p.Name, p.State)
		switch {
		case p.Error != "":
			line += " (" + p.Error + ")"
		case p.Detail != "":
			line += " (" + p.Detail + ")"
		}
		fmt.Fprintln(out, line)
	}
	for _, space := range run.Spaces {
		m, err := store.GetMapping(ctx, id, space)
		if err != nil {
			return fmt.Errorf("get mapping %s: %w", space, err)
		}
		fmt.Fprintf(out, "%s:", space)
		for _, from := range m.Keys() {
			fmt.Fprintf(out, " %d->%d", from, m.MustLookup(from))
		}
		fmt.Fprintln(out)
	}
	return nil
}

// localizedError carries the catalog text for a domain error while keeping
// its chain for errors.Is and errors.As.
type localizedError struct {
	text string
	err  error
}

func (e *localizedError) Error() string { return e.text }

func (e *localizedError) Unwrap() error { return e.err }

func localized(err error, locale string) error {
	return &localizedError{text: apperrors.Localize(err, locale), err: err}
}

func writeSettings(out io.Writer, s tuning.Settings) {
	speedrun := "off"
	if s.Speedrun {
		speedrun = "on"
	}
	fmt.Fprintf(out, "settings: battle %dfps, field %dfps, speedrun %s\n",
		s.FrameRateFor(tuning.ModeBattle), s.FrameRateFor(tuning.ModeField), speedrun)
}

func outputPath(explicit, input, suffix string) string {
	if path := strings.TrimSpace(explicit); path != "" {
		return path
	}
	return strings.TrimSuffix(input, ".json") + suffix
}

func readJSON[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", path, err)
	}
	var payload T
	if err := json.Unmarshal(data, &payload); err != nil {
		return zero, fmt.Errorf("decode %s: %w", path, err)
	}
	return payload, nil
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
