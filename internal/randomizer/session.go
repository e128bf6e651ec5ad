package randomizer

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/sagashuffle/internal/core/shuffle"
	"github.com/louisbranch/sagashuffle/internal/mapdata"
	apperrors "github.com/louisbranch/sagashuffle/internal/platform/errors"
	"github.com/louisbranch/sagashuffle/internal/random"
	"github.com/louisbranch/sagashuffle/internal/tables"
)

// Pass names, also used as mapping space names.
const (
	PassMonsters   = "monsters"
	PassEncounters = "encounters"
	PassShopItems  = "shop_items"
	PassArts       = "arts"
	PassCharacters = "characters"
	PassSkills     = "skills"
	PassChests     = "chests"
)

// PassOrder is the order passes draw from the generator.
var PassOrder = []string{
	PassMonsters,
	PassEncounters,
	PassShopItems,
	PassArts,
	PassCharacters,
	PassSkills,
	PassChests,
}

var (
	// ErrInvalidSeed matches any seed parse failure.
	ErrInvalidSeed = apperrors.New(apperrors.CodeSeedInvalid, "invalid seed")

	// ErrAlreadyRandomized is returned by a second Run on the same Session.
	ErrAlreadyRandomized = apperrors.New(apperrors.CodeAlreadyRandomized, "session already randomized")
)

// ChestLoader supplies the map data for the chest pass. It is called once,
// when that pass runs.
type ChestLoader func() (*mapdata.Data, error)

// Chests returns a ChestLoader for already loaded data.
func Chests(d *mapdata.Data) ChestLoader {
	return func() (*mapdata.Data, error) { return d, nil }
}

// ChestFile returns a ChestLoader reading path.
func ChestFile(path string) ChestLoader {
	return func() (*mapdata.Data, error) { return mapdata.LoadFile(path) }
}

// Session is one randomization run.
type Session struct {
	seed       int32
	rng        *rand.Rand
	opts       options
	mappings   map[string]shuffle.Mapping
	spaces     []string
	chests     *mapdata.Data
	randomized bool
}

// NewSession parses seedText and prepares a Session. Invalid seed text is
// rejected before any generator exists.
func NewSession(seedText string, opts ...Option) (*Session, error) {
	seed, err := random.ParseSeed(seedText)
	if err != nil {
		return nil, err
	}
	return NewSessionWithSeed(seed, opts...), nil
}

// NewSessionWithSeed prepares a Session for a known seed.
func NewSessionWithSeed(seed int32, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		seed:     seed,
		rng:      shuffle.NewSource(int64(seed)),
		opts:     o,
		mappings: map[string]shuffle.Mapping{},
	}
}

// Seed returns the session seed.
func (s *Session) Seed() int32 {
	return s.seed
}

// Randomized reports whether Run has been called.
func (s *Session) Randomized() bool {
	return s.randomized
}

// Mapping returns the mapping built for space. Character attributes use
// "characters.<attribute>" spaces.
func (s *Session) Mapping(space string) (shuffle.Mapping, bool) {
	m, ok := s.mappings[space]
	return m, ok
}

// Spaces returns the spaces that received a mapping, in build order.
func (s *Session) Spaces() []string {
	return append([]string(nil), s.spaces...)
}

// Appearance returns the monster a monster id now looks like. Ids the monster
// pass did not cover keep their own appearance.
func (s *Session) Appearance(id int) int {
	if to, ok := s.mappings[PassMonsters].Lookup(id); ok {
		return to
	}
	return id
}

// ChestData returns the map data the chest pass randomized, or nil when the
// pass did not apply.
func (s *Session) ChestData() *mapdata.Data {
	return s.chests
}

// Run randomizes dump in place, and the map data chests yields.
//
// The returned error covers preconditions only: a Session that already ran,
// a nil dump or a done context. Everything after that is reported per pass.
func (s *Session) Run(ctx context.Context, dump *tables.Dump, chests ChestLoader) (Report, error) {
	if s.randomized {
		return Report{}, ErrAlreadyRandomized
	}
	if dump == nil {
		return Report{}, apperrors.WithMetadata(apperrors.CodeTableMissing, "dump is required", map[string]string{"Table": "dump"})
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	s.randomized = true

	tracer := s.opts.tracerOrGlobal()
	ctx, span := tracer.Start(ctx, "randomizer.run", trace.WithAttributes(attribute.Int("randomizer.seed", int(s.seed))))
	defer span.End()

	in := &input{dump: dump, chests: chests}
	report := Report{Seed: s.seed}
	for _, name := range PassOrder {
		status := s.runPass(ctx, tracer, name, in)
		report.Passes = append(report.Passes, status)
	}
	span.SetAttributes(attribute.Int("randomizer.applied", report.Applied()))
	if failed := report.Failed(); len(failed) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d passes failed", len(failed)))
	}
	return report, nil
}

func (s *Session) runPass(ctx context.Context, tracer trace.Tracer, name string, in *input) (status PassStatus) {
	_, span := tracer.Start(ctx, "randomizer.pass."+name)
	defer func() {
		span.SetAttributes(
			attribute.String("randomizer.pass", name),
			attribute.String("randomizer.state", status.State.String()),
		)
		if status.Err != nil {
			span.RecordError(status.Err)
			span.SetStatus(codes.Error, status.Err.Error())
		}
		span.End()
	}()

	status.Name = name
	if s.opts.disabled[name] {
		status.State = StateSkipped
		status.Detail = "disabled"
		return status
	}

	defer func() {
		if r := recover(); r != nil {
			status.State = StateFailed
			status.Detail = ""
			status.Err = passFailed(name, fmt.Errorf("panic: %v", r))
		}
	}()

	detail, err := s.passFunc(name)(in)
	switch {
	case err == errNothingToDo:
		status.State = StateSkipped
		status.Detail = detail
	case err != nil:
		status.State = StateFailed
		status.Err = err
		if apperrors.CodeOf(err) == apperrors.CodeUnknown {
			status.Err = passFailed(name, err)
		}
	default:
		status.State = StateApplied
		status.Detail = detail
	}
	return status
}

func (s *Session) record(space string, m shuffle.Mapping) {
	if _, ok := s.mappings[space]; !ok {
		s.spaces = append(s.spaces, space)
	}
	s.mappings[space] = m
}

func passFailed(name string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodePassFailed, name+" pass", map[string]string{"Pass": name}, cause)
}
