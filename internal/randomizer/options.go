package randomizer

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/sagashuffle/internal/predicate"
)

const (
	// DefaultArtsLow and DefaultArtsHigh bound the arts eligible for
	// re-pairing, high exclusive.
	DefaultArtsLow  = 170
	DefaultArtsHigh = 216

	// CharacterSlots is the size of the character default table.
	CharacterSlots = 32

	// DefaultReservedCharacter is the character that never changes.
	DefaultReservedCharacter = 18

	// DefaultSkillDescriptionMin is the placeholder description length; a
	// skill needs a longer description to be re-paired.
	DefaultSkillDescriptionMin = 1

	tracerName = "github.com/louisbranch/sagashuffle/internal/randomizer"
)

type options struct {
	artsLow, artsHigh   int
	reservedCharacter   int
	skillDescriptionMin int
	filters             map[string]*predicate.Predicate
	disabled            map[string]bool
	tracer              trace.Tracer
}

func defaultOptions() options {
	return options{
		artsLow:             DefaultArtsLow,
		artsHigh:            DefaultArtsHigh,
		reservedCharacter:   DefaultReservedCharacter,
		skillDescriptionMin: DefaultSkillDescriptionMin,
		filters:             map[string]*predicate.Predicate{},
		disabled:            map[string]bool{},
	}
}

// Option configures a Session.
type Option func(*options)

// WithArtsRange sets the half-open range of art ids that are re-paired.
func WithArtsRange(low, high int) Option {
	return func(o *options) {
		o.artsLow, o.artsHigh = low, high
	}
}

// WithReservedCharacter sets the character id excluded from re-pairing. A
// negative id reserves nothing.
func WithReservedCharacter(id int) Option {
	return func(o *options) {
		o.reservedCharacter = id
	}
}

// WithSkillDescriptionMin sets the description length a skill must exceed.
func WithSkillDescriptionMin(n int) Option {
	return func(o *options) {
		o.skillDescriptionMin = n
	}
}

// WithFilter narrows the ids of one pass to rows the predicate accepts. It
// runs after the built-in eligibility checks.
func WithFilter(pass string, p *predicate.Predicate) Option {
	return func(o *options) {
		if p != nil {
			o.filters[pass] = p
		}
	}
}

// WithDisabledPasses marks passes as skipped. A disabled pass draws nothing
// from the generator, so later passes see a different stream.
func WithDisabledPasses(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.disabled[name] = true
		}
	}
}

// WithTracer sets the tracer used for run and pass spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

func (o *options) tracerOrGlobal() trace.Tracer {
	if o.tracer != nil {
		return o.tracer
	}
	return otel.Tracer(tracerName)
}
