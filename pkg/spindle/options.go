package spindle

import (
	"math/rand"

	"loomworks.net/spindle/internal/eval"
	"loomworks.net/spindle/internal/tags"
)

// Option configures a Grammar.
type Option func(*config)

type config struct {
	policy             tags.Policy
	diag               eval.Diagnostics
	seed               *int64
	rng                *rand.Rand
	analyze            bool
	noDefaultModifiers bool
}

func newConfig(opts []Option) *config {
	cfg := &config{policy: tags.Flat}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) engineOptions() []eval.Option {
	opts := []eval.Option{eval.WithTagPolicy(c.policy)}
	if c.diag != nil {
		opts = append(opts, eval.WithDiagnostics(c.diag))
	}
	if c.rng != nil {
		opts = append(opts, eval.WithRandom(c.rng))
	} else if c.seed != nil {
		opts = append(opts, eval.WithSeed(*c.seed))
	}
	if c.analyze {
		opts = append(opts, eval.WithAnalysis(true))
	}
	return opts
}

// WithTagPolicy sets the tag-storage policy (Flat by default). The policy is
// fixed for the Grammar's lifetime.
func WithTagPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithScopedTags is shorthand for WithTagPolicy(Scoped).
func WithScopedTags() Option {
	return func(c *config) { c.policy = tags.Scoped }
}

// WithDiagnostics sets the diagnostics sink (stderr logging by default).
func WithDiagnostics(d Diagnostics) Option {
	return func(c *config) { c.diag = d }
}

// WithSilentDiagnostics drops all diagnostics.
func WithSilentDiagnostics() Option {
	return func(c *config) { c.diag = eval.Discard }
}

// WithSeed seeds the random source for reproducible expansion streams.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = &seed }
}

// WithRandom sets the random source directly. Takes precedence over
// WithSeed.
func WithRandom(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithAnalysis enables the rule-book analysis pass after registration.
func WithAnalysis() Option {
	return func(c *config) { c.analyze = true }
}

// WithoutDefaultModifiers skips registration of the builtin modifier set.
func WithoutDefaultModifiers() Option {
	return func(c *config) { c.noDefaultModifiers = true }
}
