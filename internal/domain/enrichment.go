package domain

// Outcome tells where an enrichment value came from.
type Outcome int

const (
	// OutcomeFetched means the value is what upstream returned.
	OutcomeFetched Outcome = iota
	// OutcomeDefaulted means the fetch failed and the value is the empty default.
	OutcomeDefaulted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFetched:
		return "fetched"
	case OutcomeDefaulted:
		return "defaulted"
	default:
		return "unknown"
	}
}

// Enrichment is the result of a secondary fetch. It never carries an error
// for the caller to handle: on failure Value holds the empty default and
// Cause records what went wrong.
type Enrichment[T any] struct {
	Value   T
	Outcome Outcome
	Cause   error
}

// Fetched wraps a value returned by upstream.
func Fetched[T any](v T) Enrichment[T] {
	return Enrichment[T]{Value: v, Outcome: OutcomeFetched}
}

// Defaulted wraps the empty default used in place of a failed fetch.
func Defaulted[T any](empty T, cause error) Enrichment[T] {
	return Enrichment[T]{Value: empty, Outcome: OutcomeDefaulted, Cause: cause}
}

// Degraded reports whether the value is a substitute for a failed fetch.
func (e Enrichment[T]) Degraded() bool {
	return e.Outcome == OutcomeDefaulted
}
