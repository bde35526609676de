package agent

const DefaultMaxIterations = 10

// Limits groups loop-control knobs so upper layers can pass them as a
// single value instead of repeating individual fields.
type Limits struct {
	MaxIterations int
}

func (l Limits) Normalize() Limits {
	if l.MaxIterations <= 0 {
		l.MaxIterations = DefaultMaxIterations
	}
	return l
}
