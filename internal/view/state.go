// Package view holds the page state machines. Fetch outcomes are fed in as
// Result values; the transition functions themselves never touch the network.
package view

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseFailed
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseFailed:
		return "failed"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

func (p Phase) Loading() bool { return p == PhaseLoading }
func (p Phase) Failed() bool  { return p == PhaseFailed }
func (p Phase) Ready() bool   { return p == PhaseReady }

// Result is the outcome of one fetch.
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// ResultOf adapts a (value, error) pair.
func ResultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}
