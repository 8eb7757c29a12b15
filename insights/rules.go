// Package insights turns aggregated portfolio and behaviour figures into
// short human-readable observations using ordered threshold rules.
package insights

// Rule inspects an input and optionally produces one message.
type Rule[T any] struct {
	Name  string
	Check func(T) (string, bool)
	// Terminal stops evaluation after this rule fires.
	Terminal bool
}

// Evaluator runs rules in order and falls back to a fixed message when none
// of them fired, so its output is never empty.
type Evaluator[T any] struct {
	rules    []Rule[T]
	fallback string
}

// NewEvaluator builds an evaluator over rules, evaluated in the given order.
func NewEvaluator[T any](fallback string, rules ...Rule[T]) *Evaluator[T] {
	return &Evaluator[T]{rules: rules, fallback: fallback}
}

// Evaluate returns the messages of every rule that fired, in rule order.
func (e *Evaluator[T]) Evaluate(in T) []string {
	var out []string
	for _, r := range e.rules {
		msg, ok := r.Check(in)
		if !ok {
			continue
		}
		out = append(out, msg)
		if r.Terminal {
			return out
		}
	}
	if len(out) == 0 {
		out = append(out, e.fallback)
	}
	return out
}

// Threshold builds a rule that emits msg when pred holds.
func Threshold[T any](name, msg string, pred func(T) bool) Rule[T] {
	return Rule[T]{
		Name: name,
		Check: func(in T) (string, bool) {
			if pred(in) {
				return msg, true
			}
			return "", false
		},
	}
}
