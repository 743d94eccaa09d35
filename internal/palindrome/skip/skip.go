// Package skip decides which engines a benchmark leaves out. Each rule is an
// expr condition over the input length n, e.g. "n > 1000".
package skip

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/awmpietro/palindrome-trace/internal/palindrome"
)

const (
	// DefaultBruteForce skips the cubic engine above a thousand runes.
	DefaultBruteForce = "n > 1000"
	// DefaultDynamicProgramming skips the quadratic-space engine above
	// three thousand runes.
	DefaultDynamicProgramming = "n > 3000"
)

// Rule is a compiled skip condition.
type Rule struct {
	Cond    string
	program *vm.Program
}

// Compile validates and compiles cond. An empty cond never skips.
func Compile(cond string) (*Rule, error) {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return &Rule{}, nil
	}
	if err := Validate(cond); err != nil {
		return nil, err
	}
	program, err := expr.Compile(cond, expr.Env(env(0)), expr.AsBool())
	if err != nil {
		return nil, err
	}
	return &Rule{Cond: cond, program: program}, nil
}

// Eval reports whether an input of n runes should be skipped.
func (r *Rule) Eval(n int) (bool, error) {
	if r == nil || r.program == nil {
		return false, nil
	}
	out, err := expr.Run(r.program, env(n))
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("cond must evaluate to bool (got %T)", out)
	}
	return b, nil
}

func env(n int) map[string]any {
	return map[string]any{"n": n}
}

// Policy maps engines to their skip rule. Engines without a rule always run.
type Policy map[palindrome.Algorithm]*Rule

// NewPolicy compiles one condition per engine.
func NewPolicy(conds map[palindrome.Algorithm]string) (Policy, error) {
	p := make(Policy, len(conds))
	for algo, cond := range conds {
		if _, err := palindrome.Lookup(algo); err != nil {
			return nil, err
		}
		if !Skippable(algo) && strings.TrimSpace(cond) != "" {
			return nil, fmt.Errorf("%s always runs and cannot have a skip rule", algo)
		}
		r, err := Compile(cond)
		if err != nil {
			return nil, fmt.Errorf("invalid skip rule for %s: %w", algo, err)
		}
		p[algo] = r
	}
	return p, nil
}

// Skippable reports whether algo may be left out of a benchmark.
func Skippable(algo palindrome.Algorithm) bool {
	return algo == palindrome.BruteForce || algo == palindrome.DynamicProgramming
}

// Default returns the built-in policy: Expand-Center and Manacher always
// run, Brute Force and DP are skipped past their thresholds.
func Default() Policy {
	p, err := NewPolicy(map[palindrome.Algorithm]string{
		palindrome.BruteForce:         DefaultBruteForce,
		palindrome.DynamicProgramming: DefaultDynamicProgramming,
	})
	if err != nil {
		panic(err)
	}
	return p
}

// Skip reports whether algo should be skipped for n runes, with a reason.
func (p Policy) Skip(algo palindrome.Algorithm, n int) (bool, string, error) {
	r, ok := p[algo]
	if !ok {
		return false, "", nil
	}
	skip, err := r.Eval(n)
	if err != nil {
		return false, "", fmt.Errorf("skip rule for %s: %w", algo, err)
	}
	if !skip {
		return false, "", nil
	}
	return true, fmt.Sprintf("n=%d matches %q", n, r.Cond), nil
}
