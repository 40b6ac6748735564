package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled filter expression that can be evaluated against
// a named subject, e.g. Incident.Status == "resolved".
type Filter struct {
	program    *vm.Program
	expression string
}

// Compile compiles an expr filter expression.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(baseEnv()),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{
		program:    program,
		expression: expression,
	}, nil
}

// Match evaluates the filter with the subject bound to the given name.
func (f *Filter) Match(name string, subject any) (bool, error) {
	env := baseEnv()
	env[name] = subject

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression must evaluate to a boolean, got %T", result)
	}
	return matched, nil
}

// String returns the original expression.
func (f *Filter) String() string {
	return f.expression
}

// baseEnv defines the helper functions available in expressions.
func baseEnv() map[string]any {
	return map[string]any{
		// Date helpers
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		// Current time
		"now": time.Now,
	}
}
