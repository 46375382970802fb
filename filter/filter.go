// Package filter compiles expression-language filters over Trials activity
// rows, so the CLI can narrow match history with expressions like
// "kills >= 10 && victory" or "period > daysAgo(7)".
package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/tmoller/trialscope/bungie"
)

// Filter is a compiled filter expression over activities.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable activity filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Activity fields are injected per evaluation, so only the helper
	// functions are known at compile time.
	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the source expression this filter was compiled from.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a single activity.
func (f *Filter) Match(activity bungie.Activity) (bool, error) {
	env := helperFunctions()
	maps.Copy(env, activityEnv(activity))

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			InstanceID: activity.ActivityDetails.InstanceID,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			InstanceID: activity.ActivityDetails.InstanceID,
			Reason:     "expression did not evaluate to a boolean",
		}
	}

	return matched, nil
}

// Apply returns the activities that match the filter.
func (f *Filter) Apply(activities []bungie.Activity) ([]bungie.Activity, error) {
	var matched []bungie.Activity
	for _, activity := range activities {
		ok, err := f.Match(activity)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, activity)
		}
	}
	return matched, nil
}

// activityEnv exposes an activity's stats to filter expressions.
func activityEnv(a bungie.Activity) map[string]any {
	return map[string]any{
		"kills":           a.Kills(),
		"deaths":          a.Deaths(),
		"assists":         a.Assists(),
		"kd":              a.KDRatio(),
		"victory":         a.Victory(),
		"standing":        int(a.StatValue("standing")),
		"durationSeconds": a.DurationSeconds(),
		"period":          a.Period,
		"mode":            a.ActivityDetails.Mode,
		"instanceId":      a.ActivityDetails.InstanceID,
	}
}

// helperFunctions returns the functions available inside expressions.
func helperFunctions() map[string]any {
	return map[string]any{
		"now": func() time.Time {
			return time.Now()
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
	}
}
