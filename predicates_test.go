package matchbox_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/agentstation/matchbox"
	"github.com/agentstation/matchbox/future"
	"github.com/agentstation/matchbox/option"
	"github.com/agentstation/matchbox/result"
)

func TestBuiltinPredicates(t *testing.T) {
	pending := future.Resolved(1)

	tests := []struct {
		name    string
		check   string
		subject any
		want    bool
	}{
		{"string matches", "string", "hello", true},
		{"string rejects number", "string", 42, false},
		{"number matches int", "number", 42, true},
		{"number matches float", "number", 3.14, true},
		{"number rejects string", "number", "42", false},
		{"bool matches", "bool", true, true},
		{"func matches", "func", func() {}, true},
		{"array matches slice", "array", []int{1, 2}, true},
		{"array rejects map", "array", map[string]int{}, false},
		{"map matches", "map", map[string]int{"a": 1}, true},
		{"date matches time", "date", time.Now(), true},
		{"regexp matches compiled", "regexp", regexp.MustCompile("a"), true},
		{"future matches pending", "future", pending, true},
		{"future rejects plain value", "future", 42, false},
		{"nil matches untyped nil", "nil", nil, true},
		{"nil matches typed nil", "nil", (*int)(nil), true},
		{"nil rejects value", "nil", 0, false},
		{"truthy matches nonzero", "truthy", 1, true},
		{"truthy rejects zero", "truthy", 0, false},
		{"falsy matches empty string", "falsy", "", true},
		{"falsy matches false", "falsy", false, true},
		{"falsy rejects value", "falsy", "x", false},
		{"empty matches empty slice", "empty", []int{}, true},
		{"empty rejects populated slice", "empty", []int{1}, false},
		{"success matches success result", "success", result.Success[int, string](1), true},
		{"success rejects failure result", "success", result.Failure[int]("e"), false},
		{"failure matches failure result", "failure", result.Failure[int]("e"), true},
		{"failure rejects plain value", "failure", "e", false},
		{"present matches present option", "present", option.Present(1), true},
		{"present rejects absent option", "present", option.Absent[int](), false},
		{"absent matches absent option", "absent", option.Absent[int](), true},
		{"absent rejects plain nil", "absent", nil, false},
		{"unknown name reports false", "no-such-check", 1, false},
	}

	preds := matchbox.BuiltinPredicates()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preds.Check(tt.check, tt.subject); got != tt.want {
				t.Errorf("Check(%q, %v) = %v, want %v", tt.check, tt.subject, got, tt.want)
			}
		})
	}
}

func TestBuiltinPredicatesFreshCopy(t *testing.T) {
	a := matchbox.BuiltinPredicates()
	a["string"] = func(any) bool { return false }

	b := matchbox.BuiltinPredicates()
	if !b.Check("string", "hello") {
		t.Error("mutating one registry copy leaked into another")
	}
}

func TestPredicatesNames(t *testing.T) {
	preds := matchbox.Predicates{
		"a": func(any) bool { return true },
		"b": func(any) bool { return true },
	}
	names := preds.Names()
	if len(names) != 2 {
		t.Errorf("Names() returned %d entries, want 2", len(names))
	}
}

func TestSetDefaults(t *testing.T) {
	defer matchbox.ResetDefaults()

	even := func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	}
	matchbox.SetDefaults(matchbox.WithPredicates(matchbox.Predicates{"even": even}))

	got, err := matchbox.New(context.Background(), 4).
		When(matchbox.TypeIs("even"), func(context.Context, any) (any, error) {
			return "even", nil
		}).
		OrElse("odd")
	if err != nil {
		t.Fatalf("OrElse() error = %v", err)
	}
	if got != "even" {
		t.Errorf("OrElse() = %v, want even", got)
	}

	matchbox.ResetDefaults()

	got, err = matchbox.New(context.Background(), 4).
		When(matchbox.TypeIs("even"), func(context.Context, any) (any, error) {
			return "even", nil
		}).
		OrElse("odd")
	if err != nil {
		t.Fatalf("OrElse() error = %v", err)
	}
	if got != "odd" {
		t.Errorf("OrElse() after reset = %v, want odd", got)
	}
}

func TestParseExecutionMode(t *testing.T) {
	tests := []struct {
		in   string
		want matchbox.ExecutionMode
	}{
		{"sequential", matchbox.Sequential},
		{"parallel", matchbox.Parallel},
		{"", matchbox.Parallel},
		{"bogus", matchbox.Parallel},
	}
	for _, tt := range tests {
		if got := matchbox.ParseExecutionMode(tt.in); got != tt.want {
			t.Errorf("ParseExecutionMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExecutionModeString(t *testing.T) {
	if matchbox.Parallel.String() != "parallel" {
		t.Errorf("Parallel.String() = %q", matchbox.Parallel.String())
	}
	if matchbox.Sequential.String() != "sequential" {
		t.Errorf("Sequential.String() = %q", matchbox.Sequential.String())
	}
}
