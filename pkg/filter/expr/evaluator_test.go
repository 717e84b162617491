package expr

import (
	"strings"
	"testing"

	"github.com/goliatone/go-chartgen/pkg/filter"
)

func TestEvaluatorExpressions(t *testing.T) {
	row := filter.MapRow{
		"continent": "Europe",
		"pop":       2.5e6,
		"year":      "2007",
		"active":    true,
		"note":      nil,
		"life exp":  78.2,
		"date":      "2020-06-01",
		"count":     0.0,
	}
	cases := []struct {
		expression string
		want       bool
	}{
		{"", true},
		{"active", true},
		{"!active", false},
		{"count", false},
		{`continent == "Europe"`, true},
		{`continent != 'Europe'`, false},
		{"pop >= 1e6", true},
		{"pop<1e6", false},
		{"year > 2000", true},
		{`date < "2020-01-01"`, false},
		{"`life exp` > 70", true},
		{"note == null", true},
		{"note != nil", false},
		{"note > 3", false},
		{"note != 3", true},
		{`note == "x"`, false},
		{"active == true", true},
		{"active != false", true},
		{`continent == "Asia" || pop > 1e6 && active`, true},
		{`(continent == "Asia" || pop > 1e6) && !active`, false},
		{`!(continent == "Asia")`, true},
		{`continent == "Eu\"rope"`, false},
	}
	evaluator := New()
	for _, tc := range cases {
		got, err := evaluator.Eval(tc.expression, row)
		if err != nil {
			t.Fatalf("Eval(%q): %v", tc.expression, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q) = %v, want %v", tc.expression, got, tc.want)
		}
	}
}

func TestEvaluatorErrors(t *testing.T) {
	row := filter.MapRow{"a": 1.0}
	cases := map[string]string{
		"a = 1":       "use '=='",
		"a & b":       "use '&&'",
		"a | b":       "use '||'",
		"`a > 1":      "unterminated quoted identifier",
		`a == "x`:     "unterminated string literal",
		"(a > 1":      "missing closing ')'",
		"a >":         "missing literal",
		"a > b":       "expected literal",
		"a > true":    "requires a number or string",
		"a > 1 b":     `unexpected token "b"`,
		"== 1":        "expected identifier",
		"!":           "empty expression",
		"missing > 1": `unknown column "missing"`,
		"missing":     `unknown column "missing"`,
		"a > 1..2":    "invalid number literal",
	}
	evaluator := New()
	for expression, want := range cases {
		_, err := evaluator.Eval(expression, row)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("Eval(%q) error = %v, want %q", expression, err, want)
		}
	}
}

func TestCompileCaches(t *testing.T) {
	evaluator := New()
	if err := evaluator.Compile(" a > 1 "); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, ok := evaluator.cache.Load("a > 1"); !ok {
		t.Fatalf("compiled expression should be cached by its trimmed form")
	}
	if err := evaluator.Compile("a >"); err == nil {
		t.Fatalf("expected syntax error")
	}
	if _, ok := evaluator.cache.Load("a >"); ok {
		t.Fatalf("invalid expressions should not be cached")
	}
}
