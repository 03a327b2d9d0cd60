package goexpr_test

import (
	"errors"
	"testing"

	"github.com/sandrolain/goexpr"
	"github.com/sandrolain/goexpr/pkg/evaluator"
	"github.com/sandrolain/goexpr/pkg/types"
)

func TestVersion(t *testing.T) {
	if goexpr.Version() == "" {
		t.Error("empty version")
	}
}

func TestScenario(t *testing.T) {
	expr := goexpr.Start(5).Plus(3).PlusVar("x").PlusExpr(
		goexpr.Start(4).Plus(7).MinusVar("y").PlusExpr(
			goexpr.Start(2).Plus(3).Minus(4).PlusVar("x").Build(),
		).Plus(12).Build(),
	).Build()

	vars := goexpr.NewContext()
	vars.Bind("x", 3)
	vars.Bind("y", 6)

	got, err := goexpr.Eval(expr, vars)
	if err != nil {
		t.Fatal(err)
	}
	if got != 32 {
		t.Errorf("got %d, want 32", got)
	}

	want := "(((5 + 3) + x) + ((((4 + 7) - y) + (((2 + 3) - 4) + x)) + 12))"
	if text := goexpr.Render(expr); text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestConstructors(t *testing.T) {
	expr := goexpr.Sub(goexpr.Add(goexpr.Literal(1), goexpr.Var("a")), goexpr.Literal(2))
	if got := goexpr.Render(expr); got != "((1 + a) - 2)" {
		t.Errorf("got %q", got)
	}

	vars := goexpr.NewContext()
	vars.Bind("a", 10)
	if got := goexpr.MustEval(expr, vars); got != 9 {
		t.Errorf("got %d, want 9", got)
	}
}

func TestEvalWithOptions(t *testing.T) {
	got, err := goexpr.Eval(goexpr.Literal(4), nil, evaluator.WithDebug(false))
	if err != nil || got != 4 {
		t.Errorf("got %d, %v", got, err)
	}
}

func TestEvalUndefinedVariable(t *testing.T) {
	_, err := goexpr.Eval(goexpr.Var("x"), goexpr.NewContext())
	var uv *types.UndefinedVariableError
	if !errors.As(err, &uv) || uv.Name != "x" {
		t.Errorf("expected undefined x, got %v", err)
	}
}

func TestMustEvalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	goexpr.MustEval(goexpr.Var("x"), nil)
}
