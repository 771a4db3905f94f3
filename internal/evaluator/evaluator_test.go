package evaluator_test

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/plclang/plc/internal/ast"
	"github.com/plclang/plc/internal/diagnostics"
	"github.com/plclang/plc/internal/evaluator"
	"github.com/plclang/plc/internal/lexer"
	"github.com/plclang/plc/internal/parser"
)

func parse(t *testing.T, input string) *ast.Source {
	t.Helper()
	tokens, lexErr := lexer.New(input).Lex()
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	source, err := parser.New(tokens).ParseSource()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return source
}

// run executes a program and returns main's result and everything print
// wrote.
func run(t *testing.T, input string) (evaluator.Object, string) {
	t.Helper()
	var out bytes.Buffer
	result, err := evaluator.New(&out).Run(parse(t, input))
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return result, out.String()
}

func runError(t *testing.T, input string, code diagnostics.ErrorCode) {
	t.Helper()
	var out bytes.Buffer
	_, err := evaluator.New(&out).Run(parse(t, input))
	if err == nil {
		t.Fatalf("expected runtime error %s", code)
	}
	if err.Code != code {
		t.Errorf("expected error %s, got %s (%s)", code, err.Code, err.Message)
	}
}

func expectInteger(t *testing.T, obj evaluator.Object, want int64) {
	t.Helper()
	integer, ok := obj.(*evaluator.Integer)
	if !ok {
		t.Fatalf("expected Integer, got %T (%s)", obj, obj.Inspect())
	}
	if integer.Value.Cmp(big.NewInt(want)) != 0 {
		t.Errorf("expected %d, got %s", want, integer.Value)
	}
}

func mainReturning(expr string) string {
	return "DEF main(): Integer DO RETURN " + expr + "; END"
}

func TestPrecedenceEvaluation(t *testing.T) {
	result, _ := run(t, mainReturning("1 + 2 * 3"))
	expectInteger(t, result, 7)
}

func TestIntegerArithmetic(t *testing.T) {
	testCases := []struct {
		name string
		expr string
		want int64
	}{
		{"addition", "1 + 2", 3},
		{"subtraction", "5 - 8", -3},
		{"multiplication", "4 * 6", 24},
		{"division_exact", "10 / 2", 5},
		{"division_truncates", "7 / 2", 3},
		{"division_truncates_toward_zero", "-7 / 2", -3},
		{"grouping", "(1 + 2) * 3", 9},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, _ := run(t, mainReturning(tc.expr))
			expectInteger(t, result, tc.want)
		})
	}
}

func TestArbitraryPrecision(t *testing.T) {
	// Arithmetic never overflows: the evaluator is not bound by the
	// analyzer's literal range.
	result, _ := run(t, `
		DEF main(): Integer DO
			LET big = 2147483647;
			RETURN big * big;
		END`)
	want, _ := new(big.Int).SetString("4611686014132420609", 10)
	integer := result.(*evaluator.Integer)
	if integer.Value.Cmp(want) != 0 {
		t.Errorf("expected %s, got %s", want, integer.Value)
	}
}

func TestDecimalArithmetic(t *testing.T) {
	testCases := []struct {
		name string
		expr string
		want string
	}{
		{"addition", "1.5 + 0.25", "1.75"},
		{"subtraction", "1.0 - 0.5", "0.5"},
		{"multiplication", "1.5 * 2.0", "3.00"},
		// Division rounds half to even at the left operand's scale.
		{"division_repeating", "1.0 / 3.0", "0.3"},
		{"division_half_down_to_even", "2.5 / 2.0", "1.2"},
		{"division_half_up_to_even", "3.5 / 2.0", "1.8"},
		{"division_scale_preserved", "1.50 / 4.0", "0.38"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			src := "DEF main(): Integer DO print(" + tc.expr + "); RETURN 0; END"
			if _, err := evaluator.New(&out).Run(parse(t, src)); err != nil {
				t.Fatalf("runtime error: %v", err)
			}
			got := strings.TrimSuffix(out.String(), "\n")
			if got != tc.want {
				t.Errorf("%s: expected %s, got %s", tc.expr, tc.want, got)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	runError(t, mainReturning("1 / 0"), diagnostics.ErrR002)
	runError(t, "DEF main(): Integer DO print(1.0 / 0.0); RETURN 0; END", diagnostics.ErrR002)
}

func TestMixedArithmeticFails(t *testing.T) {
	// Tags never convert implicitly: Integer and Decimal do not mix.
	runError(t, mainReturning("1 + 2.0"), diagnostics.ErrR001)
	runError(t, mainReturning("1.0 * 2"), diagnostics.ErrR001)
}

func TestStringConcatenation(t *testing.T) {
	testCases := []struct {
		expr string
		want string
	}{
		{`"a" + "b"`, "ab"},
		{`"n=" + 1`, "n=1"},
		{`1 + "!"`, "1!"},
		{`"d=" + 1.50`, "d=1.50"},
		{`"c=" + 'x'`, "c=x"},
		{`"b=" + TRUE`, "b=true"},
		{`"v=" + NIL`, "v=nil"},
	}
	for _, tc := range testCases {
		var out bytes.Buffer
		src := "DEF main(): Integer DO print(" + tc.expr + "); RETURN 0; END"
		if _, err := evaluator.New(&out).Run(parse(t, src)); err != nil {
			t.Fatalf("%s: runtime error: %v", tc.expr, err)
		}
		if got := strings.TrimSuffix(out.String(), "\n"); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.expr, tc.want, got)
		}
	}
}

func TestComparisons(t *testing.T) {
	testCases := []struct {
		expr string
		want string
	}{
		{"1 < 2", "true"},
		{"2 <= 2", "true"},
		{"1 > 2", "false"},
		{"2 >= 3", "false"},
		{"1.5 < 1.6", "true"},
		{"'a' < 'b'", "true"},
		{`"abc" < "abd"`, "true"},
		{"1 == 1", "true"},
		{"1 != 2", "true"},
		{`"a" == "a"`, "true"},
		{"1 == 2", "false"},
		// Equality is structural on the wrapped primitive; different tags
		// are simply unequal.
		{`1 == "1"`, "false"},
		{"NIL == NIL", "true"},
	}
	for _, tc := range testCases {
		_, out := run(t, "DEF main(): Integer DO print("+tc.expr+"); RETURN 0; END")
		if got := strings.TrimSuffix(out, "\n"); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.expr, tc.want, got)
		}
	}
}

func TestOrderedComparisonErrors(t *testing.T) {
	runError(t, "DEF main(): Integer DO print(1 < 1.0); RETURN 0; END", diagnostics.ErrR001)
	runError(t, "DEF main(): Integer DO print(TRUE < FALSE); RETURN 0; END", diagnostics.ErrR001)
}

func TestShortCircuit(t *testing.T) {
	// The right operand is not evaluated when the left decides: boom/0
	// does not exist, so reaching it would be a runtime error.
	_, out := run(t, `
		DEF main(): Integer DO
			IF FALSE && boom() DO print("and"); ELSE print("skipped"); END
			IF TRUE || boom() DO print("or"); END
			RETURN 0;
		END`)
	if out != "skipped\nor\n" {
		t.Errorf("unexpected output %q", out)
	}

	runError(t, mainReturning("0 + (TRUE && boom())"), diagnostics.ErrR003)
}

func TestIfElse(t *testing.T) {
	_, out := run(t, `
		DEF main(): Integer DO
			IF 1 < 2 DO print("then"); ELSE print("else"); END
			IF 2 < 1 DO print("then"); ELSE print("else"); END
			RETURN 0;
		END`)
	if out != "then\nelse\n" {
		t.Errorf("unexpected output %q", out)
	}
	runError(t, "DEF main(): Integer DO IF 1 DO print(1); END RETURN 0; END", diagnostics.ErrR001)
}

func TestWhileLoop(t *testing.T) {
	result, out := run(t, `
		DEF main(): Integer DO
			LET i = 0;
			WHILE i < 3 DO
				print(i);
				i = i + 1;
			END
			RETURN i;
		END`)
	expectInteger(t, result, 3)
	if out != "0\n1\n2\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestForLoop(t *testing.T) {
	result, out := run(t, `
		DEF main(): Integer DO
			LET i = 0;
			FOR (; i < 3; i = i + 1) DO
				print(i);
			END
			RETURN i;
		END`)
	expectInteger(t, result, 3)
	if out != "0\n1\n2\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestForLoopWithInitializer(t *testing.T) {
	// The initializer runs once in the surrounding scope.
	result, _ := run(t, `
		DEF main(): Integer DO
			LET i = 99;
			LET sum = 0;
			FOR (i = 0; i < 5; i = i + 1) DO
				sum = sum + i;
			END
			RETURN sum;
		END`)
	expectInteger(t, result, 10)
}

func TestForBodyScopeIsFresh(t *testing.T) {
	// Each iteration gets its own scope, so the body can redeclare.
	_, out := run(t, `
		DEF main(): Integer DO
			LET i = 0;
			FOR (; i < 2; i = i + 1) DO
				LET doubled = i * 2;
				print(doubled);
			END
			RETURN 0;
		END`)
	if out != "0\n2\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestReturnUnwinds(t *testing.T) {
	result, out := run(t, `
		DEF find(): Integer DO
			LET i = 0;
			WHILE TRUE DO
				IF i > 3 DO
					RETURN i;
				END
				i = i + 1;
			END
			RETURN 0 - 1;
		END
		DEF main(): Integer DO
			print(find());
			RETURN find();
		END`)
	expectInteger(t, result, 4)
	if out != "4\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestMethodWithoutReturnYieldsNil(t *testing.T) {
	_, out := run(t, `
		DEF greet() DO print("hi"); END
		DEF main(): Integer DO
			print(greet());
			RETURN 0;
		END`)
	if out != "hi\nnil\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestFieldsAndConstants(t *testing.T) {
	result, _ := run(t, `
		LET counter : Integer = 10;
		DEF main(): Integer DO
			counter = counter + 1;
			RETURN counter;
		END`)
	expectInteger(t, result, 11)

	runError(t, `
		LET CONST limit : Integer = 10;
		DEF main(): Integer DO
			limit = 11;
			RETURN limit;
		END`, diagnostics.ErrR004)
}

func TestUndefinedNames(t *testing.T) {
	runError(t, mainReturning("ghost"), diagnostics.ErrR003)
	runError(t, mainReturning("ghost(1)"), diagnostics.ErrR003)
	runError(t, "DEF main(): Integer DO ghost = 1; RETURN 0; END", diagnostics.ErrR004)
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	_, out := run(t, `
		DEF pick(a: Integer, b: Integer, c: Integer): Integer DO RETURN b; END
		DEF trace(n: Integer): Integer DO print(n); RETURN n; END
		DEF main(): Integer DO
			RETURN pick(trace(1), trace(2), trace(3));
		END`)
	if out != "1\n2\n3\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRangeBuiltin(t *testing.T) {
	_, out := run(t, `
		DEF main(): Integer DO
			print(range(0, 5));
			RETURN 0;
		END`)
	if out != "range(0, 5)\n" {
		t.Errorf("unexpected output %q", out)
	}
	runError(t, "DEF main(): Integer DO print(range(0, 1.5)); RETURN 0; END", diagnostics.ErrR001)
}

func TestMissingMain(t *testing.T) {
	var out bytes.Buffer
	_, err := evaluator.New(&out).Run(parse(t, "DEF helper(): Integer DO RETURN 1; END"))
	if err == nil || err.Code != diagnostics.ErrR003 {
		t.Fatalf("expected R003, got %v", err)
	}
}

func TestInstances(t *testing.T) {
	point := evaluator.NewInstance("Point")
	point.DefineField("x", &evaluator.Integer{Value: big.NewInt(3)}, false)
	point.DefineField("tag", &evaluator.String{Value: "origin"}, true)
	point.DefineMethod("getX", 0, func(receiver *evaluator.Instance, args []evaluator.Object) evaluator.Object {
		value, _ := receiver.GetField("x")
		return value
	})

	var out bytes.Buffer
	e := evaluator.New(&out)
	e.Env().Define("p", point, false)

	source := parse(t, `
		DEF main(): Integer DO
			p.x = p.getX() + 1;
			print(p.x);
			RETURN 0;
		END`)
	if _, err := e.Run(source); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	if out.String() != "4\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	// Constant fields reject writes.
	if err := point.SetField("tag", &evaluator.String{Value: "moved"}); err == nil {
		t.Error("expected constant field write to fail")
	}
	// Unknown fields reject writes.
	if err := point.SetField("z", evaluator.NIL); err == nil {
		t.Error("expected unknown field write to fail")
	}
}
