package emitter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/plclang/plc/internal/analyzer"
	"github.com/plclang/plc/internal/emitter"
	"github.com/plclang/plc/internal/lexer"
	"github.com/plclang/plc/internal/parser"
	"github.com/plclang/plc/internal/pipeline"
)

// emit runs the full front-end and returns the generated target source.
func emit(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
		&emitter.EmitterProcessor{},
	).Run(&pipeline.Context{SourceCode: input, Out: &out})
	if err := ctx.FirstError(); err != nil {
		t.Fatalf("pipeline error: %v", err)
	}
	return out.String()
}

func TestEmitProgram(t *testing.T) {
	got := emit(t, `LET CONST limit : Integer = 10;
DEF square(x: Integer): Integer DO RETURN x * x; END
DEF main(): Integer DO print(square(limit)); RETURN 0; END`)

	want := `public class Main {

    final int limit = 10;

    public static void main(String[] args) {
        System.exit(new Main().main());
    }

    int square(int x) {
        return x * x;
    }

    int main() {
        System.out.println(square(limit));
        return 0;
    }
}
`
	if got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitSquareSignature(t *testing.T) {
	got := emit(t, `DEF square(x: Integer): Integer DO RETURN x * x; END
DEF main(): Integer DO RETURN square(3); END`)
	if !strings.Contains(got, "int square(int x) {") {
		t.Errorf("missing square signature in:\n%s", got)
	}
	if !strings.Contains(got, "return x * x;") {
		t.Errorf("missing square body in:\n%s", got)
	}
}

func TestEmitTypeMapping(t *testing.T) {
	got := emit(t, `LET d : Decimal = 1.5;
LET b : Boolean = TRUE;
LET s : String = "x";
DEF main(): Integer DO RETURN 0; END`)
	for _, want := range []string{
		"double d = 1.5;",
		"boolean b = true;",
		`String s = "x";`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestEmitVoidMethod(t *testing.T) {
	got := emit(t, `DEF ping() DO print("ping"); END
DEF main(): Integer DO RETURN 0; END`)
	if !strings.Contains(got, "Void ping() {") {
		t.Errorf("missing void signature in:\n%s", got)
	}
}

func TestEmitEmptyMethodBody(t *testing.T) {
	got := emit(t, `DEF noop() DO END
DEF main(): Integer DO RETURN 0; END`)
	if !strings.Contains(got, "Void noop() {}") {
		t.Errorf("expected single-line empty body in:\n%s", got)
	}
}

func TestEmitControlFlow(t *testing.T) {
	got := emit(t, `DEF main(): Integer DO
	LET i = 0;
	FOR (; i < 3; i = i + 1) DO print(i); END
	WHILE i > 0 DO i = i - 1; END
	IF i == 0 DO print("zero"); ELSE print("other"); END
	RETURN i;
END`)

	for _, want := range []string{
		"for (; i < 3; i = i + 1) {",
		"while (i > 0) {",
		"if (i == 0) {",
		"} else {",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestEmitForWithInitializer(t *testing.T) {
	got := emit(t, `DEF main(): Integer DO
	LET i = 0;
	FOR (i = 0; i < 3; i = i + 1) DO print(i); END
	RETURN i;
END`)
	if !strings.Contains(got, "for (i = 0; i < 3; i = i + 1) {") {
		t.Errorf("unexpected for header in:\n%s", got)
	}
}

func TestEmitLiterals(t *testing.T) {
	got := emit(t, `DEF main(): Integer DO
	print('a');
	print('\n');
	print("tab\there");
	print(1.50);
	print(NIL);
	print(FALSE);
	RETURN 0;
END`)

	for _, want := range []string{
		"System.out.println('a');",
		`System.out.println('\n');`,
		`System.out.println("tab\there");`,
		"System.out.println(1.50);",
		"System.out.println(null);",
		"System.out.println(false);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestEmitGroupedExpression(t *testing.T) {
	got := emit(t, `DEF main(): Integer DO RETURN (1 + 2) * 3; END`)
	if !strings.Contains(got, "return (1 + 2) * 3;") {
		t.Errorf("unexpected body in:\n%s", got)
	}
}

func TestEmitCustomClassName(t *testing.T) {
	var out bytes.Buffer
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
		&emitter.EmitterProcessor{ClassName: "Program"},
	).Run(&pipeline.Context{SourceCode: "DEF main(): Integer DO RETURN 0; END", Out: &out})
	if err := ctx.FirstError(); err != nil {
		t.Fatalf("pipeline error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "public class Program {") ||
		!strings.Contains(got, "System.exit(new Program().main());") {
		t.Errorf("class name not applied:\n%s", got)
	}
}

// The emitted source must survive re-lexing: the PLC lexer accepts the
// Java token shapes used here, so it doubles as a syntax smoke test.
func TestEmitRelexes(t *testing.T) {
	got := emit(t, `LET greeting : String = "hi\n";
DEF main(): Integer DO print(greeting); RETURN 0; END`)
	if _, err := lexer.New(got).Lex(); err != nil {
		t.Errorf("emitted source does not re-lex: %v\n%s", err, got)
	}
}
