package parser_test

import (
	"testing"

	"rblint/internal/ast"
	"rblint/internal/diag"
	"rblint/internal/parser"
	"rblint/internal/source"
)

func parseOne(t *testing.T, src string) ast.Expr {
	t.Helper()
	exprs := parse(t, src)
	if len(exprs) != 1 {
		t.Fatalf("expected one expression, got %d: %#v", len(exprs), exprs)
	}
	return exprs[0]
}

func parse(t *testing.T, src string) []ast.Expr {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rb", []byte(src))
	return parser.ParseFile(fs.Get(id), diag.NopReporter{})
}

func asCall(t *testing.T, e ast.Expr) *ast.CallExpr {
	t.Helper()
	call, ok := e.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", e)
	}
	return call
}

func TestParseSimpleCall(t *testing.T) {
	src := "s.gsub('a', 'b')"
	call := asCall(t, parseOne(t, src))

	if call.Method != "gsub" {
		t.Errorf("expected method gsub, got %q", call.Method)
	}
	if !call.Parens {
		t.Error("expected parenthesized call")
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	if _, ok := call.Receiver.(*ast.Ident); !ok {
		t.Errorf("expected Ident receiver, got %T", call.Receiver)
	}
	lit, ok := call.Args[0].(*ast.StrLit)
	if !ok || lit.Raw != "'a'" {
		t.Errorf("expected first arg 'a', got %#v", call.Args[0])
	}
	if got := src[call.Sp.Start:call.Sp.End]; got != src {
		t.Errorf("call span must cover the whole call, got %q", got)
	}
	if got := src[call.SelSpan.Start:call.SelSpan.End]; got != "gsub" {
		t.Errorf("selector span must cover the method name, got %q", got)
	}
}

func TestParseBareCall(t *testing.T) {
	call := asCall(t, parseOne(t, "str.gsub 'a', 'b'"))
	if call.Parens {
		t.Error("bare call must not be marked parenthesized")
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
}

func TestParseReceiverlessCall(t *testing.T) {
	call := asCall(t, parseOne(t, "gsub(/ /, '')"))
	if call.Receiver != nil {
		t.Errorf("expected nil receiver, got %#v", call.Receiver)
	}
	if _, ok := call.Args[0].(*ast.RegexpLit); !ok {
		t.Errorf("expected regexp first arg, got %T", call.Args[0])
	}
}

func TestParseChainedCalls(t *testing.T) {
	call := asCall(t, parseOne(t, "s.strip.gsub('a', 'b')"))
	if call.Method != "gsub" {
		t.Fatalf("outer call must be gsub, got %q", call.Method)
	}
	inner := asCall(t, call.Receiver)
	if inner.Method != "strip" {
		t.Errorf("inner call must be strip, got %q", inner.Method)
	}
}

func TestParseConstructorArgument(t *testing.T) {
	call := asCall(t, parseOne(t, "s.gsub(Regexp.new('b'), '2')"))
	ctor := asCall(t, call.Args[0])
	if ctor.Method != "new" {
		t.Errorf("expected constructor call, got %q", ctor.Method)
	}
	recv, ok := ctor.Receiver.(*ast.ConstRef)
	if !ok || recv.Name != "Regexp" {
		t.Errorf("expected Regexp const receiver, got %#v", ctor.Receiver)
	}
}

func TestParseBlockAttachment(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"brace block", "s.gsub('a') { |m| m.upcase }"},
		{"do block", "s.gsub('a') do |m|\n  m\nend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := asCall(t, parseOne(t, tt.src))
			if !call.HasBlock {
				t.Error("expected HasBlock")
			}
		})
	}
}

func TestParseBlockBodyIsAnalysed(t *testing.T) {
	src := "items.each do |s|\n  s.gsub('a', 'b')\nend"
	call := asCall(t, parseOne(t, src))
	if len(call.BlockBody) != 1 {
		t.Fatalf("expected one statement in block body, got %d", len(call.BlockBody))
	}
	inner := asCall(t, call.BlockBody[0])
	if inner.Method != "gsub" {
		t.Errorf("expected gsub inside block, got %q", inner.Method)
	}
}

func TestParseBlockPass(t *testing.T) {
	call := asCall(t, parseOne(t, "s.gsub('a', &blk)"))
	if !call.BlockPass {
		t.Error("expected BlockPass")
	}
}

func TestParseAssignment(t *testing.T) {
	assign, ok := parseOne(t, "x = s.gsub('a', 'b')").(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr")
	}
	call := asCall(t, assign.Value)
	if call.Method != "gsub" {
		t.Errorf("expected gsub value, got %q", call.Method)
	}
}

func TestComplexArgumentDegradesToDynamic(t *testing.T) {
	call := asCall(t, parseOne(t, "s.gsub(a + b, 'x')"))
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	if _, ok := call.Args[0].(*ast.BadExpr); !ok {
		t.Errorf("expected operator expression to degrade to BadExpr, got %T", call.Args[0])
	}
	if _, ok := call.Args[1].(*ast.StrLit); !ok {
		t.Errorf("second argument must survive, got %T", call.Args[1])
	}
}

func TestUnmodeledStatementsAreSkipped(t *testing.T) {
	src := "class Foo < Bar\n  def update(s)\n    s.gsub!(/x/, '')\n  end\nend"
	exprs := parse(t, src)

	found := false
	for _, e := range exprs {
		ast.Walk(e, func(n ast.Expr) {
			if call, ok := n.(*ast.CallExpr); ok && call.Method == "gsub!" {
				found = true
			}
		})
	}
	if !found {
		t.Error("expected to find the gsub! call inside unmodeled surroundings")
	}
}

func TestMultipleStatements(t *testing.T) {
	exprs := parse(t, "a.gsub('x', 'y')\nb.gsub('p', 'q'); c.strip")
	if len(exprs) != 3 {
		t.Fatalf("expected 3 expressions, got %d", len(exprs))
	}
}

func TestUnclosedArgumentListReported(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rb", []byte("s.gsub('a', 'b'"))
	bag := diag.NewBag(10)
	parser.ParseFile(fs.Get(id), diag.BagReporter{Bag: bag})

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedParen {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SynUnclosedParen, got %+v", bag.Items())
	}
}
