package salvagelint

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const salvagePkgSuffix = "/pkg/salvage"

// Analyzer reports recovery calls whose error result is dropped. Recover and
// Stream.Feed return a nil *Result together with ErrSizeLimitExceeded, so a
// dropped error turns into a nil dereference on oversize input.
var Analyzer = &analysis.Analyzer{
	Name:     "salvagelint",
	Doc:      "checks that the error returned by salvage.Recover and Stream.Feed is handled",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.ExprStmt)(nil),
		(*ast.AssignStmt)(nil),
		(*ast.ValueSpec)(nil),
		(*ast.GoStmt)(nil),
		(*ast.DeferStmt)(nil),
	}

	inspect.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push || hasNoLint(stack) {
			return true
		}

		switch stmt := n.(type) {
		case *ast.ExprStmt:
			reportCall(pass, stmt.X, "result and error")
		case *ast.GoStmt:
			reportCall(pass, stmt.Call, "result and error")
		case *ast.DeferStmt:
			reportCall(pass, stmt.Call, "result and error")
		case *ast.AssignStmt:
			if len(stmt.Rhs) == 1 && len(stmt.Lhs) == 2 && isBlank(stmt.Lhs[1]) {
				reportCall(pass, stmt.Rhs[0], "error")
			}
		case *ast.ValueSpec:
			if len(stmt.Values) == 1 && len(stmt.Names) == 2 && stmt.Names[1].Name == "_" {
				reportCall(pass, stmt.Values[0], "error")
			}
		}
		return true
	})

	return nil, nil
}

// reportCall reports expr when it is a call to a checked function.
func reportCall(pass *analysis.Pass, expr ast.Expr, what string) {
	call, ok := ast.Unparen(expr).(*ast.CallExpr)
	if !ok {
		return
	}
	name := checkedCallee(pass, call)
	if name == "" {
		return
	}
	pass.Reportf(call.Pos(), "%s of %s is discarded; oversize input returns a nil *Result with ErrSizeLimitExceeded", what, name)
}

// checkedCallee returns a display name for salvage.Recover and
// (*salvage.Stream).Feed, or "" for any other callee.
func checkedCallee(pass *analysis.Pass, call *ast.CallExpr) string {
	fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
	if !ok || fn.Pkg() == nil || !strings.HasSuffix(fn.Pkg().Path(), salvagePkgSuffix) {
		return ""
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return ""
	}
	recv := sig.Recv()
	switch {
	case recv == nil && fn.Name() == "Recover":
		return "salvage.Recover"
	case recv != nil && fn.Name() == "Feed" && receiverName(recv.Type()) == "Stream":
		return "Stream.Feed"
	}
	return ""
}

func receiverName(t types.Type) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}

func isBlank(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && ident.Name == "_"
}

// hasNoLint checks if the enclosing function has a nolint:salvagelint directive
func hasNoLint(stack []ast.Node) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		fn, ok := stack[i].(*ast.FuncDecl)
		if !ok {
			continue
		}
		if fn.Doc == nil {
			return false
		}
		text := fn.Doc.Text()
		return strings.Contains(text, "nolint:salvagelint") || strings.Contains(text, "nolint:all")
	}
	return false
}
