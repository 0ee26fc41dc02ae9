// Package timeutc provides a linter that checks for time.Now() calls without .UTC().
//
// Stored timestamps (creadaEn, actualizadaEn) are compared across backends and
// processes, so every wall-clock read must be normalized to UTC at the call site.
package timeutc

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects time.Now() calls whose result is not immediately converted with .UTC().
var Analyzer = &analysis.Analyzer{
	Name:     "timeutc",
	Doc:      "checks for time.Now() calls without .UTC() to ensure timezone consistency",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

const message = "time.Now() should be followed by .UTC() for timezone consistency"

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.WithStack([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		call := n.(*ast.CallExpr)
		if !isTimeNow(pass.TypesInfo, call) || followedByUTC(stack) {
			return true
		}
		if hasNolintComment(pass, call) {
			return true
		}
		pass.Reportf(call.Pos(), message)
		return true
	})

	return nil, nil
}

// isTimeNow reports whether call invokes time.Now, whatever the import name.
func isTimeNow(info *types.Info, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Now" {
		return false
	}
	fn, ok := info.Uses[sel.Sel].(*types.Func)
	return ok && fn.Pkg() != nil && fn.Pkg().Path() == "time"
}

// followedByUTC reports whether the call at the top of stack is the receiver of .UTC().
func followedByUTC(stack []ast.Node) bool {
	if len(stack) < 2 {
		return false
	}
	sel, ok := stack[len(stack)-2].(*ast.SelectorExpr)
	return ok && sel.Sel.Name == "UTC"
}

// hasNolintComment accepts //nolint and //nolint:timeutc on the call line or the line above.
func hasNolintComment(pass *analysis.Pass, call *ast.CallExpr) bool {
	pos := pass.Fset.Position(call.Pos())

	for _, f := range pass.Files {
		if pass.Fset.Position(f.Pos()).Filename != pos.Filename {
			continue
		}
		for _, cg := range f.Comments {
			for _, c := range cg.List {
				line := pass.Fset.Position(c.Pos()).Line
				if line != pos.Line && line != pos.Line-1 {
					continue
				}
				text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
				directive, _, _ := strings.Cut(text, " ")
				if directive == "nolint" {
					return true
				}
				if linters, ok := strings.CutPrefix(directive, "nolint:"); ok {
					for _, name := range strings.Split(linters, ",") {
						if name == Analyzer.Name {
							return true
						}
					}
				}
			}
		}
		return false
	}

	return false
}
