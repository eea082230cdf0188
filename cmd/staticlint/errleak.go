package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const ginContextType = "github.com/gin-gonic/gin.Context"

// responseMethods методы *gin.Context, пишущие тело ответа.
// nolint:gochecknoglobals
var responseMethods = map[string]bool{
	"JSON":                true,
	"IndentedJSON":        true,
	"String":              true,
	"AbortWithStatusJSON": true,
}

// NoErrorLeak находит обработчики, отдающие клиенту текст ошибки (err.Error()).
// Наружу уходят только сообщения из controllers.respondError.
// nolint:gochecknoglobals
var NoErrorLeak = &analysis.Analyzer{
	Name:     "noerrorleak",
	Doc:      "check that gin handlers do not write err.Error() into responses",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runErrLeak,
}

func runErrLeak(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector) //nolint:errcheck,forcetypeassert
	errType := types.Universe.Lookup("error").Type().Underlying().(*types.Interface) //nolint:errcheck,forcetypeassert

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr) //nolint:errcheck,forcetypeassert
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || !responseMethods[sel.Sel.Name] || !isGinContext(pass.TypesInfo.TypeOf(sel.X)) {
			return
		}
		for _, arg := range call.Args {
			ast.Inspect(arg, func(n ast.Node) bool {
				inner, ok := n.(*ast.CallExpr)
				if !ok || len(inner.Args) != 0 {
					return true
				}
				innerSel, ok := inner.Fun.(*ast.SelectorExpr)
				if !ok || innerSel.Sel.Name != "Error" {
					return true
				}
				if t := pass.TypesInfo.TypeOf(innerSel.X); t != nil && types.Implements(t, errType) {
					pass.Reportf(inner.Pos(), "error text must not be written into %s response", sel.Sel.Name)
				}
				return true
			})
		}
	})
	return nil, nil //nolint:nilnil
}

func isGinContext(t types.Type) bool {
	if t == nil {
		return false
	}
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}
	return named.Obj().Pkg().Path()+"."+named.Obj().Name() == ginContextType
}
