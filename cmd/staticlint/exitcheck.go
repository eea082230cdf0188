package main

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// NoDirectOsExit запрещает os.Exit в функции main пакета main: сервер должен
// завершаться через app.Run, чтобы успеть сохранить снимок хранилища.
// nolint:gochecknoglobals
var NoDirectOsExit = &analysis.Analyzer{
	Name:     "nodirectosexit",
	Doc:      "check for direct os.Exit calls in main function",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runExitCheck,
}

func runExitCheck(pass *analysis.Pass) (any, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil //nolint:nilnil
	}
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector) //nolint:errcheck,forcetypeassert

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fn := n.(*ast.FuncDecl) //nolint:errcheck,forcetypeassert
		if fn.Name.Name != "main" || fn.Recv != nil || fn.Body == nil {
			return
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if isPkgFunc(pass, call, "os", "Exit") {
				pass.Reportf(call.Pos(), "direct call os.Exit is not allowed in main function")
			}
			return true
		})
	})
	return nil, nil //nolint:nilnil
}

// isPkgFunc сообщает, вызывает ли call функцию name из пакета с путем pkgPath.
func isPkgFunc(pass *analysis.Pass, call *ast.CallExpr, pkgPath, name string) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}
	obj := pass.TypesInfo.Uses[sel.Sel]
	return obj != nil && obj.Pkg() != nil && obj.Pkg().Path() == pkgPath
}
