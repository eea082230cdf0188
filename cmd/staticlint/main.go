// Command staticlint проверяет код сервиса: go vet анализаторы, SA-класс staticcheck,
// выборочные правила stylecheck/simple и правила проекта (NoDirectOsExit, NoErrorLeak).
//
// Запуск: go run ./cmd/staticlint ./...
package main

import (
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/defers"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

// extraChecks правила stylecheck/simple сверх SA-класса.
// nolint:gochecknoglobals
var extraChecks = map[string]bool{
	"ST1005": true, // тексты ошибок с маленькой буквы и без точки в конце
	"ST1012": true, // переменные-ошибки называются ErrXxx
	"S1021":  true, // объявление и присваивание функции одной строкой
}

func vetAnalyzers() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		defers.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		ifaceassert.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		shadow.Analyzer,
		sigchanyzer.Analyzer,
		stdmethods.Analyzer,
		structtag.Analyzer,
		tests.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,
	}
}

func staticcheckAnalyzers() []*analysis.Analyzer {
	var res []*analysis.Analyzer
	for _, a := range slices.Concat(staticcheck.Analyzers, stylecheck.Analyzers, simple.Analyzers) {
		if strings.HasPrefix(a.Analyzer.Name, "SA") || extraChecks[a.Analyzer.Name] {
			res = append(res, a.Analyzer)
		}
	}
	return res
}

// projectAnalyzers собственные проверки сервиса.
func projectAnalyzers() []*analysis.Analyzer {
	return []*analysis.Analyzer{NoDirectOsExit, NoErrorLeak}
}

func main() {
	multichecker.Main(slices.Concat(vetAnalyzers(), staticcheckAnalyzers(), projectAnalyzers())...)
}

