// Package expression compiles and evaluates condition expressions over named variables.
//
// The Evaluator interface separates compilation from evaluation so a condition can be
// compiled once and evaluated against many variable bindings. The default
// implementation is backed by github.com/expr-lang/expr.
package expression

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Bindings maps variable names to values injected into an expression.
type Bindings map[string]any

// Program is a compiled expression.
type Program interface {
	// Source returns the text the program was compiled from.
	Source() string
}

// Evaluator compiles expressions and evaluates them against bindings.
type Evaluator interface {
	// Compile compiles text. The bindings describe the variables and their types;
	// their values are not used.
	Compile(text string, env Bindings) (Program, error)
	// Evaluate runs a compiled program against env.
	Evaluate(p Program, env Bindings) (any, error)
}

// Expr is an Evaluator backed by expr-lang.
type Expr struct{}

// NewExpr returns an expr-lang backed Evaluator.
func NewExpr() *Expr {
	return &Expr{}
}

type exprProgram struct {
	source  string
	program *vm.Program
}

func (p *exprProgram) Source() string { return p.source }

// Compile compiles text against the variable types in env.
func (e *Expr) Compile(text string, env Bindings) (Program, error) {
	program, err := expr.Compile(text, expr.Env(map[string]any(env)))
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", text, err)
	}
	return &exprProgram{source: text, program: program}, nil
}

// Evaluate runs p against env.
func (e *Expr) Evaluate(p Program, env Bindings) (any, error) {
	ep, ok := p.(*exprProgram)
	if !ok {
		return nil, fmt.Errorf("program %q was not compiled by this evaluator", p.Source())
	}
	output, err := expr.Run(ep.program, map[string]any(env))
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", ep.source, err)
	}
	return output, nil
}

// EvaluateBool runs p against env and requires a boolean result.
func EvaluateBool(e Evaluator, p Program, env Bindings) (bool, error) {
	output, err := e.Evaluate(p, env)
	if err != nil {
		return false, err
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q did not return bool (got %T: %v)", p.Source(), output, output)
	}
	return result, nil
}
