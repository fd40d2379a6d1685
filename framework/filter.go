package framework

import (
	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ResultFilter evaluates a boolean expression against a ParseResult, e.g.
//
//	invoked == "new" && commands.new.force == true
type ResultFilter struct {
	expr    string
	program *vm.Program
}

// NewResultFilter compiles src. An empty expression matches everything.
func NewResultFilter(src string) (*ResultFilter, error) {
	f := &ResultFilter{expr: src}
	if src == "" {
		return f, nil
	}
	program, err := expr.Compile(src)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile filter %q", src)
	}
	f.program = program
	return f, nil
}

// String returns the source expression.
func (f *ResultFilter) String() string {
	return f.expr
}

// Match runs the expression with the result's Env.
func (f *ResultFilter) Match(rs *ParseResult) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}
	output, err := expr.Run(f.program, rs.Env())
	if err != nil {
		return false, err
	}

	match, ok := output.(bool)
	if !ok {
		return false, errors.Newf("filter expression result not bool, actual result: %v", output)
	}
	return match, nil
}
