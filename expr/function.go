package expr

import (
	"fmt"
	"strings"
)

// Function identifies a built-in function.
type Function uint8

// Built-in functions.
const (
	FuncSumRows Function = iota
	FuncSumColumns
	FuncAvgRows
	FuncAvgColumns
	FuncSum
	FuncAvg
	FuncAbs
	FuncLog
	FuncSqrt
	FuncTranspose
	FuncAsHorizontal
	FuncAsVertical
	FuncMatrix
	FuncIdentityMatrix
	FuncZeroMatrix
	FuncLength
	FuncLengthRows
	FuncLengthColumns
	FuncIf
	FuncIfNaN
	FuncNormalize
	FuncNormalizeRows
	FuncNormalizeColumns
	FuncE
	FuncPI
	numFunctions
)

type funcInfo struct {
	name  string
	arity int
}

var functions = [numFunctions]funcInfo{
	FuncSumRows:          {"SumRows", 1},
	FuncSumColumns:       {"SumColumns", 1},
	FuncAvgRows:          {"AvgRows", 1},
	FuncAvgColumns:       {"AvgColumns", 1},
	FuncSum:              {"Sum", 1},
	FuncAvg:              {"Avg", 1},
	FuncAbs:              {"Abs", 1},
	FuncLog:              {"Log", 1},
	FuncSqrt:             {"Sqrt", 1},
	FuncTranspose:        {"Transpose", 1},
	FuncAsHorizontal:     {"AsHorizontal", 1},
	FuncAsVertical:       {"AsVertical", 1},
	FuncMatrix:           {"Matrix", 1},
	FuncIdentityMatrix:   {"IdentityMatrix", 1},
	FuncZeroMatrix:       {"ZeroMatrix", 1},
	FuncLength:           {"Length", 1},
	FuncLengthRows:       {"LengthRows", 1},
	FuncLengthColumns:    {"LengthColumns", 1},
	FuncIf:               {"If", 3},
	FuncIfNaN:            {"IfNaN", 2},
	FuncNormalize:        {"Normalize", 1},
	FuncNormalizeRows:    {"NormalizeRows", 1},
	FuncNormalizeColumns: {"NormalizeColumns", 1},
	FuncE:                {"E", 0},
	FuncPI:               {"PI", 0},
}

var functionsByName = func() map[string]Function {
	m := make(map[string]Function, numFunctions)
	for f := range numFunctions {
		m[strings.ToLower(functions[f].name)] = f
	}
	return m
}()

// LookupFunction resolves a function name case-insensitively.
func LookupFunction(name string) (Function, bool) {
	f, ok := functionsByName[strings.ToLower(name)]
	return f, ok
}

// Functions returns every built-in function in declaration order.
func Functions() []Function {
	out := make([]Function, numFunctions)
	for f := range numFunctions {
		out[f] = f
	}
	return out
}

// String returns the canonical function name.
func (f Function) String() string {
	if f < numFunctions {
		return functions[f].name
	}
	return fmt.Sprintf("func(%d)", f)
}

// Arity returns the number of arguments the function takes.
func (f Function) Arity() int {
	if f < numFunctions {
		return functions[f].arity
	}
	return -1
}
