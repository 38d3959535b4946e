// Package expr compiles formula text into an optimized expression tree.
//
// # Grammar
//
// Precedence from lowest to highest:
//
//	|                  logical or
//	&                  logical and
//	== !=              equality
//	< <= > >=          relational
//	+ -                additive
//	* /                multiplicative
//	^                  exponent (right associative)
//	-x                 unary negate
//	literal, name, Func(args...), (expr)
//
// Function names are case-insensitive; variable names are matched exactly
// against data sources at evaluation time. E() and PI() are nullary
// functions; a bare E or PI is a variable.
//
// # Optimization
//
// Compile runs a bottom-up rewrite over the parsed tree:
//
//   - subtrees made only of literals fold into one literal
//   - x / literal becomes x * (1/literal)
//   - a * b + c and c + a * b fuse into FusedMultiplyAdd
//
// The tree is closed: every Node is one of the types in this package.
package expr
