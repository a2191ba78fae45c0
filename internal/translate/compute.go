package translate

import "fmt"

// ArithOp tags an operation performed by the shared compute helper.
type ArithOp uint8

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Mod
	Neg
	Gt
	Ge
	Lt
	Le
	Eq
	Neq
	Not
	And
	Or
)

var arithSymbols = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Mod: "%",
	Neg: "-",
	Gt:  ">",
	Ge:  ">=",
	Lt:  "<",
	Le:  "<=",
	Eq:  "==",
	Neq: "!=",
	Not: "!",
	And: "&&",
	Or:  "||",
}

func (op ArithOp) String() string {
	if int(op) < len(arithSymbols) {
		return arithSymbols[op]
	}
	return fmt.Sprintf("ArithOp(%d)", uint8(op))
}

// RuntimeTools are the programs a generated script runs besides bash itself.
var RuntimeTools = []string{"bc", "sed"}

// trimZeros strips the trailing zeros bc -l leaves on decimals.
const trimZeros = `sed '/\./ s/\.\{0,1\}0\{1,\}$//'`

// Computation combines already translated numeric operands through bc.
// Unary operators take one operand, binary operators two.
func Computation(op ArithOp, operands ...string) string {
	switch len(operands) {
	case 1:
		return fmt.Sprintf(`"$(echo '%s' %s | bc -l | %s)"`, op, operands[0], trimZeros)
	case 2:
		return fmt.Sprintf(`"$(echo %s '%s' %s | bc -l | %s)"`, operands[0], op, operands[1], trimZeros)
	default:
		panic(fmt.Sprintf("translate: compute %s with %d operands", op, len(operands)))
	}
}

// TextEquality compares translated text operands with test(1).
// The result is 1 when equal for Eq and 1 when different for Neq.
func TextEquality(op ArithOp, left, right string) string {
	switch op {
	case Eq:
		return fmt.Sprintf(`"$([ %s != %s ]; echo $?)"`, left, right)
	case Neq:
		return fmt.Sprintf(`"$([ %s == %s ]; echo $?)"`, left, right)
	default:
		panic(fmt.Sprintf("translate: text comparison with %s", op))
	}
}

// Concat joins translated text operands; adjacent shell words concatenate.
func Concat(left, right string) string {
	return left + right
}
