package main

import (
	"strings"
)

//
// Expression evaluation.  An expression is a blank separated list of
// operands and operators, e.g. "A + 3 * X".  There are no parentheses
// and no unary operators; a negative literal is just "-5".
// Evaluation takes two passes over the token list: first fold every
// '*' and '/' in place, then fold what remains ('+' and '-') left to
// right
//

func tokenizeExpr(expr string) ([]token, error) {

	return classify(strings.Fields(expr))
}

func evaluateExpr(expr string, vars *symtab) (int, error) {

	toks, err := tokenizeExpr(expr)
	if err != nil {
		return 0, err
	}

	return evaluateTokens(expr, toks, vars)
}

//
// Operators must strictly alternate with operands, starting and
// ending with an operand.  Anything else (including an empty
// expression) is rejected up front, so the folding passes below can
// index freely
//

func checkExprShape(expr string, toks []token) error {

	if len(toks)%2 == 0 {
		return newError(EILLEGALEXPRESSION, trim(expr))
	}

	for i, tok := range toks {
		isOp := tok.kind == tokOperator
		if isOp != (i%2 == 1) {
			return newError(EILLEGALEXPRESSION, trim(expr))
		}
	}

	return nil
}

func evaluateTokens(expr string, toks []token, vars *symtab) (int, error) {

	if err := checkExprShape(expr, toks); err != nil {
		return 0, err
	}

	terms := make([]int, 0, len(toks)/2+1)
	names := make([]string, 0, len(toks)/2+1)
	ops := make([]byte, 0, len(toks)/2)

	for _, tok := range toks {
		switch tok.kind {
		case tokOperator:
			ops = append(ops, tok.op)

		case tokVariable:
			val, err := vars.get(tok.text)
			if err != nil {
				return 0, err
			}
			terms = append(terms, val)
			names = append(names, tok.text)

		case tokNumber:
			terms = append(terms, tok.value)
			names = append(names, tok.text)
		}
	}

	//
	// Multiplicative pass.  Collapse terms[i] op terms[i+1] into
	// terms[i] and drop the consumed operator; don't advance i, since
	// the next operator has slid into this slot
	//

	for i := 0; i < len(ops); {
		if ops[i] != '*' && ops[i] != '/' {
			i++
			continue
		}

		var res int

		if ops[i] == '*' {
			res = terms[i] * terms[i+1]
		} else {
			if terms[i+1] == 0 {
				return 0, newError(EDIVISIONBYZERO, names[i+1])
			}
			res = terms[i] / terms[i+1]
		}

		terms[i] = res
		names[i] = ""
		terms = append(terms[:i+1], terms[i+2:]...)
		names = append(names[:i+1], names[i+2:]...)
		ops = append(ops[:i], ops[i+1:]...)
	}

	val := terms[0]

	for i, op := range ops {
		switch op {
		case '+':
			val += terms[i+1]
		case '-':
			val -= terms[i+1]
		default:
			basicAssert(false, "operator "+string(op)+" survived the multiplicative pass")
		}
	}

	return val, nil
}
