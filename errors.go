package main

import (
	"fmt"
)

//
// Manifest constants for the interpreter error messages.  As in
// BASIC-PLUS, the message text is the identity of the error; the
// errorMap below gives each one a numeric code for reporting
//

type errorKind string

const (
	EUNDEFINEDVARIABLE errorKind = "Undefined variable"
	EILLEGALNUMBER     errorKind = "Illegal number"
	EILLEGALEXPRESSION errorKind = "Illegal expression"
	EDIVISIONBYZERO    errorKind = "Division by 0"
	EUNKNOWNLABEL      errorKind = "Illegal line number(s)"
	EOUTOFDATA         errorKind = "Out of data"
	EFILENOTFOUND      errorKind = "Can't find file or account"
	EDUPLICATELABEL    errorKind = "Duplicate line number"
	EUNKNOWNSTATEMENT  errorKind = "Illegal verb"
	EINTERRUPTED       errorKind = "Interrupted"
	ESTEPLIMIT         errorKind = "Statement limit exceeded"
)

var errorMap = map[errorKind]int16{
	EFILENOTFOUND:      5,
	EINTERRUPTED:       28,
	EILLEGALNUMBER:     52,
	EOUTOFDATA:         57,
	EDIVISIONBYZERO:    61,
	EUNDEFINEDVARIABLE: 62,
	EILLEGALEXPRESSION: 63,
	EUNKNOWNLABEL:      64,
	EDUPLICATELABEL:    65,
	EUNKNOWNSTATEMENT:  66,
	ESTEPLIMIT:         67,
}

//
// Sentinels for errors.Is.  A basicError matches a sentinel of the
// same kind, whatever token it carries
//

var (
	errUndefinedVariable   = &basicError{kind: EUNDEFINEDVARIABLE}
	errMalformedNumber     = &basicError{kind: EILLEGALNUMBER}
	errMalformedExpression = &basicError{kind: EILLEGALEXPRESSION}
	errDivisionByZero      = &basicError{kind: EDIVISIONBYZERO}
	errUnknownLabel        = &basicError{kind: EUNKNOWNLABEL}
	errInputExhausted      = &basicError{kind: EOUTOFDATA}
	errSourceUnreadable    = &basicError{kind: EFILENOTFOUND}
	errDuplicateLabel      = &basicError{kind: EDUPLICATELABEL}
	errUnknownStatement    = &basicError{kind: EUNKNOWNSTATEMENT}
	errInterrupted         = &basicError{kind: EINTERRUPTED}
	errStepLimit           = &basicError{kind: ESTEPLIMIT}
)

type basicError struct {
	kind  errorKind
	token string
	cause error
}

func newError(kind errorKind, token string) *basicError {

	return &basicError{kind: kind, token: token}
}

func wrapError(kind errorKind, token string, cause error) *basicError {

	return &basicError{kind: kind, token: token, cause: cause}
}

func (e *basicError) Error() string {

	msg := string(e.kind)

	if e.token != "" {
		msg += fmt.Sprintf(" %q", e.token)
	}

	if e.cause != nil {
		msg += " (" + e.cause.Error() + ")"
	}

	return msg
}

func (e *basicError) Unwrap() error {

	return e.cause
}

func (e *basicError) Is(target error) bool {

	t, ok := target.(*basicError)

	return ok && t.kind == e.kind
}

//
// We return -1 on a failed lookup, same as the fault code of an
// uncatchable error
//

func getErrorNo(kind errorKind) int16 {

	if err, ok := errorMap[kind]; ok {
		return err
	}

	return -1
}

//
// Errors raised by the interpreter itself, as opposed to errors in
// the user program.  These indicate a bug, so we panic
//

func basicAssert(chk bool, msg string) {

	if !chk {
		panic("internal error: " + msg)
	}
}
