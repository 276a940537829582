package model

import "errors"

// Sentinel errors raised by trace and trace-set construction. Callers
// discriminate with errors.Is; messages carry the offending input.
var (
	ErrInvalidInterpretation = errors.New("unsupported interpretation")
	ErrUnsupportedUnit       = errors.New("unsupported unit")
	ErrInvalidConstruction   = errors.New("invalid trace construction arguments")
	ErrMalformedSeries       = errors.New("malformed trace series")
	ErrLabelCountMismatch    = errors.New("label count mismatch")
	ErrDuplicateLabel        = errors.New("duplicate label")
)
