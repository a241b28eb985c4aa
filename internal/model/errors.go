package model

import "errors"

var (
	// ErrInvalidWaferSpec is returned by NewWafer for out-of-range wafer
	// parameters.
	ErrInvalidWaferSpec = errors.New("invalid wafer spec")

	// ErrInvalidDieSpec is returned by NewDieSize for non-positive die
	// dimensions.
	ErrInvalidDieSpec = errors.New("invalid die spec")
)
