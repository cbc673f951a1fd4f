package params

import "errors"

var (
	errMustBeInteger  = errors.New("must be an integer")
	errMustNotBeBlank = errors.New("cannot be blank")
)
