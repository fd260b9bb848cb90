package dto

import "errors"

var (
	errRequired       = errors.New("is required")
	errExpectedText   = errors.New("must be text")
	errExpectedNumber = errors.New("must be a number")
	errExpectedDate   = errors.New("must be a date formatted as YYYY-MM-DD")
	errExpectedBool   = errors.New("must be true or false")
	errExpectedEmail  = errors.New("must be a valid email address")
	errExpectedPhone  = errors.New("must be a valid phone number")
	errNotAnOption    = errors.New("must be one of the listed options")
)
