package dto

import "sportsassist/shared/failure"

var (
	errInvalidDate = failure.BadRequestFromString("date_of_birth must be formatted as YYYY-MM-DD")
	errFutureDate  = failure.BadRequestFromString("date_of_birth cannot be in the future")
)
