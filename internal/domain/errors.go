package domain

import "errors"

var (
	// ErrNoData signals that the dataset holds no observations.
	ErrNoData = errors.New("no data loaded")
	// ErrCountryNotFound signals an unknown country name.
	ErrCountryNotFound = errors.New("country not found")
	// ErrYearNotFound signals a year absent from the dataset.
	ErrYearNotFound = errors.New("year not found")
	// ErrInvalidQuery signals an empty or malformed query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidFeedback signals a feedback submission failing validation.
	ErrInvalidFeedback = errors.New("invalid feedback")
	// ErrTooManyCountries signals a comparison request over the limit.
	ErrTooManyCountries = errors.New("too many countries requested")
	// ErrNoRegion signals a country outside the known regional groupings.
	ErrNoRegion = errors.New("no region for country")
)
