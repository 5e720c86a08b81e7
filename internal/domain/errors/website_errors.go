package errors

import "errors"

var (
	// ErrWebsiteNotFound indicates the requested website row does not exist
	// or is not visible to the caller.
	ErrWebsiteNotFound = errors.New("website not found")

	// ErrSlugTaken indicates the website name resolves to a slug that is
	// already in use and could not be disambiguated.
	ErrSlugTaken = errors.New("website name already taken")

	// ErrInvalidPracticeInfo indicates required practice fields are missing
	// before website creation. Handled locally, no network call is made.
	ErrInvalidPracticeInfo = errors.New("practice information is incomplete")
)
