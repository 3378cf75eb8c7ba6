package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupportedScheme rejects URLs that are not http or https. Checked
// before any network call.
var ErrUnsupportedScheme = errors.New("please enter an http or https URL")

// FetchError means every configured proxy failed to retrieve the page.
// Retryable: the user resubmits the same URL.
type FetchError struct {
	URL string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not fetch %s: check the address and try again", e.URL)
}

// ExtractionError means the page was fetched but no usable title was found,
// even if other fields were. The user should enter details manually.
type ExtractionError struct {
	URL string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract info from %s: try a different URL or enter details manually", e.URL)
}
