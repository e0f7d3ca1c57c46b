package domain

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when a protected resource is requested without a user.
var ErrAuthRequired = errors.New("authentication required")

type Resource string

const ResourceArticles Resource = "articles"
const ResourceTags Resource = "tags"
const ResourceSources Resource = "sources"

// FetchFailure reports that one of the list endpoints failed. It is distinct from
// an empty result, which is returned as an empty slice and a nil error.
type FetchFailure struct {
	Resource Resource
	Err      error
}

func (f *FetchFailure) Error() string {
	return fmt.Sprintf("fetching %s: %v", f.Resource, f.Err)
}

func (f *FetchFailure) Unwrap() error {
	return f.Err
}

// IsFetchFailure reports whether err is a FetchFailure for the given resource.
func IsFetchFailure(err error, resource Resource) bool {
	var f *FetchFailure
	return errors.As(err, &f) && f.Resource == resource
}
