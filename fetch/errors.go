package fetch

import (
	"errors"
	"fmt"
)

// ErrMissingRefs is returned when diff synthesis is invoked on a pull
// request whose source or target ref is entirely absent.
var ErrMissingRefs = errors.New("pull request refs not available")

// NotFoundError reports that a "get one" accessor found no matching
// remote object. Key carries the identifying path of the missing object.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
