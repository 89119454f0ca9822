package tomldoc

import "errors"

// ErrMalformed is matched by every error returned from Parse.
var ErrMalformed = errors.New("tomldoc: malformed document")
