package suggestions

import "errors"

var (
	// ErrNoJSONArray means the model's text contained no array-shaped substring.
	ErrNoJSONArray = errors.New("no JSON array in model output")
	// ErrInvalidJSON means an array-shaped substring was found but did not parse.
	ErrInvalidJSON = errors.New("model output JSON invalid")
)

// IsUnusableOutput reports whether err means the generation call succeeded
// but its content could not be used.
func IsUnusableOutput(err error) bool {
	return errors.Is(err, ErrNoJSONArray) || errors.Is(err, ErrInvalidJSON)
}
