package mines

import "errors"

var (
	ErrInvalidDimensions = errors.New("rows and cols must be at least 1")
	ErrInvalidMineCount  = errors.New("mine count must be in [0, rows*cols)")
	ErrInvalidCoordinate = errors.New("coordinate out of grid bounds")
)

// AssertionError reports a broken board invariant. It is raised with panic
// inside the package and recovered at the API boundary.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
