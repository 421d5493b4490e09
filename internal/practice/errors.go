package practice

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCategory is returned when an operation needs a selected category.
	ErrNoCategory = errors.New("no category selected")

	// ErrCategoryLocked matches a *LockedError with errors.Is.
	ErrCategoryLocked = errors.New("category locked")
)

// LockedError reports a category switch refused because another category
// session is in progress.
type LockedError struct {
	Locked    string
	Requested string
	Progress  float64
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("finish %q (%.0f%% done) before switching to %q", e.Locked, e.Progress, e.Requested)
}

// Is reports whether target is ErrCategoryLocked.
func (e *LockedError) Is(target error) bool {
	return target == ErrCategoryLocked
}
