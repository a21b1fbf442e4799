package repository

import (
	"errors"
	"fmt"
)

// ErrUnavailable wraps every storage failure. Handlers map it to a single
// "service temporarily unavailable" response.
var ErrUnavailable = errors.New("control database unavailable")

func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
