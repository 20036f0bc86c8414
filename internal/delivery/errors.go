package delivery

import "fmt"

// DeliveryError wraps a transport failure with retry guidance for the
// caller's error surface. A retryable error means the same send can be
// attempted again unchanged; validation and composition failures cannot.
type DeliveryError struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *DeliveryError) Error() string {
	if e.Retryable {
		return fmt.Sprintf("delivery %s failed (retryable): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("delivery %s failed: %v", e.Op, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
