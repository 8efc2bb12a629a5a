package checkout

import "fmt"

// CaptureUnrecordedError means money was captured at the processor but
// the order could not be written afterwards. The capture id is the
// reconciliation handle: nothing is refunded automatically.
type CaptureUnrecordedError struct {
	CaptureID string
	Err       error
}

func (e *CaptureUnrecordedError) Error() string {
	return fmt.Sprintf("payment %s captured but order was not recorded: %v", e.CaptureID, e.Err)
}

func (e *CaptureUnrecordedError) Unwrap() error {
	return e.Err
}
