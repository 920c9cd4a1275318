package jobs

import "errors"

// classified tags an error with how the worker must treat it
type classified struct {
	err       error
	permanent bool
}

func (e *classified) Error() string { return e.err.Error() }

func (e *classified) Unwrap() error { return e.err }

// Permanent marks err as a data error: the job is discarded without retry
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &classified{err: err, permanent: true}
}

// Transient marks err as retryable. Untagged errors are treated the same way.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &classified{err: err}
}

// IsPermanent reports whether the outermost classification of err is Permanent
func IsPermanent(err error) bool {
	var c *classified
	return errors.As(err, &c) && c.permanent
}
