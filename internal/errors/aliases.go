package errors

import "github.com/cockroachdb/errors"

// Re-exports of cockroachdb/errors so callers need a single errors import.
var (
	New           = errors.New
	Newf          = errors.Newf
	Wrap          = errors.Wrap
	Wrapf         = errors.Wrapf
	Is            = errors.Is
	As            = errors.As
	Unwrap        = errors.Unwrap
	Join          = errors.Join
	CombineErrors = errors.CombineErrors
)
