package fuel

import "errors"

var (
	// ErrScopeViolation blocks a read or write outside the caller's
	// authorized scope. It gates mutations, it is not advisory filtering.
	ErrScopeViolation = errors.New("operation outside authorized scope")

	// ErrAlertNotFound is returned by resolve/reopen for an unknown alert id.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrResolveFailed and ErrReopenFailed wrap store failures on lifecycle
	// transitions. Callers holding optimistic local state must roll it back.
	ErrResolveFailed = errors.New("alert resolve failed")
	ErrReopenFailed  = errors.New("alert reopen failed")

	// ErrSyncStale means the change feed dropped events and the local view
	// must be rebuilt with a full resync.
	ErrSyncStale = errors.New("live view stale, full resync required")
)
