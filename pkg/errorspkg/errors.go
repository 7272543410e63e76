// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates a storage or runtime failure hidden from the account holder.
var ErrInternal = errors.New("internal error, please try again")
