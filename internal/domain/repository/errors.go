package repository

import "github.com/pkg/errors"

// ErrStoreUnavailable marks failures a client may retry: timeouts, dropped
// connections, pool exhaustion. Repositories join it with the driver error.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrInvalidValue marks writes the store refused because a value breaks a
// column constraint: NOT NULL, length, numeric range or a CHECK.
var ErrInvalidValue = errors.New("invalid value")
