// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across store backends

package storage

import "errors"

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned when using a store after Close.
var ErrClosed = errors.New("store is closed")
