package library

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrScanBusy is returned by Scan when another process holds the scan lock.
var ErrScanBusy = errors.New("another library scan is running")

// WithScanLock makes Scan take an exclusive file lock at path, so that a
// `crates scan` run and a rescan from the UI never write the same tracks.
func (l *Library) WithScanLock(path string) *Library {
	l.lock = flock.New(path)
	return l
}

func (l *Library) acquireScanLock() (func(), error) {
	if l.lock == nil {
		return func() {}, nil
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !ok {
		return nil, ErrScanBusy
	}
	return func() { _ = l.lock.Unlock() }, nil
}
