package main

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// dataLock keeps a second run from editing the same data folder while a
// script performs in-place edits. The lock file sits next to the folder so
// For Each listings never see it.
type dataLock struct {
	fileLock *flock.Flock
}

func lockDataRoot(dataRoot string) (*dataLock, error) {
	l := &dataLock{fileLock: flock.New(filepath.Clean(dataRoot) + ".lock")}
	locked, err := l.fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock data folder: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("data folder %s is in use by another obmm run", dataRoot)
	}
	return l, nil
}

func (l *dataLock) release() {
	_ = l.fileLock.Unlock()
}
