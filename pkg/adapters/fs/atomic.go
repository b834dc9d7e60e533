package fs

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// writeFileAtomic writes data to filename through a temp file in the same
// directory that is synced and renamed over the target. An existing file
// keeps its mode; a new one gets perm.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	_, statErr := os.Stat(filename)
	isNew := errors.Is(statErr, os.ErrNotExist)

	if err := atomic.WriteFile(filename, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s atomically: %w", filename, err)
	}

	if isNew {
		if err := os.Chmod(filename, perm); err != nil {
			return fmt.Errorf("failed to chmod %s: %w", filename, err)
		}
	}

	return nil
}
