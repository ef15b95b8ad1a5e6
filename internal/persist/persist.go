// Package persist loads and saves store snapshots outside the process.
package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/tina-pina/the-scoop/internal/store"
)

var ErrUnknownDriver = errors.New("persist: unknown driver")

// Backend is the persistence hook. Load returns nil without error when
// nothing has been saved yet.
type Backend interface {
	Load(ctx context.Context) (*store.Snapshot, error)
	Save(ctx context.Context, snap store.Snapshot) error
	Close() error
}

// Open returns the backend for driver. The "none" driver and the empty
// string yield a nil Backend.
func Open(driver, path string) (Backend, error) {
	switch driver {
	case "", "none":
		return nil, nil
	case "yaml":
		return NewYAMLFile(path), nil
	case "sqlite":
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}

		return db, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
