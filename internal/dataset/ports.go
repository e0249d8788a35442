// Package dataset defines the ports for uploaded-dataset storage backends.
package dataset

import (
	"context"
	"errors"
	"time"

	"mailmeter/internal/core"
)

// ErrNotFound is returned when a dataset id is unknown to the backend.
var ErrNotFound = errors.New("dataset not found")

// Meta describes a stored dataset.
type Meta struct {
	ID        string
	Name      string
	Records   int
	CreatedAt time.Time
}

type (
	// Writer stores a decoded upload and returns its id.
	Writer interface {
		Save(ctx context.Context, name string, records []core.MailRecord) (id string, err error)
	}

	// Reader loads the records of a stored dataset.
	Reader interface {
		Load(ctx context.Context, id string) ([]core.MailRecord, error)
	}

	// Lister enumerates stored datasets, newest first.
	Lister interface {
		List(ctx context.Context) ([]Meta, error)
	}
)
