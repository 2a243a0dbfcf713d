// Package store persists toys for the dev server.
package store

import (
	"context"
	"errors"

	"github.com/idilsaglam/toyboard/internal/model"
)

var ErrNotFound = errors.New("toy not found")

type Store interface {
	List(ctx context.Context) ([]model.Toy, error)
	Get(ctx context.Context, id model.ID) (model.Toy, error)
	Create(ctx context.Context, nt model.NewToy) (model.Toy, error)
	Update(ctx context.Context, id model.ID, p model.ToyPatch) (model.Toy, error)
	Close() error
}
