// Package listing prints entity listings for the collection.
package listing

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pawlakmarek/comic-manager/internal/catalog"
)

// Lister describes the behaviour required to list one kind of entity.
type Lister interface {
	List(ctx context.Context, entity catalog.Entity) error
}

// Service writes listings to an output stream.
type Service struct {
	out    io.Writer
	logger *zap.Logger
}

// NewService constructs a Service writing to out.
func NewService(out io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		out:    out,
		logger: logger,
	}
}

// List prints the listing for entity. No catalogue is stored yet, so only the
// heading line is written.
func (s *Service) List(ctx context.Context, entity catalog.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !entity.Valid() {
		return fmt.Errorf("%w: %s", catalog.ErrUnknownEntity, entity)
	}

	s.logger.Debug("listing entities", zap.Stringer("entity", entity))
	if _, err := fmt.Fprintf(s.out, "Listing %s\n", entity); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}
