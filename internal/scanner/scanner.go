package scanner

import (
	"context"
	"fmt"
	"time"

	"MediaScanner/internal/domain"
)

// Request carries all parameters required to scan one source.
type Request struct {
	Source domain.Source
	Cutoff time.Time
	Limit  int
}

// Scanner captures one fetch+extract strategy, keyed by source format.
type Scanner interface {
	Format() domain.SourceFormat
	Scan(ctx context.Context, req Request) ([]domain.Article, error)
}

// Registry keeps a mapping from source formats to their strategies.
type Registry struct {
	scanners map[domain.SourceFormat]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[domain.SourceFormat]Scanner{}}
}

// Register adds or replaces a strategy for its format.
func (r *Registry) Register(s Scanner) {
	if r.scanners == nil {
		r.scanners = map[domain.SourceFormat]Scanner{}
	}
	r.scanners[s.Format()] = s
}

// Resolve returns the strategy for a format. Unknown formats yield an
// ErrUnsupportedFormat so the pipeline can skip the source.
func (r *Registry) Resolve(format domain.SourceFormat) (Scanner, error) {
	if s, ok := r.scanners[format]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("format %q: %w", format, domain.ErrUnsupportedFormat)
}
