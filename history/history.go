// Package history persists a log of analysis runs.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/strager/tinyc"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// Run is one recorded analysis.
type Run struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Source         string    `json:"source"`
	Tokens         int       `json:"tokens"`
	SyntaxErrors   int       `json:"syntax_errors"`
	SemanticErrors int       `json:"semantic_errors"`
	Symbols        int       `json:"symbols"`
}

// NewRun describes res, the analysis of source, with a fresh ID.
func NewRun(source string, res *tinyc.Result) *Run {
	s := res.Summary()
	return &Run{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Source:         source,
		Tokens:         s.Tokens,
		SyntaxErrors:   s.SyntaxErrors,
		SemanticErrors: s.SemanticErrors,
		Symbols:        s.Symbols,
	}
}

// Clean reports whether the run produced no diagnostics.
func (r *Run) Clean() bool {
	return r.SyntaxErrors == 0 && r.SemanticErrors == 0
}

// Store defines the interface for run persistence
type Store interface {
	Record(ctx context.Context, run *Run) error
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]*Run, error)
	Get(ctx context.Context, id string) (*Run, error)
	Close() error
}
