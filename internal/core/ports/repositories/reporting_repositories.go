package repositories

import (
	"context"
	"time"

	"github.com/stabulum/stabulum/internal/core/domain"
)

// ReportingRepository supplies posted journal-line history for report
// recomputation. A single call reads one consistent snapshot.
type ReportingRepository interface {
	// FindPostedLines returns lines on posted entries for the organization,
	// filtered by account IDs (nil means all accounts) and by inclusive entry
	// date bounds (nil means unbounded). Results are ordered by entry date,
	// then entry number, then line number.
	FindPostedLines(ctx context.Context, organizationID string, accountIDs []string, from *time.Time, to *time.Time) ([]domain.PostedLine, error)
}
