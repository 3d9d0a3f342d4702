// Package battlereport stores the summaries of simulated battles
package battlereport

//go:generate mockgen -destination=mock/mock_repository.go -package=battlereportmock github.com/KirkDiggler/rpg-balance/internal/repositories/battle_report Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

const (
	// Error messages
	errReportNil      = "report cannot be nil"
	errReportIDEmpty  = "report ID cannot be empty"
	errSessionIDEmpty = "session ID cannot be empty"
)

// Repository defines the storage interface for battle reports
type Repository interface {
	// Create stores a new report
	// Returns errors.InvalidArgument for a nil report or missing IDs
	// Returns errors.AlreadyExists if a report with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a report by ID
	// Returns errors.NotFound if the report does not exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListBySession returns a session's reports in the order they were created.
	// An unknown session yields an empty list.
	ListBySession(ctx context.Context, input ListBySessionInput) (*ListBySessionOutput, error)
}

// CreateInput defines the input for creating a report
type CreateInput struct {
	Report *entities.BattleReport
}

// CreateOutput defines the output for creating a report
type CreateOutput struct{}

// GetInput defines the input for getting a report
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a report
type GetOutput struct {
	Report *entities.BattleReport
}

// ListBySessionInput defines the input for listing a session's reports
type ListBySessionInput struct {
	SessionID string
	// Limit keeps only the most recent reports; zero returns all
	Limit int
}

// ListBySessionOutput defines the output for listing a session's reports
type ListBySessionOutput struct {
	Reports []*entities.BattleReport
}

func validateReport(report *entities.BattleReport) error {
	if report == nil {
		return errors.InvalidArgument(errReportNil)
	}
	if report.ID == "" {
		return errors.InvalidArgument(errReportIDEmpty)
	}
	if report.SessionID == "" {
		return errors.InvalidArgument(errSessionIDEmpty)
	}
	return nil
}

// tail returns the last limit elements of s, or all of s when limit is not positive
func tail[T any](s []T, limit int) []T {
	if limit <= 0 || limit >= len(s) {
		return s
	}
	return s[len(s)-limit:]
}
