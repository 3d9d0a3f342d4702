package battlereport

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu        sync.RWMutex
	store     map[string][]byte
	bySession map[string][]string
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store:     make(map[string][]byte),
		bySession: make(map[string][]string),
	}
}

// Create stores a report
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateReport(input.Report); err != nil {
		return nil, err
	}

	// Stored encoded so callers cannot mutate what was saved
	data, err := json.Marshal(input.Report)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal report")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Report.ID]; exists {
		return nil, errors.AlreadyExistsf("report %s already exists", input.Report.ID)
	}

	r.store[input.Report.ID] = data
	r.bySession[input.Report.SessionID] = append(r.bySession[input.Report.SessionID], input.Report.ID)

	return &CreateOutput{}, nil
}

// Get retrieves a report by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errReportIDEmpty)
	}

	r.mu.RLock()
	data, exists := r.store[input.ID]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NotFoundf("report with ID %s not found", input.ID)
	}

	report, err := decodeReport(data)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Report: report}, nil
}

// ListBySession returns the reports of one session in creation order
func (r *InMemoryRepository) ListBySession(_ context.Context, input ListBySessionInput) (*ListBySessionOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := tail(r.bySession[input.SessionID], input.Limit)
	output := &ListBySessionOutput{Reports: make([]*entities.BattleReport, 0, len(ids))}
	for _, id := range ids {
		report, err := decodeReport(r.store[id])
		if err != nil {
			return nil, err
		}
		output.Reports = append(output.Reports, report)
	}

	return output, nil
}

func decodeReport(data []byte) (*entities.BattleReport, error) {
	var report entities.BattleReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal report")
	}
	return &report, nil
}
