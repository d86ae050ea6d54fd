package ingest

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome classifies how a single device was handled.
type Outcome int

const (
	// OutcomeInserted means a new equipment row was written.
	OutcomeInserted Outcome = iota
	// OutcomeExisting means the derived id was already stored and nothing changed.
	OutcomeExisting
	// OutcomeFailed means a store call for the record failed.
	OutcomeFailed
	// OutcomeSkipped means the run was cancelled before the record was processed.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeExisting:
		return "existing"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome of one device.
type Result struct {
	Seq         uint32
	EquipmentID uuid.UUID
	Outcome     Outcome
	Affected    int64
	Err         error
}

// Failure records a device that could not be imported.
type Failure struct {
	Seq uint32
	Err error
}

// Report aggregates the results of a run. It is safe for concurrent use while the
// run is in progress; read the fields only after Run has returned.
type Report struct {
	mu sync.Mutex

	Total          int
	Inserted       int
	Existing       int
	Failed         int
	Skipped        int
	ClientsCreated int
	Failures       []Failure

	EquipmentBefore int64
	EquipmentAfter  int64
	Duration        time.Duration
}

// NewReport creates an empty report for a batch of total devices.
func NewReport(total int) *Report {
	return &Report{Total: total}
}

// Add records the result of one device.
func (r *Report) Add(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch res.Outcome {
	case OutcomeInserted:
		r.Inserted++
	case OutcomeExisting:
		r.Existing++
	case OutcomeFailed:
		r.Failed++
		r.Failures = append(r.Failures, Failure{Seq: res.Seq, Err: res.Err})
	case OutcomeSkipped:
		r.Skipped++
	}
}

// AddSkipped records n devices that were never dispatched.
func (r *Report) AddSkipped(n int) {
	r.mu.Lock()
	r.Skipped += n
	r.mu.Unlock()
}

// AddClientCreated records a client inserted during the run.
func (r *Report) AddClientCreated() {
	r.mu.Lock()
	r.ClientsCreated++
	r.mu.Unlock()
}

// Processed returns how many devices reached a final outcome other than skipped.
func (r *Report) Processed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Inserted + r.Existing + r.Failed
}

// Err returns a non-nil error when at least one device failed or was skipped.
func (r *Report) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Failed > 0 {
		return fmt.Errorf("%d of %d records failed (first: seq %d: %w)", r.Failed, r.Total, r.Failures[0].Seq, r.Failures[0].Err)
	}
	if r.Skipped > 0 {
		return fmt.Errorf("%d of %d records skipped", r.Skipped, r.Total)
	}
	return nil
}

// Fields renders the report as structured log fields.
func (r *Report) Fields() []zap.Field {
	r.mu.Lock()
	defer r.mu.Unlock()

	return []zap.Field{
		zap.Int("total", r.Total),
		zap.Int("inserted", r.Inserted),
		zap.Int("existing", r.Existing),
		zap.Int("failed", r.Failed),
		zap.Int("skipped", r.Skipped),
		zap.Int("clients_created", r.ClientsCreated),
		zap.Int64("equipment_before", r.EquipmentBefore),
		zap.Int64("equipment_after", r.EquipmentAfter),
		zap.Duration("duration", r.Duration),
	}
}
