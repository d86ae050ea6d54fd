package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport_Add(t *testing.T) {
	r := NewReport(5)
	r.Add(Result{Seq: 1, Outcome: OutcomeInserted, Affected: 1})
	r.Add(Result{Seq: 2, Outcome: OutcomeExisting})
	r.Add(Result{Seq: 3, Outcome: OutcomeFailed, Err: errors.New("boom")})
	r.AddSkipped(2)
	r.AddClientCreated()

	assert.Equal(t, 1, r.Inserted)
	assert.Equal(t, 1, r.Existing)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 2, r.Skipped)
	assert.Equal(t, 1, r.ClientsCreated)
	assert.Equal(t, 3, r.Processed())
	assert.Equal(t, []Failure{{Seq: 3, Err: errors.New("boom")}}, r.Failures)
	assert.ErrorContains(t, r.Err(), "1 of 5 records failed (first: seq 3: boom)")
	assert.Len(t, r.Fields(), 9)
}

func TestReport_Err(t *testing.T) {
	r := NewReport(2)
	r.Add(Result{Outcome: OutcomeInserted})
	r.Add(Result{Outcome: OutcomeExisting})
	assert.NoError(t, r.Err())

	r.AddSkipped(1)
	assert.ErrorContains(t, r.Err(), "1 of 2 records skipped")
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "inserted", OutcomeInserted.String())
	assert.Equal(t, "existing", OutcomeExisting.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}
