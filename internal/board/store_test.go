package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/deskboard/internal/models"
)

func moveT2ToB() models.ReorderCommand {
	return models.ReorderCommand{
		TicketID:        "t2",
		NewStatus:       colB,
		NewOrder:        0,
		AffectedTickets: []models.OrderChange{{ID: "t3", Order: 1}, {ID: "t4", Order: 1}},
	}
}

func TestStore_ApplyOptimisticRequiresBoard(t *testing.T) {
	s := NewStore()
	_, err := s.ApplyOptimistic(moveT2ToB())
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStore_ApplyThenRollbackRestoresSamePointer(t *testing.T) {
	s := NewStore()
	original := sampleBoard()
	snapshot := original.Clone()
	s.Replace(original)

	p, err := s.ApplyOptimistic(moveT2ToB())
	require.NoError(t, err)
	assert.Equal(t, Proposed, p.State)
	assert.Same(t, original, p.Previous)
	assert.Same(t, p.Optimistic, s.Snapshot())
	assert.Equal(t, []string{"t2:0", "t4:1"}, layout(s.Snapshot(), colB))

	s.Rollback()
	assert.Equal(t, Rejected, p.State)
	assert.Nil(t, s.Pending())
	assert.Same(t, original, s.Snapshot())
	assert.Equal(t, snapshot, s.Snapshot(), "previous snapshot must be untouched")
}

func TestStore_OnlyOneProposal(t *testing.T) {
	s := NewStore()
	s.Replace(sampleBoard())

	_, err := s.ApplyOptimistic(moveT2ToB())
	require.NoError(t, err)

	_, err = s.ApplyOptimistic(moveT2ToB())
	assert.ErrorIs(t, err, ErrReorderInFlight)
}

func TestStore_ConfirmWithFetchedBoard(t *testing.T) {
	s := NewStore()
	s.Replace(sampleBoard())
	p, err := s.ApplyOptimistic(moveT2ToB())
	require.NoError(t, err)

	fetched := makeBoard(map[models.Status][]string{colA: {"t1", "t3"}, colB: {"t2", "t4", "t9"}})
	s.Confirm(fetched, nil)

	assert.Equal(t, Confirmed, p.State)
	assert.Nil(t, s.Pending())
	assert.Same(t, fetched, s.Snapshot())
}

func TestStore_ConfirmWithoutFetchKeepsOptimistic(t *testing.T) {
	s := NewStore()
	s.Replace(sampleBoard())
	p, err := s.ApplyOptimistic(moveT2ToB())
	require.NoError(t, err)

	s.Confirm(nil, &models.ReorderResult{Versions: map[models.Status]int64{colA: 2, colB: 5}})

	assert.Equal(t, Confirmed, p.State)
	assert.Equal(t, layout(p.Optimistic, colB), layout(s.Snapshot(), colB))
	assert.Equal(t, int64(5), s.Snapshot().Versions[colB])
	assert.Equal(t, int64(0), p.Optimistic.Versions[colB], "optimistic snapshot stays immutable")
}

func TestStore_SettleWithoutPendingIsNoop(t *testing.T) {
	s := NewStore()
	b := sampleBoard()
	s.Replace(b)

	s.Rollback()
	s.Confirm(nil, nil)
	assert.Same(t, b, s.Snapshot())
}

func TestProposalState_String(t *testing.T) {
	assert.Equal(t, "proposed", Proposed.String())
	assert.Equal(t, "confirmed", Confirmed.String())
	assert.Equal(t, "rejected", Rejected.String())
}
