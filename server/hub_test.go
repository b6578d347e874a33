package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/piston1d/model_problems/Piston1D"
)

func TestBroadcastWithoutClients(t *testing.T) {
	var (
		h = NewHub("127.0.0.1:0")
		q = Piston1D.NewFlowField(8)
	)
	q.Time = 1.5
	snap := NewSnapshot([]float64{0, 1, 2, 3, 4, 5, 6, 7}, q)
	assert.Equal(t, 0, h.ClientCount())
	// Broadcasting into an empty hub is a no-op, not an error
	h.Broadcast(snap)
	assert.Equal(t, 1.5, snap.Time)
	assert.Len(t, snap.Rho, 8)
}
