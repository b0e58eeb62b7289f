package store

import (
	"testing"

	"fiscal-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStoreAppendESnapshot(t *testing.T) {
	s := NewStore()

	s.AppendOrderItems([]domain.OrderItem{{ID: "a"}, {ID: "b"}})
	s.AppendDarfItems([]domain.DarfItem{{Codigo: "0220"}})

	orders, darfs := s.Snapshot()
	assert.Len(t, orders, 2)
	assert.Len(t, darfs, 1)
}

func TestStoreSnapshotDevolveCopia(t *testing.T) {
	s := NewStore()
	s.AppendOrderItems([]domain.OrderItem{{ID: "a"}})

	orders, _ := s.Snapshot()
	orders[0].ID = "mutado"

	again, _ := s.Snapshot()
	assert.Equal(t, "a", again[0].ID)
}

func TestStoreResetLimpaAsDuasListas(t *testing.T) {
	s := NewStore()
	s.AppendOrderItems([]domain.OrderItem{{ID: "a"}})
	s.AppendDarfItems([]domain.DarfItem{{Codigo: "0220"}})

	s.Reset()

	orders, darfs := s.Snapshot()
	assert.Empty(t, orders)
	assert.Empty(t, darfs)
}
