// internal/store/store.go
package store

import (
	"sync"

	"fiscal-service/internal/domain"
)

// Store acumula as obrigações e os pagamentos extraídos entre uploads.
// Um único mutex serializa escrita, leitura e reset; o reset limpa as duas
// listas na mesma seção crítica.
type Store struct {
	mu         sync.Mutex
	orderItems []domain.OrderItem
	darfItems  []domain.DarfItem
}

// NewStore cria um store vazio.
func NewStore() *Store {
	return &Store{}
}

// AppendOrderItems adiciona obrigações extraídas de um relatório.
func (s *Store) AppendOrderItems(items []domain.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderItems = append(s.orderItems, items...)
}

// AppendDarfItems adiciona pagamentos extraídos de um DARF.
func (s *Store) AppendDarfItems(items []domain.DarfItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darfItems = append(s.darfItems, items...)
}

// Snapshot devolve cópias das duas listas, tiradas sob o mesmo lock.
func (s *Store) Snapshot() ([]domain.OrderItem, []domain.DarfItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]domain.OrderItem, len(s.orderItems))
	copy(orders, s.orderItems)
	darfs := make([]domain.DarfItem, len(s.darfItems))
	copy(darfs, s.darfItems)
	return orders, darfs
}

// Reset limpa obrigações e pagamentos atomicamente.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderItems = nil
	s.darfItems = nil
}
