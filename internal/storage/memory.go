package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/core"
)

// MemoryStore keeps everything in process memory. It backs the "memory"
// data backend and the handler tests; semantics match the SQLite store,
// including ErrNotFound on missing ids and default-user provisioning.
type MemoryStore struct {
	mu              sync.Mutex
	transactions    map[int64]core.Transaction
	nextTxID        int64
	user            *core.UserProfile
	nextUserID      int64
	defaultUsername string
}

func NewMemoryStore(defaultUsername string) *MemoryStore {
	return &MemoryStore{
		transactions:    make(map[int64]core.Transaction),
		nextTxID:        1,
		nextUserID:      1,
		defaultUsername: defaultUsername,
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(func(core.Transaction) bool { return true }), nil
}

func (s *MemoryStore) ListTransactionsByDateRange(ctx context.Context, start, end core.Date) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(func(tx core.Transaction) bool {
		return tx.Date.In(start, end)
	}), nil
}

// snapshot copies matching records sorted date descending, newest id first
// within a day, mirroring the SQLite ordering.
func (s *MemoryStore) snapshot(keep func(core.Transaction) bool) []core.Transaction {
	txs := make([]core.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if keep(tx) {
			txs = append(txs, tx)
		}
	}
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date.Time) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].ID > txs[j].ID
	})
	return txs
}

func (s *MemoryStore) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = s.nextTxID
	s.nextTxID++
	tx.CreatedAt = time.Now().UTC()
	s.transactions[tx.ID] = tx
	return tx, nil
}

func (s *MemoryStore) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, ErrNotFound
	}
	return tx, nil
}

func (s *MemoryStore) DeleteTransaction(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *MemoryStore) GetCurrentUser(ctx context.Context) (core.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		now := time.Now().UTC()
		s.user = &core.UserProfile{
			ID:        s.nextUserID,
			Username:  s.defaultUsername,
			FullName:  "Demo User",
			Email:     "demo@example.com",
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.nextUserID++
	}
	return *s.user, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id int64, update core.ProfileUpdate) (core.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil || s.user.ID != id {
		return core.UserProfile{}, ErrNotFound
	}
	if update.FullName != nil {
		s.user.FullName = *update.FullName
	}
	if update.Email != nil {
		s.user.Email = *update.Email
	}
	if update.Phone != nil {
		s.user.Phone = *update.Phone
	}
	if update.Avatar != nil {
		s.user.Avatar = *update.Avatar
	}
	if update.Occupation != nil {
		s.user.Occupation = *update.Occupation
	}
	if update.MonthlyIncome != nil {
		income := *update.MonthlyIncome
		s.user.MonthlyIncome = &income
	}
	s.user.UpdatedAt = time.Now().UTC()
	return *s.user, nil
}
