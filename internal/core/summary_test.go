package core

import (
	"math/rand"
	"testing"
)

func tx(amountCents int64, typ TxType, d Date) Transaction {
	return Transaction{
		Description: "test",
		Amount:      Money{Cents: amountCents},
		Type:        typ,
		Category:    "other",
		Date:        d,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalIncome.Cents != 0 || s.TotalExpenses.Cents != 0 || s.NetIncome.Cents != 0 || s.TransactionCount != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSummarizeTotals(t *testing.T) {
	d := NewDate(2025, 1, 5)
	txs := []Transaction{
		tx(10000, Income, d),
		tx(4000, Expense, d),
		tx(6000, Expense, NewDate(2025, 2, 10)),
	}
	s := Summarize(txs)
	if s.TotalIncome.Cents != 10000 {
		t.Fatalf("totalIncome: expected 10000, got %d", s.TotalIncome.Cents)
	}
	if s.TotalExpenses.Cents != 10000 {
		t.Fatalf("totalExpenses: expected 10000, got %d", s.TotalExpenses.Cents)
	}
	if s.NetIncome.Cents != 0 {
		t.Fatalf("netIncome: expected 0, got %d", s.NetIncome.Cents)
	}
	if s.TransactionCount != 3 {
		t.Fatalf("count: expected 3, got %d", s.TransactionCount)
	}
}

func TestSummarizeNegativeNet(t *testing.T) {
	d := NewDate(2025, 6, 1)
	s := Summarize([]Transaction{
		tx(1999, Income, d),
		tx(2500, Expense, d),
	})
	if s.NetIncome.Cents != -501 {
		t.Fatalf("expected -501 cents net, got %d", s.NetIncome.Cents)
	}
	if s.NetIncome.String() != "-5.01" {
		t.Fatalf("expected -5.01, got %s", s.NetIncome.String())
	}
}

// Two-decimal values that are classic float traps (0.10+0.20) must sum
// exactly in cents.
func TestSummarizeExactDecimals(t *testing.T) {
	d := NewDate(2025, 1, 1)
	s := Summarize([]Transaction{
		tx(10, Income, d), // 0.10
		tx(20, Income, d), // 0.20
	})
	if s.TotalIncome.String() != "0.30" {
		t.Fatalf("expected 0.30, got %s", s.TotalIncome.String())
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	d := NewDate(2025, 4, 2)
	txs := []Transaction{
		tx(123, Income, d),
		tx(456, Expense, d),
		tx(789, Income, d),
		tx(1011, Expense, d),
		tx(1213, Income, d),
	}
	want := Summarize(txs)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]Transaction, len(txs))
		copy(shuffled, txs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Summarize(shuffled); got != want {
			t.Fatalf("shuffle %d changed summary: %+v vs %+v", i, got, want)
		}
	}
}
