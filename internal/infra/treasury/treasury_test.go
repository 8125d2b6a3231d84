package treasury

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestLedger_DepositAndBalance(t *testing.T) {
	l := New()
	if !l.BalanceOf("alice").IsZero() {
		t.Errorf("fresh balance = %s, want 0", l.BalanceOf("alice"))
	}
	if err := l.Deposit("alice", dec(100)); err != nil {
		t.Fatalf("Deposit() error: %v", err)
	}
	if err := l.Deposit("alice", dec(50)); err != nil {
		t.Fatalf("Deposit() error: %v", err)
	}
	if got := l.BalanceOf("alice"); !got.Equal(dec(150)) {
		t.Errorf("balance = %s, want 150", got)
	}
}

func TestLedger_Transfer(t *testing.T) {
	l := New()
	if err := l.Deposit("alice", dec(100)); err != nil {
		t.Fatalf("Deposit() error: %v", err)
	}
	if err := l.Transfer("alice", "bob", dec(40)); err != nil {
		t.Fatalf("Transfer() error: %v", err)
	}
	if got := l.BalanceOf("alice"); !got.Equal(dec(60)) {
		t.Errorf("alice = %s, want 60", got)
	}
	if got := l.BalanceOf("bob"); !got.Equal(dec(40)) {
		t.Errorf("bob = %s, want 40", got)
	}
}

func TestLedger_TransferInsufficient(t *testing.T) {
	l := New()
	if err := l.Deposit("alice", dec(10)); err != nil {
		t.Fatalf("Deposit() error: %v", err)
	}
	if err := l.Transfer("alice", "bob", dec(11)); err == nil {
		t.Fatal("Transfer() succeeded beyond balance")
	}
	// A failed transfer moves nothing.
	if got := l.BalanceOf("alice"); !got.Equal(dec(10)) {
		t.Errorf("alice = %s, want 10", got)
	}
	if !l.BalanceOf("bob").IsZero() {
		t.Errorf("bob = %s, want 0", l.BalanceOf("bob"))
	}
}

func TestLedger_TransferZeroIsNoop(t *testing.T) {
	l := New()
	if err := l.Transfer("alice", "bob", decimal.Zero); err != nil {
		t.Fatalf("zero transfer error: %v", err)
	}
}

func TestLedger_RejectsNegativeAmounts(t *testing.T) {
	l := New()
	if err := l.Deposit("alice", dec(-1)); err == nil {
		t.Error("Deposit() accepted a negative amount")
	}
	if err := l.Transfer("alice", "bob", dec(-1)); err == nil {
		t.Error("Transfer() accepted a negative amount")
	}
}
