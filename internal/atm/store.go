package atm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/rahulvj/atm-inventory-be/internal/apperr"
	"github.com/rahulvj/atm-inventory-be/internal/models"
)

// AccountStore holds every ATM account in memory, keyed by PIN. All state
// is seeded at construction and lost when the process exits.
//
// The mutex keeps each operation atomic under the concurrent HTTP server;
// individual operations never block on anything else.
type AccountStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

// NewAccountStore creates a store seeded with the two fixed demo accounts.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: map[string]*models.Account{
			"1234": {PIN: "1234", Name: "Vijis Durai R", AccountNumber: "000123456789", Balance: 1000.0},
			"6200": {PIN: "6200", Name: "Vinish Raj", AccountNumber: "000987654321", Balance: 500.0},
		},
	}
}

// ParseAmount coerces form text into an amount. Whitespace is trimmed the
// way the original entry fields did. Only finite numbers are amounts;
// ParseFloat also accepts "NaN" and "Inf" text.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, apperr.Validation("amount must be a valid number")
	}
	return amount, nil
}

// Lookup returns the account for a PIN.
func (s *AccountStore) Lookup(pin string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[pin]
	if !ok {
		return models.Account{}, apperr.Authentication("invalid PIN")
	}
	return snapshot(account), nil
}

// Deposit adds a positive amount to the account balance and records the
// transaction.
func (s *AccountStore) Deposit(pin string, amount float64) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[pin]
	if !ok {
		return models.Account{}, apperr.Authentication("invalid PIN")
	}
	// Positive-form check so NaN cannot slip past a negated comparison.
	if !(amount > 0) {
		return models.Account{}, apperr.Domain("amount must be positive")
	}

	account.Balance += amount
	account.Transactions = append(account.Transactions, fmt.Sprintf("Deposited $%.2f", amount))
	return snapshot(account), nil
}

// Withdraw removes an amount from the account balance, which stays
// non-negative: the amount must satisfy 0 < amount <= balance.
func (s *AccountStore) Withdraw(pin string, amount float64) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[pin]
	if !ok {
		return models.Account{}, apperr.Authentication("invalid PIN")
	}
	// Positive-form check so NaN cannot slip past a negated comparison.
	if !(amount > 0 && amount <= account.Balance) {
		return models.Account{}, apperr.Domain("invalid amount or insufficient funds")
	}

	account.Balance -= amount
	account.Transactions = append(account.Transactions, fmt.Sprintf("Withdrew $%.2f", amount))
	return snapshot(account), nil
}

// Balance returns the current balance for a PIN.
func (s *AccountStore) Balance(pin string) (float64, error) {
	account, err := s.Lookup(pin)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// History returns the transaction log for a PIN, oldest first.
func (s *AccountStore) History(pin string) ([]string, error) {
	account, err := s.Lookup(pin)
	if err != nil {
		return nil, err
	}
	return account.Transactions, nil
}

// snapshot copies an account so callers never hold a pointer into the map.
func snapshot(a *models.Account) models.Account {
	out := *a
	out.Transactions = append([]string(nil), a.Transactions...)
	return out
}
