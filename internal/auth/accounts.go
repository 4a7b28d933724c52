package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cafe-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("account already exists")
)

// Accounts is the in-memory registry of back-office logins.
type Accounts struct {
	mu       sync.RWMutex
	accounts map[string]models.Account // email -> account
	cost     int
}

func NewAccounts() *Accounts {
	return &Accounts{
		accounts: make(map[string]models.Account),
		cost:     bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (a *Accounts) Register(name, email, password string, role models.StaffRole) (models.Account, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return models.Account{}, errors.New("name, email and password are required")
	}
	if !role.Valid() {
		return models.Account{}, fmt.Errorf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.accounts[email]; ok {
		return models.Account{}, ErrAccountExists
	}
	acc := models.Account{Email: email, Name: name, Role: role, PasswordHash: string(hash)}
	a.accounts[email] = acc
	return acc, nil
}

// Authenticate checks the password against the stored bcrypt hash.
func (a *Accounts) Authenticate(email, password string) (models.Account, error) {
	acc, ok := a.Get(email)
	if !ok {
		return models.Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return models.Account{}, ErrInvalidCredentials
	}
	return acc, nil
}

func (a *Accounts) Get(email string) (models.Account, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	acc, ok := a.accounts[normalizeEmail(email)]
	return acc, ok
}

// List returns all accounts ordered by email.
func (a *Accounts) List() []models.Account {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]models.Account, 0, len(a.accounts))
	for _, acc := range a.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}
