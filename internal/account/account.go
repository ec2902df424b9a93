// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

// Package account routes uploads to the configured Torque accounts. Each
// account owns its own session cache and read view; nothing is shared
// between accounts.
package account

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Marlboro62/Torque-Lite-Pro/internal/cache"
	"github.com/Marlboro62/Torque-Lite-Pro/internal/identity"
)

// Supported presentation languages.
const (
	LanguageEN = "en"
	LanguageFR = "fr"
)

// Unit preferences. Values are always stored metric; the preference is an
// annotation for the presentation layer.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

var (
	// ErrNoAccounts is returned when the manager is built without accounts.
	ErrNoAccounts = errors.New("no accounts configured")

	// ErrDuplicateAccount is returned when two accounts share an email.
	ErrDuplicateAccount = errors.New("duplicate account email")

	// ErrAccountNotFound is returned by Lookup for an unknown account.
	ErrAccountNotFound = errors.New("account not found")
)

// Config describes one account.
type Config struct {
	Email    string
	Language string
	Imperial bool
}

// Options are shared by every account's cache.
type Options struct {
	TTL      time.Duration
	Capacity int
	Now      func() time.Time

	// OnEvict is told about every capacity eviction and expiry removal.
	OnEvict func(account, identity string, reason cache.EvictReason)
}

// Account is one configured Torque account.
type Account struct {
	ID       string
	Email    string
	Language string
	Imperial bool

	cache *cache.SessionCache
}

// Cache returns the account's session cache.
func (a *Account) Cache() *cache.SessionCache { return a.cache }

// UnitPreference returns "imperial" or "metric".
func (a *Account) UnitPreference() string {
	if a.Imperial {
		return UnitsImperial
	}
	return UnitsMetric
}

// Manager owns the accounts. It is immutable after construction and safe
// for concurrent use.
type Manager struct {
	accounts []*Account
	byEmail  map[string]*Account
	byID     map[string]*Account
}

// NewManager builds one account, with its own cache, per config entry.
func NewManager(cfgs []Config, opts Options) (*Manager, error) {
	if len(cfgs) == 0 {
		return nil, ErrNoAccounts
	}

	m := &Manager{
		accounts: make([]*Account, 0, len(cfgs)),
		byEmail:  make(map[string]*Account, len(cfgs)),
		byID:     make(map[string]*Account, len(cfgs)),
	}
	for _, cfg := range cfgs {
		email := normalizeEmail(cfg.Email)
		if email == "" {
			return nil, fmt.Errorf("account email is empty")
		}
		if _, dup := m.byEmail[email]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, email)
		}

		acct := &Account{
			ID:       identity.Slugify(email),
			Email:    email,
			Language: normalizeLanguage(cfg.Language),
			Imperial: cfg.Imperial,
		}
		if _, dup := m.byID[acct.ID]; dup {
			return nil, fmt.Errorf("%w: %s maps to existing id %s", ErrDuplicateAccount, email, acct.ID)
		}

		var onEvict func(string, cache.EvictReason)
		if opts.OnEvict != nil {
			hook, id := opts.OnEvict, acct.ID
			onEvict = func(key string, reason cache.EvictReason) { hook(id, key, reason) }
		}
		c, err := cache.NewSessionCache(cache.SessionConfig{
			TTL:      opts.TTL,
			Capacity: opts.Capacity,
			Now:      opts.Now,
			OnEvict:  onEvict,
		})
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", acct.ID, err)
		}
		acct.cache = c

		m.accounts = append(m.accounts, acct)
		m.byEmail[email] = acct
		m.byID[acct.ID] = acct
	}
	sort.Slice(m.accounts, func(i, j int) bool { return m.accounts[i].ID < m.accounts[j].ID })
	return m, nil
}

// Route picks the account for an upload's eml value. Matching ignores case
// and surrounding spaces. Without eml the frame goes to the only account
// when exactly one is configured. ok is false for an unrouted frame.
func (m *Manager) Route(eml string) (acct *Account, ok bool) {
	email := normalizeEmail(eml)
	if email == "" {
		if len(m.accounts) == 1 {
			return m.accounts[0], true
		}
		return nil, false
	}
	acct, ok = m.byEmail[email]
	return acct, ok
}

// Lookup finds an account by id or by email.
func (m *Manager) Lookup(key string) (*Account, error) {
	if acct, ok := m.byID[strings.TrimSpace(key)]; ok {
		return acct, nil
	}
	if acct, ok := m.byEmail[normalizeEmail(key)]; ok {
		return acct, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
}

// Accounts returns every account sorted by id.
func (m *Manager) Accounts() []*Account {
	out := make([]*Account, len(m.accounts))
	copy(out, m.accounts)
	return out
}

// Sweep removes expired records from every cache and returns the total.
func (m *Manager) Sweep() int {
	n := 0
	for _, a := range m.accounts {
		n += a.cache.Sweep()
	}
	return n
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeLanguage(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), LanguageFR) {
		return LanguageFR
	}
	return LanguageEN
}
