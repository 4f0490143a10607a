// Package session resolves the acting identity for each browser session
// and caches it so reloads and restarts do not force a re-login. Role is
// trusted entirely from the cached identity; the admin gate is a shared
// static passphrase. Classroom-grade on purpose.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"

	"class-order/logging"
	"class-order/mirror"
	"class-order/models"

	"github.com/google/uuid"
)

var (
	ErrBadPassword = errors.New("wrong admin password")
	ErrBadName     = errors.New("name is required")
	ErrBadSeat     = errors.New("a usable seat number is required")
	ErrNoSession   = errors.New("unknown session")
)

type Resolver struct {
	mirror        *mirror.Mirror
	adminPassword string
	adminName     string
	file          string

	mu       sync.Mutex
	sessions map[string]models.Identity // token -> identity
}

func NewResolver(m *mirror.Mirror, adminPassword, adminName, file string) *Resolver {
	r := &Resolver{
		mirror:        m,
		adminPassword: adminPassword,
		adminName:     adminName,
		file:          file,
		sessions:      make(map[string]models.Identity),
	}
	r.load()
	return r
}

// Login builds an identity and a session token for it. Students get a
// fresh draft order persisted on first login; repeat logins with the same
// seat resolve to the same order.
func (r *Resolver) Login(name, seat string, isAdmin bool, password string) (string, models.Identity, error) {
	var id models.Identity
	if isAdmin {
		if password != r.adminPassword {
			return "", models.Identity{}, ErrBadPassword
		}
		id = models.Identity{
			ID:         models.AdminID,
			Name:       r.adminName,
			SeatNumber: "ADMIN",
			Role:       models.RoleAdmin,
		}
	} else {
		name = strings.TrimSpace(name)
		if name == "" {
			return "", models.Identity{}, ErrBadName
		}
		clean := SanitizeSeat(seat)
		if clean == "" {
			return "", models.Identity{}, ErrBadSeat
		}
		id = models.Identity{
			ID:         clean,
			Name:       name,
			SeatNumber: clean,
			Role:       models.RoleStudent,
		}
		r.mirror.EnsureOrder(id)
	}

	token := uuid.NewString()
	r.mu.Lock()
	r.sessions[token] = id
	r.persistLocked()
	r.mu.Unlock()
	return token, id, nil
}

// Resolve maps a session token back to its identity.
func (r *Resolver) Resolve(token string) (models.Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.sessions[token]
	return id, ok
}

// Logout drops the cached identity only; persisted orders and settings
// are untouched.
func (r *Resolver) Logout(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.persistLocked()
	r.mu.Unlock()
}

// SanitizeSeat strips whitespace, control characters and the runes the
// remote store's path syntax cannot carry (. # $ [ ] /). The result is the
// stable per-student key.
func SanitizeSeat(seat string) string {
	var b strings.Builder
	for _, c := range seat {
		switch {
		case c < 0x20, unicode.IsSpace(c):
		case strings.ContainsRune(".#$[]/", c):
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// load restores the session cache from disk; a missing file is a fresh
// start, a corrupt one is discarded.
func (r *Resolver) load() {
	data, err := os.ReadFile(r.file)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.GetLogger().Warnf("session cache unreadable, starting empty: %v", err)
		}
		return
	}
	var sessions map[string]models.Identity
	if err := json.Unmarshal(data, &sessions); err != nil {
		logging.GetLogger().Warnf("session cache corrupt, starting empty: %v", err)
		return
	}
	r.sessions = sessions
}

func (r *Resolver) persistLocked() {
	if err := r.persist(); err != nil {
		logging.GetLogger().Warnf("persist session cache: %v", err)
	}
}

func (r *Resolver) persist() error {
	data, err := json.Marshal(r.sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := os.WriteFile(r.file, data, 0o600); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	return nil
}
