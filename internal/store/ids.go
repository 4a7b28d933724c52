package store

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces entity identifiers. Implementations must never return
// the same id twice for the same prefix.
type IDGenerator interface {
	NewID(prefix string) string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// UUIDGenerator returns the default generator: "<prefix>-<random uuid>".
func UUIDGenerator() IDGenerator { return uuidGenerator{} }

// SequenceGenerator hands out "<prefix>-<n>" with a monotonic counter shared
// across prefixes. Useful for fixtures and tests.
type SequenceGenerator struct {
	n atomic.Uint64
}

func (g *SequenceGenerator) NewID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, g.n.Add(1))
}

const (
	prefixProduct    = "prod"
	prefixOrder      = "ord"
	prefixStaff      = "staff"
	prefixExpense    = "exp"
	prefixAttendance = "att"
)
