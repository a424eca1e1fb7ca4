package seriesmanager

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrChampionshipNotFound = errors.New("seriesmanager: championship not found")

// NewChampionship creates a Championship with a given name, creating a
// UUID for the championship as well.
func NewChampionship(name string) *Championship {
	return &Championship{
		ID:      uuid.New(),
		Name:    name,
		Created: time.Now(),
	}
}

// A Championship is a season of Rounds for a roster of Drivers. Each
// driver is awarded points for their finishing positions across the
// championship's sessions.
type Championship struct {
	ID      uuid.UUID
	Created time.Time
	Updated time.Time
	Deleted time.Time

	Name   string
	Season string

	// Drivers assigned to the championship. Rounds draw their candidate
	// participants from this roster.
	Drivers []uuid.UUID

	// Overrides maps a tie key's wire form to an explicit driver order
	// for the drivers tied on that key. Replaced wholesale by a reorder,
	// removed by an undo.
	Overrides map[string][]uuid.UUID
}

func (c *Championship) HasDriver(driverID uuid.UUID) bool {
	for _, id := range c.Drivers {
		if id == driverID {
			return true
		}
	}

	return false
}

// SetOverride replaces any existing override for the tie key with the
// given driver order.
func (c *Championship) SetOverride(tieKey string, orderedDriverIDs []uuid.UUID) {
	if c.Overrides == nil {
		c.Overrides = make(map[string][]uuid.UUID)
	}

	c.Overrides[tieKey] = orderedDriverIDs
}

// RemoveOverride deletes the override for a tie key, reverting the tied
// drivers to name ordering.
func (c *Championship) RemoveOverride(tieKey string) {
	delete(c.Overrides, tieKey)
}

var ErrPointAdjustmentNotFound = errors.New("seriesmanager: point adjustment not found")

// A DriverPointAdjustment is a manual +1 bonus or -1 penalty for a
// driver, scoped to either a championship or a single round, never
// both.
type DriverPointAdjustment struct {
	ID      uuid.UUID
	Created time.Time

	DriverID       uuid.UUID
	ChampionshipID uuid.UUID
	RoundID        uuid.UUID

	Delta int
}

func NewDriverPointAdjustment(driverID uuid.UUID, delta int) *DriverPointAdjustment {
	return &DriverPointAdjustment{
		ID:       uuid.New(),
		Created:  time.Now(),
		DriverID: driverID,
		Delta:    delta,
	}
}
