package seriesmanager

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrDriverNotFound = errors.New("seriesmanager: driver not found")

func NewDriver() *Driver {
	return &Driver{
		ID:      uuid.New(),
		Created: time.Now(),
	}
}

// A Driver competes in championships. The racing number is for display
// only; kart numbers are assigned per round.
type Driver struct {
	ID      uuid.UUID
	Created time.Time
	Updated time.Time
	Deleted time.Time

	FirstName    string
	LastName     string
	RacingNumber int
	Team         string
}

func (d *Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

type DriverManager struct {
	store Store
}

func NewDriverManager(store Store) *DriverManager {
	return &DriverManager{store: store}
}

func (dm *DriverManager) ListDrivers() ([]*Driver, error) {
	return dm.store.ListDrivers()
}

func (dm *DriverManager) FindDriverByID(id string) (*Driver, error) {
	return dm.store.FindDriverByID(id)
}

func (dm *DriverManager) UpsertDriver(driver *Driver) error {
	return dm.store.UpsertDriver(driver)
}

func (dm *DriverManager) DeleteDriver(id string) error {
	return dm.store.DeleteDriver(id)
}

// DriversByID maps a driver list for name lookups in standings views.
func DriversByID(drivers []*Driver) map[uuid.UUID]*Driver {
	out := make(map[uuid.UUID]*Driver, len(drivers))

	for _, driver := range drivers {
		out[driver.ID] = driver
	}

	return out
}
