package seriesmanager

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrTrackNotFound = errors.New("seriesmanager: track not found")

func NewTrack() *Track {
	return &Track{
		ID:      uuid.New(),
		Created: time.Now(),
	}
}

// A Track is a karting circuit rounds are held at.
type Track struct {
	ID      uuid.UUID
	Created time.Time
	Updated time.Time
	Deleted time.Time

	Name         string
	City         string
	Country      string
	LengthMeters int
}

type TrackManager struct {
	store Store
}

func NewTrackManager(store Store) *TrackManager {
	return &TrackManager{store: store}
}

func (tm *TrackManager) ListTracks() ([]*Track, error) {
	return tm.store.ListTracks()
}

func (tm *TrackManager) FindTrackByID(id string) (*Track, error) {
	return tm.store.FindTrackByID(id)
}

func (tm *TrackManager) UpsertTrack(track *Track) error {
	return tm.store.UpsertTrack(track)
}

func (tm *TrackManager) DeleteTrack(id string) error {
	return tm.store.DeleteTrack(id)
}
