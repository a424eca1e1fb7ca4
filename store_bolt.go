package seriesmanager

import (
	"encoding/json"
	"time"

	"github.com/etcd-io/bbolt"
	"github.com/pkg/errors"
)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(db *bbolt.DB) Store {
	return &BoltStore{db: db}
}

var (
	driversBucketName          = []byte("drivers")
	tracksBucketName           = []byte("tracks")
	championshipsBucketName    = []byte("championships")
	roundsBucketName           = []byte("rounds")
	pointAdjustmentsBucketName = []byte("pointAdjustments")
	accountsBucketName         = []byte("accounts")
)

func (bs *BoltStore) bucket(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	if !tx.Writable() {
		bkt := tx.Bucket(name)

		if bkt == nil {
			return nil, bbolt.ErrBucketNotFound
		}

		return bkt, nil
	}

	return tx.CreateBucketIfNotExists(name)
}

func (bs *BoltStore) encode(data interface{}) ([]byte, error) {
	return json.Marshal(data)
}

func (bs *BoltStore) decode(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

func (bs *BoltStore) put(name []byte, key string, data interface{}) error {
	return bs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := bs.bucket(tx, name)

		if err != nil {
			return err
		}

		encoded, err := bs.encode(data)

		if err != nil {
			return errors.Wrapf(err, "could not encode record %s", key)
		}

		return bkt.Put([]byte(key), encoded)
	})
}

func (bs *BoltStore) get(name []byte, key string, out interface{}, notFound error) error {
	return bs.db.View(func(tx *bbolt.Tx) error {
		bkt, err := bs.bucket(tx, name)

		if err == bbolt.ErrBucketNotFound {
			return notFound
		} else if err != nil {
			return err
		}

		data := bkt.Get([]byte(key))

		if data == nil {
			return notFound
		}

		return bs.decode(data, out)
	})
}

func (bs *BoltStore) forEach(name []byte, fn func(data []byte) error) error {
	return bs.db.View(func(tx *bbolt.Tx) error {
		bkt, err := bs.bucket(tx, name)

		if err == bbolt.ErrBucketNotFound {
			return nil
		} else if err != nil {
			return err
		}

		return bkt.ForEach(func(k, v []byte) error {
			return fn(v)
		})
	})
}

func (bs *BoltStore) UpsertDriver(d *Driver) error {
	d.Updated = time.Now()

	return bs.put(driversBucketName, d.ID.String(), d)
}

func (bs *BoltStore) ListDrivers() ([]*Driver, error) {
	var drivers []*Driver

	err := bs.forEach(driversBucketName, func(data []byte) error {
		var driver *Driver

		if err := bs.decode(data, &driver); err != nil {
			return err
		}

		if !driver.Deleted.IsZero() {
			// soft deleted driver, move on
			return nil
		}

		drivers = append(drivers, driver)

		return nil
	})

	return drivers, err
}

func (bs *BoltStore) FindDriverByID(id string) (*Driver, error) {
	var driver *Driver

	err := bs.get(driversBucketName, id, &driver, ErrDriverNotFound)

	if err != nil {
		return nil, err
	}

	if !driver.Deleted.IsZero() {
		return nil, ErrDriverNotFound
	}

	return driver, nil
}

func (bs *BoltStore) DeleteDriver(id string) error {
	driver, err := bs.FindDriverByID(id)

	if err != nil {
		return err
	}

	driver.Deleted = time.Now()

	return bs.UpsertDriver(driver)
}

func (bs *BoltStore) UpsertTrack(t *Track) error {
	t.Updated = time.Now()

	return bs.put(tracksBucketName, t.ID.String(), t)
}

func (bs *BoltStore) ListTracks() ([]*Track, error) {
	var tracks []*Track

	err := bs.forEach(tracksBucketName, func(data []byte) error {
		var track *Track

		if err := bs.decode(data, &track); err != nil {
			return err
		}

		if !track.Deleted.IsZero() {
			return nil
		}

		tracks = append(tracks, track)

		return nil
	})

	return tracks, err
}

func (bs *BoltStore) FindTrackByID(id string) (*Track, error) {
	var track *Track

	err := bs.get(tracksBucketName, id, &track, ErrTrackNotFound)

	if err != nil {
		return nil, err
	}

	if !track.Deleted.IsZero() {
		return nil, ErrTrackNotFound
	}

	return track, nil
}

func (bs *BoltStore) DeleteTrack(id string) error {
	track, err := bs.FindTrackByID(id)

	if err != nil {
		return err
	}

	track.Deleted = time.Now()

	return bs.UpsertTrack(track)
}

func (bs *BoltStore) UpsertChampionship(c *Championship) error {
	c.Updated = time.Now()

	return bs.put(championshipsBucketName, c.ID.String(), c)
}

func (bs *BoltStore) ListChampionships() ([]*Championship, error) {
	var championships []*Championship

	err := bs.forEach(championshipsBucketName, func(data []byte) error {
		var championship *Championship

		if err := bs.decode(data, &championship); err != nil {
			return err
		}

		if !championship.Deleted.IsZero() {
			return nil
		}

		championships = append(championships, championship)

		return nil
	})

	return championships, err
}

func (bs *BoltStore) LoadChampionship(id string) (*Championship, error) {
	var championship *Championship

	err := bs.get(championshipsBucketName, id, &championship, ErrChampionshipNotFound)

	if err != nil {
		return nil, err
	}

	if !championship.Deleted.IsZero() {
		return nil, ErrChampionshipNotFound
	}

	return championship, nil
}

func (bs *BoltStore) DeleteChampionship(id string) error {
	championship, err := bs.LoadChampionship(id)

	if err != nil {
		return err
	}

	championship.Deleted = time.Now()

	return bs.UpsertChampionship(championship)
}

func (bs *BoltStore) UpsertRound(r *Round) error {
	r.Updated = time.Now()

	return bs.put(roundsBucketName, r.ID.String(), r)
}

func (bs *BoltStore) ListRounds() ([]*Round, error) {
	var rounds []*Round

	err := bs.forEach(roundsBucketName, func(data []byte) error {
		var round *Round

		if err := bs.decode(data, &round); err != nil {
			return err
		}

		if !round.Deleted.IsZero() {
			return nil
		}

		rounds = append(rounds, round)

		return nil
	})

	return rounds, err
}

func (bs *BoltStore) ListRoundsForChampionship(championshipID string) ([]*Round, error) {
	rounds, err := bs.ListRounds()

	if err != nil {
		return nil, err
	}

	var filtered []*Round

	for _, round := range rounds {
		if round.ChampionshipID.String() == championshipID {
			filtered = append(filtered, round)
		}
	}

	return filtered, nil
}

func (bs *BoltStore) LoadRound(id string) (*Round, error) {
	var round *Round

	err := bs.get(roundsBucketName, id, &round, ErrRoundNotFound)

	if err != nil {
		return nil, err
	}

	if !round.Deleted.IsZero() {
		return nil, ErrRoundNotFound
	}

	return round, nil
}

func (bs *BoltStore) LoadRoundBySessionID(sessionID string) (*Round, error) {
	rounds, err := bs.ListRounds()

	if err != nil {
		return nil, err
	}

	for _, round := range rounds {
		if _, err := round.SessionByID(sessionID); err == nil {
			return round, nil
		}
	}

	return nil, ErrSessionNotFound
}

func (bs *BoltStore) DeleteRound(id string) error {
	round, err := bs.LoadRound(id)

	if err != nil {
		return err
	}

	round.Deleted = time.Now()

	return bs.UpsertRound(round)
}

func (bs *BoltStore) UpsertPointAdjustment(a *DriverPointAdjustment) error {
	return bs.put(pointAdjustmentsBucketName, a.ID.String(), a)
}

func (bs *BoltStore) ListPointAdjustments() ([]*DriverPointAdjustment, error) {
	var adjustments []*DriverPointAdjustment

	err := bs.forEach(pointAdjustmentsBucketName, func(data []byte) error {
		var adjustment *DriverPointAdjustment

		if err := bs.decode(data, &adjustment); err != nil {
			return err
		}

		adjustments = append(adjustments, adjustment)

		return nil
	})

	return adjustments, err
}

func (bs *BoltStore) DeletePointAdjustment(id string) error {
	return bs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := bs.bucket(tx, pointAdjustmentsBucketName)

		if err != nil {
			return err
		}

		if bkt.Get([]byte(id)) == nil {
			return ErrPointAdjustmentNotFound
		}

		return bkt.Delete([]byte(id))
	})
}

func (bs *BoltStore) ListAccounts() ([]*Account, error) {
	var accounts []*Account

	err := bs.forEach(accountsBucketName, func(data []byte) error {
		var account *Account

		if err := bs.decode(data, &account); err != nil {
			return err
		}

		if !account.Deleted.IsZero() {
			return nil
		}

		accounts = append(accounts, account)

		return nil
	})

	return accounts, err
}

func (bs *BoltStore) UpsertAccount(a *Account) error {
	a.Updated = time.Now()

	return bs.put(accountsBucketName, a.ID.String(), a)
}

func (bs *BoltStore) FindAccountByName(name string) (*Account, error) {
	accounts, err := bs.ListAccounts()

	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.Name == name {
			return account, nil
		}
	}

	return nil, ErrAccountNotFound
}

func (bs *BoltStore) FindAccountByID(id string) (*Account, error) {
	var account *Account

	err := bs.get(accountsBucketName, id, &account, ErrAccountNotFound)

	if err != nil {
		return nil, err
	}

	if !account.Deleted.IsZero() {
		return nil, ErrAccountNotFound
	}

	return account, nil
}

func (bs *BoltStore) DeleteAccount(id string) error {
	account, err := bs.FindAccountByID(id)

	if err != nil {
		return err
	}

	account.Deleted = time.Now()

	return bs.UpsertAccount(account)
}

var metaBucketName = []byte("meta")

var ErrValueNotSet = errors.New("seriesmanager: value not set")

func (bs *BoltStore) SetMeta(key string, value interface{}) error {
	return bs.put(metaBucketName, key, value)
}

func (bs *BoltStore) GetMeta(key string, out interface{}) error {
	return bs.get(metaBucketName, key, out, ErrValueNotSet)
}

var auditBucketName = []byte("audit")

const (
	auditEntriesKey = "audit"

	// maxAuditEntries bounds the stored log; the oldest entries are
	// dropped in blocks once it is exceeded.
	maxAuditEntries = 500
)

func (bs *BoltStore) GetAuditEntries() ([]*AuditEntry, error) {
	var entries []*AuditEntry

	err := bs.get(auditBucketName, auditEntriesKey, &entries, ErrValueNotSet)

	return entries, err
}

func (bs *BoltStore) AddAuditEntry(entry *AuditEntry) error {
	entries, err := bs.GetAuditEntries()

	if err != nil && err != ErrValueNotSet {
		return err
	}

	entries = append(entries, entry)

	if len(entries) > maxAuditEntries {
		entries = entries[20:]
	}

	return bs.put(auditBucketName, auditEntriesKey, entries)
}
