package seriesmanager

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/etcd-io/bbolt"
	"github.com/google/uuid"
)

func testStore(t *testing.T) Store {
	t.Helper()

	db, err := bbolt.Open(filepath.Join(t.TempDir(), "store.db"), 0644, nil)

	if err != nil {
		t.Fatalf("could not open bolt store: %s", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewBoltStore(db)
}

func TestBoltStoreDrivers(t *testing.T) {
	store := testStore(t)

	driver := NewDriver()
	driver.FirstName = "Alice"
	driver.LastName = "Archer"

	if err := store.UpsertDriver(driver); err != nil {
		t.Fatalf("could not upsert driver: %s", err)
	}

	loaded, err := store.FindDriverByID(driver.ID.String())

	if err != nil {
		t.Fatalf("could not load driver: %s", err)
	}

	if loaded.FullName() != "Alice Archer" {
		t.Errorf("expected Alice Archer, got %s", loaded.FullName())
	}

	if _, err := store.FindDriverByID(uuid.New().String()); err != ErrDriverNotFound {
		t.Errorf("expected ErrDriverNotFound, got %v", err)
	}

	if err := store.DeleteDriver(driver.ID.String()); err != nil {
		t.Fatalf("could not delete driver: %s", err)
	}

	if _, err := store.FindDriverByID(driver.ID.String()); err != ErrDriverNotFound {
		t.Errorf("expected deleted driver to be hidden, got %v", err)
	}

	drivers, err := store.ListDrivers()

	if err != nil {
		t.Fatalf("could not list drivers: %s", err)
	}

	if len(drivers) != 0 {
		t.Errorf("expected deleted driver to be filtered from lists, got %d drivers", len(drivers))
	}
}

func TestBoltStoreRounds(t *testing.T) {
	store := testStore(t)

	championship := NewChampionship("Winter Cup")

	if err := store.UpsertChampionship(championship); err != nil {
		t.Fatalf("could not upsert championship: %s", err)
	}

	round := NewRound("Round 1", time.Now())
	round.ChampionshipID = championship.ID
	round.Sessions = []*Session{
		{ID: uuid.New(), Name: "Qualifying 1", Type: SessionTypeQualifying},
	}

	if err := store.UpsertRound(round); err != nil {
		t.Fatalf("could not upsert round: %s", err)
	}

	otherRound := NewRound("Other Round", time.Now())

	if err := store.UpsertRound(otherRound); err != nil {
		t.Fatalf("could not upsert round: %s", err)
	}

	t.Run("load by session id", func(t *testing.T) {
		loaded, err := store.LoadRoundBySessionID(round.Sessions[0].ID.String())

		if err != nil {
			t.Fatalf("could not load round by session id: %s", err)
		}

		if loaded.ID != round.ID {
			t.Errorf("expected round %s, got %s", round.ID, loaded.ID)
		}

		if _, err := store.LoadRoundBySessionID(uuid.New().String()); err != ErrSessionNotFound {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("list for championship", func(t *testing.T) {
		rounds, err := store.ListRoundsForChampionship(championship.ID.String())

		if err != nil {
			t.Fatalf("could not list rounds: %s", err)
		}

		if len(rounds) != 1 || rounds[0].ID != round.ID {
			t.Errorf("expected only the championship's round, got %d rounds", len(rounds))
		}
	})

	t.Run("round document carries its sessions", func(t *testing.T) {
		loaded, err := store.LoadRound(round.ID.String())

		if err != nil {
			t.Fatalf("could not load round: %s", err)
		}

		if len(loaded.Sessions) != 1 || loaded.Sessions[0].Name != "Qualifying 1" {
			t.Error("expected the round's sessions to round trip with it")
		}
	})
}

func TestBoltStoreMeta(t *testing.T) {
	store := testStore(t)

	var value int

	if err := store.GetMeta("version", &value); err != ErrValueNotSet {
		t.Errorf("expected ErrValueNotSet, got %v", err)
	}

	if err := store.SetMeta("version", 3); err != nil {
		t.Fatalf("could not set meta: %s", err)
	}

	if err := store.GetMeta("version", &value); err != nil {
		t.Fatalf("could not get meta: %s", err)
	}

	if value != 3 {
		t.Errorf("expected 3, got %d", value)
	}
}

func TestBoltStoreAudit(t *testing.T) {
	store := testStore(t)

	entry := &AuditEntry{
		User:      "admin",
		UserGroup: GroupAdmin,
		Method:    "POST",
		Url:       "/rounds",
		Time:      time.Now(),
	}

	if err := store.AddAuditEntry(entry); err != nil {
		t.Fatalf("could not add audit entry: %s", err)
	}

	entries, err := store.GetAuditEntries()

	if err != nil {
		t.Fatalf("could not get audit entries: %s", err)
	}

	if len(entries) != 1 || entries[0].Url != "/rounds" {
		t.Errorf("expected one audit entry for /rounds, got %d", len(entries))
	}
}
