package seriesmanager

type Store interface {
	// Drivers
	UpsertDriver(d *Driver) error
	ListDrivers() ([]*Driver, error)
	FindDriverByID(id string) (*Driver, error)
	DeleteDriver(id string) error

	// Tracks
	UpsertTrack(t *Track) error
	ListTracks() ([]*Track, error)
	FindTrackByID(id string) (*Track, error)
	DeleteTrack(id string) error

	// Championships
	UpsertChampionship(c *Championship) error
	ListChampionships() ([]*Championship, error)
	LoadChampionship(id string) (*Championship, error)
	DeleteChampionship(id string) error

	// Rounds. A Round document owns its Sessions and GroupAssignments,
	// so round setup and result replacement are single-record upserts
	// inside one storage transaction.
	UpsertRound(r *Round) error
	ListRounds() ([]*Round, error)
	ListRoundsForChampionship(championshipID string) ([]*Round, error)
	LoadRound(id string) (*Round, error)
	LoadRoundBySessionID(sessionID string) (*Round, error)
	DeleteRound(id string) error

	// Point adjustments
	UpsertPointAdjustment(a *DriverPointAdjustment) error
	ListPointAdjustments() ([]*DriverPointAdjustment, error)
	DeletePointAdjustment(id string) error

	// Accounts
	ListAccounts() ([]*Account, error)
	UpsertAccount(a *Account) error
	FindAccountByName(name string) (*Account, error)
	FindAccountByID(id string) (*Account, error)
	DeleteAccount(id string) error

	// Audit
	AddAuditEntry(entry *AuditEntry) error
	GetAuditEntries() ([]*AuditEntry, error)

	// Meta
	SetMeta(key string, value interface{}) error
	GetMeta(key string, out interface{}) error
}
