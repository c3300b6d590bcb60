package store

// GameEntry is a row of the games dictionary.
type GameEntry struct {
	ID   string
	Name string
}

// GameInfo is a game together with its running overall total.
type GameInfo struct {
	GameID  string
	Name    string
	Seconds float64
}

// GameDictEntry is the full dictionary view of one game: its overall
// total (zero when never played) and every checksum registered for it.
type GameDictEntry struct {
	ID        string
	Name      string
	Seconds   float64
	Checksums []ChecksumRow
}

// GameTime is one game's overall playtime with its display checksum.
// Checksum is empty when the game has no checksum rows; when it has
// several, the smallest one is reported.
type GameTime struct {
	GameID   string
	GameName string
	Seconds  float64
	Checksum string
}

// DailyGameTime is one game's aggregated playtime for one calendar day.
type DailyGameTime struct {
	Date     string
	GameID   string
	GameName string
	Seconds  float64
	Sessions int
	Checksum string
}

// Session is a single recorded play interval. Migrated carries the source
// tag for manually inserted or imported sessions and is empty for sessions
// recorded organically. Checksum is the game's checksum at query time.
type Session struct {
	Date     string
	Duration float64
	Migrated string
	Checksum string
}

// GameSession pairs a session with the game it belongs to.
type GameSession struct {
	GameID string
	Session
}

// ChecksumRow is a stored file checksum joined with its game name.
type ChecksumRow struct {
	ID        int64
	GameID    string
	GameName  string
	Checksum  string
	Algorithm string
	ChunkSize int64
	CreatedAt string
	UpdatedAt string
}

// ChecksumPair is the minimal shape needed to build the identity graph.
type ChecksumPair struct {
	GameID    string
	Checksum  string
	Algorithm string
}

// ChecksumInput is one checksum to persist.
type ChecksumInput struct {
	GameID    string
	Checksum  string
	Algorithm string
	ChunkSize int64
	CreatedAt string
	UpdatedAt string
}

// AssociationRow is a parent/child link joined with both game names.
type AssociationRow struct {
	ParentGameID   string
	ParentGameName string
	ChildGameID    string
	ChildGameName  string
	CreatedAt      string
}

// TrackingRow is one persisted non-default tracking status.
type TrackingRow struct {
	GameID   string
	GameName string
	Status   string
}

// GameStat is one game's aggregate used for component-level reports:
// total duration plus the most recent session date across all time.
type GameStat struct {
	GameID     string
	Name       string
	Seconds    float64
	LastPlayed string
}
