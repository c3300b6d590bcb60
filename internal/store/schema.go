package store

const schema = `
CREATE TABLE IF NOT EXISTS games (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS play_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game_id TEXT NOT NULL,
    date_time TEXT NOT NULL,
    duration REAL NOT NULL,
    migrated TEXT
);

CREATE TABLE IF NOT EXISTS overall_time (
    game_id TEXT PRIMARY KEY,
    duration REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS game_checksums (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game_id TEXT NOT NULL,
    checksum TEXT NOT NULL,
    algorithm TEXT NOT NULL,
    chunk_size INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (game_id, checksum)
);

CREATE TABLE IF NOT EXISTS game_associations (
    parent_game_id TEXT NOT NULL,
    child_game_id TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (parent_game_id, child_game_id)
);

CREATE TABLE IF NOT EXISTS tracking_status (
    game_id TEXT PRIMARY KEY,
    status TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_game ON play_sessions(game_id);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON play_sessions(date_time);
CREATE INDEX IF NOT EXISTS idx_checksums_value ON game_checksums(checksum, algorithm);
CREATE INDEX IF NOT EXISTS idx_associations_parent ON game_associations(parent_game_id);
`
