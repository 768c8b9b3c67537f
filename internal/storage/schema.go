package storage

const schema = `
-- The 'sources' table tracks where cards come from, either a local
-- directory of deck files or a git repository.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL,              -- local | git
    last_synced DATETIME
);

-- The 'cards' table stores card content together with its scheduling
-- state. The primary key is the content fingerprint.
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    deck TEXT NOT NULL,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    state INTEGER NOT NULL,          -- 1: New, 2: Learning, 3: Review, 4: Suspended
    due DATETIME NOT NULL,
    interval INTEGER NOT NULL DEFAULT 0,
    repetitions INTEGER NOT NULL DEFAULT 0,
    ease REAL NOT NULL,
    lapses INTEGER NOT NULL DEFAULT 0,
    last_review DATETIME,
    created_at DATETIME NOT NULL,
    source_id INTEGER,

    FOREIGN KEY(source_id) REFERENCES sources(id)
);

CREATE INDEX IF NOT EXISTS idx_cards_due ON cards(due);
CREATE INDEX IF NOT EXISTS idx_cards_deck ON cards(deck);

-- The 'review_logs' table records every submitted review with a
-- snapshot of the scheduling outcome.
CREATE TABLE IF NOT EXISTS review_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    card_id TEXT NOT NULL,
    session_id TEXT NOT NULL,
    rating INTEGER NOT NULL,
    reviewed_at DATETIME NOT NULL,
    interval INTEGER NOT NULL,
    ease REAL NOT NULL,

    FOREIGN KEY(card_id) REFERENCES cards(id)
);

CREATE INDEX IF NOT EXISTS idx_review_logs_card ON review_logs(card_id);
`
