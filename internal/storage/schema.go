package storage

const schema = `
-- One row per card; position preserves the collection's insertion order.
CREATE TABLE IF NOT EXISTS cards (
    position INTEGER PRIMARY KEY,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    interval INTEGER NOT NULL DEFAULT 1 CHECK (interval >= 1),
    due DATETIME NOT NULL,
    repetitions INTEGER NOT NULL DEFAULT 0,
    ease INTEGER NOT NULL DEFAULT 2,
    last_rating INTEGER
);
`
