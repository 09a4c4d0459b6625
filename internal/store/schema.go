package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    row_count            INTEGER NOT NULL DEFAULT 0,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ledger_rows (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    entry_date           TEXT NOT NULL,
    cost_center          TEXT NOT NULL,
    account              TEXT NOT NULL,
    realized             TEXT NOT NULL,
    forecast             TEXT NOT NULL,
    PRIMARY KEY (file_path, seq)
);

CREATE INDEX IF NOT EXISTS idx_ledger_rows_center ON ledger_rows(cost_center);
`
