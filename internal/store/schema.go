package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS files (
    file_path   TEXT PRIMARY KEY,
    kind        TEXT NOT NULL,
    mtime_ns    INTEGER NOT NULL,
    size_bytes  INTEGER NOT NULL,
    skipped     INTEGER NOT NULL DEFAULT 0,
    parsed_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    file_path    TEXT NOT NULL REFERENCES files(file_path) ON DELETE CASCADE,
    row_idx      INTEGER NOT NULL,
    tx_date      TEXT NOT NULL,
    category     TEXT NOT NULL,
    amount       TEXT NOT NULL,
    counterparty TEXT NOT NULL,
    tag          TEXT,
    PRIMARY KEY (file_path, row_idx)
);

CREATE TABLE IF NOT EXISTS report_history (
    report_id      TEXT PRIMARY KEY,
    client         TEXT NOT NULL,
    created_at     TEXT NOT NULL,
    net_cash_flow  TEXT NOT NULL,
    pdf_path       TEXT,
    xlsx_path      TEXT,
    delivered      INTEGER NOT NULL DEFAULT 0,
    recipient      TEXT,
    delivery_error TEXT
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(tx_date);
CREATE INDEX IF NOT EXISTS idx_history_created ON report_history(created_at);
`
