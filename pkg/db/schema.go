package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Exports: one row per written artifact
CREATE TABLE IF NOT EXISTS exports (
    export_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    title TEXT NOT NULL,
    doc_kind TEXT NOT NULL,      -- texts, exercises, key, lines
    mode TEXT,                   -- standard, adapted; empty for texts
    format TEXT NOT NULL,        -- txt, pdf, docx
    file_path TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    size_bytes INTEGER,
    page_count INTEGER DEFAULT 0,
    language TEXT
);

CREATE INDEX IF NOT EXISTS idx_exports_created ON exports(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_exports_hash ON exports(content_hash);

-- Grading sessions: one per grade run or interactive worksheet
CREATE TABLE IF NOT EXISTS grading_sessions (
    session_id TEXT PRIMARY KEY,   -- uuid
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    pack_title TEXT,
    mode TEXT NOT NULL,
    item_count INTEGER NOT NULL,
    correct_count INTEGER DEFAULT 0,
    graded_count INTEGER DEFAULT 0,
    ungraded_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_grading_sessions_created ON grading_sessions(created_at DESC);

-- Grading results: latest verdict per item within a session
CREATE TABLE IF NOT EXISTS grading_results (
    result_id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    item_id INTEGER NOT NULL,
    verdict TEXT NOT NULL,         -- correct, incorrect, ungraded
    submitted TEXT,
    expected TEXT,
    checked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (session_id) REFERENCES grading_sessions(session_id) ON DELETE CASCADE,
    UNIQUE(session_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_grading_results_session ON grading_results(session_id);
`
