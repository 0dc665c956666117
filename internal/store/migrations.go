package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS submissions (
	id           TEXT PRIMARY KEY,
	prompt       TEXT NOT NULL,
	mode         TEXT NOT NULL,
	duration_sec INTEGER NOT NULL,
	language     TEXT NOT NULL,
	outcome      TEXT NOT NULL CHECK(outcome IN ('created', 'failed')),
	project_id   TEXT NOT NULL DEFAULT '',
	error        TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS drafts (
	id           INTEGER PRIMARY KEY CHECK(id = 1),
	prompt       TEXT NOT NULL,
	mode         TEXT NOT NULL,
	duration_sec INTEGER NOT NULL,
	language     TEXT NOT NULL,
	updated_at   DATETIME NOT NULL
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
