// Package registry persists per-video completion state in SQLite.
//
// The Store maps video names to two monotone completion flags (enhancement,
// metadata extraction) and the descriptor the metadata role produced. TrySet
// operations are atomic and report whether a transition actually occurred, so
// duplicate worker callbacks collapse to a single visible transition.
// Callbacks for names the registry has never seen create the row fail-open
// rather than losing the report.
//
// The database is transient coordination state, not an archive. Schema changes
// bump the version in schema.go; delete the database to adopt a new schema.
package registry
