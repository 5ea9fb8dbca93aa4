// Package manifest persists completed generation runs in SQLite.
//
// The Store records, per run, the design constants (seed, repeats,
// categories per condition), the discovered item counts, and the written
// trial list files with their SHA256 digests, so a past output can be
// audited for reproducibility. The database records run metadata only;
// trial lists themselves live as write-once CSV files.
//
// Schema changes add a migration under migrations/ with the next sequence
// number.
package manifest
