// Package checksum computes content digests for repository documents.
//
// Two digests are offered: a raw digest of the stored bytes, and a
// normalized digest of the document's canonical rendering, which stays
// stable across formatting-only changes (whitespace, key order, comments,
// trailing commas).
package checksum
