// Package entry presents a directory hierarchy as a tree of addressable nodes.
//
// Entry is the generic node: it knows its name, its parent and the raw path it
// projects onto, and delegates read, write, exists and delete to a
// filesystem.FileSystemProvider. Children are built lazily on each call and
// never cached, so re-querying a parent yields fresh, equal nodes.
//
// ContentEntry layers typed JSON documents on top. It resolves its content
// handler and pretty-print flag by walking up the parent chain, admits only
// .json files as children, canonicalizes JSON on write and inflates documents
// into typed objects on read.
//
// Two error contracts coexist:
//   - Entry.Read, Entry.Write and ContentEntry.Write surface every failure.
//   - ContentEntry.Object absorbs read, parse and handler failures into a
//     skipped repofs.Inflated result (logged), so a bulk walk survives a
//     corrupt file. Only repofs.ErrConfiguration escapes it.
//
// Nodes carry no mutable state after construction and are safe for
// concurrent use. Writes to the same path from different nodes are
// last-writer-wins.
package entry
