// Package repository mounts a repository directory as a content entry tree.
//
// A repository root holds one directory per domain-object kind (roles,
// environments, nodes, ...). Each kind directory is mounted with the content
// handler registered for that kind, so every JSON document beneath it
// inherits the handler through the parent chain.
//
// Walk inflates every document across a bounded worker pool and reports the
// results in path order. Format rewrites every document in canonical form,
// or only reports the documents that would change.
package repository
