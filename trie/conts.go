// Package trie is a segment-based storage for named HTTP routes.
package trie

// PathSeparator splits templates and request paths into segments.
const PathSeparator = "/"

// MethodWild wild HTTP method
const MethodWild = "*"
