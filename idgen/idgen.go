// Package idgen provides a pluggable identifier generator, with
// prefixed generators for Documents and MutationObservers.
// domtree.NewDocument stores the Documents generator in its document
// state but never calls it, and nothing uses Observers: no log field or
// demo CLI output carries one of these ids.
package idgen

import "github.com/google/uuid"

// Generator produces a unique string identifier on each call.
type Generator func() string

// UUIDv7 returns a Generator producing RFC 9562 UUIDv7 strings: time
// sortable, globally unique, no coordination required.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Prefixed wraps a Generator, prepending a fixed, type-scoped prefix to
// every id it produces (e.g. "doc_", "obs_").
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Default is the module-wide default generator: a plain UUIDv7.
var Default Generator = UUIDv7()

// Documents hands out ids for Document instances.
var Documents Generator = Prefixed("doc_", Default)

// Observers hands out ids for MutationObserver instances.
var Observers Generator = Prefixed("obs_", Default)
