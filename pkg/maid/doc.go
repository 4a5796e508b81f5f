// Package maid provides a deferred-cleanup task registry. A Maid
// accumulates heterogeneous cleanup tasks (callables, disconnectable
// connections, destroyable resources, nested maids, terminable execution
// handles) and disposes all of them exactly once, in insertion order,
// when DoCleaning is called or a linked resource is destroyed.
package maid
