// Package memory provides an in-memory implementation of the store
// interfaces. It backs the running application between snapshots: all
// reads and writes happen against process memory, with the snapshot
// package providing durability.
package memory
