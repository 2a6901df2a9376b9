// Package snapshot persists the reminder store to a versioned JSON file
// and restores it on startup. The file is the application's sole durability
// mechanism: every save rewrites the complete snapshot atomically, and a
// load either yields the whole recorded set or fails without partial
// results.
package snapshot
