// Package reader holds the feed-reader runtime: the shared UI root, the
// menu controller and the feed loader.
//
// The Root is the explicit context both controllers are built on. It owns
// the rendered entry list and the set of marker classes. Mutation is
// unexported so that only Menu (the menu-hidden class) and Loader (the
// rendered entries) can change it; every other caller observes copies.
//
// Loader.Load resolves the feed index synchronously and then fetches on its
// own goroutine. The returned Result settles exactly once, after the new
// entries are committed to the Root, or with an ErrFetchFailure error that
// leaves the Root at its last-good render.
package reader
