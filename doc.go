// Package localnotes is the composition root of a single-user note store.
//
// A note collection is an ordered list of notes, newest first, kept in
// memory and written through to a storage backend after every change. The
// core (pkg/core) knows nothing about files; adapters under pkg/adapters
// provide the filesystem and in-memory backends.
//
// Features:
//
//   - **Write-through**: every create, update or delete rewrites the whole
//     collection under a single key before returning.
//   - **Crash safe files**: the filesystem adapter replaces its data file
//     atomically.
//   - **Forgiving load**: missing or corrupt data opens as an empty
//     collection instead of failing.
//   - **Live reload**: the filesystem adapter reports external edits so a
//     Store can Reload.
//
// Usage:
//
//	store, err := localnotes.New(ctx, "./notes",
//		localnotes.WithLogger(logger),
//	)
//
//	id := store.Create(ctx)
//	store.Update(ctx, id, localnotes.Patch{}.WithTitle("Groceries"))
//	matches := store.Search("grocer")
package localnotes
