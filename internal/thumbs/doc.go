// Package thumbs finds, reports and removes cached thumbnails.
//
// Three operations are offered by [Thumbnailer]:
//
//   - [Thumbnailer.Locate] maps one source file to its thumbnails.
//   - [Thumbnailer.Delete] maps many source paths (walked by the walker
//     package) to their thumbnails and optionally removes them.
//   - [Thumbnailer.Cleanup] goes the other way: it reads the origin URI
//     stored in each cached PNG and reports thumbnails whose origin is gone.
//
// Each operation feeds matches to a [Visitor]. Locate collects, Delete and
// Cleanup use a remover that either deletes right away or only reports, so
// the caller can confirm before calling [Remove] on the collected set.
//
// Recoverable problems on a single entry (an unreadable PNG, a missing
// metadata chunk, a file without access time) are logged and counted in the
// result. Only fatal problems end an operation with an error.
package thumbs
