// Package sizetree builds an immutable tree of file and directory sizes.
//
// A Builder walks a directory depth-first on the calling goroutine. Every
// directory's children are sorted by on-disk size, largest first, and its
// aggregate sizes are the sums over its children. Unreadable entries never
// abort a scan: they are logged and either skipped or recorded as empty
// files.
//
// Symbolic links are resolved when FollowSymlinks is set. There is no
// cycle detection, so a cyclic link makes the walk recurse until the
// operating system refuses to resolve the path.
package sizetree
