// Package probe reports the logical and on-disk size of files.
//
// The on-disk size is computed by a Policy chosen once per scan: the plain
// logical size, the logical size rounded up to the volume's cluster size,
// or the allocation reported by the operating system (which accounts for
// sparse and compressed files). A single scan must use exactly one policy,
// since sibling ordering and relative sizes assume one consistent metric.
package probe
