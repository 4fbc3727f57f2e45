// Package navigation holds the scanned tree together with the stack of
// directories the user has opened, and exposes the three operations a
// presentation layer needs: scan, step into a child and step back out.
//
// All operations on a State are serialized by one mutex. A scan walks the
// filesystem without holding it and only swaps the new tree in under the
// lock, so navigation keeps working on the previous tree until the scan
// lands, at which point it is reset to the new root.
package navigation
