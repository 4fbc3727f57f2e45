// Package cli implements the disk-usage command: option and config loading,
// logging setup, and the interactive, table and JSON front ends.
package cli
