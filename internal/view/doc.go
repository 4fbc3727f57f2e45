// Package view projects tree nodes into flat, display-ready rows.
package view
