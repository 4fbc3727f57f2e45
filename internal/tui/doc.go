// Package tui is the interactive terminal front end. It drives a
// navigation state through three operations only: scan from the root,
// step into the row under the cursor and step back out.
package tui
