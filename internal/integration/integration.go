// Package integration provides embedded shell integration snippets.
package integration

import (
	"bytes"
	_ "embed"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"
)

// BinaryName is the name the command is installed under.
const BinaryName = "disk-usage"

// Shell contains the POSIX shell function that browses sizes and changes
// into the directory left open.
//
//go:embed shell.sh
var Shell string

// Render renders the integration script with the path of the disk-usage binary.
func Render() (string, error) {
	// Prefer the installed binary, fall back to the running one
	binary, err := exec.LookPath(BinaryName)
	if err != nil {
		binary, err = os.Executable()
		if err != nil {
			return "", err
		}
	}

	binary = filepath.ToSlash(binary)

	tmpl, err := template.New("shell").Parse(Shell)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"Binary": binary,
	}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
