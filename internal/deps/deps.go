// Package deps resolves the dependency archives of a Leiningen project.
//
// The dependency graph itself belongs to the build tool; this package only
// asks it for the resolved classpath and keeps the jar entries.
package deps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/cljtags/internal/shell"
	"github.com/spf13/afero"
)

// ErrNoBuildFile is returned when the project root has no build descriptor.
var ErrNoBuildFile = errors.New("build descriptor not found")

// Resolver produces the ordered list of absolute dependency archive paths.
type Resolver interface {
	Archives() ([]string, error)
}

// CommandResolver asks the build tool for the project classpath.
type CommandResolver struct {
	Commander shell.Commander
	// Root is the project directory the command runs in.
	Root string
	// Command is the program and arguments, e.g. ["lein", "classpath"].
	Command []string
}

// Archives implements Resolver.
func (r *CommandResolver) Archives() ([]string, error) {
	name, args, err := shell.Split(r.Command)
	if err != nil {
		return nil, fmt.Errorf("dependency command: %w", err)
	}
	res, err := r.Commander.Run(r.Root, name, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve dependencies with %s: %w", strings.Join(r.Command, " "), err)
	}
	return ParseClasspath(r.Root, res.Stdout), nil
}

// StaticResolver returns a fixed archive list.
type StaticResolver struct {
	Root  string
	Paths []string
}

// Archives implements Resolver.
func (r *StaticResolver) Archives() ([]string, error) {
	return normalize(r.Root, r.Paths), nil
}

// ParseClasspath extracts archive entries from classpath output. Entries are
// separated by the OS path list separator and may span several lines; only
// jars are kept, made absolute against root, in first-seen order.
func ParseClasspath(root, output string) []string {
	var entries []string
	for _, line := range strings.Split(output, "\n") {
		for _, entry := range filepath.SplitList(strings.TrimSpace(line)) {
			if isArchive(entry) {
				entries = append(entries, entry)
			}
		}
	}
	return normalize(root, entries)
}

func isArchive(entry string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(entry)), ".jar")
}

func normalize(root string, entries []string) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(root, entry)
		}
		if abs, err := filepath.Abs(entry); err == nil {
			entry = abs
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		out = append(out, entry)
	}
	return out
}

// CheckProject verifies that root contains the build descriptor.
func CheckProject(fs afero.Fs, root, buildFile string) error {
	path := filepath.Join(root, buildFile)
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNoBuildFile)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, ErrNoBuildFile)
	}
	return nil
}
