package bootstrap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Requirement is a single entry of the dependency manifest.
type Requirement struct {
	// Name is the package name, empty for directive lines such as
	// "-r extra.txt".
	Name string
	// Constraint is the version specifier including its operator, for
	// example "==0.104.1" or ">=2.0". Empty when the entry is unpinned.
	Constraint string
	// Raw is the entry as written, with comments stripped.
	Raw string
}

// specifier operators ordered so two-character operators match first.
var specifierOps = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

// ParseManifest reads a requirements-style manifest: one entry per line,
// blank lines and #-comments skipped, inline comments stripped.
func ParseManifest(r io.Reader) ([]Requirement, error) {
	var reqs []Requirement

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		entry := scanner.Text()

		if idx := strings.Index(entry, "#"); idx >= 0 {
			entry = entry[:idx]
		}
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		reqs = append(reqs, parseEntry(entry))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest line %d: %w", line, err)
	}

	return reqs, nil
}

// ParseManifestFile opens and parses the manifest at path.
func ParseManifestFile(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	reqs, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return reqs, nil
}

func parseEntry(entry string) Requirement {
	// Directive lines (-r, -e, --index-url ...) are passed through to the
	// installer untouched.
	if strings.HasPrefix(entry, "-") {
		return Requirement{Raw: entry}
	}

	for _, op := range specifierOps {
		if idx := strings.Index(entry, op); idx > 0 {
			return Requirement{
				Name:       strings.TrimSpace(entry[:idx]),
				Constraint: strings.TrimSpace(entry[idx:]),
				Raw:        entry,
			}
		}
	}

	return Requirement{Name: entry, Raw: entry}
}
