// repo_gitignore.go marks databases local (gitignored) or shared.
//
// Only the database lines and the local-section header are touched; the
// rest of .stash/.gitignore is preserved as written.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

// parseGitignore reads a gitignore file and returns its lines (trimmed).
func parseGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// IgnoreDB adds a database to the gitignore (marks as local).
// If dir is empty, discovers .stash directory from current working directory.
func IgnoreDB(name, dir string) error {
	gitignore, dbFile, err := gitignorePath(name, dir)
	if err != nil {
		return err
	}

	lines, err := parseGitignore(gitignore)
	if err != nil {
		return err
	}

	if slices.Contains(lines, dbFile) {
		return nil
	}

	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}
	s := string(content)

	if !slices.Contains(lines, localDBHeader) {
		s += "\n" + localDBHeader + "\n"
	}

	s += dbFile + "\n"

	return os.WriteFile(gitignore, []byte(s), 0644)
}

// UnignoreDB removes a database from the gitignore (marks as shared).
// If dir is empty, discovers .stash directory from current working directory.
func UnignoreDB(name, dir string) error {
	gitignore, dbFile, err := gitignorePath(name, dir)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(gitignore)
	if err != nil {
		return err
	}

	lines := strings.Split(string(content), "\n")
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) != dbFile {
			out = append(out, line)
		}
	}

	result := strings.Join(out, "\n")
	if idx := strings.Index(result, localDBHeader); idx != -1 {
		rest := strings.TrimSpace(result[idx+len(localDBHeader):])
		if rest == "" || !strings.Contains(rest, ".db") {
			result = strings.TrimSuffix(result[:idx], "\n")
		}
	}

	return os.WriteFile(gitignore, []byte(result), 0644)
}

// IsIgnored checks if a database is in the gitignore.
// If dir is empty, discovers .stash directory from current working directory.
func IsIgnored(name, dir string) (bool, error) {
	gitignore, dbFile, err := gitignorePath(name, dir)
	if err != nil {
		return false, err
	}

	lines, err := parseGitignore(gitignore)
	if err != nil {
		return false, err
	}

	return slices.Contains(lines, dbFile), nil
}

// gitignorePath returns the .gitignore path inside dir (discovered when
// empty) and the filename of database name.
func gitignorePath(name, dir string) (string, string, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return "", "", err
		}
	}
	return filepath.Join(dir, ".gitignore"), DBFileName(name), nil
}
