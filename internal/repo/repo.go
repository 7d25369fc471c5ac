// Package repo initialises and discovers stash repositories.
//
// A stash repository is a .stash directory holding one or more SQLite
// databases (stash.db, stash-<name>.db). Discovery walks up from the working
// directory until it finds a .stash directory with the requested database,
// the way git finds .git.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/stash/internal/store"
)

const (
	// Dir is the directory name for the stash repository.
	Dir = ".stash"
	// DBFile is the default database filename.
	DBFile = "stash.db"

	dbPrefix = "stash-"
)

// DBFileName returns the database filename for a given name.
// "" gives "stash.db", "farm" gives "stash-farm.db", and a name already
// ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return dbPrefix + name + ".db"
}

// ErrNotInitialised is returned when no stash repository is found.
var ErrNotInitialised = errors.New("stash not initialised (run 'stash init')")

const gitignoreTemplate = `# stash - ignore local config and catalog exports
# Database files (*.db) are the source of truth and should be committed
config.yaml
*.zst
`

// Init creates .stash and an empty database in dir ("" for the current
// directory). Config is not written; that is "stash config"'s job.
//   - force: replace an existing database
//   - db: database name, "" for stash.db
//   - local: list the database in .stash/.gitignore
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	stashDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(stashDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(stashDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Written once; later inits keep local database entries.
	gitignore := filepath.Join(stashDir, ".gitignore")
	if _, err := os.Stat(gitignore); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(gitignore, []byte(gitignoreTemplate), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, stashDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}
	return nil
}

// Discover walks up the directory tree looking for the named database and
// returns its full path.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	var found string
	err := walkUp(func(dir string) bool {
		p := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(p); err == nil {
			found = p
			return true
		}
		return false
	})
	return found, err
}

// DiscoverDir finds the nearest .stash directory.
func DiscoverDir() (string, error) {
	var found string
	err := walkUp(func(dir string) bool {
		p := filepath.Join(dir, Dir)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			found = p
			return true
		}
		return false
	})
	return found, err
}

// walkUp calls fn for the working directory and each parent until fn
// returns true. Reaching the root yields ErrNotInitialised.
func walkUp(fn func(dir string) bool) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	for {
		if fn(dir) {
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds database metadata.
type DBInfo struct {
	Name  string // Short name ("" for stash.db, "farm" for stash-farm.db)
	File  string
	Path  string
	Local bool // listed in .gitignore
}

// ListDBs returns the databases in dir, discovering .stash when dir is "".
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		if dir, err = DiscoverDir(); err != nil {
			return nil, fmt.Errorf("discover .stash directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .stash directory: %w", err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		file := e.Name()
		if !strings.HasSuffix(file, ".db") {
			continue
		}
		var name string
		switch {
		case file == DBFile:
		case strings.HasPrefix(file, dbPrefix):
			name = strings.TrimSuffix(strings.TrimPrefix(file, dbPrefix), ".db")
		default:
			continue
		}

		// An unreadable .gitignore counts as shared.
		ignored, _ := IsIgnored(name, dir)
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  file,
			Path:  filepath.Join(dir, file),
			Local: ignored,
		})
	}
	return dbs, nil
}
