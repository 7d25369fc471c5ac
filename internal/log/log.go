// Package log provides centralised audit logging for stash operations.
// Logs are stored in ~/.stash/log/stash-log.db and track all CLI commands
// and MCP tool invocations across projects.
//
// # Fluent API
//
//	log.Event("container:add", "add").
//		Author(cmd.Author()).
//		Container(name).
//		Item(it.Key).
//		Write(err)
//
//	log.Event("search:search", "search").
//		Author(cmd.Author()).
//		Query(text).
//		Count(len(res.Matches)).
//		Detail("mode", mode.String()).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source    string // e.g. "container:add", "mcp:stash_search"
	Author    string
	Action    string // verb: add, remove, search, filter, ...
	Container string // container the operation targets
	Item      string // item key the operation targets
	Query     string // raw query text for searches and filters
	Count     int    // result count (matches, imported items, purged rows)

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry. Create with [Event], chain setters, then
// call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. MCP tools use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Container sets the container the operation targets.
func (b *Builder) Container(name string) *Builder {
	b.entry.Container = name
	return b
}

// Item sets the key of the item the operation targets.
func (b *Builder) Item(key string) *Builder {
	b.entry.Item = key
	return b
}

// Query records the raw query text.
func (b *Builder) Query(text string) *Builder {
	b.entry.Query = text
	return b
}

// Count records how many results the operation produced.
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair for data that has no dedicated field.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success from err.
//
//	it, err := svc.Add(ctx, name, item, opts)
//	log.Event("container:add", "add").Container(name).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Callers may ignore the error; logging is best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .stash directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. A no-op when the logger is not open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
