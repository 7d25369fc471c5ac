/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go opens the inventory service and hands it to the
// extensions.
//
// Extensions register in init() but are not initialised until the first
// command that needs a database runs. The service is created once and shared
// through the extension Context.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jpl-au/stash/extension"
	"github.com/jpl-au/stash/internal/config"
	"github.com/jpl-au/stash/internal/inventory"
	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/repo"
)

// noStoreCommands lists commands that skip store initialisation: bootstrap
// commands plus those extensions declare through extension.Storeless.
var noStoreCommands map[string]bool

// authorRequiredCommands lists commands that change inventory data.
var authorRequiredCommands = map[string]bool{
	"new":     true,
	"add":     true,
	"rm":      true,
	"restore": true,
	"mv":      true,
	"rename":  true,
	"import":  true,
	"option":  true,
	"tag":     true,
	"filter":  true,
	"query":   true,
	"vacuum":  true,
}

func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
		"llm":    true,
		"help":   true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	extService *inventory.Service
	initOnce   sync.Once
	initErr    error
)

// openService opens the database named by --db, or the one under --dir when
// that is set.
func openService() (*inventory.Service, error) {
	if d := Dir(); d != "" {
		path := filepath.Join(d, repo.Dir, repo.DBFileName(DB()))
		if _, err := os.Stat(path); err != nil {
			return nil, repo.ErrNotInitialised
		}
		return inventory.Open(path)
	}
	return inventory.New(DB())
}

// OpenService opens a service for storeless commands that manage their own
// lifecycle. Callers close it.
func OpenService() (*inventory.Service, error) {
	return openService()
}

// initExtensions creates the shared service and runs Init on every
// Initializable extension, once per process.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := openService()
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		log.SetProject(filepath.Dir(svc.DBPath()))

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, svc.DB(), cfg)
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if in, ok := ext.(extension.Initializable); ok {
				if err := in.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// Context returns the shared extension context. It is nil for storeless
// commands.
func Context() extension.Context { return extContext }

func closeService() {
	if extService == nil {
		return
	}
	if err := extService.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", err)
	}
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions. Called
// once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
