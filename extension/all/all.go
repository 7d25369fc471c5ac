// Package all imports all core stash extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/stash/extension/container"
	_ "github.com/jpl-au/stash/extension/core"
	_ "github.com/jpl-au/stash/extension/search"
	_ "github.com/jpl-au/stash/extension/tag"
)
