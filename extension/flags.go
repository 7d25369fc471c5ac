// flags.go names every CLI flag so Flags().String(...) and GetString(...)
// cannot drift apart. Flag<PascalCase> matches the kebab-case flag.

package extension

const (
	// Boolean flags

	FlagAll      = "all"       // Include deleted containers
	FlagDeleted  = "deleted"   // Only deleted containers
	FlagDisable  = "disable"   // Disable the container filter
	FlagDryRun   = "dry-run"   // Preview without making changes
	FlagEnable   = "enable"    // Enable the container filter
	FlagExact    = "exact"     // Whole-attribute matching
	FlagLocal    = "local"     // Use local scope (gitignored)
	FlagLong     = "long"      // Long format output
	FlagPartial  = "partial"   // Substring matching
	FlagDimmed   = "dimmed"    // Also list items that do not match
	FlagShare    = "share"     // Mark database as shared (committed)
	FlagRecurse  = "recursive" // Include nested containers
	FlagReverse  = "reverse"   // Reverse sort order
	FlagTree     = "tree"      // Container hierarchy

	// String flags

	FlagCategory  = "category"   // Item category
	FlagContainer = "container"  // Restrict to one container
	FlagDisplay   = "display"    // Item display name
	FlagOlderThan = "older-than" // Duration threshold
	FlagPrefix    = "prefix"     // Restrict to containers under a name
	FlagSaved     = "saved"      // Name of a saved query
	FlagSort      = "sort"       // Sort field
	FlagTag       = "tag"        // Context tag (repeatable)

	// Integer flags

	FlagCapacity = "capacity" // Container slot count
	FlagLimit    = "limit"    // Limit number of results
	FlagStack    = "stack"    // Item stack size
)
