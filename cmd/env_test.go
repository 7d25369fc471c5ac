// The cmd tests build the stash binary once and drive it as a subprocess,
// exercising command parsing, extensions, the service and SQLite together.
// Each environment gets its own working directory and HOME so config and
// audit logs never leak between tests.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the stash binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "stash-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "stash"
		if os.PathSeparator == '\\' {
			binaryName = "stash.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		wd, err := os.Getwd()
		if err != nil {
			buildErr = err
			return
		}
		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = filepath.Dir(wd)
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates an environment without a database.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newTestEnv creates an environment with an initialised database and a
// configured author.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	env.run("config", "author.name", "Tester")
	return env
}

// run executes stash with args and fails the test on error.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("stash %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes stash and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	return e.runStdinErr("", args...)
}

// runStdinErr executes stash with input on stdin.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home, "STASH_DB=", "STASH_DIR=")
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runJSON executes stash with -o json and decodes stdout into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	out := e.run(append(args, "-o", "json")...)
	require.NoError(e.t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain s.
func (e *testEnv) notContains(output, s string) {
	e.t.Helper()
	assert.NotContains(e.t, output, s)
}

// write creates a file in the environment's working directory.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// seedFarm creates the containers and items most tests search over.
func (e *testEnv) seedFarm() {
	e.t.Helper()
	e.run("new", "farm/shed", "--capacity", "4")
	e.run("new", "farm/barn")
	e.run("add", "farm/shed", "iridium_ore", "--display", "Iridium Ore", "--category", "Resource", "--tag", "rare", "--stack", "5")
	e.run("add", "farm/shed", "copper_ore", "--display", "Copper Ore", "--category", "Resource")
	e.run("add", "farm/barn", "hay", "--display", "Hay", "--category", "Animal Product", "--stack", "40")
	e.run("add", "farm/barn", "iridium_sprinkler", "--display", "Iridium Sprinkler", "--category", "Crafting")
}
