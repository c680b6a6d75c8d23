package testsupport

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce   sync.Once
	ttrackrPath string
	buildErr    error
)

// BuildTtrackr builds the ttrackr binary once and returns its path.
func BuildTtrackr(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "ttrackr-bin-")
		if err != nil {
			buildErr = err
			return
		}

		ttrackrPath = filepath.Join(binDir, "ttrackr")
		cmd := exec.Command("go", "build", "-o", ttrackrPath, "./cmd/ttrackr")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build ttrackr: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return ttrackrPath
}

// SetupScriptEnv points $TTRACKR at the binary and gives each script its
// own home directory, so config and database start fresh.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TTRACKR", BuildTtrackr(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	return nil
}

// CmdSetAutodone turns autodone on in the script's config file.
func CmdSetAutodone(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("autodone does not support negation")
	}
	if len(args) != 0 {
		ts.Fatalf("usage: autodone")
	}

	path := filepath.Join(ts.Getenv("HOME"), ".ttrackrrc")
	data := ts.ReadFile(path)
	data = strings.Replace(data, "autodone = false", "autodone = true", 1)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		ts.Fatalf("write config: %v", err)
	}
}

// CmdSleep pauses the script, for tests that need wall-clock seconds to pass.
func CmdSleep(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("sleep does not support negation")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: sleep DURATION")
	}

	d, err := time.ParseDuration(args[0])
	if err != nil {
		ts.Fatalf("parse duration: %v", err)
	}
	time.Sleep(d)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
