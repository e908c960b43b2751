package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The failing startup runs in a child process since log.Fatalf exits.
func TestMainReportsConfigErrors(t *testing.T) {
	if os.Getenv("WPGRAPHQL_RUN_MAIN") == "1" {
		os.Args = []string{"wpgraphql", "-config", os.Getenv("WPGRAPHQL_CONFIG")}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMainReportsConfigErrors$")
	cmd.Env = append(os.Environ(),
		"WPGRAPHQL_RUN_MAIN=1",
		"WPGRAPHQL_CONFIG="+filepath.Join(t.TempDir(), "missing.yaml"),
	)
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, string(out))
	assert.Contains(t, string(out), "Could not load config: ")
	assert.Contains(t, string(out), "missing.yaml")
	assert.NotContains(t, string(out), "{Key:")
}
