package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const examplesDir = "../../examples/manifests"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", ""))

	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`validation:
  block_handler_limit: total
  concurrency: 2
registry:
  db:
    path: %s
logging:
  default_level: error
`, filepath.Join(dir, "registry.db"))

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "validate",
		filepath.Join(examplesDir, "erc20-transfers.yaml"),
		filepath.Join(examplesDir, "chain-events.yaml"),
	)
	require.NoError(t, err)
	require.Contains(t, out, "2 manifest(s) accepted")

	out, err = execute(t, "validate",
		filepath.Join(examplesDir, "erc20-transfers.yaml"),
		filepath.Join(examplesDir, "polling-block-handler.yaml"),
	)
	require.ErrorContains(t, err, "1 of 2 manifest(s) rejected")
	require.Contains(t, out, "✗ "+filepath.Join(examplesDir, "polling-block-handler.yaml"))
}

func TestValidateCmd_BlockHandlerLimitOverride(t *testing.T) {
	t.Parallel()

	mixed := filepath.Join(examplesDir, "mixed-block-handlers.json")

	_, err := execute(t, "validate", mixed)
	require.ErrorContains(t, err, "policy: total")

	out, err := execute(t, "validate", "--block-handler-limit", "call-filtered", mixed)
	require.NoError(t, err)
	require.Contains(t, out, "policy: call-filtered")

	_, err = execute(t, "validate", "--block-handler-limit", "some", mixed)
	require.ErrorContains(t, err, "unknown block handler limit policy")
}

func TestValidateCmd_RequiresArgs(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "validate")
	require.Error(t, err)
}

func TestRegisterAndListCmd(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)

	out, err := execute(t, "register", "-c", cfgPath, "--name", "usdc", filepath.Join(examplesDir, "erc20-transfers.yaml"))
	require.NoError(t, err)
	require.Contains(t, out, "registered usdc as 0x")

	out, err = execute(t, "register", "-c", cfgPath, filepath.Join(examplesDir, "erc20-transfers.yaml"))
	require.NoError(t, err)
	require.Contains(t, out, "already registered")

	_, err = execute(t, "register", "-c", cfgPath, filepath.Join(examplesDir, "unbound-call-handler.toml"))
	require.Error(t, err)

	out, err = execute(t, "list", "-c", cfgPath)
	require.NoError(t, err)
	require.Contains(t, out, "usdc")
	require.Contains(t, out, "mainnet")
	require.NotContains(t, out, "Router")
	require.Contains(t, out, "showing 1 of 1 manifests")
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv(configEnvVar, writeConfig(t))

	out, err := execute(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "(no manifests registered)")
}

func TestLoadEnvFile(t *testing.T) {
	t.Parallel()

	require.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), ".env"), false))
	require.Error(t, loadEnvFile(filepath.Join(t.TempDir(), ".env"), true))
	require.NoError(t, loadEnvFile("", true))
}

func TestSchemaCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "schema")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Contains(t, doc, "properties")
}
