//go:build integration
// +build integration

package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSQLiteConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "cli.yaml")
	content := fmt.Sprintf("database:\n  type: sqlite\n  dsn: %s\n", filepath.Join(dir, "genno.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newTestRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	rootCmd := &cobra.Command{Use: "genno-cli", SilenceUsage: true}
	rootCmd.PersistentFlags().String("config", "", "")
	require.NoError(t, InitMigrateCommands(rootCmd))
	require.NoError(t, InitCreditCommands(rootCmd))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	return rootCmd, &out
}

func TestCreditCommands_MigrateResetShow(t *testing.T) {
	configPath := writeSQLiteConfig(t)

	rootCmd, _ := newTestRoot(t)
	rootCmd.SetArgs([]string{"migrate", "--config", configPath})
	require.NoError(t, rootCmd.Execute())

	rootCmd, out := newTestRoot(t)
	rootCmd.SetArgs([]string{"credits", "reset", "--config", configPath})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "reset 0 user(s)")

	rootCmd, out = newTestRoot(t)
	rootCmd.SetArgs([]string{"credits", "show", "user_new", "--config", configPath})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "plan:    free")
	assert.Contains(t, out.String(), "credits: 3")
}

func TestCreditCommands_ShowRequiresUser(t *testing.T) {
	rootCmd, _ := newTestRoot(t)
	rootCmd.SetArgs([]string{"credits", "show"})

	assert.Error(t, rootCmd.Execute())
}
