// Package main provides tests for the cql2 CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/geocql/cql2/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")
	return filepath.Join(wd, "..", "..", "internal", "cli", "testdata")
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	require.NoError(t, err, "version command error")
	assert.Contains(t, buf.String(), "cql2", "version output should mention cql2")
}

func TestEvalCommandTextFilterTrue(t *testing.T) {
	td := testdataDir(t)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"eval", filepath.Join(td, "price.cql2"),
		"--resource", filepath.Join(td, "price_resource.json"),
	})

	err := cmd.Execute()
	require.NoError(t, err, "eval command error")
	assert.Equal(t, "T\n", buf.String())
}

func TestEvalCommandJSONFilter(t *testing.T) {
	td := testdataDir(t)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"eval", filepath.Join(td, "price.json"),
		"--resource", filepath.Join(td, "price_resource.json"),
	})

	err := cmd.Execute()
	require.NoError(t, err, "eval command error")
	assert.Equal(t, "T\n", buf.String())
}

func TestSQLCommandSQLiteDialect(t *testing.T) {
	td := testdataDir(t)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"sql", filepath.Join(td, "price.cql2"),
		"--dialect", "sqlite",
	})

	err := cmd.Execute()
	require.NoError(t, err, "sql command error")
	assert.Contains(t, buf.String(), "price")
	assert.Contains(t, buf.String(), "100")
}

func TestSQLCommandRejectsUnknownDialect(t *testing.T) {
	td := testdataDir(t)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"sql", filepath.Join(td, "price.cql2"),
		"--dialect", "nosuchdialect",
	})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"unknown-command"})

	err := cmd.Execute()
	assert.Error(t, err, "unknown command should return an error")
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
