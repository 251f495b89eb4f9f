// Package main provides tests for the sqlsplit CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlsplit/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(buf.String(), "sqlsplit") {
		t.Errorf("version output should contain 'sqlsplit', got: %s", buf.String())
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	for _, expected := range []string{"split", "exec", "repl", "history", "version"} {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestSplitCommandStdin(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader("SELECT 1; SELECT ';' AS x;"))
	cmd.SetArgs([]string{"split", "--output", "plain"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("split command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "SELECT 1;") {
		t.Errorf("split output should contain first statement, got: %s", output)
	}
	if !strings.Contains(output, "SELECT ';' AS x;") {
		t.Errorf("split output should keep the quoted semicolon, got: %s", output)
	}
}

func TestSplitCommandFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sql")
	script := "CREATE TABLE t (id INT);\nINSERT INTO t VALUES (1);\n"
	if err := os.WriteFile(path, []byte(script), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"split", path, "--output", "json", "--kinds", "--dialect", "sqlite"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("split command error = %v", err)
	}

	output := buf.String()
	for _, expected := range []string{`"ddl"`, `"dml"`, "CREATE TABLE t (id INT)"} {
		if !strings.Contains(output, expected) {
			t.Errorf("json output should contain %q, got: %s", expected, output)
		}
	}
}

func TestSplitCommandInvalidDialect(t *testing.T) {
	cmd := cli.NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader("SELECT 1;"))
	cmd.SetArgs([]string{"split", "--dialect", "oracle"})

	if err := cmd.Execute(); err == nil {
		t.Error("unknown dialect should return an error")
	}
}

func TestExecCommandRequiresDSN(t *testing.T) {
	cmd := cli.NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader("SELECT 1;"))
	cmd.SetArgs([]string{"exec"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "--dsn") {
		t.Errorf("exec without dsn should fail mentioning --dsn, got: %v", err)
	}
}

func TestExecAndHistoryCommands(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "script.sql")
	dbPath := filepath.Join(dir, "target.db")
	historyPath := filepath.Join(dir, "history.db")

	script := "CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT);\nINSERT INTO t (name) VALUES ('a; b');\n"
	if err := os.WriteFile(scriptPath, []byte(script), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"exec", scriptPath,
		"--dialect", "sqlite",
		"--dsn", dbPath,
		"--history", historyPath,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("exec command error = %v", err)
	}
	if !strings.Contains(buf.String(), "Executed 2 statements") {
		t.Errorf("exec output should report 2 statements, got: %s", buf.String())
	}

	// The batch must show up in history.
	cmd2 := cli.NewRootCmd()
	buf2 := new(bytes.Buffer)
	cmd2.SetOut(buf2)
	cmd2.SetErr(new(bytes.Buffer))
	cmd2.SetArgs([]string{"history", "--history", historyPath})

	if err := cmd2.Execute(); err != nil {
		t.Fatalf("history command error = %v", err)
	}
	output := buf2.String()
	if !strings.Contains(output, "success") {
		t.Errorf("history output should contain a success row, got: %s", output)
	}
	if !strings.Contains(output, "sqlite") {
		t.Errorf("history output should name the dialect, got: %s", output)
	}
}

func TestExecCommandRollsBack(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "bad.sql")
	dbPath := filepath.Join(dir, "target.db")
	historyPath := filepath.Join(dir, "history.db")

	script := "CREATE TABLE t (id INTEGER);\nTHIS IS NOT SQL;\n"
	if err := os.WriteFile(scriptPath, []byte(script), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := cli.NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"exec", scriptPath,
		"--dialect", "sqlite",
		"--dsn", dbPath,
		"--history", historyPath,
	})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("exec with invalid SQL should fail")
	}
	if !strings.Contains(err.Error(), "statement 2 of 2") {
		t.Errorf("error should name the failing statement, got: %v", err)
	}

	// The failure must be recorded.
	cmd2 := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd2.SetOut(buf)
	cmd2.SetErr(new(bytes.Buffer))
	cmd2.SetArgs([]string{"history", "--history", historyPath})

	if err := cmd2.Execute(); err != nil {
		t.Fatalf("history command error = %v", err)
	}
	if !strings.Contains(buf.String(), "failed") {
		t.Errorf("history output should contain a failed row, got: %s", buf.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"unknown-command"})

	if err := cmd.Execute(); err == nil {
		t.Error("unknown command should return an error")
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
