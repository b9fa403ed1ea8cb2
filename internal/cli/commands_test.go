package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vvka-141/azsm/pkg/azsm"
)

func executeForTest(t *testing.T, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs([]string{})
	}()
	return rootCmd.Execute()
}

func TestServerGet_MissingNameIsUsageError(t *testing.T) {
	err := executeForTest(t, "server", "get")
	if err == nil {
		t.Fatal("expected error for missing --name")
	}
	if code := azsm.ExitCodeForError(err); code != azsm.ExitUsageError {
		t.Errorf("expected exit code %d (usage), got %d for: %v", azsm.ExitUsageError, code, err)
	}
}

func TestUnknownCommand_IsUsageError(t *testing.T) {
	err := executeForTest(t, "bogus")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if code := azsm.ExitCodeForError(err); code != azsm.ExitUsageError {
		t.Errorf("expected exit code %d (usage), got %d for: %v", azsm.ExitUsageError, code, err)
	}
}

func TestUnknownFlag_IsUsageError(t *testing.T) {
	err := executeForTest(t, "server", "list", "--no-such-flag")
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if code := azsm.ExitCodeForError(err); code != azsm.ExitUsageError {
		t.Errorf("expected exit code %d (usage), got %d for: %v", azsm.ExitUsageError, code, err)
	}
}

func TestToken_MissingAudienceIsUsageError(t *testing.T) {
	err := executeForTest(t, "token")
	if err == nil {
		t.Fatal("expected error for missing --audience")
	}
	if code := azsm.ExitCodeForError(err); code != azsm.ExitUsageError {
		t.Errorf("expected exit code %d (usage), got %d for: %v", azsm.ExitUsageError, code, err)
	}
}

func TestRootCmd_ListsCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[strings.Fields(cmd.Use)[0]] = true
	}
	for _, want := range []string{"server", "token", "secret", "version"} {
		if !names[want] {
			t.Errorf("expected %q command to be registered", want)
		}
	}
}
