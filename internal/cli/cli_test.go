package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	goflags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseOnly parses args without executing the matched command, so flag
// handling can be tested without a database.
func parseOnly(t *testing.T, args []string) (*GlobalFlags, *commands, error) {
	t.Helper()

	parser, globals, cmds := buildParser("test")
	parser.CommandHandler = func(goflags.Commander, []string) error { return nil }
	_, err := parser.ParseArgs(args)
	return globals, cmds, err
}

func TestVersionFlag(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := RunWithArgs("0.1.0-test", []string{"--version"})

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	assert.NoError(t, err)
	assert.Contains(t, output, "haru 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	_ = RunWithArgs("1.2.3", []string{"--version"})

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := strings.TrimSpace(buf.String())

	assert.Equal(t, "haru 1.2.3", output)
}

func TestAllSubcommandsExist(t *testing.T) {
	expected := []string{"add", "edit", "delete", "list", "month", "week", "watch", "export", "status", "purge"}
	parser, _, _ := buildParser("test")

	for _, name := range expected {
		cmd := parser.Find(name)
		assert.NotNil(t, cmd, "subcommand %q should exist", name)
	}
}

func TestAddRequiresTitle(t *testing.T) {
	err := RunWithArgs("test", []string{"add", "--date", "2025-07-15"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--title is required")
}

func TestAddRequiresDate(t *testing.T) {
	err := RunWithArgs("test", []string{"add", "--title", "회의"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--date is required")
}

func TestEditRequiresID(t *testing.T) {
	err := RunWithArgs("test", []string{"edit", "--title", "회의"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id is required")
}

func TestDeleteRequiresID(t *testing.T) {
	err := RunWithArgs("test", []string{"delete"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id is required")
}

func TestPurgeRequiresAll(t *testing.T) {
	err := RunWithArgs("test", []string{"purge"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all flag")
}

func TestAddFlagDefaults(t *testing.T) {
	_, cmds, err := parseOnly(t, []string{"add", "--title", "회의", "--date", "2025-07-15"})
	require.NoError(t, err)

	assert.Equal(t, "none", cmds.Add.Repeat)
	assert.Equal(t, 1, cmds.Add.Interval)
	assert.Equal(t, 0, cmds.Add.Notify)
}

func TestAddParsesAllFlags(t *testing.T) {
	_, cmds, err := parseOnly(t, []string{
		"add",
		"--title", "주간 회의",
		"--date", "2025-07-15",
		"--start", "10:00",
		"--end", "11:00",
		"--location", "회의실 A",
		"--category", "work",
		"--repeat", "weekly",
		"--interval", "2",
		"--until", "2025-12-31",
		"--notify", "15",
	})
	require.NoError(t, err)

	assert.Equal(t, "주간 회의", cmds.Add.Title)
	assert.Equal(t, "10:00", cmds.Add.Start)
	assert.Equal(t, "weekly", cmds.Add.Repeat)
	assert.Equal(t, 2, cmds.Add.Interval)
	assert.Equal(t, "2025-12-31", cmds.Add.Until)
	assert.Equal(t, 15, cmds.Add.Notify)
}

func TestEditOmittedFlagsStayNil(t *testing.T) {
	_, cmds, err := parseOnly(t, []string{"edit", "--id", "ev-1", "--title", "새 제목"})
	require.NoError(t, err)

	require.NotNil(t, cmds.Edit.Title)
	assert.Equal(t, "새 제목", *cmds.Edit.Title)
	assert.Nil(t, cmds.Edit.Date)
	assert.Nil(t, cmds.Edit.Start)
	assert.Nil(t, cmds.Edit.Notify)
}

func TestEditEmptyStringIsNotNil(t *testing.T) {
	_, cmds, err := parseOnly(t, []string{"edit", "--id", "ev-1", "--location", ""})
	require.NoError(t, err)

	require.NotNil(t, cmds.Edit.Location)
	assert.Equal(t, "", *cmds.Edit.Location)
}

func TestGlobalFlagsJSON(t *testing.T) {
	globals, _, err := parseOnly(t, []string{"--json", "list"})
	require.NoError(t, err)
	assert.True(t, globals.JSON)
}

func TestGlobalFlagsVerbose(t *testing.T) {
	globals, _, err := parseOnly(t, []string{"--verbose", "list"})
	require.NoError(t, err)
	assert.True(t, globals.Verbose)
}

func TestGlobalFlagsConfig(t *testing.T) {
	globals, _, err := parseOnly(t, []string{"--config", "/tmp/test.yaml", "list"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.yaml", globals.Config)
}

func TestUnknownSubcommandFails(t *testing.T) {
	_, _, err := parseOnly(t, []string{"nonexistent"})
	require.Error(t, err)
}

func TestHelpFlagDoesNotError(t *testing.T) {
	err := RunWithArgs("test", []string{"--help"})
	assert.NoError(t, err)
}

func TestWatchFlags(t *testing.T) {
	_, cmds, err := parseOnly(t, []string{"watch", "--spec", "*/5 * * * *", "--once"})
	require.NoError(t, err)
	assert.Equal(t, "*/5 * * * *", cmds.Watch.Spec)
	assert.True(t, cmds.Watch.Once)
}

func TestExportOutputFlag(t *testing.T) {
	_, cmds, err := parseOnly(t, []string{"export", "--output", "/tmp/haru.ics"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/haru.ics", cmds.Export.Output)
}

func TestPurgeFlags(t *testing.T) {
	_, cmds, err := parseOnly(t, []string{"purge", "--all", "--force"})
	require.NoError(t, err)
	assert.True(t, cmds.Purge.All)
	assert.True(t, cmds.Purge.Force)
}
