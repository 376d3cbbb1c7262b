package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/repofs/internal/canon"
	"github.com/vvka-141/repofs/internal/config"
	"github.com/vvka-141/repofs/pkg/repofs"
)

const testConfig = `kinds:
  roles:
    name_field: name
    defaults:
      "$.json_class": Chef::Role
  environments:
    name_field: name
`

// executeCommand runs the root command with args and returns what it wrote.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	rootFlags = rootFlagValues{}
	fmtFlags = fmtFlagValues{}
	t.Setenv(config.EnvPrettyPrint, "")
	t.Setenv(config.EnvWorkers, "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	_, err := rootCmd.ExecuteC()
	return stdout.String(), stderr.String(), err
}

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func TestValidate_AllValid(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		config.ConfigFileName:    testConfig,
		"roles/web.json":         `{"description":"web"}`,
		"environments/prod.json": `{"description":"prod"}`,
	})

	stdout, stderr, err := executeCommand(t, "validate", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], labelOK), lines[0])
	assert.Contains(t, lines[0], filepath.Join(dir, "environments", "prod.json"))
	assert.Contains(t, lines[1], filepath.Join(dir, "roles", "web.json"))
	assert.Contains(t, stderr, "2 documents, 2 valid, 0 skipped")
}

func TestValidate_SkippedDocuments(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		config.ConfigFileName: testConfig,
		"roles/a.json":        `{}`,
		"roles/b.json":        `{"description": `,
		"roles/c.json":        `{}`,
	})

	stdout, stderr, err := executeCommand(t, "validate", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repofs.ErrInvalidDocuments))
	assert.Equal(t, repofs.ExitInvalidDocuments, repofs.ExitCodeForError(err))

	assert.Equal(t, 1, strings.Count(stdout, labelSkip))
	assert.Equal(t, 2, strings.Count(stdout, labelOK))
	assert.Contains(t, stdout, "b.json")
	assert.Contains(t, stderr, "1 skipped")
}

func TestValidate_DefaultKindsWithoutConfig(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"nodes/web01.json": `{"run_list":["role[web]"]}`,
		"cookbooks/x.json": `{`,
	})

	stdout, _, err := executeCommand(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "web01.json")
	assert.NotContains(t, stdout, "cookbooks")
}

func TestValidate_InvalidConfig(t *testing.T) {
	dir := writeRepo(t, map[string]string{config.ConfigFileName: "workers: 500\nkinds:\n  roles: {}\n"})

	_, _, err := executeCommand(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, repofs.ExitConfigError, repofs.ExitCodeForError(err))
}

func TestValidate_MissingRepository(t *testing.T) {
	_, _, err := executeCommand(t, "validate", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, repofs.ExitNotFound, repofs.ExitCodeForError(err))
}

func TestCommands_ArgsValidation(t *testing.T) {
	tests := [][]string{
		{"validate"},
		{"validate", "a", "b"},
		{"fmt"},
		{"show", "repo"},
		{"fmt", "--nope", "repo"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, _, err := executeCommand(t, args...)
			require.Error(t, err)
			assert.Equal(t, repofs.ExitUsageError, repofs.ExitCodeForError(err), "got %v", err)
		})
	}
}

func TestFmt_CheckAndWrite(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		config.ConfigFileName: testConfig,
		"roles/web.json":      `{"name":"web","json_class":"Chef::Role","description":"web",}`,
	})
	rolePath := filepath.Join(dir, "roles", "web.json")

	stdout, _, err := executeCommand(t, "fmt", "--check", dir)
	require.Error(t, err)
	assert.Equal(t, repofs.ExitInvalidDocuments, repofs.ExitCodeForError(err))
	assert.Contains(t, stdout, labelChanged)
	assert.Contains(t, stdout, rolePath)

	raw, err := os.ReadFile(rolePath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"web"`)

	_, stderr, err := executeCommand(t, "fmt", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "1 formatted")

	raw, err = os.ReadFile(rolePath)
	require.NoError(t, err)
	assert.Equal(t, string(canon.Pretty(map[string]any{"description": "web"})), string(raw))

	stdout, _, err = executeCommand(t, "fmt", "--check", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFmt_PrettyPrintDisabledByEnvFile(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		config.ConfigFileName: testConfig,
		config.EnvFileName:    "REPOFS_PRETTY_PRINT=false\n",
		"roles/web.json":      `{"b":1,"a":2}`,
	})

	_, _, err := executeCommand(t, "fmt", "--check", dir)
	require.NoError(t, err)
}

func TestFmt_BrokenDocument(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		config.ConfigFileName: testConfig,
		"roles/bad.json":      `nope`,
	})

	stdout, _, err := executeCommand(t, "fmt", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repofs.ErrInvalidDocuments))
	assert.Contains(t, stdout, labelError)

	raw, readErr := os.ReadFile(filepath.Join(dir, "roles", "bad.json"))
	require.NoError(t, readErr)
	assert.Equal(t, "nope", string(raw))
}

func TestShow(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		config.ConfigFileName: testConfig,
		"roles/web.json":      `{"description":"web"}`,
		"roles/bad.json":      `{`,
	})

	stdout, _, err := executeCommand(t, "show", dir, "roles/web.json")
	require.NoError(t, err)

	got, err := canon.Parse([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"description": "web", "json_class": "Chef::Role"}, got)

	_, _, err = executeCommand(t, "show", dir, "roles/missing.json")
	assert.Equal(t, repofs.ExitNotFound, repofs.ExitCodeForError(err))

	_, _, err = executeCommand(t, "show", dir, "roles/bad.json")
	assert.Equal(t, repofs.ExitDataFormatError, repofs.ExitCodeForError(err))

	_, _, err = executeCommand(t, "show", dir, "cookbooks/x.json")
	assert.Equal(t, repofs.ExitNotFound, repofs.ExitCodeForError(err))
}

func TestSplitDocumentRef(t *testing.T) {
	tests := []struct {
		ref     string
		kind    string
		name    string
		wantErr bool
	}{
		{"roles/web.json", "roles", "web.json", false},
		{`roles\web.json`, "roles", "web.json", false},
		{"web.json", "", "", true},
		{"/web.json", "", "", true},
		{"roles/", "", "", true},
		{"roles/sub/web.json", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			kind, name, err := splitDocumentRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, repofs.ExitUsageError, repofs.ExitCodeForError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "repofs "), stdout)
}

func TestResolveVersionInfo_LdflagsOverride(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "1.2.3"
	v, _, _ := resolveVersionInfo()
	assert.Equal(t, "1.2.3", v)
}

func TestColorEnabled(t *testing.T) {
	assert.False(t, colorEnabled(&bytes.Buffer{}))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled(os.Stdout))
	assert.Equal(t, "OK", newPainter(os.Stdout).paint(okStyle, "OK"))
}
