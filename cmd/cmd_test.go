package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
)

// execute runs the root command with args against a fresh config lookup.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("WORDSPROUT_CONFIG", "")
	t.Setenv("WORDSPROUT_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	return filepath.Join(t.TempDir(), "wordsprout.db")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "wordsprout (devel)\n", out)
}

func TestCategories(t *testing.T) {
	db := tempDB(t)
	out, err := execute(t, "", "categories", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "animals")
	assert.Contains(t, out, "Weather")
}

func TestWordsImportAndList(t *testing.T) {
	db := tempDB(t)
	csvPath := filepath.Join(t.TempDir(), "words.csv")
	csv := "word,definition,example,emoji,category\n" +
		"planet,A big ball in space.,,🪐,space\n" +
		"comet,An icy rock with a tail.,,☄️,space\n" +
		",missing word,,,space\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o644))

	out, err := execute(t, "", "words", "import", csvPath, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Added: 2")
	assert.Contains(t, out, "New categories: space")
	assert.Contains(t, out, "row 4")

	out, err = execute(t, "", "words", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "(space)")
	assert.Contains(t, out, "planet")
	assert.Contains(t, out, "An icy rock with a tail.")

	out, err = execute(t, "", "categories", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Space *")
}

func TestDue(t *testing.T) {
	db := tempDB(t)
	out, err := execute(t, "", "due", "colors", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Colors")
	assert.Contains(t, out, "new")
	assert.Contains(t, out, "words are ready to practice.")

	_, err = execute(t, "", "due", "nope", "--db", db)
	assert.Error(t, err)
}

func TestDueLabel(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(tm time.Time) *time.Time { return &tm }
	reviewed := at(now.AddDate(0, 0, -5))

	assert.Equal(t, "new", dueLabel(spacedrep.NewWordProgress(1), now))
	assert.Equal(t, "overdue by 1 day",
		dueLabel(spacedrep.WordProgress{LastReviewed: reviewed, NextReview: at(now.Add(-30 * time.Hour))}, now))
	assert.Equal(t, "overdue by 3 days",
		dueLabel(spacedrep.WordProgress{LastReviewed: reviewed, NextReview: at(now.AddDate(0, 0, -3))}, now))
	assert.Equal(t, "due now", dueLabel(spacedrep.WordProgress{LastReviewed: reviewed}, now))
}

func TestReset_AsksFirst(t *testing.T) {
	db := tempDB(t)
	out, err := execute(t, "n\n", "reset", "--yes=false", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing was changed.")

	out, err = execute(t, "", "reset", "--yes", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Progress erased")
}

func TestRemindOnce(t *testing.T) {
	db := tempDB(t)
	t.Setenv("WORDSPROUT_REMINDER_START_HOUR", "0")
	t.Setenv("WORDSPROUT_REMINDER_END_HOUR", "23")

	out, err := execute(t, "", "remind", "--once", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "words are ready to practice!")
}

func TestRemind_DisabledWithoutOnce(t *testing.T) {
	db := tempDB(t)
	t.Setenv("WORDSPROUT_REMINDER_ENABLED", "false")
	_, err := execute(t, "", "remind", "--once=false", "--db", db)
	assert.ErrorContains(t, err, "reminders are disabled")
}

func TestWordsGenerate_NeedsProvider(t *testing.T) {
	db := tempDB(t)
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	_, err := execute(t, "", "words", "generate", "--theme", "space", "--db", db)
	assert.ErrorIs(t, err, errNoProvider)
}

func TestFormatBody(t *testing.T) {
	assert.Equal(t, "(not captured)", formatBody(""))
	assert.Equal(t, "plain text", formatBody("plain text"))
	assert.Equal(t, "{\n  \"a\": 1\n}", formatBody(`{"a":1}`))
}

func TestDescribeVersion(t *testing.T) {
	tests := map[string]string{
		"(devel)":       "(devel)",
		"v1.2":          "v1.2.0",
		"v0.4.1":        "v0.4.1",
		"v0.5.0-rc.1":   "v0.5.0-rc.1 (pre-release)",
		"v1.0.0+meta":   "v1.0.0",
		"not-a-version": "not-a-version",
	}
	for in, want := range tests {
		assert.Equal(t, want, describeVersion(in), "describeVersion(%q)", in)
	}
}
