package addressbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() Table {
	return Table{
		"delhi": {
			"water":       "water.delhi@example.gov.in",
			"electricity": "power.delhi@example.gov.in",
		},
		"maharashtra": {
			"water": "water.mh@example.gov.in",
		},
		"default": {
			"default": "grievance@example.gov.in",
		},
	}
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain name", input: "water", expected: "water"},
		{name: "uppercase with whitespace", input: "  Water  ", expected: "water"},
		{name: "board suffix stripped", input: "Water Board", expected: "water"},
		{name: "department suffix stripped", input: "Electricity Department", expected: "electricity"},
		{name: "both suffixes stripped", input: "Water Board Department", expected: "water"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Water Board", "Electricity Department", "land", "  Sewage  "}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestResolve(t *testing.T) {
	resolver := New(testTable(), "default", "default", nil)

	t.Run("exact match", func(t *testing.T) {
		email, err := resolver.Resolve("delhi", "water")
		assert.NoError(t, err)
		assert.Equal(t, "water.delhi@example.gov.in", email)
	})

	t.Run("state and department are normalized before lookup", func(t *testing.T) {
		email, err := resolver.Resolve("  Delhi ", "Water Board")
		assert.NoError(t, err)
		assert.Equal(t, "water.delhi@example.gov.in", email)
	})

	t.Run("unknown department falls back to default recipient", func(t *testing.T) {
		email, err := resolver.Resolve("delhi", "sanitation")
		assert.NoError(t, err)
		assert.Equal(t, "grievance@example.gov.in", email)
	})

	t.Run("unknown state falls back to default recipient", func(t *testing.T) {
		email, err := resolver.Resolve("karnataka", "water")
		assert.NoError(t, err)
		assert.Equal(t, "grievance@example.gov.in", email)
	})

	t.Run("resolution error when fallback missing", func(t *testing.T) {
		table := testTable()
		delete(table, "default")
		strict := New(table, "default", "default", nil)

		email, err := strict.Resolve("karnataka", "Water Board")
		assert.Empty(t, email)

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "karnataka", resErr.State)
		assert.Equal(t, "water", resErr.Department)
		assert.Contains(t, resErr.Error(), "no email for water in karnataka")
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads yaml table from file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "dept_emails.yml")
		content := []byte("delhi:\n  water: water.delhi@example.gov.in\ndefault:\n  default: grievance@example.gov.in\n")
		require.NoError(t, os.WriteFile(path, content, 0644))

		resolver, err := Load(path, "default", "default", nil)
		require.NoError(t, err)

		email, err := resolver.Resolve("delhi", "water")
		assert.NoError(t, err)
		assert.Equal(t, "water.delhi@example.gov.in", email)
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := Load("does/not/exist.yml", "default", "default", nil)
		assert.Error(t, err)
	})

	t.Run("malformed yaml returns error", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yml")
		require.NoError(t, os.WriteFile(path, []byte("delhi: [not-a-map"), 0644))

		_, err := Load(path, "default", "default", nil)
		assert.Error(t, err)
	})
}
