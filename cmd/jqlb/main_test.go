package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/bi0dread/jqlb"
)

const openIssuesDoc = `{
	"where": {"and": [
		{"field": "status", "operator": "=", "operand": {"value": "Open"}},
		{"field": "votes", "operator": ">", "operand": {"number": 3}}
	]},
	"orderBy": [{"field": "created", "order": "DESC"}]
}`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "query.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func countLines(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n"))
}

func TestConvert(t *testing.T) {
	doc := documentOptions{in: writeDoc(t, openIssuesDoc), from: "json"}
	q, err := doc.read(nil)
	require.NoError(t, err)

	tests := []struct {
		to    string
		check func(t *testing.T, out []byte)
	}{
		{"jql", func(t *testing.T, out []byte) {
			assert.Equal(t, "status = \"Open\" AND votes > 3 ORDER BY created DESC\n", string(out))
		}},
		{"sql", func(t *testing.T, out []byte) {
			assert.Contains(t, string(out), "FROM `issues` WHERE")
			assert.Contains(t, string(out), "`status` = 'Open'")
			assert.Contains(t, string(out), "`votes` > 3")
			assert.Contains(t, string(out), "ORDER BY `created` DESC")
		}},
		{"gorm", func(t *testing.T, out []byte) {
			assert.Contains(t, string(out), "FROM `issues`")
			assert.Contains(t, string(out), "ORDER BY `created` DESC")
		}},
		{"mongo", func(t *testing.T, out []byte) {
			require.True(t, gjson.ValidBytes(out), string(out))
			assert.Equal(t, "Open", gjson.GetBytes(out, "filter.$and.0.status").String())
		}},
		{"es", func(t *testing.T, out []byte) {
			require.True(t, gjson.ValidBytes(out), string(out))
			assert.Equal(t, "desc", gjson.GetBytes(out, "sort.0.created.order").String())
		}},
		{"json", func(t *testing.T, out []byte) {
			back, err := jqlb.UnmarshalQueryJSON(out)
			require.NoError(t, err)
			assert.Equal(t, q, back)
		}},
		{"msgpack", func(t *testing.T, out []byte) {
			back, err := jqlb.UnmarshalQueryMsgpack(out)
			require.NoError(t, err)
			assert.Equal(t, q, back)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			out, err := convert(q, tt.to, "issues", &jqlb.AdapterOptions{})
			require.NoError(t, err)
			tt.check(t, out)
		})
	}

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := convert(q, "yaml", "issues", nil)
		assert.Error(t, err)
	})

	t.Run("MalformedDocument", func(t *testing.T) {
		bad := documentOptions{in: writeDoc(t, `{"where": {"field": "votes", "operator": ">", "operand": {"number": 1.5}}}`), from: "json"}
		_, err := bad.read(nil)
		assert.ErrorIs(t, err, jqlb.ErrMalformedDocument)
	})
}

func TestConvertCommand(t *testing.T) {
	out, err := runCLI(t, "convert", "--in", writeDoc(t, openIssuesDoc), "--from", "json", "--to", "jql")
	require.NoError(t, err)
	assert.Equal(t, "status = \"Open\" AND votes > 3 ORDER BY created DESC\n", out)
}

func TestSeedAndSearch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "issues.db")
	_, err := runCLI(t, "seed", "--db", dbPath, "--count", "20", "--seed", "7")
	require.NoError(t, err)

	t.Run("All", func(t *testing.T) {
		doc := writeDoc(t, `{"where": {"field": "project", "operator": "is not", "operand": {"empty": true}}}`)
		out, err := runCLI(t, "search", "--db", dbPath, "--in", doc, "--user", "fred")
		require.NoError(t, err)
		assert.Equal(t, 20, countLines(out))
	})

	t.Run("CurrentUser", func(t *testing.T) {
		want := 0
		for _, issue := range generateIssues(20, rand.New(rand.NewSource(7))) {
			if issue.Assignee != nil && *issue.Assignee == "fred" {
				want++
			}
		}

		doc := writeDoc(t, `{"where": {"field": "assignee", "operator": "=", "operand": {"function": "currentUser", "args": []}}}`)
		out, err := runCLI(t, "search", "--db", dbPath, "--in", doc, "--user", "fred")
		require.NoError(t, err)
		assert.Equal(t, want, countLines(out))
		for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
			if line != "" {
				assert.Equal(t, "fred", gjson.Get(line, "Assignee").String())
			}
		}
	})

	t.Run("UnknownFunction", func(t *testing.T) {
		doc := writeDoc(t, `{"where": {"field": "issue", "operator": "in", "operand": {"function": "watchedIssues"}}}`)
		_, err := runCLI(t, "search", "--db", dbPath, "--in", doc)
		assert.ErrorIs(t, err, jqlb.ErrUnsupportedClause)
	})
}
