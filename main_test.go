package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocument(t *testing.T, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTreeCommand(t *testing.T) {
	path := writeDocument(t, `<title>Doc</title><p>hello</p>`)
	out, err := run(t, "", "tree", path)
	require.NoError(t, err)
	assert.Equal(t, `rootWebArea "Doc"
| paragraph
|   staticText "hello"
|     inlineTextBox "hello" words=[0]-[5]
`, out)
}

func TestTreeCommandDesktop(t *testing.T) {
	path := writeDocument(t, `<p>hi</p>`)
	out, err := run(t, "", "--desktop", "tree", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "desktop\n| rootWebArea\n"), out)
}

func TestNavCommand(t *testing.T) {
	path := writeDocument(t, `<p>hello world</p><p>foo</p>`)
	out, err := run(t, "", "nav", path, "next-word", "next-word", "next-word")
	require.NoError(t, err)
	assert.Equal(t, `start: hello world
next-word: world
next-word: foo
[wrap]
next-word: hello
`, out)
}

func TestNavCommandNoWrap(t *testing.T) {
	path := writeDocument(t, `<p>hello world</p><p>foo</p>`)
	out, err := run(t, "", "nav", "--no-wrap", path, "next-word", "next-word", "next-word")
	require.NoError(t, err)
	assert.Equal(t, `start: hello world
next-word: world
next-word: foo
next-word: foo
`, out)
}

func TestNavCommandFromStdin(t *testing.T) {
	path := writeDocument(t, `<p>one</p><p id="second">two</p>`)
	out, err := run(t, "previous-object\n\n", "nav", "--start", "second", path)
	require.NoError(t, err)
	assert.Equal(t, "start: two paragraph\nprevious-object: one\n", out)
}

func TestNavCommandErrors(t *testing.T) {
	path := writeDocument(t, `<p>one</p>`)

	_, err := run(t, "", "nav", path, "jump-around")
	assert.ErrorContains(t, err, "unknown command")

	_, err = run(t, "", "nav", "--start", "missing", path)
	assert.ErrorContains(t, err, `no element with id "missing"`)

	_, err = run(t, "", "nav", filepath.Join(t.TempDir(), "none.html"))
	assert.ErrorContains(t, err, "open document")
}

func TestCommandsCommand(t *testing.T) {
	out, err := run(t, "", "commands")
	require.NoError(t, err)
	assert.Contains(t, out, "next-word\n")
	assert.Contains(t, out, "previous-object\n")
}
