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

const sample = `(call function: (identifier "f") arguments: (args (number "1") (number "2")))`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWalk(t *testing.T) {
	path := writeSample(t, "t.sexp", sample)

	out, err := run(t, "walk", path, "-p", "type,depth,field")
	require.NoError(t, err)
	assert.Equal(t, "call\t0\t-\nidentifier\t1\tfunction\nargs\t1\targuments\nnumber\t2\t-\nnumber\t2\t-\n", out)
}

func TestWalkLimitAndAt(t *testing.T) {
	path := writeSample(t, "t.sexp", sample)

	out, err := run(t, "walk", path, "-p", "type,depth", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "call\t0\nidentifier\t1\n", out)

	// source "f 1 2": byte 2 is inside args
	out, err = run(t, "walk", path, "-p", "type,depth,byte-range", "--at", "2")
	require.NoError(t, err)
	assert.Equal(t, "number\t0\t[2,3)\n", out)
}

func TestWalkUnknownProp(t *testing.T) {
	path := writeSample(t, "t.sexp", sample)
	_, err := run(t, "walk", path, "-p", "type,colour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"colour"`)
}

func TestSeek(t *testing.T) {
	path := writeSample(t, "t.sexp", sample)

	out, err := run(t, "seek", path, "4", "-p", "type,depth", "-f", "json")
	require.NoError(t, err)
	assert.Equal(t, `{"type":"call","depth":0}
{"type":"args","depth":1}
{"type":"number","depth":2}
`, out)
}

func TestCount(t *testing.T) {
	good := writeSample(t, "a.sexp", sample)
	broken := writeSample(t, "b.sexp", `(call (MISSING ")") (ERROR "x"))`)
	unknown := writeSample(t, "c.txt", "hello")

	out, err := run(t, "count", good, broken, unknown, "--output", "line")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c.txt")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, good+"\tsexp\t5\t5\t0\t0", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], broken+"\tsexp\t"), lines[1])
}

func TestLangsAndProps(t *testing.T) {
	out, err := run(t, "langs")
	require.NoError(t, err)
	assert.Contains(t, out, "sexp\t.sexp\t-\n")
	assert.Contains(t, out, "go\t.go\t")

	out, err = run(t, "props")
	require.NoError(t, err)
	assert.Contains(t, out, "byte-range\n")
	assert.Contains(t, out, "has-error?\n")
}
