package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/polyrecon/config"
	"github.com/vitalvas/polyrecon/lagrange"
	"github.com/vitalvas/polyrecon/shareinput"
	"github.com/vitalvas/polyrecon/xlogger"
)

const testcase = `{
	"keys": {"n": 4, "k": 3},
	"1": {"base": "10", "value": "4"},
	"2": {"base": "2", "value": "111"},
	"3": {"base": "10", "value": "12"},
	"6": {"base": "4", "value": "213"}
}`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	code := run(context.Background(), args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunText(t *testing.T) {
	path := writeInput(t, "input.json", testcase)

	code, stdout, stderr := runCLI(t, path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "f(x) = x^2 + 3\nConstant c = 3\n", stdout)
	assert.Contains(t, stderr, "polynomial reconstructed")
}

func TestRunPermissive(t *testing.T) {
	path := writeInput(t, "input.json", testcase)

	code, stdout, _ := runCLI(t, "-permissive", "-workers", "3", path)
	require.Equal(t, 0, code)
	assert.Equal(t, "f(x) = x^2 + 3\nConstant c = 3\n", stdout)
}

func TestRunJSON(t *testing.T) {
	path := writeInput(t, "input.json", testcase)

	code, stdout, _ := runCLI(t, "-format", "json", "-log-level", "error", path)
	require.Equal(t, 0, code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "3", doc["constant"])
	assert.Equal(t, []any{"3", "0", "1"}, doc["coefficients"])
}

func TestRunConfigFile(t *testing.T) {
	input := writeInput(t, "input.json", testcase)
	conf := writeInput(t, "polyrecon.yaml", "input: "+input+"\nformat: json\nlogger:\n  level: error\n")

	code, stdout, stderr := runCLI(t, "-config", conf)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `"constant": "3"`)
	assert.Empty(t, stderr)
}

func TestRunFailures(t *testing.T) {
	t.Run("duplicate x", func(t *testing.T) {
		path := writeInput(t, "dup.json", `{
			"2": {"base": "10", "value": "5"},
			"02": {"base": "10", "value": "7"}
		}`)

		code, stdout, stderr := runCLI(t, path)
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "DivideByZero")
		assert.Contains(t, stderr, "02")
	})

	t.Run("malformed input", func(t *testing.T) {
		path := writeInput(t, "bad.json", `{"1": {"base": "99", "value": "7"}}`)

		code, stdout, stderr := runCLI(t, path)
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "MalformedInput")
	})

	t.Run("metadata mismatch", func(t *testing.T) {
		path := writeInput(t, "meta.json", `{"keys": {"n": 5, "k": 3}, "1": {"base": "10", "value": "7"}}`)

		code, _, stderr := runCLI(t, path)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "MalformedInput")
	})

	t.Run("missing input", func(t *testing.T) {
		code, stdout, _ := runCLI(t, filepath.Join(t.TempDir(), "missing.json"))
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
	})

	t.Run("bad flag value", func(t *testing.T) {
		code, _, _ := runCLI(t, "-format", "xml", "input.json")
		assert.Equal(t, 2, code)
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _, _ := runCLI(t, "-nope")
		assert.Equal(t, 2, code)
	})
}

func TestRunVersion(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-v")
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "polyrecon dev")
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "DivideByZero", errorKind(&lagrange.DuplicateXError{}))
	assert.Equal(t, "MalformedInput", errorKind(&shareinput.MalformedInputError{Reason: "x"}))
	assert.Equal(t, "Interrupted", errorKind(context.Canceled))
	assert.Equal(t, "NoPoints", errorKind(lagrange.ErrNoPoints))
	assert.Equal(t, "IO", errorKind(errors.New("boom")))
}

func TestReconstruct(t *testing.T) {
	conf := config.Default()
	conf.Input = writeInput(t, "input.json", testcase)

	poly, err := reconstruct(context.Background(), conf, xlogger.Discard())
	require.NoError(t, err)
	assert.Equal(t, "3", poly.Constant().String())
	assert.Equal(t, 3, poly.Len())

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := reconstruct(ctx, conf, xlogger.Discard())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, "Interrupted", errorKind(err))
	})

	t.Run("repeated key is rejected", func(t *testing.T) {
		conf := config.Default()
		conf.Strict = false
		conf.Input = writeInput(t, "repeated.json", `{
			"2": {"base": "10", "value": "5"},
			"2": {"base": "10", "value": "7"},
			"3": {"base": "10", "value": "1"}
		}`)

		_, err := reconstruct(context.Background(), conf, xlogger.Discard())
		assert.ErrorIs(t, err, shareinput.ErrMalformedInput)
	})
}
