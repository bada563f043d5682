package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fairdiv/divide"
	"github.com/katalvlaran/fairdiv/envyfree"
)

const trimmingDoc = `
algorithm: selfridge-conway
cakeSize: 90
preferences:
  - [{start: 0, end: 30, startValue: 10, endValue: 10}, {start: 30, end: 60, startValue: 5, endValue: 5}, {start: 60, end: 90, startValue: 10, endValue: 10}]
  - [{start: 0, end: 90, startValue: 10, endValue: 10}]
  - [{start: 0, end: 60, startValue: 5, endValue: 5}, {start: 60, end: 90, startValue: 10, endValue: 10}]
`

const twoAgentDoc = `
preferences:
  - [{start: 0, end: 10, startValue: 1, endValue: 1}]
  - [{start: 0, end: 10, startValue: 0, endValue: 2}]
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	require.Equal(t, "fairdiv dev\n", out)
}

func TestAlgorithms(t *testing.T) {
	out, err := run(t, "", "algorithms")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(divide.Catalog())+1)
	require.Regexp(t, `^selfridge-conway\s+3\s+exact\s+yes$`, lines[2])
	require.Regexp(t, `^piecewise-constant\s+3-4\s+approximate\s+no$`, lines[5])
}

func TestAlgorithms_WithSolver(t *testing.T) {
	out, err := run(t, "", "algorithms", "--solver-url", "http://127.0.0.1:5000")
	require.NoError(t, err)
	require.NotContains(t, out, " no\n")
}

func TestDivide_JSONFromFile(t *testing.T) {
	out, err := run(t, "", "divide", writeDoc(t, trimmingDoc), "-o", "json", "--narrate")
	require.NoError(t, err)

	var got struct {
		Algorithm string `json:"algorithm"`
		Portions  []struct {
			Owner int `json:"owner"`
			Edges []struct {
				Start float64 `json:"start"`
				End   float64 `json:"end"`
			} `json:"edges"`
		} `json:"portions"`
		EnvyFree  bool     `json:"envyFree"`
		Narration []string `json:"narration"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "selfridge-conway", got.Algorithm)
	require.True(t, got.EnvyFree)
	require.Len(t, got.Portions, 3)
	require.Len(t, got.Portions[0].Edges, 2)
	require.InDelta(t, 25, got.Portions[0].Edges[0].End, 1e-9)
	require.Len(t, got.Narration, 10)
}

func TestDivide_TextFromStdin(t *testing.T) {
	out, err := run(t, twoAgentDoc, "divide", "--narrate")
	require.NoError(t, err)
	require.Contains(t, out, "cut-and-choose: 2 agents, envy-free: yes, proportional: yes\n")
	require.Contains(t, out, "Agent 2: [5.000, 10.000)  values 50.000% 75.000%\n")
	require.Contains(t, out, " 1. Agent 1 divides the resource into halves at 50.000%\n")
}

func TestDivide_YAML(t *testing.T) {
	out, err := run(t, twoAgentDoc, "divide", "-", "-o", "yaml")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, "cut-and-choose", got["algorithm"])
	require.Contains(t, got, "runId")
	require.NotContains(t, got, "narration")
}

func TestDivide_Errors(t *testing.T) {
	_, err := run(t, trimmingDoc, "divide", "-a", "branzei-nisan")
	require.ErrorIs(t, err, divide.ErrNoSolver)

	_, err = run(t, twoAgentDoc, "divide", "-a", "branzei-nisan")
	require.ErrorIs(t, err, envyfree.ErrInvalidAgentCount)

	_, err = run(t, twoAgentDoc, "divide", "-a", "nonsense")
	require.ErrorIs(t, err, divide.ErrUnknownAlgorithm)

	_, err = run(t, twoAgentDoc, "divide", "-o", "xml")
	require.ErrorContains(t, err, `unknown format "xml"`)

	_, err = run(t, twoAgentDoc, "divide", "--tolerance", "-1")
	require.Error(t, err)
}
