package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/gridsim/pkg/config"
	"github.com/dd0wney/gridsim/pkg/grid"
	"github.com/dd0wney/gridsim/pkg/health"
	"github.com/dd0wney/gridsim/pkg/logging"
	"github.com/dd0wney/gridsim/pkg/metrics"
)

const threeBusInput = `3
A 5 10
B 8 10
C 3 5
2
0 1 9 10
1 2 6 5
50
`

// runCLI runs the command with the config environment cleared, then env
// applied on top.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	return runCLIWithEnv(t, nil, stdin, args...)
}

func runCLIWithEnv(t *testing.T, env map[string]string, stdin string, args ...string) (int, string, string) {
	t.Helper()
	for _, key := range []string{config.EnvLogLevel, config.EnvDefaultPercent, config.EnvMetricsAddr, config.EnvUnit} {
		t.Setenv(key, "")
	}
	for key, value := range env {
		t.Setenv(key, value)
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Interactive(t *testing.T) {
	code, out, errOut := runCLI(t, threeBusInput)
	require.Equal(t, exitOK, code, errOut)

	assert.Contains(t, out, "Enter number of nodes (substations): ")
	assert.Contains(t, out, "Enter name, load (MW), and max capacity (MW) for node 2: ")
	assert.Contains(t, out, "Enter edge 1: from node index, to node index, load (MW), capacity (MW): ")
	assert.Contains(t, out, "Between B and C: Load = 6 MW, Capacity = 5 MW")
	assert.Contains(t, out, "Initial Overloads Detected:")
	assert.Contains(t, out, "Grid is connected.")
	assert.Contains(t, out, "Simulating load increase by 50%")
	assert.Contains(t, out, "Overloaded Nodes:\n- B\n")
	assert.Contains(t, out, "- Between A and B\n")
	assert.Contains(t, out, "Grid remains connected.")

	assert.Contains(t, errOut, `"msg":"grid loaded"`)
}

func TestRun_InteractiveTokensAcrossLines(t *testing.T) {
	code, out, errOut := runCLI(t, "1 Solo\n2\n4 0 0\n")
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "Node Solo: Load = 2 MW, Max Capacity = 4 MW")
	assert.Contains(t, out, "No initial overloads detected.")
	assert.Contains(t, out, "Simulating load increase by 0%")
}

func TestRun_PercentFlagSkipsPrompt(t *testing.T) {
	input := strings.TrimSuffix(threeBusInput, "50\n")
	code, out, errOut := runCLI(t, input, "-percent", "0")
	require.Equal(t, exitOK, code, errOut)
	assert.NotContains(t, out, "Enter load increase percentage")
	assert.Contains(t, out, "Simulating load increase by 0%")
}

func TestRun_GridFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
nodes:
  - {name: North, load: 1, max_capacity: 10}
  - {name: South, load: 1, max_capacity: 10}
`), 0o600))
	code, out, errOut := runCLIWithEnv(t, map[string]string{
		config.EnvDefaultPercent: "20",
		config.EnvUnit:           "kW",
	}, "", "-grid", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, errOut, `"path":"`+path+`"`)

	assert.NotContains(t, out, "Enter")
	assert.Contains(t, out, "Node North: Load = 1 kW, Max Capacity = 10 kW")
	assert.Contains(t, out, "Grid is disconnected!")
	assert.Contains(t, out, "Simulating load increase by 20%")
	assert.Contains(t, out, "Warning: Grid is disconnected after load increase!")
	assert.Contains(t, out, "Island 2: South")
}

func TestRun_IgnoresAmbientEnvironment(t *testing.T) {
	t.Setenv(config.EnvDefaultPercent, "-1")
	t.Setenv(config.EnvLogLevel, "loud")
	t.Setenv(config.EnvMetricsAddr, "nowhere")

	code, out, errOut := runCLI(t, threeBusInput)
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "Simulating load increase by 50%")
}

func TestRun_GridFileErrorLogsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes:\n  - {name: A, load: 10, max_capacity: 5}\n"), 0o600))

	code, _, errOut := runCLI(t, "", "-grid", path)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, `"msg":"grid input rejected"`)
	assert.Contains(t, errOut, `"path":"`+path+`"`)
	assert.Contains(t, errOut, "nodes[0]")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "zero nodes",
			stdin:    "0\n",
			wantCode: exitError,
			wantErr:  "node count must be at least 1",
		},
		{
			name:     "node born overloaded",
			stdin:    "1\nA 10 5\n",
			wantCode: exitError,
			wantErr:  "invalid node load or capacity",
		},
		{
			name:     "negative edge count",
			stdin:    "1\nA 1 5\n-1\n",
			wantCode: exitError,
			wantErr:  "number of edges must be >= 0",
		},
		{
			name:     "edge out of range",
			stdin:    "2\nA 1 5\nB 1 5\n1\n0 2 1 5\n",
			wantCode: exitError,
			wantErr:  "edge endpoint out of range",
		},
		{
			name:     "not a number",
			stdin:    "2\nA lots 5\n",
			wantCode: exitError,
			wantErr:  `invalid node load "lots"`,
		},
		{
			name:     "truncated input",
			stdin:    "2\nA 1 5\n",
			wantCode: exitError,
			wantErr:  "unexpected end of input",
		},
		{
			name:     "negative percent",
			stdin:    "1\nA 1 5\n0\n-5\n",
			wantCode: exitError,
			wantErr:  "percent",
		},
		{
			name:     "missing grid file",
			args:     []string{"-grid", "does-not-exist.yaml"},
			wantCode: exitError,
			wantErr:  "does-not-exist.yaml",
		},
		{
			name:     "bad log level",
			args:     []string{"-log-level", "loud"},
			wantCode: exitUsage,
			wantErr:  "LogLevel",
		},
		{
			name:     "unknown flag",
			args:     []string{"-frobnicate"},
			wantCode: exitUsage,
			wantErr:  "frobnicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.stdin, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestRejectionKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{grid.ErrInvalidSize, "size"},
		{grid.ErrInvalidNodeSpec, "node"},
		{grid.ErrDuplicateNodeIndex, "node"},
		{grid.ErrInvalidEdgeSpec, "edge"},
		{errNegativeEdgeCount, "edge"},
		{errInputClosed, ""},
		{errors.New("other"), ""},
	}
	for _, tt := range tests {
		if got := rejectionKind(tt.err); got != tt.want {
			t.Errorf("rejectionKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	reg := metrics.NewRegistry()
	reg.RecordGrid(3, 2, true)

	checker := health.NewChecker()
	checker.Register("grid", func() health.Check {
		return health.Check{Status: health.StatusUnhealthy, Message: "Grid is disconnected"}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, ln, reg, checker, logging.NewNopLogger())
	}()

	base := "http://" + ln.Addr().String()
	code, body := get(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "gridsim_grid_nodes_total 3")

	code, body = get(t, base+"/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, `"status":"unhealthy"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("http server did not shut down")
	}
}
