package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/qrclock-gateway/internal/api"
	"github.com/mcoot/qrclock-gateway/internal/config"
	"github.com/mcoot/qrclock-gateway/internal/factory"
)

const seedJSON = `[
  {"admin_id": 1, "admin_name": "Alice", "username": "alice", "password": "secret", "pin": "4321"},
  {"admin_id": 2, "admin_name": "Bob", "username": "bob", "password": "hunter2", "pin": "8765"}
]`

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "adminctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/adminctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(stdin string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Stdin = strings.NewReader(stdin)
	output, err := cmd.Output()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startGateway runs the full application over a seeded SQLite file
func startGateway(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "admins.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedJSON), 0o600))

	cfg := &config.Config{
		StorageType:     config.StorageSQLite,
		SQLitePath:      filepath.Join(dir, "timeclock.db"),
		SeedFile:        seedPath,
		StoreTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	app, err := factory.New(ctx, cfg, logger)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := api.NewServer(app.Handler, api.ServerConfig{ShutdownTimeout: cfg.ShutdownTimeout}, logger)
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
		assert.NoError(t, app.Close())
	})

	serverURL := "http://" + ln.Addr().String()
	waitForServer(t, serverURL+"/api/test")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type probeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    []struct {
		Test int `json:"test"`
	} `json:"data"`
}

type verifyPINResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Admin   struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"admin"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	url := startGateway(t)
	cli := newCLIRunner(t, url)

	output, err := cli.run("", "health")
	require.NoError(t, err, "output: %s", output)

	var resp probeResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Data[0].Test)
}

func TestCLI_LoginFlow(t *testing.T) {
	url := startGateway(t)
	cli := newCLIRunner(t, url)

	// PIN on the command line
	output, err := cli.run("", "login", "--user", "bob", "--pass", "hunter2", "--pin", "8765")
	require.NoError(t, err, "output: %s", output)

	var resp verifyPINResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, int64(2), resp.Admin.ID)
	assert.Equal(t, "Bob", resp.Admin.Name)
	assert.Equal(t, "bob", resp.Admin.Username)
	assert.NotContains(t, output, "hunter2")
	assert.NotContains(t, output, "8765")

	// PIN from stdin
	output, err = cli.run("4321\n", "login", "--user", "alice", "--pass", "secret")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "alice", resp.Admin.Username)
}

func TestCLI_VerifyPIN(t *testing.T) {
	url := startGateway(t)
	cli := newCLIRunner(t, url)

	output, err := cli.run("", "verify-pin", "--admin-id", "1", "--pin", "4321")
	require.NoError(t, err, "output: %s", output)

	var resp verifyPINResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "Alice", resp.Admin.Name)
}

func TestCLI_Failures(t *testing.T) {
	url := startGateway(t)
	cli := newCLIRunner(t, url)

	tests := []struct {
		name string
		args []string
	}{
		{"wrong password", []string{"login", "--user", "alice", "--pass", "wrong", "--pin", "4321"}},
		{"unknown user", []string{"login", "--user", "carol", "--pass", "secret", "--pin", "4321"}},
		{"wrong pin", []string{"login", "--user", "alice", "--pass", "secret", "--pin", "0000"}},
		{"another admin's pin", []string{"verify-pin", "--admin-id", "1", "--pin", "8765"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := cli.run("", tt.args...)
			assert.Error(t, err, "output: %s", output)
			assert.Empty(t, output)
		})
	}
}
