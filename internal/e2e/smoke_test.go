package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptorFixture = `{"address":"0xABC","abi":[{"type":"function","name":"accessPrice","inputs":[]},{"type":"function","name":"purchaseAccess","inputs":[],"stateMutability":"payable"}]}`

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runSA(t, binaryPath, home, nil, "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.NotEmpty(t, stdout)

	descriptorPath := filepath.Join(t.TempDir(), "deployedAddress.json")
	require.NoError(t, os.WriteFile(descriptorPath, []byte(descriptorFixture), 0o600))

	env := []string{"SA_DESCRIPTOR_SOURCE=" + descriptorPath}
	stdout, stderr, err = runSA(t, binaryPath, home, env, "descriptor")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "address: 0xABC")
	assert.Contains(t, stdout, "purchaseAccess")

	stdout, stderr, err = runSA(t, binaryPath, home, env, "history")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "No purchases recorded.")
}

func TestSmokeMissingDescriptorFails(t *testing.T) {
	binaryPath := buildBinary(t)

	env := []string{"SA_DESCRIPTOR_SOURCE=" + filepath.Join(t.TempDir(), "missing.json")}
	_, stderr, err := runSA(t, binaryPath, t.TempDir(), env, "descriptor")
	require.Error(t, err)
	assert.Contains(t, stderr, "contract configuration unavailable")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "sa-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/sa")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build sa binary: %s", string(output))
	return binaryPath
}

func runSA(t *testing.T, binaryPath, home string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(append(os.Environ(), "HOME="+home), env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
