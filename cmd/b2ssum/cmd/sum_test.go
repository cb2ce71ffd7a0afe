package cmd_test

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gtank/blake2s/cmd/b2ssum/cmd"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helloWorld   = "Hello, world!"
	helloWorld32 = "30d8777f0e178582ec8cd2fcdc18af57c828ee2f89e978df52c8e7af078bd5cf"
	helloWorld16 = "d22466a20aa43ef8a07d35c2b78d62cc"
)

func runSum(t *testing.T, stdin string, opts ...cmd.Option) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts = append([]cmd.Option{
		cmd.WithInput(strings.NewReader(stdin)),
		cmd.WithOutput(&out),
		cmd.WithErrorOutput(&errOut),
	}, opts...)
	err := newCommand(t, opts...).Execute()
	return out.String(), err
}

func TestSumStdin(t *testing.T) {
	out, err := runSum(t, helloWorld, cmd.WithArgs())
	require.NoError(t, err)
	assert.Equal(t, helloWorld32+"  -\n", out)

	out, err = runSum(t, helloWorld, cmd.WithArgs("--size", "16", "-"))
	require.NoError(t, err)
	assert.Equal(t, helloWorld16+"  -\n", out)
}

func TestSumFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(a, []byte(helloWorld), 0o600))
	require.NoError(t, os.WriteFile(b, nil, 0o600))

	out, err := runSum(t, "", cmd.WithArgs(a, b))
	require.NoError(t, err)
	assert.Equal(t,
		helloWorld32+"  "+a+"\n"+
			"69217a3079908094e11121d042354a7c1f55b6482ca1a51e1b250dfd1ed0eef9  "+b+"\n",
		out)

	_, err = runSum(t, "", cmd.WithArgs(filepath.Join(dir, "missing")))
	assert.Error(t, err)
}

func TestSumKeyed(t *testing.T) {
	key := hex.EncodeToString([]byte("secret"))
	out, err := runSum(t, "abc", cmd.WithArgs("--key", key))
	require.NoError(t, err)
	assert.Equal(t, "d7d0d1441d31d042d6c1ef68ce5162e56f3b2a208de82b727b7c30c709b7bff2  -\n", out)

	_, err = runSum(t, "abc", cmd.WithArgs("--key", "not hex"))
	assert.Error(t, err)

	_, err = runSum(t, "abc", cmd.WithArgs("--key", strings.Repeat("00", 33)))
	assert.Error(t, err)
}

func TestSumMultihash(t *testing.T) {
	out, err := runSum(t, helloWorld, cmd.WithArgs("--multihash", "--size", "16"))
	require.NoError(t, err)

	fields := strings.Fields(out)
	require.Len(t, fields, 2)
	mh, err := multihash.FromB58String(fields[0])
	require.NoError(t, err)
	decoded, err := multihash.Decode(mh)
	require.NoError(t, err)

	assert.Equal(t, uint64(multihash.BLAKE2S_MIN+15), decoded.Code)
	assert.Equal(t, 16, decoded.Length)
	assert.Equal(t, helloWorld16, hex.EncodeToString(decoded.Digest))
}

func TestSumExpect(t *testing.T) {
	out, err := runSum(t, helloWorld, cmd.WithArgs("--expect", helloWorld32))
	require.NoError(t, err)
	assert.Equal(t, helloWorld32+"  -\nvalid: true\n", out)

	out, err = runSum(t, helloWorld, cmd.WithArgs("--expect", helloWorld16))
	assert.ErrorIs(t, err, cmd.ErrMismatch)
	assert.Contains(t, out, "valid: false\n")
}

func TestSumExpectNamesFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(a, []byte(helloWorld), 0o600))

	_, err := runSum(t, "", cmd.WithArgs("--expect", helloWorld16, a))
	require.ErrorIs(t, err, cmd.ErrMismatch)
	assert.Contains(t, err.Error(), a)
}

func TestSumInvalidSize(t *testing.T) {
	for _, size := range []string{"0", "33"} {
		_, err := runSum(t, helloWorld, cmd.WithArgs("--size", size))
		assert.Error(t, err, "size %s", size)
	}
}

func TestSumConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "b2ssum.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("size: 16\n"), 0o600))

	out, err := runSum(t, helloWorld, cmd.WithCfgFile(cfg), cmd.WithArgs())
	require.NoError(t, err)
	assert.Equal(t, helloWorld16+"  -\n", out)

	out, err = runSum(t, helloWorld, cmd.WithArgs("--config", cfg))
	require.NoError(t, err)
	assert.Equal(t, helloWorld16+"  -\n", out)

	// flags win over the config file
	out, err = runSum(t, helloWorld, cmd.WithCfgFile(cfg), cmd.WithArgs("--size", "32"))
	require.NoError(t, err)
	assert.Equal(t, helloWorld32+"  -\n", out)
}

func TestSumEnv(t *testing.T) {
	t.Setenv("B2SSUM_SIZE", "16")

	out, err := runSum(t, helloWorld, cmd.WithArgs())
	require.NoError(t, err)
	assert.Equal(t, helloWorld16+"  -\n", out)
}
