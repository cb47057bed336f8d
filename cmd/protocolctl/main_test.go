package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"protocol-catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProtocolList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"only newlines", "\n\n", nil},
		{"single", "aave", []string{"aave"}},
		{"trailing newline", "aave\ncompound\n", []string{"aave", "compound"}},
		{"crlf and blanks", "aave\r\n\r\n  compound  \r\n", []string{"aave", "compound"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseProtocolList(tt.raw))
		})
	}
}

// writeProtocols lays out <dir>/protocols/<id>/{config.json,logo.png}.
func writeProtocols(t *testing.T, dir string, descriptors map[string]string) string {
	t.Helper()
	root := filepath.Join(dir, "protocols")
	for id, descriptor := range descriptors {
		require.NoError(t, os.MkdirAll(filepath.Join(root, id), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, id, "config.json"), []byte(descriptor), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, id, "logo.png"), []byte("icon"), 0o644))
	}
	return root
}

const validDescriptor = `{"name":"Aave","icon":"logo.png","metadata":{"pt":[` +
	`{"chainId":1,"address":"0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9","description":"x","integrationUrl":"https://x"}]}}`

func TestApp_Merge(t *testing.T) {
	dir := t.TempDir()
	root := writeProtocols(t, dir, map[string]string{"aave": validDescriptor})
	output := filepath.Join(dir, "config.json")

	err := newApp().Run(context.Background(), []string{
		"protocolctl", "--config-dir", dir, "--log-level", "error",
		"merge", "--protocols-dir", root, "--output", output,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var catalog struct {
		Protocols []map[string]any `json:"protocols"`
	}
	require.NoError(t, json.Unmarshal(data, &catalog))
	require.Len(t, catalog.Protocols, 1)
	assert.Equal(t, "aave", catalog.Protocols[0]["id"])
	assert.Equal(t, "baec6461b0d69dde1b861aefbe375d8a", catalog.Protocols[0]["hash"])
}

func TestApp_Validate(t *testing.T) {
	dir := t.TempDir()
	root := writeProtocols(t, dir, map[string]string{
		"aave":   validDescriptor,
		"broken": strings.Replace(validDescriptor, `"name":"Aave"`, `"name":""`, 1),
	})
	run := func(args ...string) error {
		base := []string{"protocolctl", "--config-dir", dir, "--log-level", "error", "validate", "--protocols-dir", root}
		return newApp().Run(context.Background(), append(base, args...))
	}

	t.Run("env list", func(t *testing.T) {
		t.Setenv(changedProtocolsEnv, "aave\r\n\r\n")
		assert.NoError(t, run())
	})

	t.Run("empty list", func(t *testing.T) {
		t.Setenv(changedProtocolsEnv, "")
		assert.NoError(t, run())
	})

	t.Run("positional ids", func(t *testing.T) {
		t.Setenv(changedProtocolsEnv, "")
		err := run("aave", "broken")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidField)
		assert.Contains(t, err.Error(), "protocol broken: invalid field 'name'")
	})

	t.Run("flag list with missing descriptor", func(t *testing.T) {
		t.Setenv(changedProtocolsEnv, "")
		err := run("--changed", "aave\nunknown")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDescriptorNotFound)
	})
}
