package application

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"protocol-catalog/internal/adapter/storage/filesystem"
	"protocol-catalog/internal/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// validAddress is 0x followed by forty hex characters.
var validAddress = "0x" + strings.Repeat("a", 40)

// aaveDescriptor is a descriptor that passes every rule.
var aaveDescriptor = `{
  "name": "Aave",
  "icon": "logo.png",
  "metadata": {
    "pt": [
      {"chainId": 1, "address": "` + validAddress + `", "description": "x", "integrationUrl": "https://x"}
    ]
  }
}`

// protocolTree builds a protocols root in a temp dir.
type protocolTree struct {
	t    *testing.T
	root string
}

func newProtocolTree(t *testing.T) *protocolTree {
	t.Helper()
	root := filepath.Join(t.TempDir(), "protocols")
	require.NoError(t, os.MkdirAll(root, 0o755))
	return &protocolTree{t: t, root: root}
}

// add writes <root>/<id>/config.json and the given files (name -> content).
func (p *protocolTree) add(id, descriptor string, files map[string]string) *protocolTree {
	p.t.Helper()
	dir := filepath.Join(p.root, id)
	require.NoError(p.t, os.MkdirAll(dir, 0o755))
	require.NoError(p.t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(descriptor), 0o644))
	p.files(id, files)
	return p
}

// files writes files into <root>/<id> without touching config.json.
func (p *protocolTree) files(id string, files map[string]string) *protocolTree {
	p.t.Helper()
	dir := filepath.Join(p.root, id)
	require.NoError(p.t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(p.t, os.WriteFile(path, []byte(content), 0o644))
	}
	return p
}

func (p *protocolTree) repository() *filesystem.ProtocolRepository {
	return filesystem.NewProtocolRepository(config.ProtocolsConfig{Root: p.root}, zap.NewNop())
}
