package xconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
rediskit:
  masters:
    - addr: "10.0.0.1:6379"
    - addr: "10.0.0.2:6379"
      db: 1
`

const testJSON = `{
  "rediskit": {
    "masters": [
      {"addr": "10.0.0.1:6379"}
    ]
  }
}`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// =============================================================================
// 加载测试
// =============================================================================

func TestNew_EmptyPath_ReturnsError(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestNew_UnsupportedExtension_ReturnsError(t *testing.T) {
	_, err := New("config.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNew_MissingFile_ReturnsErrLoadFailed(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestNew_YAML_DetectsFormatAndParses(t *testing.T) {
	path := writeTestFile(t, "conf.yaml", testYAML)
	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, cfg.Format())
	assert.Equal(t, path, cfg.Path())
	masters := cfg.Client().Slices("rediskit.masters")
	require.NotEmpty(t, masters)
	assert.Equal(t, "10.0.0.1:6379", masters[0].String("addr"))
}

func TestNew_JSON_DetectsFormatAndParses(t *testing.T) {
	path := writeTestFile(t, "conf.json", testJSON)
	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Format())
	masters := cfg.Client().Slices("rediskit.masters")
	require.NotEmpty(t, masters)
	assert.Equal(t, "10.0.0.1:6379", masters[0].String("addr"))
}

func TestNew_MalformedContent_ReturnsErrParseFailed(t *testing.T) {
	path := writeTestFile(t, "bad.json", "{oops")
	_, err := New(path)
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestNewFromBytes_RequiresValidFormat(t *testing.T) {
	_, err := NewFromBytes([]byte("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNewFromBytes_EmptyData_CreatesEmptyConfig(t *testing.T) {
	cfg, err := NewFromBytes(nil, FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())

	var out []MasterConfig
	require.NoError(t, cfg.Unmarshal("rediskit.masters", &out))
	assert.Empty(t, out)
}

// =============================================================================
// Unmarshal / Reload 测试
// =============================================================================

func TestUnmarshal_MastersSlice(t *testing.T) {
	cfg, err := NewFromBytes([]byte(testYAML), FormatYAML)
	require.NoError(t, err)

	var out []MasterConfig
	require.NoError(t, cfg.Unmarshal("rediskit.masters", &out))
	require.Len(t, out, 2)
	assert.Equal(t, "10.0.0.1:6379", out[0].Addr)
	assert.Equal(t, 1, out[1].DB)
}

func TestReload_PicksUpFileChanges(t *testing.T) {
	path := writeTestFile(t, "conf.yaml", testYAML)
	cfg, err := New(path)
	require.NoError(t, err)

	updated := `
rediskit:
  masters:
    - addr: "10.9.9.9:6379"
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))
	require.NoError(t, cfg.Reload())
	masters := cfg.Client().Slices("rediskit.masters")
	require.NotEmpty(t, masters)
	assert.Equal(t, "10.9.9.9:6379", masters[0].String("addr"))
}

func TestReload_FromBytes_ReturnsError(t *testing.T) {
	cfg, err := NewFromBytes([]byte(testYAML), FormatYAML)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Reload(), ErrReloadFromBytes)
}

// =============================================================================
// Masters 构建测试
// =============================================================================

func TestMasters_BuildsClients(t *testing.T) {
	cfg, err := NewFromBytes([]byte(testYAML), FormatYAML)
	require.NoError(t, err)

	clients, err := Masters(cfg, "rediskit.masters")
	require.NoError(t, err)
	require.Len(t, clients, 2)
	for _, c := range clients {
		require.NotNil(t, c)
		_ = c.Close()
	}
}

func TestMasters_NilConfig_ReturnsError(t *testing.T) {
	_, err := Masters(nil, "rediskit.masters")
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestMasters_EmptyList_ReturnsErrNoMasters(t *testing.T) {
	cfg, err := NewFromBytes(nil, FormatYAML)
	require.NoError(t, err)

	_, err = Masters(cfg, "rediskit.masters")
	assert.ErrorIs(t, err, ErrNoMasters)
}

func TestMasters_MissingAddr_ReturnsErrEmptyAddr(t *testing.T) {
	cfg, err := NewFromBytes([]byte(`{"rediskit":{"masters":[{"db":1}]}}`), FormatJSON)
	require.NoError(t, err)

	_, err = Masters(cfg, "rediskit.masters")
	assert.ErrorIs(t, err, ErrEmptyAddr)
}
