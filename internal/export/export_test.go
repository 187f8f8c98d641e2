package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePrependsBOM(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []string{"指标点", "支撑强度"}, [][]string{
		{"1.1", "H"},
		{"2.3", "M"},
	})
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, "指标点,支撑强度\n1.1,H\n2.3,M\n", string(out[3:]))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.csv")
	require.NoError(t, WriteFile(path, []string{"a"}, [][]string{{"1"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFa\n1\n", string(data))
}

func TestWriteQuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"name"}, [][]string{{"a,b"}}))
	assert.Contains(t, buf.String(), "\"a,b\"")
}
