package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/utils"
)

func TestSafeWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "report.md")
	require.NoError(t, utils.SafeWriteFile(path, []byte("hello")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	assert.NoFileExists(t, path+".tmp", "temp file left behind")
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  \"rows\": 3")
}
