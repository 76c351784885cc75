package usage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeProcStat = `cpu  4705 356 584 3699176 23060 0 277 0 0 0
cpu0 1393 280 234 921364 8150 0 123 0 0 0
cpu2 1090 12 118 925960 4932 0 48 0 0 0
cpu3 1095 22 100 926000 4900 0 50 0 0 0
intr 114930548 113199788 3 0 5 263 0 4 [... lots more numbers ...]
ctxt 1990473
`

func writeProcStat(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stat")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProcStatSourceStopsAtFirstNonCPULine(t *testing.T) {
	src := NewProcStatSource(writeProcStat(t, fakeProcStat), 0)
	snapshot, ok := src.Read()
	require.True(t, ok)
	require.Len(t, snapshot, 4)
	assert.Equal(t, "cpu", rowLabel(snapshot[0]))
	assert.Equal(t, "cpu3", rowLabel(snapshot[3]))
}

func TestProcStatSourceBoundedRows(t *testing.T) {
	content := "cpu 1 1 1 1\ncpu0 1 1 1 1\ncpu1 1 1 1 1\ncpu2 1 1 1 1\ncpu3 1 1 1 1\ncpu4 1 1 1 1\ncpu5 1 1 1 1\n"
	src := NewProcStatSource(writeProcStat(t, content), 0)
	snapshot, ok := src.Read()
	require.True(t, ok)
	assert.Len(t, snapshot, domain.MaxStatRows)

	src = NewProcStatSource(writeProcStat(t, content), 3)
	snapshot, ok = src.Read()
	require.True(t, ok)
	assert.Len(t, snapshot, 3)
}

func TestProcStatSourceUnavailable(t *testing.T) {
	src := NewProcStatSource(filepath.Join(t.TempDir(), "missing"), 0)
	snapshot, ok := src.Read()
	assert.False(t, ok)
	assert.Nil(t, snapshot)
}
