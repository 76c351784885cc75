package usage

import (
	"bufio"
	"os"
	"strings"

	"github.com/Gthulhu/cpupower/domain"
)

const DefaultStatPath = "/proc/stat"

// ProcStatSource reads the cpu rows of a /proc/stat formatted file.
type ProcStatSource struct {
	path    string
	maxRows int
}

func NewProcStatSource(path string, maxRows int) *ProcStatSource {
	if path == "" {
		path = DefaultStatPath
	}
	if maxRows <= 0 || maxRows > domain.MaxStatRows {
		maxRows = domain.MaxStatRows
	}
	return &ProcStatSource{path: path, maxRows: maxRows}
}

// Read collects the leading cpu rows in one pass. Scanning stops at the first
// non-cpu line or once maxRows rows have been read.
func (s *ProcStatSource) Read() (domain.CounterSnapshot, bool) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, false
	}
	defer file.Close()

	snapshot := make(domain.CounterSnapshot, 0, s.maxRows)
	scanner := bufio.NewScanner(file)
	for len(snapshot) < s.maxRows && scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu") {
			break
		}
		snapshot = append(snapshot, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, false
	}
	return snapshot, true
}
