package usage

import (
	"strconv"
	"strings"

	"github.com/Gthulhu/cpupower/domain"
)

// workColumns is the number of counters after the label that count as busy time (user, nice, system).
const workColumns = 3

// parseCounters sums the busy and total jiffies of one row. A row with fewer than
// workColumns counters is reported as not ok, which Usage turns into the sentinel.
func parseCounters(line string) (work, total uint64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 1+workColumns {
		return 0, 0, false
	}
	for i, field := range fields[1:] {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return 0, 0, false
		}
		if i < workColumns {
			work += v
		}
		total += v
	}
	return work, total, true
}

// Usage computes the busy percentage between two readings of the same counter row.
// It returns domain.UsageUnavailable when either row cannot be parsed.
func Usage(line1, line2 string) float64 {
	work1, total1, ok1 := parseCounters(line1)
	work2, total2, ok2 := parseCounters(line2)
	if !ok1 || !ok2 {
		return domain.UsageUnavailable
	}
	if total2 <= total1 || work2 <= work1 {
		return 0
	}
	usage := 100 * float64(work2-work1) / float64(total2-total1)
	if usage > 100 {
		return 100
	}
	return usage
}

func rowLabel(row string) string {
	label, _, _ := strings.Cut(strings.TrimSpace(row), " ")
	return label
}

// BuildVector turns two snapshots into a usage vector of length 1+maxCores.
//
// Rows 0 (aggregate) and 1 (core 0) are positional. Core i-1 for i >= 2 is only
// read when the next unconsumed row of a snapshot is labelled cpu<i-1>; otherwise
// the core is offline and reports 0. Unparsable rows also report 0 and make the
// call return domain.ErrMalformedCounters.
func BuildVector(a, b domain.CounterSnapshot, maxCores int) (domain.UsageVector, error) {
	if maxCores < 1 {
		maxCores = 1
	}
	vector := domain.NewUsageVector(maxCores)
	if len(a) < 2 || len(b) < 2 {
		return vector, domain.ErrMalformedCounters
	}

	malformed := false
	set := func(i int, usage float64) {
		if usage == domain.UsageUnavailable {
			malformed = true
			usage = 0
		}
		vector[i] = usage
	}

	set(0, Usage(a[0], b[0]))
	set(1, Usage(a[1], b[1]))

	cursorA, cursorB := 2, 2
	for i := 2; i <= maxCores; i++ {
		label := "cpu" + strconv.Itoa(i-1)
		inA := cursorA < len(a) && rowLabel(a[cursorA]) == label
		inB := cursorB < len(b) && rowLabel(b[cursorB]) == label
		if inA {
			cursorA++
		}
		if inB {
			cursorB++
		}
		if inA && inB {
			set(i, Usage(a[cursorA-1], b[cursorB-1]))
		}
	}

	if malformed {
		return vector, domain.ErrMalformedCounters
	}
	return vector, nil
}
