package querycontext

import (
	"math"
	"sort"
	"time"

	"github.com/averycrespi/csvquery-mcp/internal/dataset"
)

// Statistic names
const (
	StatCount  = "count"
	StatUnique = "unique"
	StatTop    = "top"
	StatFreq   = "freq"
	StatMean   = "mean"
	StatStd    = "std"
	StatMin    = "min"
	StatQ1     = "25%"
	StatMedian = "50%"
	StatQ3     = "75%"
	StatMax    = "max"
)

// StatisticKeys lists every statistic reported per column, in output order.
// Statistics that do not apply to a column are reported as "".
var StatisticKeys = []string{
	StatCount, StatUnique, StatTop, StatFreq,
	StatMean, StatStd, StatMin, StatQ1, StatMedian, StatQ3, StatMax,
}

func describeNumeric(cells []any) map[string]any {
	values := make([]float64, 0, len(cells))
	for _, cell := range cells {
		switch v := cell.(type) {
		case int64:
			values = append(values, float64(v))
		case float64:
			if !math.IsNaN(v) {
				values = append(values, v)
			}
		}
	}

	stats := map[string]any{StatCount: len(values)}
	if len(values) == 0 {
		return stats
	}
	sort.Float64s(values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	stats[StatMean] = finite(mean)
	stats[StatMin] = finite(values[0])
	stats[StatQ1] = finite(quantile(values, 0.25))
	stats[StatMedian] = finite(quantile(values, 0.5))
	stats[StatQ3] = finite(quantile(values, 0.75))
	stats[StatMax] = finite(values[len(values)-1])

	if len(values) > 1 {
		sq := 0.0
		for _, v := range values {
			sq += (v - mean) * (v - mean)
		}
		stats[StatStd] = finite(math.Sqrt(sq / float64(len(values)-1)))
	}

	return stats
}

func describeCategorical(cells []any) map[string]any {
	counts := make(map[any]int)
	order := make([]any, 0)
	count := 0

	for _, cell := range cells {
		if cell == nil {
			continue
		}
		count++
		if _, ok := counts[cell]; !ok {
			order = append(order, cell)
		}
		counts[cell]++
	}

	stats := map[string]any{
		StatCount:  count,
		StatUnique: len(order),
	}
	if count == 0 {
		return stats
	}

	top := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[top] {
			top = v
		}
	}
	stats[StatTop] = top
	stats[StatFreq] = counts[top]

	return stats
}

// describeTemporal measures offsets from the earliest value to keep
// nanosecond precision when averaging.
func describeTemporal(cells []any) map[string]any {
	times := make([]time.Time, 0, len(cells))
	for _, cell := range cells {
		if t, ok := cell.(time.Time); ok {
			times = append(times, t)
		}
	}

	stats := map[string]any{StatCount: len(times)}
	if len(times) == 0 {
		return stats
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	base := times[0]
	offsets := make([]float64, len(times))
	sum := 0.0
	for i, t := range times {
		offsets[i] = float64(t.Sub(base))
		sum += offsets[i]
	}

	at := func(offset float64) string {
		return base.Add(time.Duration(offset)).Format(dataset.TimeLayout)
	}

	stats[StatMean] = at(sum / float64(len(offsets)))
	stats[StatMin] = base.Format(dataset.TimeLayout)
	stats[StatQ1] = at(quantile(offsets, 0.25))
	stats[StatMedian] = at(quantile(offsets, 0.5))
	stats[StatQ3] = at(quantile(offsets, 0.75))
	stats[StatMax] = times[len(times)-1].Format(dataset.TimeLayout)

	return stats
}

// quantile interpolates linearly between the closest ranks of sorted values
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// finite maps values JSON cannot represent to the empty statistic
func finite(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return v
}
