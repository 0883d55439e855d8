package gan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sugarme/gotch/nn"
)

// Summary returns one row per variable of vs, sorted by name, with columns
// `name`, `shape` and `params`.
func Summary(vs *nn.VarStore) dataframe.DataFrame {
	vars := vs.Variables()
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)

	shapes := make([]string, len(names))
	params := make([]int, len(names))
	for i, n := range names {
		v := vars[n]
		size := v.MustSize()
		shapes[i] = fmt.Sprint(size)
		params[i] = int(numel(size))
	}

	return dataframe.New(
		series.New(names, series.String, "name"),
		series.New(shapes, series.String, "shape"),
		series.New(params, series.Int, "params"),
	)
}

// NumParams returns number of parameters of variables whose name starts
// with prefix. Empty prefix counts all of them.
func NumParams(vs *nn.VarStore, prefix string) int64 {
	var total int64
	for n, v := range vs.Variables() {
		if !strings.HasPrefix(n, prefix) {
			continue
		}
		total += numel(v.MustSize())
	}
	return total
}

// FormatParams formats a parameter count, e.g 54,414,979.
func FormatParams(n int64) string {
	return humanize.Comma(n)
}

func numel(size []int64) int64 {
	n := int64(1)
	for _, s := range size {
		n *= s
	}
	return n
}
