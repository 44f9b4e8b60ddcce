package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/rxnrate/internal/trajectory"
)

// WriteCSV writes one row per sample: the time followed by each species
// in result order.
func WriteCSV(w io.Writer, result *trajectory.Result) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, result.Species...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, state := range result.States {
		row := make([]string, 0, len(state)+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, val := range state {
			row = append(row, strconv.FormatFloat(val, 'g', 10, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
