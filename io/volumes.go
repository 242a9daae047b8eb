package io

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"

	"github.com/cadtools/massbudget"
)

// ReadVolumes reads a volume table: column 0 holds part IDs and column 1
// holds volumes in mm^3.
func ReadVolumes(file string) (map[int]float64, error) {
	cols, err := table.ReadTable(file, []int{0, 1}, nil)
	if err != nil {
		return nil, err
	}

	ids, vols := cols[0], cols[1]
	out := make(map[int]float64, len(ids))
	for i := range ids {
		id := int(ids[i])
		if float64(id) != ids[i] || id <= 0 {
			return nil, fmt.Errorf(
				"Line %d of volume table '%s' has ID %g, which is not a "+
					"positive integer.", i+1, file, ids[i],
			)
		} else if _, ok := out[id]; ok {
			return nil, fmt.Errorf(
				"Volume table '%s' lists part %d more than once.", file, id,
			)
		} else if vols[i] < 0 || math.IsNaN(vols[i]) {
			return nil, fmt.Errorf(
				"Volume table '%s' gives part %d the invalid volume %g.",
				file, id, vols[i],
			)
		}
		out[id] = vols[i]
	}
	return out, nil
}

// ApplyVolumes replaces the volume of every part listed in vols. It returns
// the number of parts that were changed.
func ApplyVolumes(parts []massbudget.Part, vols map[int]float64) (int, error) {
	idx := make(map[int]int, len(parts))
	for i := range parts {
		idx[parts[i].ID] = i
	}
	for id := range vols {
		if _, ok := idx[id]; !ok {
			return 0, fmt.Errorf(
				"Volume table lists part %d, but the design has no such part.",
				id,
			)
		}
	}
	for id, v := range vols {
		parts[idx[id]].Volume = v
	}
	return len(vols), nil
}
