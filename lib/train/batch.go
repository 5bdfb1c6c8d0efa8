package train

import "gitlab.com/lexiscan/contract-extraction/lib/document"

// compounding returns a sequence of batch sizes growing geometrically from
// start toward stop, mirroring the schedule the upstream model was tuned
// with. Each call yields the current size, then advances.
func compounding(start, stop, factor float64) func() int {
	current := start
	return func() int {
		size := int(current)
		if current*factor < stop {
			current *= factor
		} else {
			current = stop
		}
		return size
	}
}

// batches partitions examples according to the size schedule. Sizes below 1
// are treated as 1 so the schedule can never stall.
func batches(examples []document.Example, nextSize func() int) [][]document.Example {
	var out [][]document.Example
	for i := 0; i < len(examples); {
		size := nextSize()
		if size < 1 {
			size = 1
		}
		end := i + size
		if end > len(examples) {
			end = len(examples)
		}
		out = append(out, examples[i:end])
		i = end
	}
	return out
}
