package synthesizer

import (
	"sort"

	"apidocgen/internal/logging"
)

// budgetSelect picks the subset of loaded files whose serialized form fits
// within budget characters, smallest files first so as many endpoints as
// possible make it into the prompt. Ties on size break by original load
// order, which keeps the selection deterministic. A non-positive budget
// disables the cap.
func budgetSelect(contents map[string]string, order []string, budget int) []string {
	if budget <= 0 {
		return order
	}

	type entry struct {
		path string
		size int
		rank int
	}
	entries := make([]entry, 0, len(order))
	for rank, path := range order {
		// Cost of one serialized entry: path, separator, content, newline.
		entries = append(entries, entry{path: path, size: len(path) + len(contents[path]) + 2, rank: rank})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].size != entries[j].size {
			return entries[i].size < entries[j].size
		}
		return entries[i].rank < entries[j].rank
	})

	used := 0
	picked := make(map[string]bool, len(entries))
	for _, e := range entries {
		if used+e.size > budget {
			continue
		}
		used += e.size
		picked[e.path] = true
	}

	var selected []string
	for _, path := range order {
		if picked[path] {
			selected = append(selected, path)
		}
	}

	if len(selected) < len(order) {
		logging.Warn("content budget of %d chars dropped %d of %d files from the synthesis prompt",
			budget, len(order)-len(selected), len(order))
	}
	return selected
}
