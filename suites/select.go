package suites

import (
	"fmt"
	"slices"

	"github.com/olin/focstest/types"
)

// ApplySelection filters suites by the selection policy. It returns the
// suites to run (original order and numbering preserved) and the count of
// test cases skipped by deselection. Indices that name no suite are a
// configuration error.
func ApplySelection(all []types.Suite, sel types.Selection) ([]types.Suite, int, error) {
	if sel.Mode == types.SelectAll {
		return all, 0, nil
	}

	for _, idx := range sel.Indices {
		if idx < 1 || idx > len(all) {
			return nil, 0, fmt.Errorf("suite %d does not exist (have %d suites)", idx, len(all))
		}
	}

	keep := func(s types.Suite) bool {
		listed := slices.Contains(sel.Indices, s.Index)
		if sel.Mode == types.SelectOnly {
			return listed
		}
		return !listed
	}

	var selected []types.Suite
	skipped := 0
	for _, s := range all {
		if keep(s) {
			selected = append(selected, s)
		} else {
			skipped += len(s.Cases)
		}
	}
	return selected, skipped, nil
}
