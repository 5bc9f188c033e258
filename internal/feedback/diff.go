package feedback

import (
	"fmt"

	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

// Change is one label correction: the segment index plus the original and
// replacement labels.
type Change struct {
	Index int
	From  string
	To    string
}

// Diff returns the label changes between the original and edited segment
// lists, in ascending index order. Equal inputs yield an empty list.
//
// The two slices must have equal length and aligned indices: the feedback
// session never adds or removes rows, only relabels them. A length
// mismatch is a programming error and panics.
func Diff(original, edited []segment.Event) []Change {
	if len(original) != len(edited) {
		panic(fmt.Sprintf("feedback: diff length mismatch: %d vs %d", len(original), len(edited)))
	}

	var changes []Change
	for i := range original {
		if original[i].Label != edited[i].Label {
			changes = append(changes, Change{
				Index: i,
				From:  original[i].Label,
				To:    edited[i].Label,
			})
		}
	}
	return changes
}
