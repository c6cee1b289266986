package semantic

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// maxHintDistance bounds how different a suggestion may be from what
// was written.
const maxHintDistance = 2

// suggest returns a "did you mean" hint naming the entry of the candidate
// sets closest to name, or the empty string if none is close.  Ties go to
// the lexically smaller name.
func suggest(name string, candidates ...map[string]struct{}) string {
	var best string
	bestDist := maxHintDistance + 1
	for _, c := range candidates {
		for _, s := range sortedKeys(c) {
			d := levenshtein.ComputeDistance(name, s)
			if d < bestDist || (d == bestDist && s < best) {
				best, bestDist = s, d
			}
		}
	}
	if best == "" || best == name {
		return ""
	}
	return fmt.Sprintf("did you mean %q?", best)
}
