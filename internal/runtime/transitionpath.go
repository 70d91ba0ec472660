package runtime

import "github.com/colintheshots/RxFsm/pkg/domain"

// transitionPath computes the minimal exit and enter lists for a
// reconfiguration, given the root-first ancestor chains of the current
// and target leaves. The longest common prefix of the two chains is the
// lowest common ancestor.
//
// statesToExit is ordered nearest-to-current-leaf first and stops at but
// excludes the LCA. statesToEnter runs from the child of the LCA down to
// but excluding the target leaf, which the caller enters separately.
// Identical leaves have identical chains, yielding two empty lists.
func transitionPath(currentAncestors, targetAncestors []*domain.State) (statesToExit, statesToEnter []*domain.State) {
	common := 0
	for common < len(currentAncestors) && common < len(targetAncestors) &&
		currentAncestors[common] == targetAncestors[common] {
		common++
	}

	for i := len(currentAncestors) - 1; i >= common; i-- {
		statesToExit = append(statesToExit, currentAncestors[i])
	}
	statesToEnter = append(statesToEnter, targetAncestors[common:]...)
	return statesToExit, statesToEnter
}
