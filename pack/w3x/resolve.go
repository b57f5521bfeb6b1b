package w3x

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/w3x_skeleton_browser/utils"
)

var ErrCyclicHierarchy = errors.New("cyclic W3DHierarchy")

// ResolveOrder returns pivot indices ordered so that every parent
// precedes its children. Pivot 0 and pivots without a usable parent
// start the order, their subtrees follow breadth first.
func ResolveOrder(h *Hierarchy) ([]int, error) {
	count := len(h.Pivots)
	children := make([][]int, count)
	queue := make([]int, 0, count)

	for i := range h.Pivots {
		p := &h.Pivots[i]
		if i == 0 || !p.HasParent(count) {
			queue = append(queue, i)
		} else {
			children[p.ParentIndex] = append(children[p.ParentIndex], i)
		}
	}

	order := make([]int, 0, count)
	for len(queue) != 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		queue = append(queue, children[i]...)
	}

	if len(order) != count {
		reached := make([]bool, count)
		for _, i := range order {
			reached[i] = true
		}
		var names []string
		for i := range h.Pivots {
			if !reached[i] {
				names = append(names, h.Pivots[i].Name)
			}
		}
		return nil, errors.Wrapf(ErrCyclicHierarchy, "pivots not reachable from a root: %s", strings.Join(names, ", "))
	}
	return order, nil
}

// Resolve computes world transforms for every pivot.
// A pivot other than 0 without a usable parent becomes an extra root and
// is reported. Cycles are fatal and leave the hierarchy untouched.
func Resolve(h *Hierarchy, rep Reporter) error {
	if len(h.Pivots) == 0 {
		return errors.Wrapf(ErrNoUsableHierarchy, "nothing to resolve")
	}

	order, err := ResolveOrder(h)
	if err != nil {
		return err
	}

	count := len(h.Pivots)
	for _, i := range order {
		p := &h.Pivots[i]
		if i == 0 || !p.HasParent(count) {
			if i != 0 {
				reportf(rep, DanglingParent, p.Name, "no usable parent (index %d, source %d), treated as root", p.ParentIndex, p.SourceParent)
			}
			p.WorldPosition = p.LocalTranslation
			p.WorldQuaternion = p.LocalRotation
			continue
		}

		parent := &h.Pivots[p.ParentIndex]
		p.WorldPosition = utils.AddVectors(parent.WorldPosition, utils.RotateVector(p.LocalTranslation, parent.WorldQuaternion))
		p.WorldQuaternion = utils.MultiplyQuats(parent.WorldQuaternion, p.LocalRotation)
	}

	h.resolved = true
	return nil
}
