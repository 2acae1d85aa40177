package settings

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Addon looks up an addon by id.
func (t *Table) Addon(id AddonID) (*AddonSpec, error) {
	for i := range t.Addons {
		if t.Addons[i].ID == id {
			return &t.Addons[i], nil
		}
	}
	return nil, shared.Errorf(shared.KindInvalidArgument, "invalid addon id %d", id)
}

// AddonIDs returns every catalog id in ascending order.
func (t *Table) AddonIDs() []AddonID {
	ids := make([]AddonID, 0, len(t.Addons))
	for _, a := range t.Addons {
		ids = append(ids, a.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DirectDependents returns the addons listing id as a prerequisite.
func (t *Table) DirectDependents(id AddonID) []AddonID {
	var out []AddonID
	for _, a := range t.Addons {
		for _, req := range a.Requires {
			if req == id {
				out = append(out, a.ID)
				break
			}
		}
	}
	return out
}

// TransitiveDependents sweeps the reverse edges of the graph from id and returns every addon
// that depends on it directly or through other addons, in ascending order.
func (t *Table) TransitiveDependents(id AddonID) []AddonID {
	seen := mapset.New[AddonID]()
	queue := []AddonID{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range t.DirectDependents(current) {
			if seen.Has(dep) {
				continue
			}
			seen.Put(dep)
			queue = append(queue, dep)
		}
	}

	out := make([]AddonID, 0, seen.Size())
	seen.Each(func(a AddonID) {
		out = append(out, a)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// checkAcyclic verifies the prerequisite edges form a DAG over known addons.
func (t *Table) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[AddonID]int, len(t.Addons))

	var visit func(id AddonID, path []AddonID) error
	visit = func(id AddonID, path []AddonID) error {
		switch state[id] {
		case visiting:
			return fmt.Errorf("addon dependency cycle: %v", append(path, id))
		case done:
			return nil
		}
		state[id] = visiting
		spec, err := t.Addon(id)
		if err != nil {
			return fmt.Errorf("addon %v requires unknown addon %d", path, id)
		}
		for _, req := range spec.Requires {
			if err := visit(req, append(path, id)); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	for _, id := range t.AddonIDs() {
		if state[id] == unvisited {
			if err := visit(id, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
