// Package selection holds the set of node ids the operator has marked.
// The set is the source of truth; panels only project it.
package selection

// Set is an insertion-ordered set of node ids. The zero value is not
// usable; call New.
type Set struct {
	ids   map[string]struct{}
	order []string
}

func New() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Set) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		s.remove(id)
		return false
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in the order they were selected.
func (s *Set) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clear deselects the given ids. Unknown ids are ignored.
func (s *Set) Clear(ids ...string) {
	for _, id := range ids {
		s.remove(id)
	}
}

func (s *Set) remove(id string) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
