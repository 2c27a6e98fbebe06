package committee

import (
	"github.com/pkg/errors"

	"github.com/modelkit/modelkit/estimator"
)

// A Snapshot is the reconstructible state of a Machine, shaped for an
// external persister. Expert instances persist through their own
// mechanisms; the snapshot records the committee shape and the class-label
// universe.
type Snapshot struct {
	NumExperts int      `json:"num_experts"`
	Classes    []string `json:"classes"`
}

// Snapshot captures the trained committee state.
func (m *Machine) Snapshot() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.trained {
		return nil, estimator.ErrNotTrained
	}
	classes := make([]string, len(m.classes))
	copy(classes, m.classes)
	return &Snapshot{NumExperts: len(m.experts), Classes: classes}, nil
}

// Restore reinstates state captured by Snapshot onto a committee built with
// the same expert list.
func (m *Machine) Restore(s *Snapshot) error {
	if s.NumExperts != len(m.experts) {
		return errors.Errorf("snapshot is for %d experts, this committee has %d", s.NumExperts, len(m.experts))
	}
	if len(s.Classes) == 0 {
		return errors.New("snapshot has no classes")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes = s.Classes
	m.trained = true
	return nil
}
