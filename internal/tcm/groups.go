package tcm

import (
	"encoding/json"
	"strings"
	"sync"

	"tcm-go/internal/model"
)

// GroupRepository owns the testCaseGroups collection. Every operation is a
// read-modify-write of the full collection against the injected store.
//
// The denormalized CaseCount on each group is only adjusted here, and only
// the Service calls the adjusting primitive, so the counter cannot drift
// through forgotten call sites.
type GroupRepository struct {
	store  Store
	logger Logger
	clock  Clock
	idgen  IDGenerator
	mu     sync.Mutex
}

// NewGroupRepository creates a GroupRepository with the given dependencies.
func NewGroupRepository(store Store, logger Logger, clock Clock, idgen IDGenerator) *GroupRepository {
	return &GroupRepository{store: store, logger: logger, clock: clock, idgen: idgen}
}

// load reads the persisted collection. Read failures and corrupt data
// degrade to an empty collection so the caller stays usable.
func (r *GroupRepository) load() []model.Group {
	data, err := r.store.Read(KeyGroups)
	if err != nil {
		r.logger.Warn("reading groups failed, treating collection as empty", "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var groups []model.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		r.logger.Warn("groups collection is corrupt, treating as empty", "error", err)
		return nil
	}
	return groups
}

func (r *GroupRepository) save(groups []model.Group) error {
	if groups == nil {
		groups = []model.Group{}
	}
	data, err := json.Marshal(groups)
	if err != nil {
		return &PersistenceError{Key: KeyGroups, Op: "write", Err: err}
	}
	if err := r.store.Write(KeyGroups, data); err != nil {
		return &PersistenceError{Key: KeyGroups, Op: "write", Err: err}
	}
	return nil
}

// Create validates and persists a new group with CaseCount 0.
func (r *GroupRepository) Create(name, description string) (*model.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	g := model.Group{
		ID:          r.idgen.New(),
		Name:        name,
		Description: description,
		CaseCount:   0,
		CreatedAt:   r.clock.Now(),
	}

	groups := append(r.load(), g)
	if err := r.save(groups); err != nil {
		return nil, err
	}

	r.logger.Info("group created", "id", g.ID, "name", g.Name)
	return &g, nil
}

// Get returns the group with the given ID, or (nil, nil) if absent.
func (r *GroupRepository) Get(id string) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.load() {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, nil
}

// List returns all groups in creation order.
func (r *GroupRepository) List() []model.Group {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Delete removes the group with the given ID. Absent IDs are a no-op, not
// an error. Cascading member-case deletion is the Service's responsibility.
func (r *GroupRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	groups := r.load()
	kept := groups[:0]
	for _, g := range groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(groups) {
		return nil
	}

	if err := r.save(kept); err != nil {
		return err
	}
	r.logger.Info("group deleted", "id", id)
	return nil
}

// IncrementCaseCount adds delta to the group's case counter, clamped at 0.
// An absent group is a no-op: cases without a (surviving) group carry no
// counter to maintain.
func (r *GroupRepository) IncrementCaseCount(id string, delta int) error {
	if id == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	groups := r.load()
	changed := false
	for i := range groups {
		if groups[i].ID == id {
			groups[i].CaseCount += delta
			if groups[i].CaseCount < 0 {
				groups[i].CaseCount = 0
			}
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	return r.save(groups)
}
