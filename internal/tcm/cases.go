package tcm

import (
	"encoding/json"
	"strings"
	"sync"

	"tcm-go/internal/model"
)

// CaseUpdate carries the editable fields for an in-place case update.
// ID and CreatedAt are immutable; group membership does not change on edit.
type CaseUpdate struct {
	Name           string
	Precondition   string
	Steps          string
	ExpectedResult string
	Priority       model.Priority
	Status         model.Status
}

// CaseRepository owns the testCases collection.
type CaseRepository struct {
	store  Store
	logger Logger
	clock  Clock
	idgen  IDGenerator
	mu     sync.Mutex
}

// NewCaseRepository creates a CaseRepository with the given dependencies.
func NewCaseRepository(store Store, logger Logger, clock Clock, idgen IDGenerator) *CaseRepository {
	return &CaseRepository{store: store, logger: logger, clock: clock, idgen: idgen}
}

func (r *CaseRepository) load() []model.TestCase {
	data, err := r.store.Read(KeyCases)
	if err != nil {
		r.logger.Warn("reading cases failed, treating collection as empty", "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var cases []model.TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		r.logger.Warn("cases collection is corrupt, treating as empty", "error", err)
		return nil
	}
	return cases
}

func (r *CaseRepository) save(cases []model.TestCase) error {
	if cases == nil {
		cases = []model.TestCase{}
	}
	data, err := json.Marshal(cases)
	if err != nil {
		return &PersistenceError{Key: KeyCases, Op: "write", Err: err}
	}
	if err := r.store.Write(KeyCases, data); err != nil {
		return &PersistenceError{Key: KeyCases, Op: "write", Err: err}
	}
	return nil
}

// validateFields checks the required-field and enum rules shared by create
// and update. Precondition is optional.
func validateFields(name, steps, expectedResult string, priority model.Priority, status model.Status) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(steps) == "" {
		return &ValidationError{Field: "steps", Reason: "must not be empty"}
	}
	if strings.TrimSpace(expectedResult) == "" {
		return &ValidationError{Field: "expectedResult", Reason: "must not be empty"}
	}
	if !priority.Valid() {
		return &ValidationError{Field: "priority", Reason: "must be high, medium or low"}
	}
	if !status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be pending, passed, failed or locked"}
	}
	return nil
}

// Create validates and persists a new case. Defaults are applied first:
// priority medium, status pending. Group back-references are stored as
// given; the caller (Service) maintains the group's counter.
func (r *CaseRepository) Create(c model.TestCase) (*model.TestCase, error) {
	if c.Priority == "" {
		c.Priority = model.PriorityMedium
	}
	if c.Status == "" {
		c.Status = model.StatusPending
	}
	if err := validateFields(c.Name, c.Steps, c.ExpectedResult, c.Priority, c.Status); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.idgen.New()
	c.CreatedAt = r.clock.Now()

	cases := append(r.load(), c)
	if err := r.save(cases); err != nil {
		return nil, err
	}

	r.logger.Info("case created", "id", c.ID, "name", c.Name, "group", c.GroupID)
	return &c, nil
}

// BulkImport appends all records as cases of the given group in one write,
// so either the whole batch of records lands or none of it does. Each
// record gets a fresh ID, the group back-references, and a pending status
// unless the record carried one.
func (r *CaseRepository) BulkImport(records []model.ImportedCase, groupID, groupName string) ([]model.TestCase, error) {
	if len(records) == 0 {
		return nil, &ValidationError{Field: "records", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	imported := make([]model.TestCase, 0, len(records))
	for _, rec := range records {
		status := rec.Status
		if status == "" {
			status = model.StatusPending
		}
		priority := rec.Priority
		if priority == "" {
			priority = model.PriorityLow
		}
		imported = append(imported, model.TestCase{
			ID:             r.idgen.New(),
			Name:           rec.Name,
			Precondition:   rec.Precondition,
			Steps:          rec.Steps,
			ExpectedResult: rec.ExpectedResult,
			Priority:       priority,
			Status:         status,
			GroupID:        groupID,
			GroupName:      groupName,
			CreatedAt:      now,
		})
	}

	cases := append(r.load(), imported...)
	if err := r.save(cases); err != nil {
		return nil, err
	}

	r.logger.Info("cases imported", "count", len(imported), "group", groupID)
	return imported, nil
}

// Update replaces all editable fields of the case in place. Returns
// (nil, nil) when the ID is absent; the caller surfaces the notice.
func (r *CaseRepository) Update(id string, u CaseUpdate) (*model.TestCase, error) {
	if u.Priority == "" {
		u.Priority = model.PriorityMedium
	}
	if u.Status == "" {
		u.Status = model.StatusPending
	}
	if err := validateFields(u.Name, u.Steps, u.ExpectedResult, u.Priority, u.Status); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cases := r.load()
	for i := range cases {
		if cases[i].ID != id {
			continue
		}
		cases[i].Name = u.Name
		cases[i].Precondition = u.Precondition
		cases[i].Steps = u.Steps
		cases[i].ExpectedResult = u.ExpectedResult
		cases[i].Priority = u.Priority
		cases[i].Status = u.Status
		if err := r.save(cases); err != nil {
			return nil, err
		}
		updated := cases[i]
		r.logger.Info("case updated", "id", id)
		return &updated, nil
	}
	return nil, nil
}

// Delete removes the case with the given ID and returns the removed case,
// or (nil, nil) if absent. Batches are never touched: they hold copies.
func (r *CaseRepository) Delete(id string) (*model.TestCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases := r.load()
	for i := range cases {
		if cases[i].ID != id {
			continue
		}
		removed := cases[i]
		cases = append(cases[:i], cases[i+1:]...)
		if err := r.save(cases); err != nil {
			return nil, err
		}
		r.logger.Info("case deleted", "id", id)
		return &removed, nil
	}
	return nil, nil
}

// DeleteByGroup removes every case belonging to the group and returns how
// many were removed. Used by the Service's cascade on group deletion.
func (r *CaseRepository) DeleteByGroup(groupID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases := r.load()
	kept := cases[:0]
	for _, c := range cases {
		if c.GroupID != groupID {
			kept = append(kept, c)
		}
	}
	removed := len(cases) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := r.save(kept); err != nil {
		return 0, err
	}
	r.logger.Info("cases deleted with group", "group", groupID, "count", removed)
	return removed, nil
}

// Get returns the case with the given ID, or (nil, nil) if absent.
func (r *CaseRepository) Get(id string) (*model.TestCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.load() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

// List returns all cases in creation order.
func (r *CaseRepository) List() []model.TestCase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Filter returns the cases matching both filters: group membership when
// groupID is non-empty, and a case-insensitive substring match of query
// against name, precondition, steps or expected result when query is
// non-empty.
func (r *CaseRepository) Filter(groupID, query string) []model.TestCase {
	r.mu.Lock()
	defer r.mu.Unlock()

	query = strings.ToLower(query)
	var matched []model.TestCase
	for _, c := range r.load() {
		if groupID != "" && c.GroupID != groupID {
			continue
		}
		if query != "" && !caseMatches(c, query) {
			continue
		}
		matched = append(matched, c)
	}
	return matched
}

func caseMatches(c model.TestCase, lowerQuery string) bool {
	for _, field := range []string{c.Name, c.Precondition, c.Steps, c.ExpectedResult} {
		if strings.Contains(strings.ToLower(field), lowerQuery) {
			return true
		}
	}
	return false
}
