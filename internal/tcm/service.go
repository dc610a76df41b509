package tcm

import (
	"fmt"
	"sort"
	"time"

	"tcm-go/internal/model"
)

// Service is the orchestration layer over the repositories. Every operation
// that touches more than one collection lives here, so the cross-collection
// invariants (cascade delete, case-counter maintenance) are enforced in one
// place instead of being left to caller discipline.
type Service struct {
	groups   *GroupRepository
	cases    *CaseRepository
	batches  *BatchRepository
	settings *SettingsRepository
	logger   Logger
}

// NewService creates a Service with the provided repositories.
func NewService(groups *GroupRepository, cases *CaseRepository, batches *BatchRepository, settings *SettingsRepository, logger Logger) *Service {
	return &Service{
		groups:   groups,
		cases:    cases,
		batches:  batches,
		settings: settings,
		logger:   logger,
	}
}

// Groups returns the group repository.
func (s *Service) Groups() *GroupRepository { return s.groups }

// Cases returns the case repository.
func (s *Service) Cases() *CaseRepository { return s.cases }

// Batches returns the batch repository.
func (s *Service) Batches() *BatchRepository { return s.batches }

// Settings returns the settings repository.
func (s *Service) Settings() *SettingsRepository { return s.settings }

// CreateCase persists a new case and, when it belongs to a group, resolves
// the group's name for the denormalized back-reference and bumps the
// group's case counter in the same operation.
func (s *Service) CreateCase(c model.TestCase) (*model.TestCase, error) {
	if c.GroupID != "" {
		g, err := s.groups.Get(c.GroupID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, &NotFoundError{Kind: "group", ID: c.GroupID}
		}
		c.GroupName = g.Name
	}

	created, err := s.cases.Create(c)
	if err != nil {
		return nil, err
	}
	if created.GroupID != "" {
		if err := s.groups.IncrementCaseCount(created.GroupID, 1); err != nil {
			return nil, fmt.Errorf("updating group case count: %w", err)
		}
	}
	return created, nil
}

// ImportCases bulk-imports records into a group: the whole sequence is
// appended atomically and the group counter is advanced by its length.
func (s *Service) ImportCases(records []model.ImportedCase, groupID string) ([]model.TestCase, error) {
	g, err := s.groups.Get(groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, &NotFoundError{Kind: "group", ID: groupID}
	}

	imported, err := s.cases.BulkImport(records, g.ID, g.Name)
	if err != nil {
		return nil, err
	}
	if err := s.groups.IncrementCaseCount(g.ID, len(imported)); err != nil {
		return nil, fmt.Errorf("updating group case count: %w", err)
	}
	return imported, nil
}

// DeleteCase removes a case and keeps its group's counter in sync. Returns
// false when the ID was absent. Existing batches are untouched.
func (s *Service) DeleteCase(id string) (bool, error) {
	removed, err := s.cases.Delete(id)
	if err != nil {
		return false, err
	}
	if removed == nil {
		return false, nil
	}
	if removed.GroupID != "" {
		if err := s.groups.IncrementCaseCount(removed.GroupID, -1); err != nil {
			return true, fmt.Errorf("updating group case count: %w", err)
		}
	}
	return true, nil
}

// DeleteGroup removes a group and cascades deletion to every case that
// belongs to it. Absent groups are a no-op. Batches sourced from the group
// survive untouched — they hold copies, not references.
func (s *Service) DeleteGroup(id string) error {
	if err := s.groups.Delete(id); err != nil {
		return err
	}
	removed, err := s.cases.DeleteByGroup(id)
	if err != nil {
		return fmt.Errorf("cascading case deletion: %w", err)
	}
	if removed > 0 {
		s.logger.Info("group cascade removed cases", "group", id, "count", removed)
	}
	return nil
}

// CreateBatchFromGroup snapshots all cases of a group into a new batch.
func (s *Service) CreateBatchFromGroup(name, groupID string) (*model.Batch, error) {
	g, err := s.groups.Get(groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, &NotFoundError{Kind: "group", ID: groupID}
	}
	source := s.cases.Filter(groupID, "")
	return s.batches.Create(name, groupID, source)
}

// CreateBatchFromSelection snapshots an explicit case selection into a new
// batch. Unknown case IDs are NotFoundErrors so a typo cannot silently
// shrink the batch.
func (s *Service) CreateBatchFromSelection(name string, caseIDs []string) (*model.Batch, error) {
	byID := make(map[string]model.TestCase)
	for _, c := range s.cases.List() {
		byID[c.ID] = c
	}
	source := make([]model.TestCase, 0, len(caseIDs))
	for _, id := range caseIDs {
		c, ok := byID[id]
		if !ok {
			return nil, &NotFoundError{Kind: "case", ID: id}
		}
		source = append(source, c)
	}
	return s.batches.Create(name, "", source)
}

// DashboardStats aggregates execution statistics. With batchID 0 it covers
// the cases of every batch; otherwise just the one batch, which must exist.
func (s *Service) DashboardStats(batchID int) (Stats, error) {
	if batchID != 0 {
		b, err := s.batches.Get(batchID)
		if err != nil {
			return Stats{}, err
		}
		if b == nil {
			return Stats{}, &NotFoundError{Kind: "batch", ID: fmt.Sprint(batchID)}
		}
		return ComputeStats(b.Cases), nil
	}

	var all []model.BatchCase
	for _, b := range s.batches.List() {
		all = append(all, b.Cases...)
	}
	return ComputeStats(all), nil
}

// RecentExecutions returns the most recently executed batch cases across
// all batches, newest first, capped at limit. Pending and locked cases are
// excluded: only real outcomes count as executions.
func (s *Service) RecentExecutions(limit int) []model.BatchCase {
	var executed []model.BatchCase
	for _, b := range s.batches.List() {
		for _, c := range b.Cases {
			if c.Status == model.StatusPassed || c.Status == model.StatusFailed {
				executed = append(executed, c)
			}
		}
	}
	sort.SliceStable(executed, func(i, j int) bool {
		return executionTime(executed[i]).After(executionTime(executed[j]))
	})
	if limit > 0 && len(executed) > limit {
		executed = executed[:limit]
	}
	return executed
}

func executionTime(c model.BatchCase) time.Time {
	if c.ExecutedAt != nil {
		return *c.ExecutedAt
	}
	return c.CreatedAt
}

// CountMismatch reports a group whose stored counter disagrees with the
// live number of member cases.
type CountMismatch struct {
	GroupID   string
	GroupName string
	Stored    int
	Live      int
}

// VerifyCaseCounts recomputes each group's live member count and returns
// the groups whose stored counter has drifted. A clean result is the
// invariant the Service maintains; drift indicates stored data edited
// outside this process.
func (s *Service) VerifyCaseCounts() []CountMismatch {
	live := make(map[string]int)
	for _, c := range s.cases.List() {
		if c.GroupID != "" {
			live[c.GroupID]++
		}
	}

	var mismatches []CountMismatch
	for _, g := range s.groups.List() {
		if g.CaseCount != live[g.ID] {
			mismatches = append(mismatches, CountMismatch{
				GroupID:   g.ID,
				GroupName: g.Name,
				Stored:    g.CaseCount,
				Live:      live[g.ID],
			})
		}
	}
	return mismatches
}
