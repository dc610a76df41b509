package tcm

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"tcm-go/internal/model"
)

// MaxBatchNameLen is the longest allowed batch name.
const MaxBatchNameLen = 50

// BatchRepository owns the testBatches collection. A batch is a frozen copy
// of the cases selected at creation time; after creation only the
// status/executedAt of its member cases and its own updatedAt ever change.
type BatchRepository struct {
	store  Store
	logger Logger
	clock  Clock
	mu     sync.Mutex
}

// NewBatchRepository creates a BatchRepository with the given dependencies.
func NewBatchRepository(store Store, logger Logger, clock Clock) *BatchRepository {
	return &BatchRepository{store: store, logger: logger, clock: clock}
}

func (r *BatchRepository) load() []model.Batch {
	data, err := r.store.Read(KeyBatches)
	if err != nil {
		r.logger.Warn("reading batches failed, treating collection as empty", "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var batches []model.Batch
	if err := json.Unmarshal(data, &batches); err != nil {
		r.logger.Warn("batches collection is corrupt, treating as empty", "error", err)
		return nil
	}
	return batches
}

func (r *BatchRepository) save(batches []model.Batch) error {
	if batches == nil {
		batches = []model.Batch{}
	}
	data, err := json.Marshal(batches)
	if err != nil {
		return &PersistenceError{Key: KeyBatches, Op: "write", Err: err}
	}
	if err := r.store.Write(KeyBatches, data); err != nil {
		return &PersistenceError{Key: KeyBatches, Op: "write", Err: err}
	}
	return nil
}

// loadSeq reads the persisted ID high-water mark. Missing or corrupt data
// degrades to 0; the live collection max still bounds the next ID.
func (r *BatchRepository) loadSeq() int {
	data, err := r.store.Read(KeyBatchSeq)
	if err != nil {
		r.logger.Warn("reading batch sequence failed, recomputing from live batches", "error", err)
		return 0
	}
	if len(data) == 0 {
		return 0
	}
	var seq int
	if err := json.Unmarshal(data, &seq); err != nil {
		r.logger.Warn("batch sequence is corrupt, recomputing from live batches", "error", err)
		return 0
	}
	return seq
}

func (r *BatchRepository) saveSeq(seq int) error {
	data, err := json.Marshal(seq)
	if err != nil {
		return &PersistenceError{Key: KeyBatchSeq, Op: "write", Err: err}
	}
	if err := r.store.Write(KeyBatchSeq, data); err != nil {
		return &PersistenceError{Key: KeyBatchSeq, Op: "write", Err: err}
	}
	return nil
}

// nextID computes the next batch ID as one past the highest ID ever
// assigned: the persisted high-water mark or the live collection max,
// whichever is larger. Deleting the batch with the current max ID therefore
// never frees that ID for reuse.
func nextID(batches []model.Batch, seq int) int {
	max := seq
	for _, b := range batches {
		if b.ID > max {
			max = b.ID
		}
	}
	return max + 1
}

// NextID returns the ID the next created batch would get, computed from the
// persisted state at call time.
func (r *BatchRepository) NextID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return nextID(r.load(), r.loadSeq())
}

// Create materializes a batch from the given source cases: each case is
// deep-copied, its steps text is split into ordered step objects (ordinal
// prefixes stripped), and its execution status is reset to pending
// regardless of the source's authoring status.
func (r *BatchRepository) Create(name, groupID string, source []model.TestCase) (*model.Batch, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len([]rune(name)) > MaxBatchNameLen {
		return nil, &ValidationError{Field: "name", Reason: "must be at most 50 characters"}
	}
	if len(source) == 0 {
		return nil, &ValidationError{Field: "cases", Reason: "at least one case must be selected"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	cases := make([]model.BatchCase, 0, len(source))
	for _, c := range source {
		cases = append(cases, model.BatchCase{
			ID:             c.ID,
			Name:           c.Name,
			Precondition:   c.Precondition,
			Steps:          MaterializeSteps(c.Steps),
			ExpectedResult: c.ExpectedResult,
			Priority:       c.Priority,
			Status:         model.StatusPending,
			GroupID:        c.GroupID,
			GroupName:      c.GroupName,
			CreatedAt:      c.CreatedAt,
		})
	}

	batches := r.load()
	b := model.Batch{
		ID:        nextID(batches, r.loadSeq()),
		Name:      name,
		GroupID:   groupID,
		Cases:     cases,
		Status:    model.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.saveSeq(b.ID); err != nil {
		return nil, err
	}
	if err := r.save(append(batches, b)); err != nil {
		return nil, err
	}

	r.logger.Info("batch created", "id", b.ID, "name", b.Name, "cases", len(b.Cases))
	return &b, nil
}

// UpdateCaseStatus sets the execution status of one case inside a batch,
// stamping the case's executedAt and the batch's updatedAt. The case
// collection is never touched. Absent batch or case IDs are NotFoundErrors.
func (r *BatchRepository) UpdateCaseStatus(batchID int, caseID string, status model.Status) (*model.Batch, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "must be pending, passed, failed or locked"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	batches := r.load()
	for i := range batches {
		if batches[i].ID != batchID {
			continue
		}
		for j := range batches[i].Cases {
			if batches[i].Cases[j].ID != caseID {
				continue
			}
			now := r.clock.Now()
			batches[i].Cases[j].Status = status
			batches[i].Cases[j].ExecutedAt = &now
			batches[i].UpdatedAt = now
			if err := r.save(batches); err != nil {
				return nil, err
			}
			updated := batches[i]
			r.logger.Info("batch case status updated",
				"batch", batchID, "case", caseID, "status", status)
			return &updated, nil
		}
		return nil, &NotFoundError{Kind: "batch case", ID: caseID}
	}
	return nil, &NotFoundError{Kind: "batch", ID: strconv.Itoa(batchID)}
}

// Delete removes the batch with the given ID. Absent IDs are a no-op.
func (r *BatchRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batches := r.load()
	kept := batches[:0]
	for _, b := range batches {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(batches) {
		return nil
	}
	if err := r.save(kept); err != nil {
		return err
	}
	r.logger.Info("batch deleted", "id", id)
	return nil
}

// Get returns the batch with the given ID, or (nil, nil) if absent.
func (r *BatchRepository) Get(id int) (*model.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.load() {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, nil
}

// List returns all batches in append order.
func (r *BatchRepository) List() []model.Batch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}
