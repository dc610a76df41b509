package tcm_test

import (
	"testing"

	"tcm-go/internal/tcm"
	"tcm-go/internal/testutil"
)

func newGroupRepo(t *testing.T) *tcm.GroupRepository {
	t.Helper()
	return tcm.NewGroupRepository(
		testutil.NewTestStore(), tcm.NewNopLogger(),
		testutil.FixedClock(), testutil.NewStubIDGenerator())
}

func TestGroupRepository_Create(t *testing.T) {
	t.Run("assigns id, timestamp and zero counter", func(t *testing.T) {
		t.Parallel()
		repo := newGroupRepo(t)

		g, err := repo.Create("Login", "login flows")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if g.ID == "" {
			t.Error("expected non-empty ID")
		}
		if g.CaseCount != 0 {
			t.Errorf("CaseCount = %d, want 0", g.CaseCount)
		}
		if g.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		t.Parallel()
		repo := newGroupRepo(t)

		_, err := repo.Create("   ", "")
		if !tcm.IsValidation(err) {
			t.Fatalf("Create() error = %v, want ValidationError", err)
		}
		if got := repo.List(); len(got) != 0 {
			t.Errorf("got %d groups after failed create, want 0", len(got))
		}
	})
}

func TestGroupRepository_Get(t *testing.T) {
	t.Parallel()
	repo := newGroupRepo(t)

	created, err := repo.Create("Login", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	g, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if g == nil || g.Name != "Login" {
		t.Errorf("Get() = %+v, want the created group", g)
	}

	absent, err := repo.Get("missing")
	if err != nil {
		t.Fatalf("Get(missing) error = %v", err)
	}
	if absent != nil {
		t.Errorf("Get(missing) = %+v, want nil", absent)
	}
}

func TestGroupRepository_Delete(t *testing.T) {
	t.Run("removes the group", func(t *testing.T) {
		t.Parallel()
		repo := newGroupRepo(t)

		g, _ := repo.Create("Login", "")
		if err := repo.Delete(g.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if got := repo.List(); len(got) != 0 {
			t.Errorf("got %d groups after delete, want 0", len(got))
		}
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		t.Parallel()
		repo := newGroupRepo(t)

		if err := repo.Delete("missing"); err != nil {
			t.Errorf("Delete(missing) error = %v, want nil", err)
		}
	})
}

func TestGroupRepository_IncrementCaseCount(t *testing.T) {
	t.Run("adds delta", func(t *testing.T) {
		t.Parallel()
		repo := newGroupRepo(t)

		g, _ := repo.Create("Login", "")
		if err := repo.IncrementCaseCount(g.ID, 3); err != nil {
			t.Fatalf("IncrementCaseCount() error = %v", err)
		}

		got, _ := repo.Get(g.ID)
		if got.CaseCount != 3 {
			t.Errorf("CaseCount = %d, want 3", got.CaseCount)
		}
	})

	t.Run("clamps at zero", func(t *testing.T) {
		t.Parallel()
		repo := newGroupRepo(t)

		g, _ := repo.Create("Login", "")
		if err := repo.IncrementCaseCount(g.ID, -5); err != nil {
			t.Fatalf("IncrementCaseCount() error = %v", err)
		}

		got, _ := repo.Get(g.ID)
		if got.CaseCount != 0 {
			t.Errorf("CaseCount = %d, want 0", got.CaseCount)
		}
	})

	t.Run("absent group is a no-op", func(t *testing.T) {
		t.Parallel()
		repo := newGroupRepo(t)

		if err := repo.IncrementCaseCount("missing", 1); err != nil {
			t.Errorf("IncrementCaseCount(missing) error = %v, want nil", err)
		}
	})
}
