package analytics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func seed(t *testing.T, repo *Repo, msgs []Message, evals []Evaluation) {
	t.Helper()
	for i := range msgs {
		if err := repo.db.Create(&msgs[i]).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}
	for i := range evals {
		if err := repo.db.Create(&evals[i]).Error; err != nil {
			t.Fatalf("seed evaluation: %v", err)
		}
	}
}

func TestBrowse_TwoPhaseFetchAndFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	svc := NewService(repo)

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	fixClock(t, now)

	older := newMessage(now.Add(-48*time.Hour), "how do I export data", "Use the export button.")
	newer := newMessage(now.Add(-1*time.Hour), "can we integrate slack", "Yes, via the app.")
	seed(t, repo,
		[]Message{older, newer},
		[]Evaluation{{
			MessageID:          newer.ID,
			FaithfulnessScore:  f64(0.9),
			QuestionType:       QuestionCanWe,
			QuestionComplexity: ComplexityModerate,
		}},
	)

	records, err := svc.Browse(context.Background(), Window{}, Criteria{}, 25, 0)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// newest first
	if records[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %s", records[0].Question)
	}
	if records[0].Evaluation == nil || records[1].Evaluation != nil {
		t.Fatalf("join mismatch: %+v", records)
	}

	// categorical filter drops the unevaluated message
	records, err = svc.Browse(context.Background(), Window{}, Criteria{QuestionType: QuestionCanWe}, 25, 0)
	if err != nil {
		t.Fatalf("browse filtered: %v", err)
	}
	if len(records) != 1 || records[0].ID != newer.ID {
		t.Fatalf("expected only the can_we record, got %d", len(records))
	}
}

func TestBrowse_WindowExcludesOldMessages(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	svc := NewService(repo)

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	fixClock(t, now)

	recent := newMessage(now.Add(-24*time.Hour), "recent", "r")
	ancient := newMessage(now.AddDate(0, 0, -40), "ancient", "r")
	seed(t, repo, []Message{recent, ancient}, nil)

	records, err := svc.Browse(context.Background(), ParseRange(Range30d), Criteria{}, 25, 0)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(records) != 1 || records[0].ID != recent.ID {
		t.Fatalf("30d window should keep only the recent message, got %d", len(records))
	}

	// all time keeps both
	records, err = svc.Browse(context.Background(), ParseRange(RangeAll), Criteria{}, 25, 0)
	if err != nil {
		t.Fatalf("browse all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("all-time window should keep both, got %d", len(records))
	}
}

func TestSummary_SingleUnevaluatedMessage(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	svc := NewService(repo)

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	fixClock(t, now)

	m := newMessage(now.Add(-time.Hour), "q", "r")
	m.ResponseTimeMs = i64(200)
	seed(t, repo, []Message{m}, nil)

	s, err := svc.Summary(context.Background(), Window{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalMessages != 1 || s.AvgFaithfulness != 0 || s.HallucinationRate != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestFlagged_TwoPhaseFlow(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	svc := NewService(repo)

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	fixClock(t, now)

	bad := newMessage(now.Add(-2*time.Hour), "bad answer", "r")
	clean := newMessage(now.Add(-1*time.Hour), "clean answer", "r")
	unscored := newMessage(now.Add(-30*time.Minute), "unscored", "r")
	seed(t, repo,
		[]Message{bad, clean, unscored},
		[]Evaluation{
			{MessageID: bad.ID, FaithfulnessScore: f64(0.5), CitationAccurate: boolPtr(true)},
			{MessageID: clean.ID, FaithfulnessScore: f64(0.95)},
		},
	)

	flagged, counts, err := svc.Flagged(context.Background(), Window{}, 0.7, 0)
	if err != nil {
		t.Fatalf("flagged: %v", err)
	}
	if len(flagged) != 1 {
		t.Fatalf("expected 1 flagged record, got %d", len(flagged))
	}
	if flagged[0].ID != bad.ID {
		t.Fatalf("expected the low-faithfulness message, got %s", flagged[0].Question)
	}
	if counts.LowFaithfulness != 1 || counts.Hallucinations != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestFlagged_InvalidThresholdBeforeIO(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(NewRepo(db))

	if _, _, err := svc.Flagged(context.Background(), Window{}, 1.5, 0); !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestGateway_FailureIsDataUnavailable(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	svc := NewService(repo)

	// Break the store so fetches fail instead of returning empty.
	if err := db.Migrator().DropTable(&Message{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	if _, err := svc.Summary(context.Background(), Window{}); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestListEvaluations_EmptyIDsNoIO(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	evals, err := repo.ListEvaluations(context.Background(), nil)
	if err != nil {
		t.Fatalf("list evaluations: %v", err)
	}
	if len(evals) != 0 {
		t.Fatalf("expected empty result, got %d", len(evals))
	}
}
