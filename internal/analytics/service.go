package analytics

import (
	"context"
)

const (
	defaultPageSize    = 25
	maxPageSize        = 100
	defaultFlaggedCap  = 100
	DefaultFaithThresh = 0.7
)

// Service wires the gateway to the in-memory join, filter and aggregation
// layers. Each call is pure given its fetched inputs; nothing is cached here.
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > maxPageSize {
		return defaultPageSize
	}
	return limit
}

// Browse returns one page of joined records matching the criteria, newest
// first. Fetching is two-phase: messages first, then evaluations for the
// page's ids.
func (s *Service) Browse(ctx context.Context, w Window, crit Criteria, limit, offset int) ([]JoinedRecord, error) {
	if err := crit.validate(); err != nil {
		return nil, err
	}
	limit = normalizeLimit(limit)
	if offset < 0 {
		offset = 0
	}

	msgs, err := s.repo.ListMessages(ctx, w, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return []JoinedRecord{}, nil
	}

	evals, err := s.repo.ListEvaluations(ctx, messageIDs(msgs))
	if err != nil {
		return nil, err
	}

	return Filter(Join(msgs, evals), crit)
}

// Detail returns a single joined record by message id.
func (s *Service) Detail(ctx context.Context, id string) (*JoinedRecord, error) {
	m, err := s.repo.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	evals, err := s.repo.ListEvaluations(ctx, []string{m.ID})
	if err != nil {
		return nil, err
	}
	rec := JoinedRecord{Message: *m}
	if len(evals) > 0 {
		rec.Evaluation = &evals[0]
	}
	return &rec, nil
}

// Summary computes the KPI row over the whole window.
func (s *Service) Summary(ctx context.Context, w Window) (MetricsSummary, error) {
	records, err := s.fetchJoined(ctx, w)
	if err != nil {
		return MetricsSummary{}, err
	}
	return Summarize(records), nil
}

// Daily computes the per-day trend series over the whole window.
func (s *Service) Daily(ctx context.Context, w Window) ([]DayBucket, error) {
	records, err := s.fetchJoined(ctx, w)
	if err != nil {
		return nil, err
	}
	return DailySeries(records), nil
}

// Distributions tallies evaluation categoricals across all evaluations.
func (s *Service) Distributions(ctx context.Context) (Distribution, error) {
	evals, err := s.repo.ListAllEvaluations(ctx)
	if err != nil {
		return Distribution{}, err
	}
	return Distribute(evals), nil
}

// Flagged returns flagged records in the window, newest first, with
// per-reason counts. The store cannot express the OR-combined rules, so the
// flow is two-phase: pull all evaluations, classify locally to find
// candidates, then fetch only the candidate messages.
func (s *Service) Flagged(ctx context.Context, w Window, threshold float64, limit int) ([]JoinedRecord, FlagCounts, error) {
	if !ValidThreshold(threshold) {
		return nil, FlagCounts{}, ErrInvalidCriteria
	}
	if limit <= 0 {
		limit = defaultFlaggedCap
	}

	evals, err := s.repo.ListAllEvaluations(ctx)
	if err != nil {
		return nil, FlagCounts{}, err
	}

	flaggedEvals := make([]Evaluation, 0, len(evals))
	ids := make([]string, 0, len(evals))
	for i := range evals {
		res := Classify(JoinedRecord{Evaluation: &evals[i]}, threshold)
		if !res.Flagged {
			continue
		}
		flaggedEvals = append(flaggedEvals, evals[i])
		ids = append(ids, evals[i].MessageID)
	}
	if len(flaggedEvals) == 0 {
		return []JoinedRecord{}, FlagCounts{}, nil
	}

	msgs, err := s.repo.ListMessagesByIDs(ctx, ids, w, limit)
	if err != nil {
		return nil, FlagCounts{}, err
	}

	// Inner join: only rows with a flagged evaluation survive.
	joined := Join(msgs, flaggedEvals)
	withEval := joined[:0]
	for _, rec := range joined {
		if rec.Evaluation != nil {
			withEval = append(withEval, rec)
		}
	}

	return ClassifyBatch(withEval, threshold)
}

func (s *Service) fetchJoined(ctx context.Context, w Window) ([]JoinedRecord, error) {
	msgs, err := s.repo.ListMessages(ctx, w, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	evals, err := s.repo.ListEvaluations(ctx, messageIDs(msgs))
	if err != nil {
		return nil, err
	}
	return Join(msgs, evals), nil
}

func messageIDs(msgs []Message) []string {
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	return ids
}
