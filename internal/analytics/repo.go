package analytics

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repo is the data access gateway over the two record collections. It issues
// range/pagination queries only; joining and filtering happen in memory.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, op, err)
}

// ListMessages returns messages in the window, newest first.
func (r *Repo) ListMessages(ctx context.Context, w Window, limit, offset int) ([]Message, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if w.Start != nil {
		q = q.Where("created_at >= ?", *w.Start)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var msgs []Message
	if err := q.Find(&msgs).Error; err != nil {
		return nil, storeErr("list messages", err)
	}
	return msgs, nil
}

// ListMessagesByIDs returns the named messages restricted to the window,
// newest first. Used by the flagged view after candidate ids are known.
func (r *Repo) ListMessagesByIDs(ctx context.Context, ids []string, w Window, limit int) ([]Message, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC")
	if w.Start != nil {
		q = q.Where("created_at >= ?", *w.Start)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var msgs []Message
	if err := q.Find(&msgs).Error; err != nil {
		return nil, storeErr("list messages by id", err)
	}
	return msgs, nil
}

// GetMessage returns one message or gorm.ErrRecordNotFound.
func (r *Repo) GetMessage(ctx context.Context, id string) (*Message, error) {
	var m Message
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, storeErr("get message", err)
	}
	return &m, nil
}

// ListEvaluations returns the evaluations for the given message ids. Empty
// input short-circuits to an empty result without touching the store.
func (r *Repo) ListEvaluations(ctx context.Context, messageIDs []string) ([]Evaluation, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}
	var evals []Evaluation
	if err := r.db.WithContext(ctx).
		Where("message_id IN ?", messageIDs).
		Find(&evals).Error; err != nil {
		return nil, storeErr("list evaluations", err)
	}
	return evals, nil
}

// ListAllEvaluations returns every evaluation. The store cannot express the
// OR-combined flag conditions, so the flagged view pulls the full set and
// classifies locally.
func (r *Repo) ListAllEvaluations(ctx context.Context) ([]Evaluation, error) {
	var evals []Evaluation
	if err := r.db.WithContext(ctx).Find(&evals).Error; err != nil {
		return nil, storeErr("list all evaluations", err)
	}
	return evals, nil
}
