package analytics

import "strings"

// Criteria are the optional, AND-combined filters over joined records.
// Zero values mean "no filter".
type Criteria struct {
	Search       string
	QuestionType QuestionType
	Complexity   Complexity
	HighRiskOnly bool
}

func (c Criteria) validate() error {
	if c.QuestionType != "" && !c.QuestionType.Valid() {
		return ErrInvalidCriteria
	}
	if c.Complexity != "" && !c.Complexity.Valid() {
		return ErrInvalidCriteria
	}
	return nil
}

// Join left-joins messages with their evaluations by message id, preserving
// message order. A message with several evaluations yields one row per
// evaluation; a message with none yields a row with a nil Evaluation.
func Join(messages []Message, evaluations []Evaluation) []JoinedRecord {
	byMessage := make(map[string][]*Evaluation, len(evaluations))
	for i := range evaluations {
		e := &evaluations[i]
		byMessage[e.MessageID] = append(byMessage[e.MessageID], e)
	}

	records := make([]JoinedRecord, 0, len(messages))
	for _, m := range messages {
		evals := byMessage[m.ID]
		if len(evals) == 0 {
			records = append(records, JoinedRecord{Message: m})
			continue
		}
		for _, e := range evals {
			records = append(records, JoinedRecord{Message: m, Evaluation: e})
		}
	}
	return records
}

// Filter applies the criteria, keeping input order. Records without an
// evaluation never match a non-empty categorical filter.
func Filter(records []JoinedRecord, c Criteria) ([]JoinedRecord, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	search := strings.ToLower(c.Search)
	out := make([]JoinedRecord, 0, len(records))
	for _, rec := range records {
		if search != "" && !matchesSearch(rec, search) {
			continue
		}
		if c.QuestionType != "" && (rec.Evaluation == nil || rec.Evaluation.QuestionType != c.QuestionType) {
			continue
		}
		if c.Complexity != "" && (rec.Evaluation == nil || rec.Evaluation.QuestionComplexity != c.Complexity) {
			continue
		}
		if c.HighRiskOnly && (rec.Evaluation == nil || !rec.Evaluation.IsHighRiskTopic) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func matchesSearch(rec JoinedRecord, lowered string) bool {
	return strings.Contains(strings.ToLower(rec.Question), lowered) ||
		strings.Contains(strings.ToLower(rec.Response), lowered)
}
