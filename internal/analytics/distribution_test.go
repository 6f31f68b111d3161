package analytics

import "testing"

func TestDistribute(t *testing.T) {
	cat := "legal"
	evals := []Evaluation{
		{QuestionType: QuestionHowTo, QuestionComplexity: ComplexitySimple, FaithfulnessScore: f64(0.95)},
		{QuestionType: QuestionHowTo, QuestionComplexity: ComplexityComplex, FaithfulnessScore: f64(0.42)},
		{QuestionType: QuestionPricing, IsHighRiskTopic: true, HighRiskCategory: &cat},
		{IsHighRiskTopic: true}, // no category recorded
	}

	d := Distribute(evals)
	if d.QuestionTypes[QuestionHowTo] != 2 || d.QuestionTypes[QuestionPricing] != 1 {
		t.Fatalf("question type counts: %+v", d.QuestionTypes)
	}
	if d.Complexity[ComplexitySimple] != 1 || d.Complexity[ComplexityComplex] != 1 {
		t.Fatalf("complexity counts: %+v", d.Complexity)
	}
	if d.HighRiskTotal != 2 || d.HighRiskByCat["legal"] != 1 || d.HighRiskByCat["uncategorized"] != 1 {
		t.Fatalf("high risk counts: total=%d byCat=%+v", d.HighRiskTotal, d.HighRiskByCat)
	}

	if len(d.FaithfulnessHist) != 10 {
		t.Fatalf("expected 10 histogram buckets, got %d", len(d.FaithfulnessHist))
	}
	var total int
	for _, b := range d.FaithfulnessHist {
		total += b.Count
	}
	// Two scored evaluations; unscored ones are excluded, not bucketed at 0.
	if total != 2 {
		t.Fatalf("histogram total: want 2, got %d", total)
	}
	if d.FaithfulnessHist[9].Count != 1 || d.FaithfulnessHist[4].Count != 1 {
		t.Fatalf("histogram placement wrong: %+v", d.FaithfulnessHist)
	}
}

func TestDistribute_ScoreOfOneLandsInTopBucket(t *testing.T) {
	d := Distribute([]Evaluation{{FaithfulnessScore: f64(1.0)}})
	if d.FaithfulnessHist[9].Count != 1 {
		t.Fatalf("score 1.0 should land in the last bucket: %+v", d.FaithfulnessHist)
	}
}
