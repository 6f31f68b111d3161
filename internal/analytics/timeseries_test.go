package analytics

import (
	"testing"
	"time"
)

func TestDailySeries_TwoDaysAscending(t *testing.T) {
	d1 := time.Date(2026, 8, 20, 23, 50, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 22, 0, 10, 0, 0, time.UTC)

	m1 := newMessage(d2, "late", "r") // input is newest-first
	m2 := newMessage(d1, "early", "r")

	records := []JoinedRecord{
		{Message: m1, Evaluation: &Evaluation{MessageID: m1.ID, FaithfulnessScore: f64(0.3)}},
		{Message: m2, Evaluation: &Evaluation{MessageID: m2.ID, FaithfulnessScore: f64(0.9)}},
	}

	buckets := DailySeries(records)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Date != "2026-08-20" || buckets[1].Date != "2026-08-22" {
		t.Fatalf("expected ascending dates, got %s then %s", buckets[0].Date, buckets[1].Date)
	}
	// The missing day 2026-08-21 is a gap, never synthesized as zeros.
	for _, b := range buckets {
		if b.MessageCount != 1 {
			t.Fatalf("bucket %s: want 1 message, got %d", b.Date, b.MessageCount)
		}
	}
	if buckets[0].AvgFaithfulness == nil || *buckets[0].AvgFaithfulness != 0.9 {
		t.Fatalf("day 1 avg faithfulness: want 0.9, got %v", buckets[0].AvgFaithfulness)
	}
	if buckets[1].AvgFaithfulness == nil || *buckets[1].AvgFaithfulness != 0.3 {
		t.Fatalf("day 2 avg faithfulness: want 0.3, got %v", buckets[1].AvgFaithfulness)
	}
}

func TestDailySeries_StrictlyIncreasingNoDuplicates(t *testing.T) {
	base := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	var records []JoinedRecord
	for i := 0; i < 10; i++ {
		// several messages per day across five days
		day := base.AddDate(0, 0, i%5)
		records = append(records, JoinedRecord{Message: newMessage(day, "q", "r")})
	}

	buckets := DailySeries(records)
	if len(buckets) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(buckets))
	}
	for i := 1; i < len(buckets); i++ {
		if buckets[i].Date <= buckets[i-1].Date {
			t.Fatalf("dates not strictly increasing: %s after %s", buckets[i].Date, buckets[i-1].Date)
		}
	}
}

func TestDailySeries_UnevaluatedDayHasNilAverage(t *testing.T) {
	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	records := []JoinedRecord{{Message: newMessage(day, "q", "r")}}

	buckets := DailySeries(records)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	// Null, not zero: the asymmetry with Summarize is deliberate.
	if buckets[0].AvgFaithfulness != nil {
		t.Fatalf("expected nil avg faithfulness, got %v", *buckets[0].AvgFaithfulness)
	}
	if buckets[0].HallucinationRatePct != 0 {
		t.Fatalf("expected 0 hallucination rate, got %v", buckets[0].HallucinationRatePct)
	}
}

func TestDailySeries_PerDayRates(t *testing.T) {
	day := time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC)
	m1 := newMessage(day, "q1", "r")
	m2 := newMessage(day.Add(time.Hour), "q2", "r")
	m3 := newMessage(day.Add(2*time.Hour), "q3", "r") // unevaluated

	records := []JoinedRecord{
		{Message: m1, Evaluation: &Evaluation{MessageID: m1.ID, HallucinationDetected: true}},
		{Message: m2, Evaluation: &Evaluation{MessageID: m2.ID}},
		{Message: m3},
	}

	buckets := DailySeries(records)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].MessageCount != 3 {
		t.Fatalf("message count: want 3, got %d", buckets[0].MessageCount)
	}
	// Rate over evaluated rows only: 1 of 2.
	if buckets[0].HallucinationRatePct != 50 {
		t.Fatalf("hallucination rate: want 50, got %v", buckets[0].HallucinationRatePct)
	}
}
