package analytics

import (
	"sort"
	"time"
)

// DayBucket is one point on the daily trend charts. AvgFaithfulness is nil
// for days where nothing was evaluated; this intentionally differs from
// Summarize's zero-on-absent policy and both conventions are load-bearing
// for existing consumers.
type DayBucket struct {
	Date                 string   `json:"date"`
	MessageCount         int      `json:"message_count"`
	AvgResponseTimeMs    float64  `json:"avg_response_time"`
	AvgFaithfulness      *float64 `json:"avg_faithfulness"`
	HallucinationRatePct float64  `json:"hallucination_rate"`
}

// DailySeries buckets records by the UTC calendar date of created_at and
// aggregates each bucket. Only dates with at least one record appear; gaps
// are not filled. Output is sorted ascending by date.
func DailySeries(records []JoinedRecord) []DayBucket {
	type acc struct {
		count        int
		rtSum        float64
		rtCount      int
		faithSum     float64
		faithCount   int
		evaluated    int
		hallucinated int
	}

	days := make(map[string]*acc)
	for _, rec := range records {
		key := rec.CreatedAt.UTC().Format(time.DateOnly)
		a := days[key]
		if a == nil {
			a = &acc{}
			days[key] = a
		}
		a.count++
		if rec.ResponseTimeMs != nil {
			a.rtSum += float64(*rec.ResponseTimeMs)
			a.rtCount++
		}
		if rec.Evaluation == nil {
			continue
		}
		a.evaluated++
		if rec.Evaluation.HallucinationDetected {
			a.hallucinated++
		}
		if rec.Evaluation.FaithfulnessScore != nil {
			a.faithSum += *rec.Evaluation.FaithfulnessScore
			a.faithCount++
		}
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	buckets := make([]DayBucket, 0, len(dates))
	for _, d := range dates {
		a := days[d]
		b := DayBucket{Date: d, MessageCount: a.count}
		if a.rtCount > 0 {
			b.AvgResponseTimeMs = a.rtSum / float64(a.rtCount)
		}
		if a.faithCount > 0 {
			avg := a.faithSum / float64(a.faithCount)
			b.AvgFaithfulness = &avg
		}
		if a.evaluated > 0 {
			b.HallucinationRatePct = float64(a.hallucinated) / float64(a.evaluated) * 100
		}
		buckets = append(buckets, b)
	}
	return buckets
}
