package analytics

import (
	"math"
	"time"
)

// MetricsSummary holds the dashboard KPI row.
type MetricsSummary struct {
	TotalMessages     int     `json:"total_messages"`
	MessagesToday     int     `json:"messages_today"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	AvgFaithfulness   float64 `json:"avg_faithfulness"`
	HallucinationRate float64 `json:"hallucination_rate"`
}

// Summarize computes the KPI row over a record set. Missing values are
// excluded from means, not counted as zero; a set with no evaluations yields
// zero averages rather than an error. "Today" is the current UTC date.
func Summarize(records []JoinedRecord) MetricsSummary {
	var s MetricsSummary
	s.TotalMessages = len(records)
	if len(records) == 0 {
		return s
	}

	today := timeNow().UTC().Truncate(24 * time.Hour)

	var (
		rtSum   float64
		rtCount int

		faithSum   float64
		faithCount int

		evaluated    int
		hallucinated int
	)

	for _, rec := range records {
		if rec.CreatedAt.UTC().Truncate(24 * time.Hour).Equal(today) {
			s.MessagesToday++
		}
		if rec.ResponseTimeMs != nil {
			rtSum += float64(*rec.ResponseTimeMs)
			rtCount++
		}
		if rec.Evaluation == nil {
			continue
		}
		evaluated++
		if rec.Evaluation.HallucinationDetected {
			hallucinated++
		}
		if rec.Evaluation.FaithfulnessScore != nil {
			faithSum += *rec.Evaluation.FaithfulnessScore
			faithCount++
		}
	}

	if rtCount > 0 {
		s.AvgResponseTimeMs = math.Round(rtSum / float64(rtCount))
	}
	if faithCount > 0 {
		s.AvgFaithfulness = roundTo(faithSum/float64(faithCount), 3)
	}
	if evaluated > 0 {
		s.HallucinationRate = roundTo(float64(hallucinated)/float64(evaluated)*100, 1)
	}
	return s
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
