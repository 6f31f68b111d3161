package analytics

type FlagReason string

const (
	ReasonHallucination           FlagReason = "hallucination"
	ReasonCapabilityHallucination FlagReason = "capability_hallucination"
	ReasonLowFaithfulness         FlagReason = "low_faithfulness"
	ReasonInaccurateCitation      FlagReason = "inaccurate_citation"
)

type FlagResult struct {
	Flagged bool         `json:"flagged"`
	Reasons []FlagReason `json:"reasons,omitempty"`
}

// FlagCounts are the per-reason totals shown on the flagged-issues summary.
type FlagCounts struct {
	Hallucinations           int `json:"hallucinations"`
	CapabilityHallucinations int `json:"capability_hallucinations"`
	LowFaithfulness          int `json:"low_faithfulness"`
	InaccurateCitations      int `json:"inaccurate_citations"`
}

// ValidThreshold reports whether t is a usable faithfulness threshold.
func ValidThreshold(t float64) bool {
	return t >= 0 && t <= 1
}

// Classify evaluates one record against the flag rule set. Rules are
// OR-combined. A record with no evaluation is never flagged. A missing
// faithfulness score counts as a perfect score so unscored records are not
// flagged as low-faithfulness, and a missing citation_accurate never
// triggers the citation rule (only an explicit false does).
func Classify(rec JoinedRecord, faithfulnessThreshold float64) FlagResult {
	var res FlagResult
	e := rec.Evaluation
	if e == nil {
		return res
	}

	if e.HallucinationDetected {
		res.Reasons = append(res.Reasons, ReasonHallucination)
	}
	if e.CapabilityHallucination {
		res.Reasons = append(res.Reasons, ReasonCapabilityHallucination)
	}
	if e.FaithfulnessScore != nil && *e.FaithfulnessScore < faithfulnessThreshold {
		res.Reasons = append(res.Reasons, ReasonLowFaithfulness)
	}
	if e.CitationAccurate != nil && !*e.CitationAccurate {
		res.Reasons = append(res.Reasons, ReasonInaccurateCitation)
	}

	res.Flagged = len(res.Reasons) > 0
	return res
}

// ClassifyBatch returns the flagged subset in input order along with the
// per-reason totals over that subset.
func ClassifyBatch(records []JoinedRecord, faithfulnessThreshold float64) ([]JoinedRecord, FlagCounts, error) {
	if !ValidThreshold(faithfulnessThreshold) {
		return nil, FlagCounts{}, ErrInvalidCriteria
	}

	var counts FlagCounts
	flagged := make([]JoinedRecord, 0, len(records))
	for _, rec := range records {
		res := Classify(rec, faithfulnessThreshold)
		if !res.Flagged {
			continue
		}
		flagged = append(flagged, rec)
		for _, reason := range res.Reasons {
			switch reason {
			case ReasonHallucination:
				counts.Hallucinations++
			case ReasonCapabilityHallucination:
				counts.CapabilityHallucinations++
			case ReasonLowFaithfulness:
				counts.LowFaithfulness++
			case ReasonInaccurateCitation:
				counts.InaccurateCitations++
			}
		}
	}
	return flagged, counts, nil
}
