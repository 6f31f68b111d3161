package analytics

// Distribution holds the categorical breakdowns and the faithfulness score
// histogram for the metrics page.
type Distribution struct {
	QuestionTypes    map[QuestionType]int `json:"question_types"`
	Complexity       map[Complexity]int   `json:"complexity"`
	HighRiskTotal    int                  `json:"high_risk_total"`
	HighRiskByCat    map[string]int       `json:"high_risk_categories"`
	FaithfulnessHist []HistBucket         `json:"faithfulness_histogram"`
}

// HistBucket is a [Low, High) score interval; the last bucket includes 1.0.
type HistBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

const histBuckets = 10

// Distribute tallies evaluation categoricals. Unscored faithfulness is
// excluded from the histogram, not bucketed at zero.
func Distribute(evals []Evaluation) Distribution {
	d := Distribution{
		QuestionTypes: make(map[QuestionType]int),
		Complexity:    make(map[Complexity]int),
		HighRiskByCat: make(map[string]int),
	}

	hist := make([]HistBucket, histBuckets)
	for i := range hist {
		hist[i].Low = float64(i) / histBuckets
		hist[i].High = float64(i+1) / histBuckets
	}

	for _, e := range evals {
		if e.QuestionType != "" {
			d.QuestionTypes[e.QuestionType]++
		}
		if e.QuestionComplexity != "" {
			d.Complexity[e.QuestionComplexity]++
		}
		if e.IsHighRiskTopic {
			d.HighRiskTotal++
			cat := "uncategorized"
			if e.HighRiskCategory != nil && *e.HighRiskCategory != "" {
				cat = *e.HighRiskCategory
			}
			d.HighRiskByCat[cat]++
		}
		if e.FaithfulnessScore != nil {
			idx := int(*e.FaithfulnessScore * histBuckets)
			if idx < 0 {
				idx = 0
			}
			if idx >= histBuckets {
				idx = histBuckets - 1
			}
			hist[idx].Count++
		}
	}

	d.FaithfulnessHist = hist
	return d
}
