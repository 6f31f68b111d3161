package analytics

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type QuestionType string

const (
	QuestionHowTo           QuestionType = "how_to"
	QuestionCanWe           QuestionType = "can_we"
	QuestionWhatIs          QuestionType = "what_is"
	QuestionTroubleshooting QuestionType = "troubleshooting"
	QuestionPricing         QuestionType = "pricing"
	QuestionIntegration     QuestionType = "integration"
	QuestionOther           QuestionType = "other"
)

func (q QuestionType) Valid() bool {
	switch q {
	case QuestionHowTo, QuestionCanWe, QuestionWhatIs, QuestionTroubleshooting,
		QuestionPricing, QuestionIntegration, QuestionOther:
		return true
	}
	return false
}

type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

func (c Complexity) Valid() bool {
	switch c {
	case ComplexitySimple, ComplexityModerate, ComplexityComplex:
		return true
	}
	return false
}

// Source is one cited reference. Upstream sometimes stores plain strings
// instead of {title,url} objects; UnmarshalJSON accepts both.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *Source) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		s.Title = plain
		s.URL = ""
		return nil
	}
	type alias Source
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Source(a)
	return nil
}

// SourceList is stored as a JSON text column.
type SourceList []Source

func (l SourceList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *SourceList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("sources_cited: unsupported column type %T", value)
	}
	return json.Unmarshal(data, l)
}

// Message is one submitted question and its generated response. Rows are
// written by the upstream ingestion pipeline and are immutable here.
type Message struct {
	ID             string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt      time.Time  `gorm:"index;not null" json:"created_at"`
	Question       string     `gorm:"type:text;not null" json:"question"`
	Response       string     `gorm:"type:text;not null" json:"response"`
	ResponseTimeMs *int64     `json:"response_time_ms"`
	ModelUsed      string     `gorm:"type:varchar(64)" json:"model_used"`
	SourcesCited   SourceList `gorm:"type:text" json:"sources_cited,omitempty"`
	SlackChannel   *string    `gorm:"type:varchar(64)" json:"slack_channel,omitempty"`
	SlackThreadTS  *string    `gorm:"type:varchar(32)" json:"slack_thread_ts,omitempty"`
}

func (Message) TableName() string { return "juju_messages" }

// Evaluation is the automated quality assessment of one message, written by
// the upstream scoring pipeline. At most one per message in practice, but
// duplicates must be tolerated.
type Evaluation struct {
	ID                      uint64       `gorm:"primaryKey;autoIncrement" json:"-"`
	MessageID               string       `gorm:"type:varchar(36);index;not null" json:"message_id"`
	FaithfulnessScore       *float64     `json:"faithfulness_score"`
	CompletenessScore       *float64     `json:"completeness_score"`
	ClarityScore            *float64     `json:"clarity_score"`
	HallucinationDetected   bool         `gorm:"not null" json:"hallucination_detected"`
	CapabilityHallucination bool         `gorm:"not null" json:"capability_hallucination"`
	CitationAccurate        *bool        `json:"citation_accurate"`
	HallucinationReasoning  *string      `gorm:"type:text" json:"hallucination_reasoning,omitempty"`
	FaithfulnessReasoning   *string      `gorm:"type:text" json:"faithfulness_reasoning,omitempty"`
	OverallAssessment       *string      `gorm:"type:text" json:"overall_assessment,omitempty"`
	QuestionType            QuestionType `gorm:"type:varchar(24)" json:"question_type"`
	QuestionComplexity      Complexity   `gorm:"type:varchar(16)" json:"question_complexity"`
	IsHighRiskTopic         bool         `gorm:"not null" json:"is_high_risk_topic"`
	HighRiskCategory        *string      `gorm:"type:varchar(64)" json:"high_risk_category,omitempty"`
	CreatedAt               time.Time    `json:"created_at"`
}

func (Evaluation) TableName() string { return "juju_evaluations" }

// JoinedRecord is a message left-joined with its evaluation. Evaluation is
// nil when no evaluation has been performed yet; that never means "scored
// zero", it means unscored.
type JoinedRecord struct {
	Message
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}
