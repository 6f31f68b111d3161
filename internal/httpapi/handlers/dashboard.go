package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jujulabs/juju-dashboard/internal/analytics"
	"github.com/jujulabs/juju-dashboard/internal/common"
	"github.com/jujulabs/juju-dashboard/internal/logger"
	"github.com/jujulabs/juju-dashboard/internal/metrics"
)

func rangeToken(c *gin.Context) string {
	token := c.Query("range")
	if token == "" {
		token = analytics.Range30d
	}
	return token
}

// cachedView serves a payload from the view cache when possible, computing
// and storing it otherwise. Cache errors only disable the cache for the
// request; they never fail it.
func (h *Handler) cachedView(c *gin.Context, view, token string, out any, compute func() (any, error)) (any, error) {
	key := view + ":" + token
	if h.Cache != nil {
		hit, err := h.Cache.GetJSON(c.Request.Context(), key, out)
		if err != nil {
			logger.Warn("view cache get failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			metrics.CacheHits.WithLabelValues(view, "hit").Inc()
			return out, nil
		}
		metrics.CacheHits.WithLabelValues(view, "miss").Inc()
	}

	payload, err := compute()
	if err != nil {
		return nil, err
	}
	if h.Cache != nil {
		if err := h.Cache.SetJSON(c.Request.Context(), key, payload); err != nil {
			logger.Warn("view cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return payload, nil
}

// GET /api/summary?range=30d
func (h *Handler) GetSummary(c *gin.Context) {
	token := rangeToken(c)
	var cached analytics.MetricsSummary
	payload, err := h.cachedView(c, "summary", token, &cached, func() (any, error) {
		s, err := h.Svc.Summary(c.Request.Context(), analytics.ParseRange(token))
		if err != nil {
			return nil, err
		}
		return &s, nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	common.Ok(c, http.StatusOK, payload)
}

// GET /api/daily?range=30d
func (h *Handler) GetDaily(c *gin.Context) {
	token := rangeToken(c)
	var cached []analytics.DayBucket
	payload, err := h.cachedView(c, "daily", token, &cached, func() (any, error) {
		return h.Svc.Daily(c.Request.Context(), analytics.ParseRange(token))
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	common.Ok(c, http.StatusOK, payload)
}

// GET /api/messages?range=&search=&question_type=&complexity=&high_risk=&page=&limit=
func (h *Handler) ListMessages(c *gin.Context) {
	w := analytics.ParseRange(rangeToken(c))

	crit := analytics.Criteria{
		Search:       c.Query("search"),
		QuestionType: analytics.QuestionType(c.Query("question_type")),
		Complexity:   analytics.Complexity(c.Query("complexity")),
		HighRiskOnly: c.Query("high_risk") == "true",
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := (page - 1) * limit

	records, err := h.Svc.Browse(c.Request.Context(), w, crit, limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}

	common.Ok(c, http.StatusOK, gin.H{
		"messages": records,
		"page":     page,
	})
}

// GET /api/messages/:id
func (h *Handler) GetMessage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		common.Fail(c, http.StatusBadRequest, 10003, "invalid message id")
		return
	}

	rec, err := h.Svc.Detail(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	common.Ok(c, http.StatusOK, rec)
}

func parseThreshold(c *gin.Context) (float64, bool) {
	raw := c.DefaultQuery("threshold", "")
	if raw == "" {
		return analytics.DefaultFaithThresh, true
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil || !analytics.ValidThreshold(t) {
		return 0, false
	}
	return t, true
}

// GET /api/flagged?range=&threshold=&limit=
func (h *Handler) GetFlagged(c *gin.Context) {
	threshold, ok := parseThreshold(c)
	if !ok {
		common.Fail(c, http.StatusBadRequest, 10002, "threshold must be in [0,1]")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	w := analytics.ParseRange(rangeToken(c))
	flagged, counts, err := h.Svc.Flagged(c.Request.Context(), w, threshold, limit)
	if err != nil {
		respondErr(c, err)
		return
	}

	common.Ok(c, http.StatusOK, gin.H{
		"flagged":   flagged,
		"counts":    counts,
		"threshold": threshold,
	})
}

// GET /api/flagged/export — CSV download of flagged issues.
func (h *Handler) ExportFlagged(c *gin.Context) {
	threshold, ok := parseThreshold(c)
	if !ok {
		common.Fail(c, http.StatusBadRequest, 10002, "threshold must be in [0,1]")
		return
	}

	w := analytics.ParseRange(rangeToken(c))
	flagged, _, err := h.Svc.Flagged(c.Request.Context(), w, threshold, 0)
	if err != nil {
		respondErr(c, err)
		return
	}

	filename := fmt.Sprintf("juju_flagged_issues_%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	cw := csv.NewWriter(c.Writer)
	_ = cw.Write([]string{
		"created_at", "question", "response", "faithfulness_score",
		"hallucination_detected", "capability_hallucination",
		"hallucination_reasoning", "faithfulness_reasoning",
	})
	for _, rec := range flagged {
		e := rec.Evaluation
		row := []string{
			rec.CreatedAt.UTC().Format(time.RFC3339),
			rec.Question,
			rec.Response,
			floatPtrField(e.FaithfulnessScore),
			strconv.FormatBool(e.HallucinationDetected),
			strconv.FormatBool(e.CapabilityHallucination),
			strPtrField(e.HallucinationReasoning),
			strPtrField(e.FaithfulnessReasoning),
		}
		_ = cw.Write(row)
	}
	cw.Flush()
}

// GET /api/distributions
func (h *Handler) GetDistributions(c *gin.Context) {
	dist, err := h.Svc.Distributions(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	common.Ok(c, http.StatusOK, dist)
}

func floatPtrField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func strPtrField(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
