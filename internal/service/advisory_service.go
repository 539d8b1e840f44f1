package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/dto"
	"github.com/noah-isme/school-erp-api/pkg/ai"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

const (
	flowDashboardActions = "suggestDashboardActions"
	flowStudentInsights  = "generateStudentDatabaseInsights"
)

var (
	dashboardActionsPrompt = ai.MustPrompt(flowDashboardActions, `You are an AI assistant that suggests actions based on data from an
ERP dashboard.

Given the following dashboard data, suggest a list of appropriate actions that
an administrator could take:

Dashboard Data:
{{.dashboardData}}

Respond with only suggested actions. Each action should be concise and
actionable.

Example:
[
  "Investigate low student enrollment in specific courses",
  "Optimize resource allocation based on hostel occupancy rates",
  "Improve marketing strategies to attract more student applications",
]
`)

	studentInsightsPrompt = ai.MustPrompt(flowStudentInsights, `You are an AI assistant helping school administrators understand their student data.

Analyze the following student database summary and provide insights on student demographics,
academic performance trends, and potential areas for improvement. Also, suggest actions that the
administrator could take based on these insights.

Database Summary:
{{.databaseSummary}}

Respond with insights and suggestions in a single, coherent response.
`)

	dashboardActionsShape = ai.OutputShape{Fields: []ai.Field{
		{Name: "suggestedActions", Description: "A list of suggested actions based on the dashboard data.", List: true},
	}}

	studentInsightsShape = ai.OutputShape{Fields: []ai.Field{
		{Name: "insights", Description: "Insights on student demographics, academic performance trends, and potential areas for improvement."},
		{Name: "suggestions", Description: "Suggested actions based on the insights."},
	}}

	errSuggestionsFailed = appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to get suggestions.")
	errInsightsFailed    = appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "Failed to generate insights.")
)

// AdvisoryServiceConfig tunes model calls.
type AdvisoryServiceConfig struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

// AdvisoryService runs the two advisory flows against the generative model.
type AdvisoryService struct {
	model     ai.Generator
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       AdvisoryServiceConfig
}

// NewAdvisoryService constructs the service. A nil model disables both flows.
func NewAdvisoryService(model ai.Generator, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg AdvisoryServiceConfig) *AdvisoryService {
	if model == nil {
		model = ai.Disabled{}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	return &AdvisoryService{model: model, cache: cache, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// SuggestDashboardActions returns actions an administrator could take given
// the dashboard summary.
func (s *AdvisoryService) SuggestDashboardActions(ctx context.Context, dashboardData string) ([]string, error) {
	var out dto.DashboardSuggestions
	if err := s.run(ctx, flowDashboardActions, dashboardActionsPrompt, dashboardActionsShape,
		map[string]string{"dashboardData": dashboardData}, &out); err != nil {
		return nil, errSuggestionsFailed
	}
	return out.SuggestedActions, nil
}

// GenerateStudentInsights returns insights and suggestions for the roster summary.
func (s *AdvisoryService) GenerateStudentInsights(ctx context.Context, databaseSummary string) (*dto.StudentInsights, error) {
	var out dto.StudentInsights
	if err := s.run(ctx, flowStudentInsights, studentInsightsPrompt, studentInsightsShape,
		map[string]string{"databaseSummary": databaseSummary}, &out); err != nil {
		return nil, errInsightsFailed
	}
	return &out, nil
}

// run renders the prompt, calls the model once under the configured timeout,
// then decodes and validates the JSON into out. Any failure is logged and
// returned; callers replace it with the flow's generic message.
func (s *AdvisoryService) run(ctx context.Context, flow string, prompt *ai.Prompt, shape ai.OutputShape, inputs map[string]string, out interface{}) error {
	key := advisoryCacheKey(flow, inputs)
	if s.cache.Get(ctx, key, out) {
		s.metrics.ObserveAIFlow(flow, "cached", 0)
		return nil
	}

	text, err := prompt.Render(inputs)
	if err != nil {
		s.logger.Error("advisory prompt render failed", zap.String("flow", flow), zap.Error(err))
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.model.Generate(callCtx, text, shape)
	if err == nil {
		err = s.decode(raw, out)
	}
	if err != nil {
		s.metrics.ObserveAIFlow(flow, "error", time.Since(start))
		s.logger.Error("advisory flow failed", zap.String("flow", flow), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return err
	}
	s.metrics.ObserveAIFlow(flow, "ok", time.Since(start))
	s.cache.Set(ctx, key, out, s.cfg.CacheTTL)
	return nil
}

func (s *AdvisoryService) decode(raw string, out interface{}) error {
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), out); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	if err := s.validator.Struct(out); err != nil {
		return fmt.Errorf("validate model output: %w", err)
	}
	return nil
}

func advisoryCacheKey(flow string, inputs map[string]string) string {
	h := sha256.New()
	h.Write([]byte(flow))
	for _, name := range []string{"dashboardData", "databaseSummary"} {
		if v, ok := inputs[name]; ok {
			h.Write([]byte{0})
			h.Write([]byte(v))
		}
	}
	return fmt.Sprintf("%s:%s:%s", cacheKeyAdvisory, flow, hex.EncodeToString(h.Sum(nil)))
}
