package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/pkg/ai"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
)

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
	shapes  []ai.OutputShape
	block   bool
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, shape ai.OutputShape) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.shapes = append(f.shapes, shape)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func TestAdvisoryServiceSuggestDashboardActions(t *testing.T) {
	gen := &fakeGenerator{reply: `{"suggestedActions":["Investigate the July dip","Review hostel B allocation"]}`}
	svc := NewAdvisoryService(gen, nil, nil, nil, zap.NewNop(), AdvisoryServiceConfig{})

	actions, err := svc.SuggestDashboardActions(context.Background(), "Total Students: 5")
	require.NoError(t, err)
	assert.Equal(t, []string{"Investigate the July dip", "Review hostel B allocation"}, actions)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Dashboard Data:\nTotal Students: 5\n")
	assert.Equal(t, "suggestedActions", gen.shapes[0].Fields[0].Name)
	assert.True(t, gen.shapes[0].Fields[0].List)
}

func TestAdvisoryServiceGenerateStudentInsights(t *testing.T) {
	gen := &fakeGenerator{reply: "\n{\"insights\":\"Computer Science dominates.\",\"suggestions\":\"Promote Physics.\"}\n"}
	svc := NewAdvisoryService(gen, nil, nil, nil, nil, AdvisoryServiceConfig{})

	out, err := svc.GenerateStudentInsights(context.Background(), "Total students: 5.")
	require.NoError(t, err)
	assert.Equal(t, "Computer Science dominates.", out.Insights)
	assert.Equal(t, "Promote Physics.", out.Suggestions)
	assert.True(t, strings.Contains(gen.prompts[0], "Database Summary:\nTotal students: 5.\n"))
}

func TestAdvisoryServiceFailures(t *testing.T) {
	cases := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "model error", gen: &fakeGenerator{err: errors.New("quota exceeded")}},
		{name: "not json", gen: &fakeGenerator{reply: "1. Hire more teachers"}},
		{name: "schema mismatch", gen: &fakeGenerator{reply: `{"suggestedActions":[]}`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAdvisoryService(tc.gen, nil, nil, nil, nil, AdvisoryServiceConfig{})
			_, err := svc.SuggestDashboardActions(context.Background(), "data")
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			assert.Equal(t, http.StatusBadGateway, appErr.Status)
			assert.Equal(t, "Failed to get suggestions.", appErr.Message)
		})
	}

	svc := NewAdvisoryService(&fakeGenerator{reply: `{"insights":"only half"}`}, nil, nil, nil, nil, AdvisoryServiceConfig{})
	_, err := svc.GenerateStudentInsights(context.Background(), "data")
	require.Error(t, err)
	assert.Equal(t, "Failed to generate insights.", appErrors.FromError(err).Message)
}

func TestAdvisoryServiceDisabledModel(t *testing.T) {
	svc := NewAdvisoryService(nil, nil, nil, nil, nil, AdvisoryServiceConfig{})
	_, err := svc.SuggestDashboardActions(context.Background(), "data")
	require.Error(t, err)
	assert.Equal(t, "Failed to get suggestions.", appErrors.FromError(err).Message)
}

func TestAdvisoryServiceTimeout(t *testing.T) {
	gen := &fakeGenerator{block: true}
	svc := NewAdvisoryService(gen, nil, nil, nil, nil, AdvisoryServiceConfig{Timeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := svc.GenerateStudentInsights(context.Background(), "data")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAdvisoryServiceCachesByInput(t *testing.T) {
	cache := newRecordingCache()
	gen := &fakeGenerator{reply: `{"suggestedActions":["Act"]}`}
	svc := NewAdvisoryService(gen, NewCacheService(cache, nil, 0, zap.NewNop(), true), nil, nil, nil, AdvisoryServiceConfig{})
	ctx := context.Background()

	_, err := svc.SuggestDashboardActions(ctx, "same")
	require.NoError(t, err)
	actions, err := svc.SuggestDashboardActions(ctx, "same")
	require.NoError(t, err)
	assert.Equal(t, []string{"Act"}, actions)
	assert.Equal(t, 1, gen.calls)

	_, err = svc.SuggestDashboardActions(ctx, "different")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	assert.True(t, cache.has(advisoryCacheKey(flowDashboardActions, map[string]string{"dashboardData": "same"})))
}

func TestAdvisoryServiceDoesNotCacheFailures(t *testing.T) {
	cache := newRecordingCache()
	gen := &fakeGenerator{err: errors.New("boom")}
	svc := NewAdvisoryService(gen, NewCacheService(cache, nil, 0, zap.NewNop(), true), nil, nil, nil, AdvisoryServiceConfig{})

	_, err := svc.SuggestDashboardActions(context.Background(), "x")
	require.Error(t, err)
	_, err = svc.SuggestDashboardActions(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, 2, gen.calls)
}
