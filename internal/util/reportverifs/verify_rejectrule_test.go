package reportverifs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"

	"roadwatch.dev/backend/internal/model"
	modelcache "roadwatch.dev/backend/internal/model/cache"
	"roadwatch.dev/backend/internal/model/types"
)

type stubRuleProvider struct {
	rules []*model.RejectRule
	err   error
	calls int
}

func (s *stubRuleProvider) GetAllActiveRejectRules(ctx context.Context) ([]*model.RejectRule, error) {
	s.calls++
	return s.rules, s.err
}

// newRejectRuleVerifier resets the shared rule cache so each case sees its
// own provider.
func newRejectRuleVerifier(t *testing.T, provider *stubRuleProvider) *RejectRuleVerifier {
	t.Helper()
	modelcache.Initialize(nil)
	assert.NoError(t, modelcache.RejectRules.Delete())
	return &RejectRuleVerifier{Rules: provider}
}

func TestRejectRuleVerifier(t *testing.T) {
	report := &types.CreateReportRequest{
		Title:    "FREE CRYPTO visit example.com",
		Location: null.StringFrom("Main St"),
		Category: "other",
		Severity: "low",
	}

	t.Run("no rules passes", func(t *testing.T) {
		verifier := newRejectRuleVerifier(t, &stubRuleProvider{})
		assert.Nil(t, verifier.Verify(context.Background(), report))
	})

	t.Run("matching rule rejects with its reliability", func(t *testing.T) {
		verifier := newRejectRuleVerifier(t, &stubRuleProvider{rules: []*model.RejectRule{
			{RuleID: 1, Expr: `Report.Title contains "CRYPTO"`, WithReliability: -50},
		}})
		rejection := verifier.Verify(context.Background(), report)
		assert.NotNil(t, rejection)
		assert.Equal(t, -50, rejection.Reliability)
	})

	t.Run("non-matching rule passes", func(t *testing.T) {
		verifier := newRejectRuleVerifier(t, &stubRuleProvider{rules: []*model.RejectRule{
			{RuleID: 1, Expr: `Report.Category == "accident"`, WithReliability: -50},
		}})
		assert.Nil(t, verifier.Verify(context.Background(), report))
	})

	t.Run("out of range reliability is skipped", func(t *testing.T) {
		verifier := newRejectRuleVerifier(t, &stubRuleProvider{rules: []*model.RejectRule{
			{RuleID: 1, Expr: `true`, WithReliability: -1},
		}})
		assert.Nil(t, verifier.Verify(context.Background(), report))
	})

	t.Run("upper bound reliability is skipped", func(t *testing.T) {
		// -9 sits just outside [-99, -9); a rule carrying it must never fire
		verifier := newRejectRuleVerifier(t, &stubRuleProvider{rules: []*model.RejectRule{
			{RuleID: 1, Expr: `true`, WithReliability: -9},
		}})
		assert.Nil(t, verifier.Verify(context.Background(), report))
	})

	t.Run("lower bound reliability applies", func(t *testing.T) {
		verifier := newRejectRuleVerifier(t, &stubRuleProvider{rules: []*model.RejectRule{
			{RuleID: 1, Expr: `true`, WithReliability: -99},
		}})
		rejection := verifier.Verify(context.Background(), report)
		assert.NotNil(t, rejection)
		assert.Equal(t, -99, rejection.Reliability)
	})

	t.Run("invalid expr is skipped", func(t *testing.T) {
		verifier := newRejectRuleVerifier(t, &stubRuleProvider{rules: []*model.RejectRule{
			{RuleID: 1, Expr: `Report.`, WithReliability: -50},
			{RuleID: 2, Expr: `Report.Severity == "low"`, WithReliability: -42},
		}})
		rejection := verifier.Verify(context.Background(), report)
		assert.NotNil(t, rejection)
		assert.Equal(t, -42, rejection.Reliability)
	})
}

func TestRejectRuleVerifierCachesRules(t *testing.T) {
	report := &types.CreateReportRequest{
		Title:    "Pothole on Main St",
		Location: null.StringFrom("Main St"),
		Category: "road_damage",
		Severity: "medium",
	}

	provider := &stubRuleProvider{}
	verifier := newRejectRuleVerifier(t, provider)

	assert.Nil(t, verifier.Verify(context.Background(), report))
	assert.Nil(t, verifier.Verify(context.Background(), report))
	assert.Equal(t, 1, provider.calls, "second verification should be served from the rule cache")

	assert.NoError(t, modelcache.RejectRules.Delete())
	assert.Nil(t, verifier.Verify(context.Background(), report))
	assert.Equal(t, 2, provider.calls, "flushing the cache should force a reload")
}
