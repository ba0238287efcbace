package reportverifs

import (
	"context"
	"fmt"
	"time"

	"github.com/antonmedv/expr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model"
	modelcache "roadwatch.dev/backend/internal/model/cache"
	"roadwatch.dev/backend/internal/model/types"
	"roadwatch.dev/backend/internal/repo"
)

// rejectRulesCacheTTL bounds how long a rule change can go unnoticed on
// instances that did not serve the admin mutation.
const rejectRulesCacheTTL = time.Minute

var ErrExprMatched = errors.New("reject expr matched")

type RuleProvider interface {
	GetAllActiveRejectRules(ctx context.Context) ([]*model.RejectRule, error)
}

type RejectRuleVerifier struct {
	Rules RuleProvider
}

// ensure RejectRuleVerifier conforms to Verifier
var _ Verifier = (*RejectRuleVerifier)(nil)

func NewRejectRuleVerifier(rejectRuleRepo *repo.RejectRule) *RejectRuleVerifier {
	return &RejectRuleVerifier{
		Rules: rejectRuleRepo,
	}
}

func (d *RejectRuleVerifier) Name() string {
	return "reject_rule"
}

// SubmissionContext is the evaluation environment for reject rule exprs.
type SubmissionContext struct {
	Report *types.CreateReportRequest
}

// activeRules serves rules from the in-process cache; every submission
// hitting postgres for the rule list would be needless load.
func (d *RejectRuleVerifier) activeRules(ctx context.Context) ([]*model.RejectRule, error) {
	var rules []*model.RejectRule
	err := modelcache.RejectRules.MutexGetSet(&rules, func() ([]*model.RejectRule, error) {
		return d.Rules.GetAllActiveRejectRules(ctx)
	}, rejectRulesCacheTTL)
	return rules, err
}

func (d *RejectRuleVerifier) Verify(ctx context.Context, report *types.CreateReportRequest) *Rejection {
	rejectRules, err := d.activeRules(ctx)
	if err != nil {
		return &Rejection{
			Reliability: constant.ViolationReliabilityRejectRuleUnexpected,
			Message:     err.Error(),
		}
	}

	submissionContext := SubmissionContext{
		Report: report,
	}

	start := time.Now()
	defer func() {
		if l := log.Trace(); l.Enabled() {
			l.Dur("duration", time.Since(start)).
				Msg("reject rule(s) evaluated")
		}
	}()

	for _, rejectRule := range rejectRules {
		if rejectRule.WithReliability < constant.ViolationReliabilityRejectRuleRangeLeast ||
			rejectRule.WithReliability >= constant.ViolationReliabilityRejectRuleRangeMost {
			log.Error().
				Int("ruleId", rejectRule.RuleID).
				Msgf("reject rule with reliability %d is out of range [%d, %d)", rejectRule.WithReliability, constant.ViolationReliabilityRejectRuleRangeLeast, constant.ViolationReliabilityRejectRuleRangeMost)

			continue
		}

		result, err := expr.Eval(rejectRule.Expr, submissionContext)
		if err != nil {
			log.Error().
				Str("evt.name", "verifier.reject_rule.expr_eval_error").
				Interface("context", submissionContext).
				Int("ruleId", rejectRule.RuleID).
				Err(err).
				Msgf("failed to evaluate reject rule %d", rejectRule.RuleID)
			continue
		}

		shouldReject := d.resultHandler(result)

		if shouldReject {
			log.Warn().
				Str("evt.name", "verifier.reject_rule.rejected").
				Interface("context", submissionContext).
				Int("reject_rule.rule_id", rejectRule.RuleID).
				Int("reject_rule.with_reliability", rejectRule.WithReliability).
				Msg("reject rule matched, rejecting using specified reliability value")

			return &Rejection{
				Reliability: rejectRule.WithReliability,
				Message:     fmt.Sprintf("reject rule %d matched", rejectRule.RuleID),
			}
		} else {
			if l := log.Trace(); l.Enabled() {
				l.Interface("context", submissionContext).
					Int("ruleId", rejectRule.RuleID).
					Msgf("reject rule verification passed")
			}
		}
	}

	return nil
}

func (d *RejectRuleVerifier) resultHandler(result any) bool {
	switch r := result.(type) {
	case bool:
		return r
	default:
		log.Error().Msgf("reject rule expr result type %T is not supported", result)
		return false
	}
}
