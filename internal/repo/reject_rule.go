package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model"
	"roadwatch.dev/backend/internal/pkg/rwerr"
)

type RejectRule struct {
	db *bun.DB
}

func NewRejectRule(db *bun.DB) *RejectRule {
	return &RejectRule{db: db}
}

func (r *RejectRule) GetRejectRule(ctx context.Context, id int) (*model.RejectRule, error) {
	var rejectRule model.RejectRule
	err := r.db.NewSelect().
		Model(&rejectRule).
		Where("rule_id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, rwerr.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return &rejectRule, nil
}

func (r *RejectRule) GetAllActiveRejectRules(ctx context.Context) ([]*model.RejectRule, error) {
	var rejectRule []*model.RejectRule
	err := r.db.NewSelect().
		Model(&rejectRule).
		Where("status = ?", constant.StatusActive).
		Order("rule_id ASC").
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, rwerr.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return rejectRule, nil
}

func (r *RejectRule) CreateRejectRule(ctx context.Context, rule *model.RejectRule) error {
	_, err := r.db.NewInsert().
		Model(rule).
		Exec(ctx)
	return err
}

func (r *RejectRule) DeactivateRejectRule(ctx context.Context, id int) error {
	now := time.Now()
	res, err := r.db.NewUpdate().
		Model((*model.RejectRule)(nil)).
		Set("status = ?", "inactive").
		Set("updated_at = ?", now).
		Where("rule_id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return rwerr.ErrNotFound
	}
	return nil
}
