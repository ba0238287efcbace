package repo

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"roadwatch.dev/backend/internal/constant"
	"roadwatch.dev/backend/internal/model"
	"roadwatch.dev/backend/internal/pkg/geo"
	"roadwatch.dev/backend/internal/repo/selector"
)

type Report struct {
	DB  *bun.DB
	sel selector.S[model.Report]
}

func NewReport(db *bun.DB) *Report {
	return &Report{
		DB:  db,
		sel: selector.New[model.Report](db),
	}
}

func (s *Report) CreateReport(ctx context.Context, report *model.Report) error {
	_, err := s.DB.NewInsert().
		Model(report).
		Exec(ctx)
	return err
}

func (s *Report) GetReportByID(ctx context.Context, reportId string) (*model.Report, error) {
	return s.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("r.report_id = ?", reportId)
	})
}

// ListReports returns one page of reports matching queryCtx, together with the
// total count of matches before pagination.
func (s *Report) ListReports(ctx context.Context, queryCtx *model.ReportQueryContext) ([]*model.Report, int, error) {
	reports := make([]*model.Report, 0)

	q := s.DB.NewSelect().
		Model(&reports)
	s.handleReliability(q)
	s.handleFilters(q, queryCtx)
	s.handleOrder(q, queryCtx)

	limit := queryCtx.Limit
	if limit <= 0 {
		limit = constant.DefaultListLimit
	}
	if limit > constant.MaxListLimit {
		limit = constant.MaxListLimit
	}

	total, err := q.
		Limit(limit).
		Offset(queryCtx.Offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (s *Report) UpdateReportStatus(ctx context.Context, reportId string, status string) error {
	now := time.Now()
	_, err := s.DB.NewUpdate().
		Model((*model.Report)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", now).
		Where("report_id = ?", reportId).
		Exec(ctx)
	return err
}

// ListLocated returns public reports with coordinates inside the bounding
// box. Callers refine with an exact distance check where needed.
func (s *Report) ListLocated(ctx context.Context, box geo.BBox, statuses []string) ([]*model.Report, error) {
	return s.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		s.handleReliability(q)
		q = q.
			Where("r.latitude IS NOT NULL").
			Where("r.longitude IS NOT NULL").
			Where("r.latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)
		if box.MinLng <= box.MaxLng {
			q = q.Where("r.longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
		} else {
			// box wraps the antimeridian
			q = q.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
				return sq.
					WhereOr("r.longitude >= ?", box.MinLng).
					WhereOr("r.longitude <= ?", box.MaxLng)
			})
		}
		if len(statuses) > 0 {
			q = q.Where("r.status IN (?)", bun.In(statuses))
		}
		return q
	})
}

type columnCount struct {
	Value string `bun:"value"`
	Count int    `bun:"count"`
}

// CountsByColumn groups public reports created within the window by the given
// column. The column name must come from a fixed set, never user input.
func (s *Report) CountsByColumn(ctx context.Context, column string, since time.Time) (map[string]int, error) {
	results := make([]*columnCount, 0)

	q := s.DB.NewSelect().
		TableExpr("reports AS r").
		ColumnExpr("r.? AS value", bun.Ident(column)).
		ColumnExpr("COUNT(*) AS count")
	s.handleReliability(q)
	s.handleCreatedAtSince(q, since)

	if err := q.
		GroupExpr("r.?", bun.Ident(column)).
		Scan(ctx, &results); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(results))
	for _, r := range results {
		counts[r.Value] = r.Count
	}
	return counts, nil
}

type dayCount struct {
	Day   time.Time `bun:"day"`
	Count int       `bun:"count"`
}

// DailyCounts returns per-day report counts within the window. Days without
// reports are absent; the service layer fills the gaps.
func (s *Report) DailyCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	results := make([]*dayCount, 0)

	q := s.DB.NewSelect().
		TableExpr("reports AS r").
		ColumnExpr("date_trunc('day', r.created_at) AS day").
		ColumnExpr("COUNT(*) AS count")
	s.handleReliability(q)
	s.handleCreatedAtSince(q, since)

	if err := q.
		GroupExpr("date_trunc('day', r.created_at)").
		Scan(ctx, &results); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(results))
	for _, r := range results {
		counts[r.Day.UTC().Format("2006-01-02")] = r.Count
	}
	return counts, nil
}

// TopLocations returns the most reported locations within the window,
// case-insensitively collapsed.
func (s *Report) TopLocations(ctx context.Context, since time.Time, limit int) ([]*model.LocationCount, error) {
	results := make([]*model.LocationCount, 0)

	q := s.DB.NewSelect().
		TableExpr("reports AS r").
		ColumnExpr("lower(btrim(r.location)) AS location").
		ColumnExpr("COUNT(*) AS count")
	s.handleReliability(q)
	s.handleCreatedAtSince(q, since)

	if err := q.
		Where("btrim(r.location) <> ''").
		GroupExpr("lower(btrim(r.location))").
		OrderExpr("count DESC, location ASC").
		Limit(limit).
		Scan(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Report) CountSince(ctx context.Context, since time.Time) (int, error) {
	q := s.DB.NewSelect().
		Model((*model.Report)(nil))
	s.handleReliability(q)
	s.handleCreatedAtSince(q, since)
	return q.Count(ctx)
}

// GetReportsForArchive pages through resolved reports older than before using
// the report id as a cursor.
func (s *Report) GetReportsForArchive(ctx context.Context, cursor string, before time.Time, limit int) ([]*model.Report, error) {
	return s.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.
			Where("r.status = ?", constant.StatusResolved).
			Where("r.created_at < ?", before)
		if cursor != "" {
			q = q.Where("r.report_id > ?", cursor)
		}
		return q.
			Order("r.report_id ASC").
			Limit(limit)
	})
}

func (s *Report) handleReliability(query *bun.SelectQuery) *bun.SelectQuery {
	return query.Where("r.reliability = ?", constant.ReliabilityOK)
}

func (s *Report) handleFilters(query *bun.SelectQuery, queryCtx *model.ReportQueryContext) *bun.SelectQuery {
	s.handleEq(query, "r.category", queryCtx.Category)
	s.handleEq(query, "r.severity", queryCtx.Severity)
	s.handleEq(query, "r.status", queryCtx.Status)
	if queryCtx.Search.Valid && queryCtx.Search.String != "" {
		pattern := "%" + escapeLike(queryCtx.Search.String) + "%"
		query = query.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.
				WhereOr("r.title ILIKE ?", pattern).
				WhereOr("r.description ILIKE ?", pattern).
				WhereOr("r.location ILIKE ?", pattern)
		})
	}
	if queryCtx.Since != nil {
		query = query.Where("r.created_at >= ?", *queryCtx.Since)
	}
	if queryCtx.Until != nil {
		query = query.Where("r.created_at < ?", *queryCtx.Until)
	}
	return query
}

func (s *Report) handleEq(query *bun.SelectQuery, column string, value null.String) *bun.SelectQuery {
	if value.Valid && value.String != "" {
		query = query.Where("? = ?", bun.Safe(column), value.String)
	}
	return query
}

func (s *Report) handleOrder(query *bun.SelectQuery, queryCtx *model.ReportQueryContext) *bun.SelectQuery {
	dir := "ASC"
	if queryCtx.SortDesc {
		dir = "DESC"
	}
	// sortBy is validated case-insensitively upstream, normalize before matching
	switch strings.ToLower(queryCtx.SortBy) {
	case "severity":
		// rank severities rather than sorting the label alphabetically
		query = query.OrderExpr(
			"array_position(ARRAY[?, ?, ?, ?], r.severity) ?",
			constant.SeverityLow, constant.SeverityMedium, constant.SeverityHigh, constant.SeverityCritical,
			bun.Safe(dir),
		).OrderExpr("r.created_at DESC")
	default:
		query = query.OrderExpr("r.created_at ?", bun.Safe(dir))
	}
	return query
}

func (s *Report) handleCreatedAtSince(query *bun.SelectQuery, since time.Time) *bun.SelectQuery {
	if !since.IsZero() {
		query = query.Where("r.created_at >= ?", since)
	}
	return query
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
