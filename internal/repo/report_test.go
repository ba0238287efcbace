package repo

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"roadwatch.dev/backend/internal/model"
)

// newOfflineDB builds a bun.DB that is only ever used to render SQL; no
// connection is established.
func newOfflineDB() *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN("postgres://localhost:5432/roadwatch?sslmode=disable")))
	return bun.NewDB(sqldb, pgdialect.New())
}

func TestHandleOrderSortKeyIsCaseInsensitive(t *testing.T) {
	db := newOfflineDB()
	r := NewReport(db)

	for _, sortBy := range []string{"severity", "SEVERITY", "Severity"} {
		q := db.NewSelect().Model((*model.Report)(nil))
		q = r.handleOrder(q, &model.ReportQueryContext{SortBy: sortBy})
		assert.Contains(t, q.String(), "array_position", "sortBy=%s should rank by severity", sortBy)
	}
}

func TestHandleOrderDefaultsToCreatedAt(t *testing.T) {
	db := newOfflineDB()
	r := NewReport(db)

	q := db.NewSelect().Model((*model.Report)(nil))
	q = r.handleOrder(q, &model.ReportQueryContext{SortBy: "createdAt", SortDesc: true})
	rendered := q.String()
	assert.Contains(t, rendered, "created_at DESC")
	assert.NotContains(t, rendered, "array_position")
}
