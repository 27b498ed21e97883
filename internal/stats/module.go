// Package stats aggregates operational counts for the admin dashboard.
package stats

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	apphttp "catalogo_backend/internal/http"
	"catalogo_backend/internal/selection/session"
	"catalogo_backend/platform/httpkit"
)

// CatalogBreakdown is the per-catalog slice of the dashboard counters.
type CatalogBreakdown struct {
	CatalogID uuid.UUID `json:"catalogId"`
	Name      string    `json:"name"`
	Services  int       `json:"services"`
	Packages  int       `json:"packages"`
}

// Response is the admin dashboard counters payload.
type Response struct {
	Catalogs     int                `json:"catalogs"`
	Services     int                `json:"services"`
	Packages     int                `json:"packages"`
	ByCatalog    []CatalogBreakdown `json:"byCatalog"`
	LiveSessions int                `json:"liveSessions"`
}

// Reader loads the dashboard counters from storage.
type Reader interface {
	Count(ctx context.Context, table string) (int, error)
	ByCatalog(ctx context.Context) ([]CatalogBreakdown, error)
}

// Module is the stats bounded context module implementing http.Module.
type Module struct {
	reader   Reader
	sessions *session.Store
}

// NewModule creates and initializes the stats module.
func NewModule(pool *pgxpool.Pool, sessions *session.Store) *Module {
	return &Module{reader: &pgxReader{pool: pool}, sessions: sessions}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "stats"
}

// RegisterRoutes mounts the stats endpoint on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/stats", m.get)
}

// get runs the count queries concurrently; one failed query fails the
// whole response.
func (m *Module) get(c *gin.Context) {
	var resp Response

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error { return m.count(ctx, "catalogs", &resp.Catalogs) })
	g.Go(func() error { return m.count(ctx, "services", &resp.Services) })
	g.Go(func() error { return m.count(ctx, "packages", &resp.Packages) })
	g.Go(func() error {
		byCatalog, err := m.reader.ByCatalog(ctx)
		if err != nil {
			return err
		}
		resp.ByCatalog = byCatalog
		return nil
	})

	if err := g.Wait(); httpkit.HandleError(c, err) {
		return
	}

	resp.LiveSessions = m.sessions.Len()

	httpkit.OK(c, resp)
}

func (m *Module) count(ctx context.Context, table string, out *int) error {
	n, err := m.reader.Count(ctx, table)
	if err != nil {
		return err
	}
	*out = n
	return nil
}

type pgxReader struct {
	pool *pgxpool.Pool
}

func (r *pgxReader) Count(ctx context.Context, table string) (int, error) {
	// table comes from the fixed call sites above, never from input.
	query := "SELECT COUNT(*) FROM " + table

	var n int
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}

	return n, nil
}

func (r *pgxReader) ByCatalog(ctx context.Context) ([]CatalogBreakdown, error) {
	query := `
		SELECT c.id, c.name,
		       COUNT(DISTINCT s.id) AS services,
		       COUNT(DISTINCT p.id) AS packages
		FROM catalogs c
		LEFT JOIN services s ON s.catalog_id = c.id
		LEFT JOIN packages p ON p.catalog_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count by catalog: %w", err)
	}
	defer rows.Close()

	breakdown := make([]CatalogBreakdown, 0)
	for rows.Next() {
		var b CatalogBreakdown
		if err := rows.Scan(&b.CatalogID, &b.Name, &b.Services, &b.Packages); err != nil {
			return nil, fmt.Errorf("scan catalog breakdown: %w", err)
		}
		breakdown = append(breakdown, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by catalog: %w", err)
	}

	return breakdown, nil
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
