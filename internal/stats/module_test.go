package stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalogo_backend/internal/selection/session"
	"catalogo_backend/platform/logger"
)

type fakeReader struct {
	counts    map[string]int
	byCatalog []CatalogBreakdown
	err       error
}

func (f *fakeReader) Count(_ context.Context, table string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[table], nil
}

func (f *fakeReader) ByCatalog(_ context.Context) ([]CatalogBreakdown, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCatalog, nil
}

func statsFixture(t *testing.T, reader Reader) *Module {
	t.Helper()

	store := session.NewStore(time.Hour, logger.New("development"))
	t.Cleanup(store.Close)

	return &Module{reader: reader, sessions: store}
}

func serveStats(t *testing.T, m *Module) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/stats", m.get)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	engine.ServeHTTP(rec, req)
	return rec
}

func TestStatsIncludePerCatalogBreakdown(t *testing.T) {
	marketing := uuid.New()
	legal := uuid.New()
	m := statsFixture(t, &fakeReader{
		counts: map[string]int{"catalogs": 2, "services": 5, "packages": 3},
		byCatalog: []CatalogBreakdown{
			{CatalogID: legal, Name: "Legal", Services: 2, Packages: 1},
			{CatalogID: marketing, Name: "Marketing", Services: 3, Packages: 2},
		},
	})

	rec := serveStats(t, m)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Catalogs != 2 || resp.Services != 5 || resp.Packages != 3 {
		t.Fatalf("totals = %d/%d/%d", resp.Catalogs, resp.Services, resp.Packages)
	}
	if len(resp.ByCatalog) != 2 {
		t.Fatalf("byCatalog length = %d, want 2", len(resp.ByCatalog))
	}
	if resp.ByCatalog[1].CatalogID != marketing || resp.ByCatalog[1].Services != 3 || resp.ByCatalog[1].Packages != 2 {
		t.Fatalf("marketing breakdown = %+v", resp.ByCatalog[1])
	}
}

func TestStatsReaderFailureFailsRequest(t *testing.T) {
	m := statsFixture(t, &fakeReader{err: errors.New("connection refused")})

	rec := serveStats(t, m)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
