package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"catalogo_backend/internal/selection/engine"
	"catalogo_backend/internal/selection/session"
	"catalogo_backend/platform/events"
	"catalogo_backend/platform/logger"
)

func TestGenerateQuotePDF(t *testing.T) {
	data := QuotePDFData{
		CatalogName:   "Marketing",
		CompanyName:   "Acme Corp",
		UseQuantities: true,
		TotalCents:    25000,
		Lines: []QuoteLine{
			{Name: "Consultoría", Kind: "service", Quantity: 2, PriceCents: 10000},
			{Name: "Auditoría", Kind: "service", Quantity: 1, PriceCents: 5000},
		},
	}

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("generated PDF is empty")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", pdf[:8])
	}
}

func TestGenerateQuotePDFTagsItemKind(t *testing.T) {
	data := QuotePDFData{
		CatalogName: "Marketing",
		TotalCents:  30000,
		Lines: []QuoteLine{
			{Name: "Consultoria", Kind: "service", Quantity: 1, PriceCents: 10000},
			{Name: "Plan Basico", Kind: "package", Quantity: 1, PriceCents: 20000},
		},
	}

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Parentheses inside a PDF text string are escaped in the content stream.
	for _, tag := range []string{`\(service\)`, `\(package\)`} {
		if !bytes.Contains(pdf, []byte(tag)) {
			t.Errorf("item row is missing the %s kind tag", tag)
		}
	}
}

func TestGenerateQuotePDFWithoutCompanyOrQuantities(t *testing.T) {
	data := QuotePDFData{
		CatalogName: "Servicios",
		TotalCents:  7500,
		Lines: []QuoteLine{
			{Name: "Capacitación", Kind: "service", Quantity: 1, PriceCents: 7500},
		},
	}

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("generated PDF is empty")
	}
}

func exportFixture(t *testing.T) (*Service, *session.Session) {
	t.Helper()

	log := logger.New("development")
	store := session.NewStore(time.Hour, log)
	t.Cleanup(store.Close)

	services := []engine.Item{
		{Kind: engine.KindService, ID: uuid.New(), Name: "Consultoría", PriceCents: 10000},
	}
	catalog := engine.NewCatalog(uuid.New(), "Marketing", services, nil)

	sess, err := store.Create(catalog)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	svc := New(store, events.NewInMemoryBus(log), nil, log)
	return svc, sess
}

func TestExportEmptySelectionProducesNothing(t *testing.T) {
	svc, sess := exportFixture(t)

	result, err := svc.Export(context.Background(), sess.Token(), ExportRequest{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !result.Empty {
		t.Fatal("empty selection must report Empty")
	}
	if len(result.PDF) != 0 || result.Filename != "" {
		t.Fatalf("empty export must carry no document, got %q (%d bytes)", result.Filename, len(result.PDF))
	}
}

func TestExportRendersSelection(t *testing.T) {
	svc, sess := exportFixture(t)

	key := sess.Catalog().Services[0].Key()
	if _, err := sess.Toggle(key); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	result, err := svc.Export(context.Background(), sess.Token(), ExportRequest{Company: "Acme Corp"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if result.Empty {
		t.Fatal("selection with items must produce a document")
	}
	if result.Filename != "Marketing_seleccionados_Acme_Corp.pdf" {
		t.Fatalf("filename = %q", result.Filename)
	}
	if !bytes.HasPrefix(result.PDF, []byte("%PDF")) {
		t.Fatal("output does not look like a PDF")
	}
}

func TestExportUnknownSession(t *testing.T) {
	svc, _ := exportFixture(t)

	if _, err := svc.Export(context.Background(), "no-such-token", ExportRequest{}); err == nil {
		t.Fatal("unknown session must fail")
	}
}
