package export

import (
	"context"

	"catalogo_backend/internal/events"
	"catalogo_backend/internal/selection/session"
	"catalogo_backend/platform/logger"
	"catalogo_backend/platform/sanitize"
)

// ExportRequest carries the optional company name printed on the PDF.
type ExportRequest struct {
	Company string `json:"company" validate:"omitempty,max=200"`
}

// Result is a rendered export. Empty is set when the selection had no
// items, in which case no document is produced.
type Result struct {
	Filename string
	PDF      []byte
	Empty    bool
}

// Service renders and archives quotation exports.
type Service struct {
	sessions *session.Store
	bus      events.Bus
	archiver *Archiver
	log      *logger.Logger
}

// New creates a new export service. archiver may be nil when object
// storage is not configured.
func New(sessions *session.Store, bus events.Bus, archiver *Archiver, log *logger.Logger) *Service {
	return &Service{sessions: sessions, bus: bus, archiver: archiver, log: log}
}

// Export renders the session's selection as a PDF. An empty selection
// produces no document and no event.
func (s *Service) Export(ctx context.Context, token string, req ExportRequest) (Result, error) {
	sess, err := s.sessions.Get(token)
	if err != nil {
		return Result{}, err
	}

	snap := sess.Snapshot()
	if len(snap.Entries) == 0 {
		return Result{Empty: true}, nil
	}

	company := sanitize.Text(req.Company)

	data := QuotePDFData{
		CatalogName:   snap.Catalog.Name,
		CompanyName:   company,
		UseQuantities: snap.View.UseQuantities,
		TotalCents:    snap.TotalCents,
		Lines:         make([]QuoteLine, 0, len(snap.Entries)),
	}
	for _, entry := range snap.Entries {
		data.Lines = append(data.Lines, QuoteLine{
			Name:       sanitize.Text(entry.Item.Name),
			Kind:       string(entry.Item.Kind),
			Quantity:   entry.Quantity,
			PriceCents: entry.Item.PriceCents,
		})
	}

	pdf, err := GenerateQuotePDF(data)
	if err != nil {
		return Result{}, err
	}

	filename := Filename(snap.Catalog.Name, company)

	s.log.ExportEvent(snap.Catalog.ID.String(), filename, len(data.Lines), data.TotalCents)
	s.bus.Publish(ctx, events.NewQuoteExported(snap.Catalog.ID, filename, len(data.Lines), data.TotalCents))

	if s.archiver != nil {
		// Archiving is best effort; a storage outage must not block the download.
		if key, err := s.archiver.Archive(ctx, filename, pdf); err != nil {
			s.log.Warn("export archive failed", "filename", filename, "error", err.Error())
		} else {
			s.log.Debug("export archived", "key", key)
		}
	}

	return Result{Filename: filename, PDF: pdf}, nil
}
