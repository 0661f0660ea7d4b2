package worker

// cotizacion_worker.go
// Processes PDF jobs from QueueCotizacionPDF: renders the cotizacion with fpdf
// and, when the payload carries an email, chains an email job so the document
// reaches the client.

import (
	"context"
	"encoding/json"
	"fmt"

	"viotex/internal/infra"
	"viotex/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CotizacionPDFPayload is the job envelope sent to QueueCotizacionPDF.
type CotizacionPDFPayload struct {
	CotizacionID string `json:"cotizacion_id"`
	Email        string `json:"email,omitempty"`
}

// CotizacionFinder loads the cotizacion with lineas and adiciones preloaded.
// Satisfied by repository.CotizacionRepository.
type CotizacionFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
}

type CotizacionWorker struct {
	repo        CotizacionFinder
	dispatcher  *Dispatcher
	storagePath string
}

func NewCotizacionWorker(repo CotizacionFinder, dispatcher *Dispatcher, storagePath string) *CotizacionWorker {
	return &CotizacionWorker{repo: repo, dispatcher: dispatcher, storagePath: storagePath}
}

// Process renders the PDF and optionally enqueues the email job.
func (w *CotizacionWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload CotizacionPDFPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("cotizacion_worker: invalid payload: %w", err)
	}

	id, err := uuid.Parse(payload.CotizacionID)
	if err != nil {
		return fmt.Errorf("cotizacion_worker: invalid cotizacion_id: %w", err)
	}

	cot, err := w.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cotizacion_worker: load cotizacion: %w", err)
	}

	pdfPath, err := infra.GenerateCotizacionPDF(cot, w.storagePath)
	if err != nil {
		return fmt.Errorf("cotizacion_worker: generate PDF: %w", err)
	}
	log.Info().Int("numero", cot.Numero).Str("path", pdfPath).Msg("cotizacion_worker: PDF generated")

	if payload.Email == "" {
		return nil
	}

	emailJob := EmailJobPayload{
		ToEmail: payload.Email,
		Subject: fmt.Sprintf("Cotizacion N° %d", cot.Numero),
		Body:    fmt.Sprintf("Adjuntamos la cotizacion N° %d. Valida por 15 dias.", cot.Numero),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		return fmt.Errorf("cotizacion_worker: enqueue email: %w", err)
	}
	return nil
}
