package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// trmRegistro is one row of the datos.gov.co TRM dataset. The API returns the
// value as string, so we decode into decimal directly.
type trmRegistro struct {
	Valor         decimal.Decimal `json:"valor"`
	VigenciaDesde string          `json:"vigenciadesde"`
	VigenciaHasta string          `json:"vigenciahasta"`
}

// TRMClient consulta la tasa representativa del mercado (COP por USD) en el
// API publico de datos abiertos. Las fallas del proveedor se aislan del
// backend con un circuit breaker (ver service.TRMService).
type TRMClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTRMClient(baseURL string) *TRMClient {
	return &TRMClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Obtener devuelve la TRM vigente mas reciente. Falla si el proveedor no
// responde, responde mal o devuelve una tasa no positiva.
func (c *TRMClient) Obtener(ctx context.Context) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("$order", "vigenciadesde DESC")
	q.Set("$limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("trm: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("trm: proveedor inalcanzable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("trm: proveedor devolvio %d", resp.StatusCode)
	}

	var registros []trmRegistro
	if err := json.NewDecoder(resp.Body).Decode(&registros); err != nil {
		return decimal.Zero, fmt.Errorf("trm: decode response: %w", err)
	}
	if len(registros) == 0 {
		return decimal.Zero, fmt.Errorf("trm: respuesta vacia del proveedor")
	}

	valor := registros[0].Valor
	if !valor.IsPositive() {
		return decimal.Zero, fmt.Errorf("trm: tasa no positiva %s", valor)
	}
	return valor, nil
}
