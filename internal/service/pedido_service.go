package service

import (
	"context"
	"errors"
	"fmt"

	"viotex/internal/dto"
	"viotex/internal/model"
	"viotex/internal/repository"
	"viotex/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoService interface {
	// CrearDesdeCotizacion materializa una cotizacion vigente en un pedido;
	// cada linea se vuelve un item que arranca en PENDIENTE.
	CrearDesdeCotizacion(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	ListarItems(ctx context.Context, filter dto.PedidoItemFilter) (*dto.PedidoItemListResponse, error)

	// CambiarEstado aplica una transicion del workflow sobre un item. El rol
	// viene del JWT; la tabla de transiciones es la autoridad final. La
	// escritura es optimista: si el item cambio entre lectura y escritura la
	// operacion falla y el cliente debe recargar.
	CambiarEstado(ctx context.Context, itemID, usuarioID uuid.UUID, rol string, req dto.CambiarEstadoRequest) (*dto.PedidoItemResponse, error)
	EstadosPermitidos(ctx context.Context, itemID uuid.UUID, rol string) (*dto.EstadosPermitidosResponse, error)
	Historial(ctx context.Context, itemID uuid.UUID) ([]dto.HistorialEstadoResponse, error)
}

type pedidoService struct {
	repo           repository.PedidoRepository
	cotizacionRepo repository.CotizacionRepository
}

func NewPedidoService(repo repository.PedidoRepository, cotizacionRepo repository.CotizacionRepository) PedidoService {
	return &pedidoService{repo: repo, cotizacionRepo: cotizacionRepo}
}

func (s *pedidoService) CrearDesdeCotizacion(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	cotID, err := uuid.Parse(req.CotizacionID)
	if err != nil {
		return nil, fmt.Errorf("cotizacion_id invalido: %w", err)
	}
	cot, err := s.cotizacionRepo.FindByID(ctx, cotID)
	if err != nil {
		return nil, errors.New("cotizacion no encontrada")
	}
	if cot.Estado != "vigente" {
		return nil, errors.New("la cotizacion no esta vigente")
	}
	if len(cot.Lineas) == 0 {
		return nil, errors.New("la cotizacion no tiene lineas")
	}

	pedido := model.Pedido{
		CotizacionID: &cot.ID,
		ClienteID:    cot.ClienteID,
		UsuarioID:    usuarioID,
	}
	for _, l := range cot.Lineas {
		pedido.Items = append(pedido.Items, model.PedidoItem{
			ProductoID:     l.ProductoID,
			Descripcion:    l.Descripcion,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			TipoPedido:     l.TipoPedido,
			Estado:         string(workflow.EstadoInicial),
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumero(ctx, tx)
		if err != nil {
			return err
		}
		pedido.Numero = numero
		return s.repo.Create(ctx, tx, &pedido)
	})
	if txErr != nil {
		return nil, txErr
	}

	pedido.Cliente = cot.Cliente
	return pedidoToResponse(&pedido), nil
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) ListarItems(ctx context.Context, filter dto.PedidoItemFilter) (*dto.PedidoItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoItemResponse, len(items))
	for i := range items {
		data[i] = itemToResponse(&items[i])
	}
	return &dto.PedidoItemListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *pedidoService) CambiarEstado(ctx context.Context, itemID, usuarioID uuid.UUID, rol string, req dto.CambiarEstadoRequest) (*dto.PedidoItemResponse, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, errors.New("item no encontrado")
	}

	actual := workflow.Estado(item.Estado)
	solicitado := workflow.Estado(req.Estado)
	if !solicitado.EsValido() {
		return nil, fmt.Errorf("estado desconocido %q", req.Estado)
	}

	if err := workflow.Intentar(workflow.Rol(rol), actual, solicitado); err != nil {
		return nil, err
	}

	// Mismo estado: aceptado sin escritura ni fila de historial.
	if actual == solicitado {
		resp := itemToResponse(item)
		return &resp, nil
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoItemTx(tx, itemID, string(actual), string(solicitado)); err != nil {
			return err
		}
		return s.repo.CreateHistorialTx(tx, &model.HistorialEstado{
			PedidoItemID:   itemID,
			EstadoAnterior: string(actual),
			EstadoNuevo:    string(solicitado),
			Rol:            rol,
			UsuarioID:      usuarioID,
			Motivo:         req.Motivo,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	item.Estado = string(solicitado)
	resp := itemToResponse(item)
	return &resp, nil
}

func (s *pedidoService) EstadosPermitidos(ctx context.Context, itemID uuid.UUID, rol string) (*dto.EstadosPermitidosResponse, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, errors.New("item no encontrado")
	}
	permitidos := workflow.AllowedNext(workflow.Rol(rol), workflow.Estado(item.Estado))
	estados := make([]string, len(permitidos))
	for i, e := range permitidos {
		estados[i] = string(e)
	}
	return &dto.EstadosPermitidosResponse{
		ItemID:     itemID.String(),
		Estado:     item.Estado,
		Rol:        rol,
		Permitidos: estados,
	}, nil
}

func (s *pedidoService) Historial(ctx context.Context, itemID uuid.UUID) ([]dto.HistorialEstadoResponse, error) {
	historial, err := s.repo.ListHistorial(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistorialEstadoResponse, len(historial))
	for i, h := range historial {
		resp[i] = dto.HistorialEstadoResponse{
			EstadoAnterior: h.EstadoAnterior,
			EstadoNuevo:    h.EstadoNuevo,
			Rol:            h.Rol,
			UsuarioID:      h.UsuarioID.String(),
			Motivo:         h.Motivo,
			CreatedAt:      h.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}
	return resp, nil
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	items := make([]dto.PedidoItemResponse, len(p.Items))
	for i := range p.Items {
		items[i] = itemToResponse(&p.Items[i])
	}
	clienteNombre := ""
	if p.Cliente != nil {
		clienteNombre = p.Cliente.Nombre
	}
	var cotID *string
	if p.CotizacionID != nil {
		s := p.CotizacionID.String()
		cotID = &s
	}
	return &dto.PedidoResponse{
		ID:           p.ID.String(),
		Numero:       p.Numero,
		CotizacionID: cotID,
		ClienteID:    p.ClienteID.String(),
		Cliente:      clienteNombre,
		Items:        items,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func itemToResponse(item *model.PedidoItem) dto.PedidoItemResponse {
	return dto.PedidoItemResponse{
		ID:             item.ID.String(),
		PedidoID:       item.PedidoID.String(),
		Producto:       item.Descripcion,
		Cantidad:       item.Cantidad,
		PrecioUnitario: item.PrecioUnitario,
		TipoPedido:     item.TipoPedido,
		Estado:         item.Estado,
		UpdatedAt:      item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
