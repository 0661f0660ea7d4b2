package service

import (
	"context"
	"testing"
	"time"

	"viotex/internal/config"
	"viotex/internal/dto"
	"viotex/internal/model"
	"viotex/internal/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrecioFixture(precios ...*model.PrecioProducto) PrecioService {
	repo := &stubPrecioRepo{precios: map[uuid.UUID]*model.PrecioProducto{}}
	for _, p := range precios {
		repo.precios[p.ID] = p
	}
	return NewPrecioService(repo, nil, &config.Config{PrecioCacheTTL: time.Minute})
}

func TestConsultarPrecio_TramoPorCantidad(t *testing.T) {
	camiseta := fixtureCamiseta()
	svc := newPrecioFixture(camiseta)

	casos := []struct {
		cantidad int
		esperado string
	}{
		{1, "30000"},
		{499, "30000"},
		{500, "28000"},
		{1000, "28000"},
		{1001, "25000"},
	}
	for _, c := range casos {
		resp, err := svc.ConsultarPrecio(context.Background(), dto.ConsultaPrecioRequest{
			ProductoID:    camiseta.ID.String(),
			Cantidad:      c.cantidad,
			Clasificacion: "VIOMAR",
		})
		require.NoError(t, err, "cantidad %d", c.cantidad)
		assert.True(t, resp.PrecioUnitario.Equal(d(c.esperado)), "cantidad %d: %s", c.cantidad, resp.PrecioUnitario)
	}
}

func TestConsultarPrecio_MayoristaSinPrecioFijoNoResuelve(t *testing.T) {
	camiseta := fixtureCamiseta()
	svc := newPrecioFixture(camiseta)

	_, err := svc.ConsultarPrecio(context.Background(), dto.ConsultaPrecioRequest{
		ProductoID:    camiseta.ID.String(),
		Cantidad:      100,
		Clasificacion: "MAYORISTA",
	})
	require.ErrorIs(t, err, pricing.ErrPrecioNoResuelto)
}

func TestConsultarPrecio_EditableSoloParaAutorizado(t *testing.T) {
	camiseta := fixtureCamiseta()
	camiseta.EsEditable = true
	svc := newPrecioFixture(camiseta)

	resp, err := svc.ConsultarPrecio(context.Background(), dto.ConsultaPrecioRequest{
		ProductoID:    camiseta.ID.String(),
		Cantidad:      100,
		Clasificacion: "AUTORIZADO",
	})
	require.NoError(t, err)
	assert.True(t, resp.Editable)

	resp, err = svc.ConsultarPrecio(context.Background(), dto.ConsultaPrecioRequest{
		ProductoID:    camiseta.ID.String(),
		Cantidad:      100,
		Clasificacion: "VIOMAR",
	})
	require.NoError(t, err)
	assert.False(t, resp.Editable)
}

func TestConsultarPrecio_ProductoVencidoNoVigente(t *testing.T) {
	camiseta := fixtureCamiseta()
	ayer := time.Now().Add(-24 * time.Hour)
	camiseta.VigenciaFin = &ayer
	svc := newPrecioFixture(camiseta)

	_, err := svc.ConsultarPrecio(context.Background(), dto.ConsultaPrecioRequest{
		ProductoID:    camiseta.ID.String(),
		Cantidad:      100,
		Clasificacion: "VIOMAR",
	})
	assert.EqualError(t, err, "producto sin precio vigente")
}

func TestConsultarPrecio_ClasificacionDesconocida(t *testing.T) {
	svc := newPrecioFixture()

	_, err := svc.ConsultarPrecio(context.Background(), dto.ConsultaPrecioRequest{
		ProductoID:    uuid.New().String(),
		Cantidad:      10,
		Clasificacion: "MINORISTA",
	})
	assert.EqualError(t, err, "clasificacion desconocida")
}
