// Package workflow implementa la maquina de estados de los items de pedido.
// Las transiciones estan restringidas por rol ademas de por estado: la tabla
// de transiciones es un dato (ver tabla.go), no logica procedural, para que
// sea auditable y verificable de forma exhaustiva.
package workflow

// Estado de un item de pedido dentro del flujo de produccion.
type Estado string

const (
	// Flujo principal: ingreso -> revision -> produccion -> empaque -> despacho.
	EstadoPendiente       Estado = "PENDIENTE"
	EstadoEnRevision      Estado = "EN_REVISION"
	EstadoAprobado        Estado = "APROBADO"
	EstadoEnDiseno        Estado = "EN_DISENO"
	EstadoEnCorte         Estado = "EN_CORTE"
	EstadoEnMontaje       Estado = "EN_MONTAJE"
	EstadoEnImpresion     Estado = "EN_IMPRESION"
	EstadoEnSublimacion   Estado = "EN_SUBLIMACION"
	EstadoEnConfeccion    Estado = "EN_CONFECCION"
	EstadoEnControlCalidad Estado = "EN_CONTROL_CALIDAD"
	EstadoEnEmpaque       Estado = "EN_EMPAQUE"
	EstadoEmpacado        Estado = "EMPACADO"
	EstadoEnviado         Estado = "ENVIADO"
	EstadoEntregado       Estado = "ENTREGADO"
	EstadoCompletado      Estado = "COMPLETADO"
	EstadoCancelado       Estado = "CANCELADO"

	// Sub-ruta de solicitud de cambio, exclusiva de roles administrativos.
	EstadoEnRevisionCambio Estado = "EN_REVISION_CAMBIO"
	EstadoAprobadoCambio   Estado = "APROBADO_CAMBIO"
	EstadoRechazadoCambio  Estado = "RECHAZADO_CAMBIO"
)

// EstadoInicial es el estado con el que nace todo item de pedido.
const EstadoInicial = EstadoPendiente

// Estados enumera los 19 estados del flujo.
var Estados = []Estado{
	EstadoPendiente, EstadoEnRevision, EstadoAprobado, EstadoEnDiseno,
	EstadoEnCorte, EstadoEnMontaje, EstadoEnImpresion, EstadoEnSublimacion,
	EstadoEnConfeccion, EstadoEnControlCalidad, EstadoEnEmpaque, EstadoEmpacado,
	EstadoEnviado, EstadoEntregado, EstadoCompletado, EstadoCancelado,
	EstadoEnRevisionCambio, EstadoAprobadoCambio, EstadoRechazadoCambio,
}

// EsValido reporta si s es uno de los estados conocidos.
func (s Estado) EsValido() bool {
	for _, e := range Estados {
		if s == e {
			return true
		}
	}
	return false
}

// EsTerminal: COMPLETADO y CANCELADO no aceptan mas transiciones.
func (s Estado) EsTerminal() bool {
	return s == EstadoCompletado || s == EstadoCancelado
}
