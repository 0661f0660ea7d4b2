package workflow

// tabla.go — la tabla (rol, estado actual) -> estados siguientes permitidos.
// Es la unica fuente de verdad de las transiciones; Intentar y AllowedNext solo
// la consultan. Los estados terminales no aparecen como clave: nada sale de
// COMPLETADO ni CANCELADO.

// Carriles por area. Cada rol avanza el item un paso dentro de su area.
var (
	transicionesVendedor = map[Estado][]Estado{
		EstadoPendiente:  {EstadoEnRevision},
		EstadoEnRevision: {EstadoAprobado},
		EstadoEntregado:  {EstadoCompletado},
	}

	transicionesDiseno = map[Estado][]Estado{
		EstadoAprobado: {EstadoEnDiseno},
		EstadoEnDiseno: {EstadoEnCorte},
	}

	transicionesConfeccion = map[Estado][]Estado{
		EstadoEnCorte:       {EstadoEnMontaje},
		EstadoEnMontaje:     {EstadoEnImpresion},
		EstadoEnImpresion:   {EstadoEnSublimacion},
		EstadoEnSublimacion: {EstadoEnConfeccion},
		EstadoEnConfeccion:  {EstadoEnControlCalidad},
	}

	transicionesEmpaque = map[Estado][]Estado{
		EstadoEnControlCalidad: {EstadoEnEmpaque},
		EstadoEnEmpaque:        {EstadoEmpacado},
	}

	transicionesDespachos = map[Estado][]Estado{
		EstadoEmpacado: {EstadoEnviado},
		EstadoEnviado:  {EstadoEntregado},
	}
)

// estadosProduccion son los estados desde los que un administrador puede abrir
// una solicitud de cambio.
var estadosProduccion = []Estado{
	EstadoEnDiseno, EstadoEnCorte, EstadoEnMontaje, EstadoEnImpresion,
	EstadoEnSublimacion, EstadoEnConfeccion, EstadoEnControlCalidad,
}

// transicionesAdministrador: union de todos los carriles, mas la cancelacion de
// cualquier estado no terminal y la sub-ruta de cambio completa.
var transicionesAdministrador = construirTransicionesAdmin()

func construirTransicionesAdmin() map[Estado][]Estado {
	t := make(map[Estado][]Estado)
	for _, carril := range []map[Estado][]Estado{
		transicionesVendedor, transicionesDiseno, transicionesConfeccion,
		transicionesEmpaque, transicionesDespachos,
	} {
		for desde, hacia := range carril {
			t[desde] = append(t[desde], hacia...)
		}
	}

	// Solicitud de cambio: solo desde estados de produccion.
	for _, e := range estadosProduccion {
		t[e] = append(t[e], EstadoEnRevisionCambio)
	}
	t[EstadoEnRevisionCambio] = []Estado{EstadoAprobadoCambio, EstadoRechazadoCambio}
	// Cambio aprobado: el item vuelve a diseno para el retrabajo.
	t[EstadoAprobadoCambio] = []Estado{EstadoEnDiseno}
	// Cambio rechazado: el item retoma la produccion donde la sub-ruta lo saco.
	t[EstadoRechazadoCambio] = []Estado{EstadoEnConfeccion}

	// Cancelacion desde cualquier estado no terminal.
	for _, e := range Estados {
		if !e.EsTerminal() {
			t[e] = append(t[e], EstadoCancelado)
		}
	}
	return t
}

// tablaTransiciones es la tabla completa (rol -> estado actual -> siguientes).
var tablaTransiciones = map[Rol]map[Estado][]Estado{
	RolAdministrador: transicionesAdministrador,
	RolVendedor:      transicionesVendedor,
	RolDiseno:        transicionesDiseno,
	RolConfeccion:    transicionesConfeccion,
	RolEmpaque:       transicionesEmpaque,
	RolDespachos:     transicionesDespachos,
}
