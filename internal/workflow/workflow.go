package workflow

import (
	"fmt"
	"strings"
)

// TransicionProhibidaError se devuelve cuando el rol no puede mover el item al
// estado solicitado. Lleva el conjunto permitido para que el llamador explique
// al usuario que movimientos si son legales, sin reintentos a ciegas.
type TransicionProhibidaError struct {
	Rol        Rol
	Actual     Estado
	Solicitado Estado
	Permitidos []Estado
}

func (e *TransicionProhibidaError) Error() string {
	if len(e.Permitidos) == 0 {
		return fmt.Sprintf("transicion prohibida: el rol %s no puede mover un item desde %s", e.Rol, e.Actual)
	}
	nombres := make([]string, len(e.Permitidos))
	for i, p := range e.Permitidos {
		nombres[i] = string(p)
	}
	return fmt.Sprintf("transicion prohibida: %s -> %s no permitida para el rol %s (permitidas: %s)",
		e.Actual, e.Solicitado, e.Rol, strings.Join(nombres, ", "))
}

// AllowedNext devuelve los estados a los que el rol puede mover un item que
// esta en el estado actual. Conjunto vacio para roles desconocidos y estados
// terminales. La copia devuelta es del llamador; la tabla nunca se muta.
func AllowedNext(rol Rol, actual Estado) []Estado {
	if actual.EsTerminal() {
		return nil
	}
	porRol, ok := tablaTransiciones[rol]
	if !ok {
		return nil
	}
	permitidos := porRol[actual]
	if len(permitidos) == 0 {
		return nil
	}
	out := make([]Estado, len(permitidos))
	copy(out, permitidos)
	return out
}

// Intentar valida la transicion (rol, actual) -> solicitado.
//
// Politica:
//   - solicitado == actual: no-op aceptado (idempotente), incluso en terminal.
//   - estado actual terminal: prohibido para todo rol.
//   - solicitado fuera del conjunto permitido: TransicionProhibidaError.
//
// No muta nada: el llamador persiste el cambio solo cuando Intentar devuelve nil.
func Intentar(rol Rol, actual, solicitado Estado) error {
	if solicitado == actual {
		return nil
	}

	permitidos := AllowedNext(rol, actual)
	for _, p := range permitidos {
		if p == solicitado {
			return nil
		}
	}
	return &TransicionProhibidaError{
		Rol:        rol,
		Actual:     actual,
		Solicitado: solicitado,
		Permitidos: permitidos,
	}
}
