package workflow

// Rol del usuario que solicita la transicion. Llega desde la capa de
// autenticacion como string opaco; un rol no reconocido tiene conjunto de
// transiciones vacio (negar por defecto).
type Rol string

const (
	RolAdministrador Rol = "ADMINISTRADOR"
	RolVendedor      Rol = "VENDEDOR"
	RolDiseno        Rol = "DISENO"
	RolConfeccion    Rol = "CONFECCION"
	RolEmpaque       Rol = "EMPAQUE"
	RolDespachos     Rol = "DESPACHOS"
)

// Roles enumera los roles reconocidos por la tabla de transiciones.
var Roles = []Rol{
	RolAdministrador, RolVendedor, RolDiseno,
	RolConfeccion, RolEmpaque, RolDespachos,
}

func (r Rol) EsValido() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}
