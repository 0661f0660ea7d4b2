package router

import (
	"time"

	"viotex/internal/config"
	"viotex/internal/handler"
	"viotex/internal/infra"
	"viotex/internal/middleware"
	"viotex/internal/repository"
	"viotex/internal/service"
	"viotex/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, trmCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	trmClient := infra.NewTRMClient(cfg.TRMAPIURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	precioRepo := repository.NewPrecioRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	precioSvc := service.NewPrecioService(precioRepo, rdb, cfg)
	trmSvc := service.NewTRMService(trmClient, trmCB, rdb, cfg)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, clienteRepo, precioRepo, trmSvc, dispatcher)
	pedidoSvc := service.NewPedidoService(pedidoRepo, cotizacionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	preciosH := handler.NewPreciosHandler(precioSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	trmH := handler.NewTRMHandler(trmSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, trmSvc))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		vendedores := middleware.RequireRole("VENDEDOR", "ADMINISTRADOR")
		admin := middleware.RequireRole("ADMINISTRADOR")
		// Cualquier rol de planta puede leer el tablero de produccion.
		planta := middleware.RequireRole("ADMINISTRADOR", "VENDEDOR", "DISENO", "CONFECCION", "EMPAQUE", "DESPACHOS")

		// TRM — lectura para quien cotiza
		v1.GET("/trm", vendedores, trmH.Obtener)

		// Catalogo de precios: lectura para vendedores, escritura solo admin
		v1.GET("/precios", vendedores, preciosH.Listar)
		v1.GET("/precios/consulta", vendedores, preciosH.Consultar)
		v1.GET("/precios/:id", vendedores, preciosH.Obtener)
		precios := v1.Group("/precios", admin)
		{
			precios.POST("", preciosH.Crear)
			precios.PUT("/:id", preciosH.Actualizar)
			precios.DELETE("/:id", preciosH.Desactivar)
		}

		// Clientes
		v1.GET("/clientes", vendedores, clientesH.Listar)
		v1.GET("/clientes/:id", vendedores, clientesH.Obtener)
		v1.POST("/clientes", vendedores, clientesH.Crear)
		v1.PUT("/clientes/:id", vendedores, clientesH.Actualizar)
		v1.DELETE("/clientes/:id", admin, clientesH.Desactivar)

		// Cotizaciones
		cotizaciones := v1.Group("/cotizaciones", vendedores)
		{
			cotizaciones.POST("", cotizacionesH.Crear)
			cotizaciones.POST("/preview", cotizacionesH.Preview)
			cotizaciones.GET("", cotizacionesH.Listar)
			cotizaciones.GET("/:id", cotizacionesH.Obtener)
			cotizaciones.DELETE("/:id", cotizacionesH.Anular)
		}

		// Pedidos y flujo de produccion. El RequireRole de la ruta es el
		// control grueso; la tabla de transiciones del workflow decide que
		// movimiento concreto puede hacer cada rol.
		v1.POST("/pedidos", vendedores, pedidosH.Crear)
		v1.GET("/pedidos/:id", planta, pedidosH.Obtener)
		v1.GET("/pedidos/items", planta, pedidosH.ListarItems)
		v1.PATCH("/pedidos/items/:id/estado", planta, pedidosH.CambiarEstado)
		v1.GET("/pedidos/items/:id/estados-permitidos", planta, pedidosH.EstadosPermitidos)
		v1.GET("/pedidos/items/:id/historial", planta, pedidosH.Historial)

		// Usuarios — solo admin
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
