package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-obras/internal/application/auth"
	"github.com/tu-usuario/almacen-obras/internal/application/catalog"
	"github.com/tu-usuario/almacen-obras/internal/application/ledger"
	"github.com/tu-usuario/almacen-obras/internal/application/obra"
	"github.com/tu-usuario/almacen-obras/internal/application/report"
	"github.com/tu-usuario/almacen-obras/internal/application/request"
	"github.com/tu-usuario/almacen-obras/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC  *catalog.CatalogUseCase
	LedgerUC   *ledger.ApplyMovementUseCase
	WorkflowUC *request.WorkflowUseCase
	ObraUC     *obra.ObraUseCase
	ReportUC   *report.ReportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Los perfiles calcan los permisos del
// almacén: administración puede todo; el encargado opera el depósito
// (ítems y movimientos directos); el ingeniero solicita retiros para obra;
// comercial solo consulta.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	allRoles := RequireRole(
		entity.RoleAdministracion,
		entity.RoleIngeniero,
		entity.RoleEncargado,
		entity.RoleComercial,
	)
	storeOps := RequireRole(entity.RoleAdministracion, entity.RoleEncargado)
	requesters := RequireRole(entity.RoleAdministracion, entity.RoleIngeniero, entity.RoleEncargado)
	adminOnly := RequireRole(entity.RoleAdministracion)

	// Catálogo: todos consultan; encargado y administración escriben.
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Get("/", allRoles, itemHandler.List)
	items.Get("/low-stock", allRoles, itemHandler.ListLowStock)
	items.Get("/:id", allRoles, itemHandler.GetByID)
	items.Post("/", storeOps, itemHandler.Create)
	items.Put("/:id", storeOps, itemHandler.Update)

	descriptions := protected.Group("/descriptions")
	descriptions.Get("/", allRoles, itemHandler.ListDescriptions)
	descriptions.Post("/", storeOps, itemHandler.CreateDescription)
	descriptions.Delete("/:id", storeOps, itemHandler.DeleteDescription)

	// Movimientos directos: solo quien opera el depósito.
	movementHandler := NewMovementHandler(deps.LedgerUC)
	protected.Post("/movements", storeOps, movementHandler.Apply)
	items.Get("/:id/movements", allRoles, movementHandler.ItemHistory)

	// Pedidos: solicitar es amplio; decidir es de administración.
	requests := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.WorkflowUC)
	requests.Post("/", requesters, requestHandler.Submit)
	requests.Get("/mine", requesters, requestHandler.ListMine)
	requests.Get("/pending", adminOnly, requestHandler.ListPending)
	requests.Post("/:id/approve", adminOnly, requestHandler.Approve)
	requests.Post("/:id/reject", adminOnly, requestHandler.Reject)

	// Obras
	obras := protected.Group("/obras")
	obraHandler := NewObraHandler(deps.ObraUC)
	obras.Get("/", allRoles, obraHandler.List)
	obras.Get("/:id/consumption", allRoles, obraHandler.Consumption)
	obras.Post("/", adminOnly, obraHandler.Create)
	obras.Put("/:id", adminOnly, obraHandler.Update)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/movements", allRoles, reportHandler.MovementHistory)
	reports.Get("/dashboard", allRoles, reportHandler.Dashboard)

	// Usuarios (solo administración)
	users := protected.Group("/users", adminOnly)
	users.Get("/", authHandler.ListUsers)
	users.Post("/", authHandler.CreateUser)
	users.Put("/:id", authHandler.UpdateUser)
	users.Delete("/:id", authHandler.DeleteUser)
}
