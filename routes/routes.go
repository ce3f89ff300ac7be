package routes

import (
	"github.com/danyunou/taco-platform/configs"
	"github.com/danyunou/taco-platform/controllers"
	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/middlewares"
	"github.com/danyunou/taco-platform/repository"
	"github.com/danyunou/taco-platform/services"
	"github.com/danyunou/taco-platform/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, hub *ws.KitchenHub) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tableRepo := repository.NewTableRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	userSvc := services.NewUserService(userRepo)
	tableSvc := services.NewTableService(db, tableRepo)
	shiftSvc := services.NewShiftService(db, shiftRepo, userRepo)
	orderSvc := services.NewOrderService(db, orderRepo, tableRepo, shiftRepo, userRepo)
	menuSvc := services.NewMenuService(menuRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	userCtrl := controllers.NewUserController(userSvc)
	tableCtrl := controllers.NewTableController(tableSvc)
	shiftCtrl := controllers.NewShiftController(shiftSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, hub)
	menuCtrl := controllers.NewMenuController(menuSvc)

	secret := cfg.JWTSecret
	admin := middlewares.AuthMiddleware(secret, entity.RoleAdmin)
	front := middlewares.AuthMiddleware(secret, entity.RoleAdmin, entity.RoleMesera)
	staff := middlewares.AuthMiddleware(secret, entity.RoleAdmin, entity.RoleMesera, entity.RoleTaquero)

	// Auth (public)
	r.POST("/auth/login", authCtrl.Login)

	// Staff directory (admin panel)
	r.GET("/roles", admin, userCtrl.ListRoles)
	u := r.Group("/users", admin)
	{
		u.GET("", userCtrl.List)
		u.POST("", userCtrl.Create)
	}

	// Tables
	t := r.Group("/tables")
	{
		t.GET("", staff, tableCtrl.List)
		t.GET("/:id", staff, tableCtrl.Detail)
		t.POST("", admin, tableCtrl.Create)
		t.PATCH("/:id/status", front, tableCtrl.UpdateStatus)
	}

	// Menu catalog
	m := r.Group("/menu")
	{
		m.GET("/categories", staff, menuCtrl.ListCategories)
		m.POST("/categories", admin, menuCtrl.CreateCategory)
		m.PATCH("/categories/:id", admin, menuCtrl.UpdateCategory)
		m.DELETE("/categories/:id", admin, menuCtrl.DeleteCategory)

		m.GET("/items", staff, menuCtrl.ListItems)
		m.POST("/items", admin, menuCtrl.CreateItem)
		m.PATCH("/items/:id", admin, menuCtrl.UpdateItem)
		m.PATCH("/items/:id/toggle", admin, menuCtrl.ToggleItem)
	}

	// Orders (specific routes before /:id)
	o := r.Group("/orders")
	{
		o.GET("/kitchen/all", staff, orderCtrl.Kitchen)
		o.GET("/active", staff, orderCtrl.Active)
		o.GET("/by-table/:tableId/active", staff, orderCtrl.ActiveByTable)

		o.PATCH("/items/:itemId", front, orderCtrl.UpdateItem)
		o.DELETE("/items/:itemId", front, orderCtrl.DeleteItem)

		o.POST("", front, orderCtrl.Create)
		o.POST("/:id/items", front, orderCtrl.AddItem)
		o.GET("/:id", staff, orderCtrl.Detail)
		o.PATCH("/:id/status", staff, orderCtrl.UpdateStatus)
		o.PATCH("/:id/request-payment", front, orderCtrl.RequestPayment)
	}

	// Shifts (corte de caja)
	s := r.Group("/shifts")
	{
		s.POST("/open", front, shiftCtrl.Open)
		s.GET("/current", staff, shiftCtrl.Current)
		s.POST("/close", front, shiftCtrl.Close)
		s.GET("/history", admin, shiftCtrl.History)
		s.GET("/:id/summary", front, shiftCtrl.Summary)
	}

	// Kitchen display push channel
	r.GET("/ws/kitchen", staff, hub.Serve)
}
