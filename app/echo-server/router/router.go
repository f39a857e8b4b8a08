package router

import (
	"github.com/Motasaith/Abdul-Shop-sub001/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired, adminOnly, selfOrAdmin echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/refresh", handler.RefreshToken)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, selfOrAdmin)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, selfOrAdmin)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired, vendorOrAdmin echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/mine", handler.GetMyProducts, authRequired, vendorOrAdmin)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired, vendorOrAdmin)
	products.PUT("/:id", handler.UpdateProduct, authRequired, vendorOrAdmin)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, vendorOrAdmin)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory, authRequired, adminOnly)
	categories.PUT("/:id", handler.UpdateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, adminOnly)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired, adminOnly, vendorOrAdmin echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.POST("", handler.CreateOrder)
	orders.GET("/mine", handler.GetMyOrders)
	orders.GET("/:id", handler.GetOrderByID)
	orders.PUT("/:id/status", handler.UpdateOrderStatus, vendorOrAdmin)
	orders.PUT("/:id/pay", handler.MarkOrderPaid, adminOnly)
}

func SetupVendorRoutes(api *echo.Group, vendorHandler *rest.VendorHandler, ordersHandler *rest.OrdersHandler, authRequired, vendorOrAdmin echo.MiddlewareFunc) {
	vendors := api.Group("/vendor", authRequired)

	vendors.POST("/apply", vendorHandler.Apply)
	vendors.PUT("/profile", vendorHandler.UpdateProfile, vendorOrAdmin)
	vendors.GET("/orders", ordersHandler.GetVendorOrders, vendorOrAdmin)
	vendors.GET("/analytics", vendorHandler.Analytics, vendorOrAdmin)
	vendors.POST("/payouts", vendorHandler.RequestPayout, vendorOrAdmin)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)

	admin.GET("/vendors", handler.GetVendors)
	admin.PUT("/vendors/:id/approve", handler.ApproveVendor)
	admin.PUT("/vendors/:id/reject", handler.RejectVendor)
	admin.PUT("/vendors/:id/ban", handler.BanVendor)
	admin.PUT("/vendors/:id/unban", handler.UnbanVendor)
	admin.PUT("/vendors/:id/commission", handler.SetCommissionRate)
}

func SetupCurrencyRoutes(api *echo.Group, handler *rest.CurrencyHandler) {
	currency := api.Group("/currency")

	currency.GET("/rates", handler.GetRates)
}
