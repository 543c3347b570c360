package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"organicroots/config"
	"organicroots/controllers"
	"organicroots/middleware"
	"organicroots/models"
)

func SetupRoutes(router *gin.Engine) {
	authCtrl := &controllers.AuthController{}
	profileCtrl := &controllers.ProfileController{}
	listCtrl := &controllers.ListController{}
	categoryCtrl := &controllers.CategoryController{}
	productCtrl := &controllers.ProductController{}
	collectionCtrl := &controllers.CollectionController{}
	flashSaleCtrl := &controllers.FlashSaleController{}
	offerCtrl := &controllers.OfferController{}
	userCtrl := &controllers.UserController{}
	assetCtrl := &controllers.AssetController{}
	homeCtrl := &controllers.HomeController{}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		api.POST("/auth/register", authCtrl.Register)
		api.POST("/auth/login", authCtrl.Login)
		api.POST("/auth/logout", authCtrl.Logout)
		api.GET("/auth/me", authCtrl.Me)

		api.GET("/categories", categoryCtrl.GetCategories)
		api.GET("/products", productCtrl.GetProducts)
		api.GET("/collections", collectionCtrl.GetCollections)
		api.GET("/flash-sale", flashSaleCtrl.GetActiveFlashSale)
		api.GET("/offers", offerCtrl.GetActiveOffers)
		api.POST("/offers/evaluate", offerCtrl.EvaluateCart)
		api.GET("/home-content", homeCtrl.GetHomeContent)
		api.GET("/hero-slider", assetCtrl.GetHeroSlider)
		api.GET("/site-assets", assetCtrl.GetSiteAssets)
	}

	user := router.Group("/api")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/list", listCtrl.GetList)
		user.POST("/list", listCtrl.AddListItem)
		user.GET("/profile", profileCtrl.GetProfile)
		user.PATCH("/profile", profileCtrl.UpdateProfile)
	}

	// Catalog and site surfaces are admin-only; team, collection, flash-sale
	// and offer management also admit the super admin.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/categories", categoryCtrl.GetAdminCategories)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PUT("/categories/:id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

		admin.GET("/products", productCtrl.GetAdminProducts)
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PUT("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.GET("/hero-slider", assetCtrl.GetHeroSlider)
		admin.POST("/hero-slider", assetCtrl.UploadHeroImages)
		admin.GET("/site-assets", assetCtrl.GetSiteAssets)
		admin.GET("/user-content/:key", assetCtrl.GetUserContent)
		admin.POST("/user-content/:key", assetCtrl.UploadUserContent)
	}

	elevated := router.Group("/api/admin")
	elevated.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	{
		elevated.GET("/collections", collectionCtrl.GetAdminCollections)
		elevated.POST("/collections", collectionCtrl.CreateCollection)
		elevated.PUT("/collections/:id", collectionCtrl.UpdateCollection)
		elevated.DELETE("/collections/:id", collectionCtrl.DeleteCollection)

		elevated.GET("/flash-sales", flashSaleCtrl.GetAdminFlashSales)
		elevated.POST("/flash-sales", flashSaleCtrl.CreateFlashSale)
		elevated.PUT("/flash-sales/:id", flashSaleCtrl.UpdateFlashSale)
		elevated.DELETE("/flash-sales/:id", flashSaleCtrl.DeleteFlashSale)

		elevated.GET("/offers", offerCtrl.GetAdminOffers)
		elevated.POST("/offers", offerCtrl.CreateOffer)
		elevated.PUT("/offers/:id", offerCtrl.UpdateOffer)
		elevated.DELETE("/offers/:id", offerCtrl.DeleteOffer)

		elevated.GET("/users", userCtrl.GetAllUsers)
		elevated.POST("/users", userCtrl.CreateUser)
		elevated.PUT("/users/:id", userCtrl.UpdateUser)
		elevated.DELETE("/users/:id", userCtrl.DeleteUser)

		elevated.GET("/all-site-content", assetCtrl.GetSiteContent)
	}

	router.Static("/upload", config.AppConfig.UploadDir)
}
