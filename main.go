package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/controllers"
	"github.com/popaya/grocery-api/initializers"
	"github.com/popaya/grocery-api/routes"
	"github.com/popaya/grocery-api/services"
)

func main() {
	initializers.LoadEnv()

	db, err := initializers.ConnectToDB()
	if err != nil {
		log.Fatal(err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal("Database sync failed:", err)
	}
	if os.Getenv("SEED_DB") == "true" {
		if err := initializers.SeedDatabase(db); err != nil {
			log.Fatal("Database seed failed:", err)
		}
	}

	rbac := services.NewRBACService(db)
	carts := services.NewCartService(db)
	wishlists := services.NewWishlistService(db)
	orders := services.NewOrderService(db)
	payments := services.NewPaymentService(db, services.NewAuthorizeNetGateway())

	auth := controllers.NewAuthController(db)
	rbacCtrl := controllers.NewRBACController(rbac)
	category := controllers.NewCategoryController(db)
	product := controllers.NewProductController(db)
	cart := controllers.NewCartController(carts)
	wishlist := controllers.NewWishlistController(wishlists)
	order := controllers.NewOrderController(orders, rbac)
	payment := controllers.NewPaymentController(payments, rbac)

	server := gin.Default()

	allowOrigins := []string{"http://localhost:3000"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowOrigins = strings.Split(origins, ",")
	}
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, db, rbac, auth)
	routes.RBACRoutes(server, db, rbac, rbacCtrl)
	routes.CategoryRoutes(server, db, rbac, category)
	routes.ProductRoutes(server, db, rbac, product)
	routes.CartRoutes(server, db, cart)
	routes.WishlistRoutes(server, db, wishlist)
	routes.OrderRoutes(server, db, rbac, order)
	routes.PaymentRoutes(server, db, payment)

	server.Run()
}
