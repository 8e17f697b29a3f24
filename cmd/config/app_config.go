package config

import (
	"os"
	"time"

	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/api/routes"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/category"
	"Recipe-Share-Backend/pkg/engagement"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/recipe"
	"Recipe-Share-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	engagementRepository := engagement.NewEngagementRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	categoryService := category.NewCategoryService(categoryRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, s3)
	engagementService := engagement.NewEngagementService(engagementRepository, recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	engagementHandler := handlers.NewEngagementHandler(engagementService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		CategoryHandler:   categoryHandler,
		RecipeHandler:     recipeHandler,
		EngagementHandler: engagementHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
