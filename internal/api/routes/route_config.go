package routes

import (
	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	CategoryHandler   handlers.CategoryHandler
	RecipeHandler     handlers.RecipeHandler
	EngagementHandler handlers.EngagementHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Users()
	c.Categories()
	c.Recipes()
	c.Comments()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/refresh", c.UserHandler.Refresh)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
		auth.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		auth.Get("/verify", c.UserHandler.VerifyEmail)
	}
}

func (c *Config) Users() {
	users := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		users.Get("/me", c.UserHandler.Me)
		users.Patch("/me", c.UserHandler.UpdateUser)
		users.Get("/me/recipes", c.EngagementHandler.GetMyRecipes)
		users.Get("/me/favorites", c.EngagementHandler.GetMyFavorites)
	}
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories")
	{
		categories.Get("", c.CategoryHandler.GetCategories)
		categories.Get("/:id", c.CategoryHandler.GetCategoryDetail)
		categories.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware(), c.CategoryHandler.CreateCategory)
		categories.Put("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware(), c.CategoryHandler.UpdateCategory)
		categories.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware(), c.CategoryHandler.DeleteCategory)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")

	// Public reads resolve an identity when a token is present so the
	// viewer's drafts and is_favorited come back correct.
	recipes.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipeDetail)

	recipes.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.CreateRecipe)
	recipes.Patch("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)
	recipes.Post("/:id/image", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UploadRecipeImage)

	recipes.Post("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.EngagementHandler.FavoriteRecipe)
	recipes.Delete("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.EngagementHandler.UnfavoriteRecipe)
	recipes.Post("/:id/rate", c.Middleware.AuthMiddleware(c.JWTService), c.EngagementHandler.RateRecipe)
	recipes.Post("/:id/comments", c.Middleware.AuthMiddleware(c.JWTService), c.EngagementHandler.CommentRecipe)
}

func (c *Config) Comments() {
	comments := c.App.Group("/api/v1/comments", c.Middleware.AuthMiddleware(c.JWTService))
	{
		comments.Patch("/:id", c.EngagementHandler.UpdateComment)
		comments.Delete("/:id", c.EngagementHandler.DeleteComment)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware())
	{
		admin.Get("/users", c.UserHandler.GetUsers)
		admin.Get("/users/:id", c.UserHandler.GetUserDetail)
		admin.Patch("/users/:id", c.UserHandler.AdminUpdateUser)
		admin.Delete("/users/:id", c.UserHandler.DeleteUser)
		admin.Get("/recipes", c.RecipeHandler.GetAllRecipes)
		admin.Delete("/recipes/:id", c.RecipeHandler.AdminDeleteRecipe)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
