package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/worklink-app/worklink_be/internal/assistant"
	"github.com/worklink-app/worklink_be/internal/config"
	"github.com/worklink-app/worklink_be/internal/db"
	"github.com/worklink-app/worklink_be/internal/handlers"
	"github.com/worklink-app/worklink_be/internal/middleware"
	"github.com/worklink-app/worklink_be/internal/models"
	"github.com/worklink-app/worklink_be/internal/realtime"
	"github.com/worklink-app/worklink_be/internal/store"
	syncview "github.com/worklink-app/worklink_be/internal/sync"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable, realtime sync cannot run:", err)
	}

	if err := gdb.AutoMigrate(&models.Job{}, &models.UserProfile{}); err != nil {
		log.Fatal(err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	st := store.New(gdb, rdb, cfg.ProjectID)
	board := syncview.NewBoard(hub)

	sub, err := st.SubscribeJobs(context.Background(), func(err error) {
		msg := syncview.ErrorMessage(err)
		log.Println("jobs subscription terminated:", msg)
		hub.BroadcastJSON(fiber.Map{"type": "sync_error", "message": msg})
	})
	if err != nil {
		log.Fatal("cannot subscribe to ", st.JobsPath(), ": ", syncview.ErrorMessage(err))
	}
	// The subscription lives for the whole process; Listen never returns.
	go board.Consume(sub)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://127.0.0.1:3000, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	authH := &handlers.AuthHandler{
		Store:     st,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	jobH := handlers.NewJobHandler(st, board)
	asstH := handlers.NewAssistantHandler(board, assistant.New(), cfg.JWTSecret)
	wsH := handlers.NewBoardWSHandler(hub, board)

	api := app.Group("/api")

	// public
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Post("/assistant/messages", asstH.Send)
	api.Get("/assistant/messages", asstH.History)

	// protected (JWT cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"id":   c.Locals("userId"),
				"role": c.Locals("role"),
			},
		})
	})

	protected.Get("/jobs", jobH.List)
	protected.Post("/jobs",
		middleware.RequireRoles("client"),
		jobH.Create,
	)
	protected.Patch("/jobs/:id/accept",
		middleware.RequireRoles("worker"),
		jobH.Accept,
	)
	protected.Patch("/jobs/:id/complete",
		middleware.RequireRoles("client"),
		jobH.Complete,
	)

	// WebSocket board stream (no JWT middleware, user_id via query param)
	app.Get("/ws/board", websocket.New(wsH.Handle))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
