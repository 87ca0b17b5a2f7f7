package app

import (
	"context"
	"sync"

	"socialChat/configs"
	"socialChat/internal/handlers"
	"socialChat/internal/logger"
	"socialChat/internal/realtime"
	"socialChat/internal/repositories"
	"socialChat/internal/servers/database"
	"socialChat/internal/servers/http"
	"socialChat/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	ctx     context.Context
	redis   *redis.Client
	configs *configs.Config
	logger  *zerolog.Logger
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.configs = configs.GetConfig()
	app.logger = logger.New(app.configs.Viper.GetString("log.level"))
	app.initializeRedis()

	db := database.GetDB(app.configs)
	chatRepo := repositories.NewChatRepository(db)
	userRepo := repositories.NewUserRepository(db)

	registry := realtime.NewRegistry()
	router := realtime.NewRouter(registry, app.logger)
	bus := realtime.NewBus(app.redis, app.logger)
	router.AttachBus(bus)
	go bus.Run(app.ctx, router.DeliverLocal)

	assistantService := services.NewAssistantService(app.configs)
	assistantId := uint(app.configs.Viper.GetUint64("assistant.user_id"))
	chatService := services.NewChatService(chatRepo, userRepo, assistantService, router, assistantId, app.logger)
	userService := services.NewUserService(userRepo)

	jwtSecret := []byte(app.configs.Viper.GetString("jwt.secret"))

	restHandler := handlers.NewRestHandler(chatService, userService)
	socketChatHandler := handlers.NewSocketChatHandler(app.ctx, registry, chatService, jwtSecret, app.logger)
	socketObservingHandler := handlers.NewSocketUserObservingHandler(app.ctx, app.redis, userService, jwtSecret, app.logger)

	http.NewHttpServer(
		app.ctx,
		app.configs.Viper.GetString("server.address"),
		jwtSecret,
		registry,
		restHandler,
		socketChatHandler,
		socketObservingHandler,
		app.logger,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr: app.configs.Viper.GetString("redis.address"),
	})
}
