package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"socialChat/internal/handlers"
	"socialChat/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx                    context.Context
	address                string
	jwtSecret              []byte
	router                 *gin.Engine
	registry               *realtime.Registry
	restHandler            *handlers.RestHandler
	socketChatHandler      *handlers.SocketChatHandler
	socketObservingHandler *handlers.SocketUserObservingHandler
	logger                 *zerolog.Logger
}

func NewHttpServer(
	ctx context.Context,
	address string,
	jwtSecret []byte,
	registry *realtime.Registry,
	restHandler *handlers.RestHandler,
	socketChatHandler *handlers.SocketChatHandler,
	socketObservingHandler *handlers.SocketUserObservingHandler,
	logger *zerolog.Logger,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:                    ctx,
			address:                address,
			jwtSecret:              jwtSecret,
			registry:               registry,
			restHandler:            restHandler,
			socketChatHandler:      socketChatHandler,
			socketObservingHandler: socketObservingHandler,
			logger:                 logger,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.initializeGin()
	hs.setupRestfulRoutes()
	hs.setupWebSocketRoutes()

	server := hs.startServer()

	hs.waitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	hs.router = gin.Default()
}

func (hs *HttpServer) setupRestfulRoutes() {
	authorized := hs.router.Group("/", handlers.MustAuthenticateMiddleware(hs.jwtSecret))

	authorized.GET("/profile", hs.restHandler.GetProfile)
	authorized.GET("/users", hs.restHandler.GetAllUsersWithPagination)
	authorized.GET("/users/:id", hs.restHandler.GetSingleUser)

	authorized.GET("/conversations", hs.restHandler.GetUserConversations)
	authorized.GET("/messages/:userId", hs.restHandler.GetConversationMessages)
	authorized.POST("/messages", hs.restHandler.SendMessage)
	authorized.POST("/messages/assistant", hs.restHandler.SendAssistantMessage)
	authorized.PUT("/messages/seen/:userId", hs.restHandler.SeenMessages)
	authorized.DELETE("/messages/:id", hs.restHandler.DeleteMessage)
}

func (hs *HttpServer) setupWebSocketRoutes() {
	hs.router.GET("/ws/chat", hs.socketChatHandler.HandleSocketChatRoute)
	hs.router.GET("/ws/observe", hs.socketObservingHandler.HandleSocketUserObservingRoute)
}

func (hs *HttpServer) startServer() *http.Server {
	server := &http.Server{
		Addr:    hs.address,
		Handler: hs.router,
	}

	go func() {
		hs.logger.Info().Str("address", hs.address).Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hs.logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	hs.logger.Info().Msg("Shutting down server...")

	if err := server.Shutdown(hs.ctx); err != nil {
		hs.logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close all live socket connections
	hs.registry.CloseAll()

	hs.logger.Info().Msg("Server exiting")
}
