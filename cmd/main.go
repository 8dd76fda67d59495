package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thinqkitchen/internal/config"
	"thinqkitchen/internal/handlers"
	"thinqkitchen/internal/logger"
	"thinqkitchen/internal/server"
	"thinqkitchen/internal/service"
	"thinqkitchen/internal/thinq"

	"github.com/spf13/viper"
)

const defaultVendorTimeout = 30 * time.Second

func main() {
	// load config.yml first so the log level is honored
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(logLevel())

	// wire dependencies
	store := config.NewFileStore(viper.GetString("thinq.env_path"))
	services := service.NewService(sessionFactory(log), log)
	apiHandler := handlers.NewHandler(services, store, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func logLevel() string {
	if level := viper.GetString("log.level"); level != "" {
		return level
	}
	return logger.InfoLevel
}

// sessionFactory opens one vendor API session per request. Sessions are
// short-lived on purpose: no state is cached across requests.
func sessionFactory(log *logger.Logger) service.SessionFactory {
	timeout := defaultVendorTimeout
	if seconds := viper.GetInt("thinq.timeout_seconds"); seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}
	return func(cfg config.Config) service.VendorSession {
		return thinq.NewSession(thinq.Credentials{
			AccessToken: cfg.AccessToken,
			ClientID:    cfg.ClientID,
			Country:     cfg.Country,
		}, timeout, log)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "5055"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
