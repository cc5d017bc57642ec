package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/layout-sim/layout-sim/internal/server"
)

var serveAddr string

// serveCmd streams optimization runs over a websocket
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start runs over HTTP and stream their progress on /ws",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		flush := setupTracing()
		defer flush()

		srv := server.New()
		httpServer := &http.Server{
			Addr:              serveAddr,
			Handler:           srv.Router,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()

		logrus.Infof("layout-sim listening on %s", serveAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
		srv.Close()
		logrus.Info("Server stopped.")
	},
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", getEnv("LAYOUT_SIM_ADDR", ":8080"), "Listen address")
}
