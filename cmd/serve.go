package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happydash/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		world, err := loadWorld()
		if err != nil {
			return err
		}
		addr := cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := server.New(server.Config{
			Table:    t,
			World:    world,
			Defaults: initialState(t),
			PNG:      pngOptions(),
			Log:      log,
		})
		httpSrv := &http.Server{
			Addr:              addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.WithFields(logrus.Fields{"addr": addr, "records": t.Len()}).Info("dashboard listening")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			log.WithField("signal", sig.String()).Info("shutdown signal received")
		case err, ok := <-errCh:
			if ok {
				return errors.Wrap(err, "http server")
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Hub().CloseAll()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "http shutdown")
		}
		log.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8050", "listen address (overrides config)")
}
