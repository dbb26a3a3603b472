// Package servecmder provides the serve command for running the streaming server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/spool/pkg/config"
	"github.com/papercomputeco/spool/pkg/logger"
	"github.com/papercomputeco/spool/server"
)

type ServeCommander struct {
	listen     string
	configPath string
	debug      bool
	logger     *zap.Logger
}

const serveLongDesc string = `Run the spool streaming server.

The server exposes the SSE and NDJSON simulation endpoints:
  GET /v1/events    Server-Sent Events stream
  GET /v1/chunks    Newline-delimited JSON stream
  GET /ping         Health check`

const serveShortDesc string = "Run the streaming server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run(cmd.Flags().Changed("listen"))
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address to listen on (overrides config)")
	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Directory containing config.yaml")

	return cmd
}

func (c *ServeCommander) run(listenFlagSet bool) error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	v, err := config.InitViper(c.configPath)
	if err != nil {
		return err
	}
	if listenFlagSet {
		v.Set("server.listen", c.listen)
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	srv := server.NewServer(server.Config{
		ListenAddr: cfg.Server.Listen,
		Demo:       cfg.Demo,
	}, c.logger)

	c.logger.Info("starting spool server",
		zap.String("listen", cfg.Server.Listen),
		zap.Int("demo_count", cfg.Demo.Count),
		zap.Int("demo_delay_ms", cfg.Demo.DelayMS),
	)

	// Channel to capture errors from the server goroutine
	errChan := make(chan error, 1)

	go func() {
		if err := srv.Run(); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return srv.Shutdown()
	}
}
