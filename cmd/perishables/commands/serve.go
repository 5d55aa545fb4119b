package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"perishables/internal/handler"
	"perishables/internal/health"
	"perishables/internal/hub"
	"perishables/internal/service"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		addr, grpcAddr string
		watch          bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and event stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("grpc-addr") {
				cfg.Server.GRPCAddr = grpcAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfgSource != "" {
				log.Printf("Config loaded from %s", cfgSource)
			}
			log.Printf("Starting perishables server\n%s", cfg.Summary())

			stats := openStatsCache(ctx)
			defer stats.Close()

			svc, closeStore, err := openService(ctx, service.WithStatsCache(stats))
			if err != nil {
				return err
			}
			defer closeStore()

			if watch && cfgSource != "" {
				go watchConfig(ctx, cfgSource, svc)
			}

			return serve(ctx, svc)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")
	cmd.Flags().StringVar(&grpcAddr, "grpc-addr", "", "gRPC health listen address, empty to disable (overrides server.grpc_addr)")
	cmd.Flags().BoolVar(&watch, "watch-config", true, "reload the config file when it changes")
	return cmd
}

// serve runs every listener until ctx is cancelled and then shuts them down
func serve(ctx context.Context, svc *service.InventoryService) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The event bus is owned by the service; the hub subscribes to it
	sseHub := hub.New()
	go sseHub.Run(ctx, svc.Events())

	mux := http.NewServeMux()
	handler.NewInventoryHandler(svc).Routes(mux)
	mux.Handle("GET /events", sseHub)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Chain(mux, handler.Recover, handler.RequestID, handler.CORS, handler.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	if cfg.Server.GRPCAddr != "" {
		monitor := health.NewMonitor(svc, health.DefaultInterval)
		go monitor.Run(ctx)
		go func() {
			if err := health.ListenAndServe(ctx, cfg.Server.GRPCAddr, monitor); err != nil {
				errCh <- err
			}
		}()
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Printf("Shutting down server, closing %d event streams...", sseHub.ClientCount())
	case runErr = <-errCh:
		log.Printf("Server error: %v", runErr)
	}
	// Stops the hub, which ends open event streams before Shutdown waits on them
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return runErr
}
