/*
Package cmd - Watch

The watch server subscribes to the roster event channel on Redis and
relays every payload to WebSocket clients connected on /ws.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ldamasio/roster/internal/events"
	"github.com/ldamasio/roster/internal/feed"
	"github.com/ldamasio/roster/internal/logger"
)

const shutdownTimeout = 5 * time.Second

var wsPort string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Relay roster events to WebSocket clients",
	Long: `Start a WebSocket server that relays roster events from Redis Pub/Sub.

Every shell or demo run with a Redis URL publishes its changes; connect to
ws://localhost:<port>/ws to receive them as JSON text frames.

Examples:
  roster watch --redis redis://localhost:6379/0
  ROSTER_REDIS_URL=redis://localhost:6379/0 roster watch --port 9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, nil)
	},
}

func init() {
	watchCmd.Flags().StringVar(&wsPort, "port", "", "WebSocket server port (also ROSTER_WS_PORT, default 8080)")
}

// runWatch serves until ctx is done. ready, when non-nil, receives the
// listening address once the server accepts connections.
func runWatch(ctx context.Context, ready chan<- string) error {
	if !cfg.EventsEnabled() {
		return errors.New("watch needs a Redis URL (--redis or ROSTER_REDIS_URL)")
	}

	client, err := events.Dial(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to event channel: %w", err)
	}
	defer client.Close()

	hub := feed.NewHub(log)
	go hub.Run(ctx)

	relayErr := make(chan error, 1)
	go func() {
		relayErr <- events.Relay(ctx, client, cfg.Channel, func(payload []byte) {
			hub.Broadcast(ctx, payload)
		})
	}()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := client.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok\n"))
	})

	listener, err := net.Listen("tcp", ":"+cfg.WSPort)
	if err != nil {
		return fmt.Errorf("listen on :%s: %w", cfg.WSPort, err)
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	log.Info("watch server started",
		logger.String("addr", listener.Addr().String()),
		logger.String("channel", cfg.Channel),
	)
	if ready != nil {
		ready <- listener.Addr().String()
	}

	select {
	case <-ctx.Done():
	case err := <-relayErr:
		if err != nil {
			_ = srv.Close()
			return err
		}
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("watch server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown watch server: %w", err)
	}
	log.Info("watch server stopped")
	return nil
}
