// Package health exposes the standard gRPC health service and keeps its
// status in step with the inventory store.
package health

import (
	"context"
	"errors"
	"log"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the server-wide ""
const ServiceName = "perishables.Inventory"

// DefaultInterval is how often the store is pinged
const DefaultInterval = 10 * time.Second

// Pinger is anything that can report whether the store answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor pings the store periodically and publishes the result on a gRPC
// health server
type Monitor struct {
	pinger   Pinger
	server   *health.Server
	interval time.Duration

	mu     sync.Mutex
	status healthpb.HealthCheckResponse_ServingStatus
}

// NewMonitor creates a monitor. Status starts as NOT_SERVING until the
// first check passes.
func NewMonitor(pinger Pinger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	m := &Monitor{
		pinger:   pinger,
		server:   health.NewServer(),
		interval: interval,
		status:   healthpb.HealthCheckResponse_NOT_SERVING,
	}
	m.publish(m.status)
	return m
}

// Server returns the gRPC health server
func (m *Monitor) Server() *health.Server {
	return m.server
}

// Status returns the last published status
func (m *Monitor) Status() healthpb.HealthCheckResponse_ServingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Check pings the store once and publishes the outcome
func (m *Monitor) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := m.pinger.Ping(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		if m.Status() != status {
			log.Printf("Health: store unreachable: %v", err)
		}
	}

	m.mu.Lock()
	changed := m.status != status
	m.status = status
	m.mu.Unlock()

	if changed {
		log.Printf("Health: %s", status)
	}
	m.publish(status)
	return status
}

func (m *Monitor) publish(status healthpb.HealthCheckResponse_ServingStatus) {
	m.server.SetServingStatus("", status)
	m.server.SetServingStatus(ServiceName, status)
}

// Run checks immediately and then every interval until ctx is cancelled,
// after which every service reports NOT_SERVING
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			m.server.Shutdown()
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Serve runs a gRPC server carrying the health service on lis until ctx is
// cancelled
func Serve(ctx context.Context, lis net.Listener, m *Monitor) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, m.Server())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		srv.GracefulStop()
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

// ListenAndServe listens on addr and calls Serve
func ListenAndServe(ctx context.Context, addr string, m *Monitor) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("gRPC health listening on %s", lis.Addr())
	return Serve(ctx, lis, m)
}
