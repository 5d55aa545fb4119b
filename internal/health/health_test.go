package health

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// fakePinger fails while down is set
type fakePinger struct {
	down atomic.Bool
}

func (p *fakePinger) Ping(context.Context) error {
	if p.down.Load() {
		return errors.New("store unreachable")
	}
	return nil
}

func checkStatus(t *testing.T, m *Monitor, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := m.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestMonitor_Check(t *testing.T) {
	ctx := context.Background()
	pinger := &fakePinger{}
	m := NewMonitor(pinger, time.Hour)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, m, ServiceName))

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, m.Check(ctx))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, m, ServiceName))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, m, ""))

	pinger.down.Store(true)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, m.Check(ctx))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, m, ServiceName))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, m.Status())
}

func TestMonitor_RunShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewMonitor(&fakePinger{}, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return m.Status() == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, m, ServiceName))
}

func TestServe_OverGRPC(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMonitor(&fakePinger{}, time.Hour)
	m.Check(ctx)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- Serve(ctx, lis, m) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(ctx, 5*time.Second)
	defer callCancel()
	resp, err := healthpb.NewHealthClient(conn).Check(callCtx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
