package routes

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"quote3d/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestServe_WaitsForInFlightRequests(t *testing.T) {
	router, materials := newTestRouter(t)

	started := make(chan struct{})
	release := make(chan struct{})
	materials.EXPECT().List(gomock.Any()).DoAndReturn(func(context.Context) ([]entities.Material, error) {
		close(started)
		<-release
		return []entities.Material{}, nil
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan error, 1)
	go func() {
		served <- serve(ctx, &http.Server{Handler: router}, ln)
	}()

	type result struct {
		status int
		err    error
	}
	responses := make(chan result, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/materials")
		if err != nil {
			responses <- result{err: err}
			return
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		responses <- result{status: resp.StatusCode}
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}

	cancel()

	select {
	case err := <-served:
		t.Fatalf("serve returned with a request in flight: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	close(release)

	select {
	case r := <-responses:
		require.NoError(t, r.err)
		assert.Equal(t, http.StatusOK, r.status)
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight request did not complete")
	}

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after shutdown")
	}
}

func TestServe_ReturnsWhenContextAlreadyCancelled(t *testing.T) {
	router, _ := newTestRouter(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	served := make(chan error, 1)
	go func() {
		served <- serve(ctx, &http.Server{Handler: router}, ln)
	}()

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
}
