package server

import (
	"fmt"
	"github.com/VictoriaMetrics/metrics"
	"github.com/klind25/teller/lib/filestore"
	"github.com/klind25/teller/lib/ledger"
	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "net/http/pprof"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new RPC server
// It takes a config and a transport as parameters (the wire serializer is
// part of the transport)
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		tcp.NewTCPServerTransport(serializer.NewTextSerializer()),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	 }
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
) rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	// Create the RPC server
	return rpcServer{
		config:    config,
		transport: transport,
	}
}

type rpcServer struct {
	config    common.ServerConfig
	transport transport.IRPCServerTransport
	adapter   IRPCServerAdapter
}

// registerTransportHandler wires the adapter into the transport and wraps
// every request with operation metrics
func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(peer string, req *common.Request) *common.Response {
		start := time.Now()

		// Let the adapter handle the request
		resp := s.adapter.Handle(peer, req)

		// Track request count, failures and latency per operation
		name := req.Type.String()
		metrics.GetOrCreateCounter(fmt.Sprintf(`teller_requests_total{type=%q}`, name)).Inc()
		if !resp.Success {
			metrics.GetOrCreateCounter(fmt.Sprintf(`teller_requests_failed_total{type=%q}`, name)).Inc()
		}
		metrics.GetOrCreateSummary(fmt.Sprintf(`teller_request_duration_seconds{type=%q}`, name)).UpdateDuration(start)

		// Return result
		return resp
	})
}

func (s *rpcServer) init() error {

	// Init logger
	if s.config.LogLevel == "" {
		s.config.LogLevel = "info"
	}
	common.InitLoggers(s.config)

	// Create the account ledger
	accounts := ledger.NewLedger()

	// Create the file store for uploads
	dataDir := s.config.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	files, err := filestore.NewFileStore(dataDir)
	if err != nil {
		return fmt.Errorf("failed to create file store: %w", err)
	}

	s.adapter = NewBankServerAdapter(accounts, files)

	Logger.Infof("teller setup completed successfully")

	// Configure the transport layer
	s.registerTransportHandler()

	// Expose metrics if configured
	s.startMetricsServer()

	return nil
}

// startMetricsServer serves Prometheus metrics (plus pprof) on a separate
// endpoint when one is configured
func (s *rpcServer) startMetricsServer() {
	if s.config.MetricsEndpoint == "" {
		return
	}

	http.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	go func() {
		Logger.Infof("Starting metrics server on %s", s.config.MetricsEndpoint)
		if err := http.ListenAndServe(s.config.MetricsEndpoint, nil); err != nil {
			Logger.Errorf("Metrics server failed: %v", err)
		}
	}()
}

// Serve starts the RPC server
// This function will also initialize the ledger and the file store and start
// the transport layer
func (s *rpcServer) Serve() error {
	err := s.init()
	if err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

// Addr returns the address the transport is listening on (nil before Serve)
func (s *rpcServer) Addr() net.Addr {
	return s.transport.Addr()
}

// Close stops the transport listener
func (s *rpcServer) Close() error {
	return s.transport.Close()
}
