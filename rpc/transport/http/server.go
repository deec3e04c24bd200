package http

import (
	"errors"
	"fmt"
	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/serializer"
	"github.com/klind25/teller/rpc/transport"
	"github.com/klind25/teller/rpc/transport/base"
	"github.com/lni/dragonboat/v4/logger"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

var Logger = logger.GetLogger("transport/rpc")

// NewHttpServerTransport creates a new HTTP server transport using the given
// payload serializer
func NewHttpServerTransport(s serializer.IRPCSerializer) transport.IRPCServerTransport {
	return &httpServerTransport{serializer: s}
}

type httpServerTransport struct {
	serializer serializer.IRPCSerializer
	handler    transport.ServerHandleFunc
	config     common.ServerConfig
	maxPayload uint64

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *httpServerTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *httpServerTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}

	t.config = config
	t.maxPayload = config.MaxPayloadBytes
	if t.maxPayload == 0 {
		t.maxPayload = base.DefaultMaxPayloadBytes
	}

	// Create a new HTTP server
	mux := http.NewServeMux()

	// Register handler
	if t.config.LogLevel == "debug" {
		mux.HandleFunc("POST /rpc", loggerMiddleware(t.handleRequest))
	} else {
		mux.HandleFunc("POST /rpc", t.handleRequest)
	}

	listener, err := net.Listen("tcp", t.config.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to create HTTP listener: %v", err)
	}

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	t.mu.Lock()
	t.listener = listener
	t.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	t.mu.Unlock()

	Logger.Infof("Starting HTTP server on %s", listener.Addr())

	if err := t.server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (t *httpServerTransport) Addr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *httpServerTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.server == nil {
		return nil
	}
	return t.server.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleRequest decodes one request from the HTTP body, dispatches it and
// writes the serialized response back
func (t *httpServerTransport) handleRequest(w http.ResponseWriter, r *http.Request) {
	// Read request body, bounded by the configured payload limit
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(t.maxPayload)))
	defer r.Body.Close()

	// Check if body could be read
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req common.Request
	if err := t.serializer.DeserializeRequest(body, &req); err != nil {
		http.Error(w, "Malformed request", http.StatusBadRequest)
		return
	}

	// Dispatch to the registered handler
	resp := t.handler(r.RemoteAddr, &req)

	payload, err := t.serializer.SerializeResponse(*resp)
	if err != nil {
		http.Error(w, "Failed to serialize response", http.StatusInternalServerError)
		return
	}

	// Write response
	if _, err = w.Write(payload); err != nil {
		Logger.Errorf("Failed to write response: %v", err)
	}
}

// --------------------------------------------------------------------------
// Middleware (logging)
// --------------------------------------------------------------------------

// responseWriter is a custom ResponseWriter that captures status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing it
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggerMiddleware is a middleware that logs HTTP requests
func loggerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create custom response writer to capture status code
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		// Process request
		next.ServeHTTP(rw, r)

		// Log the request
		duration := time.Since(start)
		Logger.Debugf("%s %s => %d took %s", r.Method, r.URL.Path, rw.statusCode, duration)
	}
}
