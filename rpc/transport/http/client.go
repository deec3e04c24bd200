package http

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/serializer"
	"github.com/klind25/teller/rpc/transport"
	"github.com/klind25/teller/rpc/transport/base"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"
)

// NewHttpClientTransport creates a new HTTP client transport using the given
// payload serializer
func NewHttpClientTransport(s serializer.IRPCSerializer) transport.IRPCClientTransport {
	return &httpClientTransport{serializer: s}
}

type httpClientTransport struct {
	serializer serializer.IRPCSerializer
	serverURLs []*url.URL
	client     *http.Client
	counter    uint32
	retryCount int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	// Parse each server URL
	parsedURLs := make([]*url.URL, len(config.Endpoints))
	for i, server := range config.Endpoints {
		parsedURL, err := url.Parse(server)
		if err != nil {
			return err
		}
		parsedURLs[i] = parsedURL
	}

	timeout := time.Duration(config.TimeoutSecond) * time.Second

	// Create client with pooled connections
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     timeout,
		},
	}

	// Set the client and server URLs
	t.client = client
	t.serverURLs = parsedURLs
	t.counter = 0
	t.retryCount = config.RetryCount
	if t.retryCount < 1 {
		t.retryCount = 1
	}

	// No error
	return nil
}

func (t *httpClientTransport) Send(req *common.Request) (*common.Response, error) {
	// Check if the transport is initialized
	if t.client == nil {
		return nil, fmt.Errorf("http transport not initialized")
	}

	payload, err := t.serializer.SerializeRequest(*req)
	if err != nil {
		return nil, err
	}

	// Select the next server via round-robin
	idx := atomic.AddUint32(&t.counter, 1) % uint32(len(t.serverURLs))
	requestURL := t.serverURLs[idx].String() + "/rpc"

	// Send the request (with retries)
	var (
		body    []byte
		lastErr error
	)
	for i := 0; i < t.retryCount; i++ {
		if body, lastErr = t.post(requestURL, payload); lastErr == nil {
			break
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	var resp common.Response
	if err := t.serializer.DeserializeResponse(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (t *httpClientTransport) Close() error {
	// Close the client
	if t.client != nil {
		t.client.CloseIdleConnections()
	}

	// Reset the client and server URLs
	t.client = nil
	t.serverURLs = nil

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// post performs one HTTP exchange and returns the raw response body. A fresh
// request is built per attempt since a body reader cannot be replayed.
func (t *httpClientTransport) post(requestURL string, payload []byte) ([]byte, error) {
	httpRequest, err := http.NewRequest(http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	httpResponse, err := t.client.Do(httpRequest)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: %v", base.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", base.ErrTransport, err)
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	// Check if the response status code is OK
	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http error: %s", base.ErrTransport, httpResponse.Status)
	}

	// Read the response body
	return io.ReadAll(httpResponse.Body)
}
