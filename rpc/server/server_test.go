package server

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/serializer"
	"github.com/klind25/teller/rpc/transport"
	"github.com/klind25/teller/rpc/transport/tcp"
	"github.com/shopspring/decimal"
)

// startServer boots a full server on an ephemeral TCP port and returns its
// address once the listener is up
func startServer(t *testing.T) string {
	t.Helper()

	srv := NewRPCServer(
		common.ServerConfig{
			Endpoint:      "127.0.0.1:0",
			TimeoutSecond: 5,
			DataDir:       t.TempDir(),
			LogLevel:      "error",
		},
		tcp.NewTCPServerTransport(serializer.NewTextSerializer()),
	)

	go func() {
		if err := srv.Serve(); err != nil {
			t.Errorf("Serve failed: %v", err)
		}
	}()
	t.Cleanup(func() { _ = srv.Close() })

	for i := 0; i < 100; i++ {
		if addr := srv.Addr(); addr != nil {
			return addr.String()
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Server did not start listening in time")
	return ""
}

// connectClient dials the server with the production TCP client transport
func connectClient(t *testing.T, addr string) transport.IRPCClientTransport {
	t.Helper()

	client := tcp.NewTCPClientTransport(serializer.NewTextSerializer())
	err := client.Connect(common.ClientConfig{
		Endpoints:     []string{addr},
		TimeoutSecond: 5,
		RetryCount:    2,
	})
	if err != nil {
		t.Fatalf("Failed to connect client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// send performs one exchange and fails the test on transport errors
func send(t *testing.T, client transport.IRPCClientTransport, req *common.Request) *common.Response {
	t.Helper()
	resp, err := client.Send(req)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	return resp
}

// TestAccountOperations runs the full deposit / withdraw / balance cycle
// against a live server
func TestAccountOperations(t *testing.T) {
	addr := startServer(t)
	client := connectClient(t, addr)

	// First deposit opens the account
	resp := send(t, client, common.NewDepositRequest(42, decimal.RequireFromString("100.50")))
	if !resp.Success {
		t.Fatalf("Deposit failed: %s", resp.Message)
	}
	if !resp.Balance.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("Expected balance 100.50, got %s", resp.Balance)
	}
	if resp.Message != "OK" {
		t.Errorf("Expected message OK, got %q", resp.Message)
	}

	// Second deposit accumulates
	resp = send(t, client, common.NewDepositRequest(42, decimal.RequireFromString("0.25")))
	if !resp.Success || !resp.Balance.Equal(decimal.RequireFromString("100.75")) {
		t.Errorf("Expected balance 100.75, got %s (success %v)", resp.Balance, resp.Success)
	}

	// Withdrawal
	resp = send(t, client, common.NewWithdrawRequest(42, decimal.RequireFromString("40.25")))
	if !resp.Success || !resp.Balance.Equal(decimal.RequireFromString("60.50")) {
		t.Errorf("Expected balance 60.50, got %s (success %v)", resp.Balance, resp.Success)
	}

	// Balance query
	resp = send(t, client, common.NewBalanceRequest(42))
	if !resp.Success || !resp.Balance.Equal(decimal.RequireFromString("60.50")) {
		t.Errorf("Expected balance 60.50, got %s (success %v)", resp.Balance, resp.Success)
	}
}

// TestErrorResponses checks that domain failures come back as failure
// responses with a reason, not as closed connections
func TestErrorResponses(t *testing.T) {
	addr := startServer(t)
	client := connectClient(t, addr)

	cases := map[string]struct {
		req     *common.Request
		wantMsg string
	}{
		"BalanceUnknownAccount":  {common.NewBalanceRequest(999), "does not exist"},
		"WithdrawUnknownAccount": {common.NewWithdrawRequest(999, decimal.RequireFromString("1.00")), "does not exist"},
		"DepositNegative":        {common.NewDepositRequest(1, decimal.RequireFromString("-5.00")), "must be positive"},
		"DownloadMissingFile":    {common.NewDownloadRequest(1, "missing.txt"), "no file"},
		"UploadBadName":          {common.NewUploadRequest(1, "../escape.txt", "data"), "path separators"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := send(t, client, tc.req)
			if resp.Success {
				t.Fatalf("Expected failure response, got success: %+v", resp)
			}
			if !strings.Contains(resp.Message, tc.wantMsg) {
				t.Errorf("Expected message containing %q, got %q", tc.wantMsg, resp.Message)
			}
		})
	}

	// Overdraft needs an existing account
	if resp := send(t, client, common.NewDepositRequest(5, decimal.RequireFromString("10.00"))); !resp.Success {
		t.Fatalf("Deposit failed: %s", resp.Message)
	}
	resp := send(t, client, common.NewWithdrawRequest(5, decimal.RequireFromString("20.00")))
	if resp.Success {
		t.Fatal("Expected overdraft to fail")
	}
	if !strings.Contains(resp.Message, "less than") {
		t.Errorf("Expected insufficient funds message, got %q", resp.Message)
	}
}

// TestFileTransfer uploads a file and downloads it back
func TestFileTransfer(t *testing.T) {
	addr := startServer(t)
	client := connectClient(t, addr)

	content := "The quick brown fox jumps over the lazy dog"
	resp := send(t, client, common.NewUploadRequest(7, "notes.txt", content))
	if !resp.Success {
		t.Fatalf("Upload failed: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "notes.txt") {
		t.Errorf("Expected acknowledgement naming the file, got %q", resp.Message)
	}

	resp = send(t, client, common.NewDownloadRequest(7, "notes.txt"))
	if !resp.Success {
		t.Fatalf("Download failed: %s", resp.Message)
	}
	if resp.Data != content {
		t.Errorf("Downloaded content mismatch: got %q, want %q", resp.Data, content)
	}

	// Files are namespaced per account
	resp = send(t, client, common.NewDownloadRequest(8, "notes.txt"))
	if resp.Success {
		t.Error("Expected download under another account to fail")
	}
}

// TestUnsupportedRequestType checks that a well-formed request with an
// out-of-range type is answered, not dropped
func TestUnsupportedRequestType(t *testing.T) {
	addr := startServer(t)
	client := connectClient(t, addr)

	resp := send(t, client, &common.Request{Type: common.RequestType(99)})
	if resp.Success {
		t.Fatal("Expected failure response for unsupported type")
	}
	if !strings.Contains(resp.Message, "Unsupported request type") {
		t.Errorf("Expected unsupported type message, got %q", resp.Message)
	}
}

// TestQuitEndsSession checks the session teardown and that the service stays
// available for later connections
func TestQuitEndsSession(t *testing.T) {
	addr := startServer(t)
	client := connectClient(t, addr)

	resp := send(t, client, common.NewQuitRequest())
	if !resp.Success || resp.Message != "goodbye" {
		t.Fatalf("Expected goodbye, got: %+v", resp)
	}

	// The server closed that connection; the transport reconnects and the
	// service keeps working
	resp = send(t, client, common.NewDepositRequest(1, decimal.RequireFromString("1.00")))
	if !resp.Success {
		t.Fatalf("Deposit after quit failed: %s", resp.Message)
	}
}

// TestConcurrentSessions verifies exact bookkeeping under parallel load from
// several pooled connections
func TestConcurrentSessions(t *testing.T) {
	addr := startServer(t)

	client := tcp.NewTCPClientTransport(serializer.NewTextSerializer())
	err := client.Connect(common.ClientConfig{
		Endpoints:              []string{addr},
		TimeoutSecond:          5,
		RetryCount:             1,
		ConnectionsPerEndpoint: 4,
	})
	if err != nil {
		t.Fatalf("Failed to connect client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	const (
		goroutines = 8
		deposits   = 50
	)
	amount := decimal.RequireFromString("0.10")

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < deposits; i++ {
				resp, err := client.Send(common.NewDepositRequest(77, amount))
				if err != nil {
					t.Errorf("Deposit failed: %v", err)
					return
				}
				if !resp.Success {
					t.Errorf("Deposit rejected: %s", resp.Message)
					return
				}
			}
		}()
	}
	wg.Wait()

	want := amount.Mul(decimal.NewFromInt(goroutines * deposits))
	resp := send(t, client, common.NewBalanceRequest(77))
	if !resp.Success || !resp.Balance.Equal(want) {
		t.Errorf("Expected balance %s, got %s (success %v)", want, resp.Balance, resp.Success)
	}
}
