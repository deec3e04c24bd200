package client

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/serializer"
	"github.com/klind25/teller/rpc/server"
	"github.com/klind25/teller/rpc/transport/tcp"
	"github.com/shopspring/decimal"
)

// fakeTransport is an in-memory client transport. It records the last
// request and answers with a canned response or error.
type fakeTransport struct {
	connectErr error
	sendErr    error
	resp       *common.Response

	lastReq *common.Request
	closed  bool
}

func (f *fakeTransport) Connect(config common.ClientConfig) error {
	return f.connectErr
}

func (f *fakeTransport) Send(req *common.Request) (*common.Response, error) {
	f.lastReq = req
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.resp, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

// newFakeBankClient wires a bank client to a fake transport
func newFakeBankClient(t *testing.T, ft *fakeTransport) IBankClient {
	t.Helper()
	bank, err := NewRPCBankClient(common.ClientConfig{}, ft)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return bank
}

func TestInvokeRPCRequestFailureResponse(t *testing.T) {
	ft := &fakeTransport{resp: common.NewErrorResponse("account 7 does not exist")}

	resp, err := invokeRPCRequest(common.NewBalanceRequest(7), ft)
	if err == nil {
		t.Fatal("Expected an error for a failure response, got nil")
	}
	if resp != nil {
		t.Errorf("Expected nil response on error, got %v", resp)
	}
	if !strings.Contains(err.Error(), "account 7 does not exist") {
		t.Errorf("Expected error to carry the server message, got %q", err.Error())
	}
}

func TestInvokeRPCRequestTransportError(t *testing.T) {
	errDown := errors.New("transport down")
	ft := &fakeTransport{sendErr: errDown}

	_, err := invokeRPCRequest(common.NewBalanceRequest(7), ft)
	if !errors.Is(err, errDown) {
		t.Errorf("Expected the transport error to pass through, got %v", err)
	}
}

func TestNewRPCBankClientConnectError(t *testing.T) {
	ft := &fakeTransport{connectErr: errors.New("no route to host")}

	bank, err := NewRPCBankClient(common.ClientConfig{}, ft)
	if err == nil {
		t.Fatal("Expected an error when the transport cannot connect, got nil")
	}
	if bank != nil {
		t.Errorf("Expected nil client on connect error, got %v", bank)
	}
}

// TestBankClientSendsTypedRequests checks that every client method maps to
// the matching request type on the wire
func TestBankClientSendsTypedRequests(t *testing.T) {
	amount := decimal.RequireFromString("100.50")

	tests := map[string]struct {
		resp     *common.Response
		call     func(bank IBankClient) error
		wantType common.RequestType
	}{
		"Deposit": {
			resp:     common.NewBalanceResponse(amount),
			call:     func(bank IBankClient) error { _, err := bank.Deposit(42, amount); return err },
			wantType: common.ReqDeposit,
		},
		"Withdraw": {
			resp:     common.NewBalanceResponse(amount),
			call:     func(bank IBankClient) error { _, err := bank.Withdraw(42, amount); return err },
			wantType: common.ReqWithdraw,
		},
		"Balance": {
			resp:     common.NewBalanceResponse(amount),
			call:     func(bank IBankClient) error { _, err := bank.Balance(42); return err },
			wantType: common.ReqBalance,
		},
		"Upload": {
			resp:     common.NewAckResponse("stored notes.txt"),
			call:     func(bank IBankClient) error { return bank.Save(42, "notes.txt", []byte("hello")) },
			wantType: common.ReqUpload,
		},
		"Download": {
			resp:     common.NewFileResponse("hello"),
			call:     func(bank IBankClient) error { _, err := bank.Load(42, "notes.txt"); return err },
			wantType: common.ReqDownload,
		},
		"Quit": {
			resp:     common.NewAckResponse("goodbye"),
			call:     func(bank IBankClient) error { return bank.Quit() },
			wantType: common.ReqQuit,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ft := &fakeTransport{resp: test.resp}
			bank := newFakeBankClient(t, ft)

			if err := test.call(bank); err != nil {
				t.Fatalf("Call failed: %v", err)
			}
			if ft.lastReq == nil {
				t.Fatal("Expected a request to be sent, got none")
			}
			if ft.lastReq.Type != test.wantType {
				t.Errorf("Expected request type %s, got %s", test.wantType, ft.lastReq.Type)
			}
			if ft.lastReq.UserID != 42 {
				t.Errorf("Expected account id 42, got %d", ft.lastReq.UserID)
			}
		})
	}
}

func TestBankClientReturnsServerBalance(t *testing.T) {
	want := decimal.RequireFromString("500.25")
	ft := &fakeTransport{resp: common.NewBalanceResponse(want)}
	bank := newFakeBankClient(t, ft)

	got, err := bank.Deposit(42, decimal.RequireFromString("100.50"))
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Expected balance %s, got %s", want, got)
	}
}

func TestBankClientClose(t *testing.T) {
	ft := &fakeTransport{resp: common.NewAckResponse("goodbye")}
	bank := newFakeBankClient(t, ft)

	if err := bank.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !ft.closed {
		t.Error("Expected Close to close the transport")
	}
}

// --------------------------------------------------------------------------
// End-to-end tests against a live server
// --------------------------------------------------------------------------

// startBankServer boots a full server on an ephemeral TCP port and returns
// its address once the listener is up
func startBankServer(t *testing.T) string {
	t.Helper()

	srv := server.NewRPCServer(
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

// newBankClient connects a bank client over the production TCP transport
func newBankClient(t *testing.T, addr string) IBankClient {
	t.Helper()

	bank, err := NewRPCBankClient(
		common.ClientConfig{
			Endpoints:     []string{addr},
			TimeoutSecond: 5,
			RetryCount:    2,
		},
		tcp.NewTCPClientTransport(serializer.NewTextSerializer()),
	)
	if err != nil {
		t.Fatalf("Failed to create bank client: %v", err)
	}
	t.Cleanup(func() { _ = bank.Close() })
	return bank
}

func TestBankClientAccountCycle(t *testing.T) {
	addr := startBankServer(t)
	bank := newBankClient(t, addr)

	balance, err := bank.Deposit(7, decimal.RequireFromString("100.50"))
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("Expected balance 100.50, got %s", balance)
	}

	balance, err = bank.Withdraw(7, decimal.RequireFromString("40.25"))
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("60.25")) {
		t.Errorf("Expected balance 60.25, got %s", balance)
	}

	balance, err = bank.Balance(7)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("60.25")) {
		t.Errorf("Expected balance 60.25, got %s", balance)
	}
}

func TestBankClientServerErrors(t *testing.T) {
	addr := startBankServer(t)
	bank := newBankClient(t, addr)

	tests := map[string]struct {
		call    func() error
		wantMsg string
	}{
		"UnknownAccount": {
			call:    func() error { _, err := bank.Balance(999); return err },
			wantMsg: "does not exist",
		},
		"NegativeDeposit": {
			call:    func() error { _, err := bank.Deposit(7, decimal.RequireFromString("-1")); return err },
			wantMsg: "must be positive",
		},
		"MissingFile": {
			call:    func() error { _, err := bank.Load(7, "nothing.txt"); return err },
			wantMsg: "no file",
		},
		"BadFileName": {
			call:    func() error { return bank.Save(7, "../escape.txt", []byte("x")) },
			wantMsg: "path separators",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.call()
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !strings.Contains(err.Error(), test.wantMsg) {
				t.Errorf("Expected error containing %q, got %q", test.wantMsg, err.Error())
			}
		})
	}

	// A failed withdrawal must not change the balance
	if _, err := bank.Deposit(8, decimal.RequireFromString("10.00")); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if _, err := bank.Withdraw(8, decimal.RequireFromString("10.01")); err == nil {
		t.Fatal("Expected an overdraft error, got nil")
	}
	balance, err := bank.Balance(8)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("Expected balance 10.00 after failed withdrawal, got %s", balance)
	}
}

func TestBankClientFileRoundTrip(t *testing.T) {
	addr := startBankServer(t)
	bank := newBankClient(t, addr)

	content := []byte("quarterly statement")
	if err := bank.Save(7, "statement.txt", content); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := bank.Load(7, "statement.txt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Expected file content %q, got %q", content, got)
	}

	// Files are per account
	if _, err := bank.Load(8, "statement.txt"); err == nil {
		t.Error("Expected an error loading another account's file, got nil")
	}
}

func TestBankClientQuitEndsSession(t *testing.T) {
	addr := startBankServer(t)
	bank := newBankClient(t, addr)

	if err := bank.Quit(); err != nil {
		t.Fatalf("Quit failed: %v", err)
	}

	// The server closed the connection after the quit exchange; the next
	// call must transparently reconnect
	balance, err := bank.Deposit(7, decimal.RequireFromString("1.00"))
	if err != nil {
		t.Fatalf("Deposit after quit failed: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("1.00")) {
		t.Errorf("Expected balance 1.00, got %s", balance)
	}
}
