package client

import (
	"github.com/klind25/teller/lib/filestore"
	"github.com/klind25/teller/lib/ledger"
	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/transport"
	"github.com/shopspring/decimal"
)

// IBankClient is the client-side view of the banking service. It bundles
// the account operations (ledger.ILedger) and the file operations
// (filestore.IFileStore) with the session lifecycle.
type IBankClient interface {
	ledger.ILedger
	filestore.IFileStore

	// Quit ends the session. The server acknowledges the request and then
	// closes the connection.
	Quit() (err error)
	// Close tears down all transport connections without a quit exchange.
	Close() (err error)
}

// NewRPCBankClient creates a new RPC bank client
// The function takes a config and a transport as parameters (the wire
// serializer is part of the transport)
// It returns an IBankClient and an error
func NewRPCBankClient(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
) (IBankClient, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	// Create a new RPC bank client
	c := rpcBankClient{
		rpcClientAdapter{
			config:    config,
			transport: transport,
		},
	}

	// Return the RPC bank client
	return &c, nil
}

type rpcBankClient struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the ledger and filestore packages)
// --------------------------------------------------------------------------

func (i *rpcBankClient) Deposit(accountID uint64, amount decimal.Decimal) (decimal.Decimal, error) {
	resp, err := invokeRPCRequest(common.NewDepositRequest(accountID, amount), i.transport)
	if err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

func (i *rpcBankClient) Withdraw(accountID uint64, amount decimal.Decimal) (decimal.Decimal, error) {
	resp, err := invokeRPCRequest(common.NewWithdrawRequest(accountID, amount), i.transport)
	if err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

func (i *rpcBankClient) Balance(accountID uint64) (decimal.Decimal, error) {
	resp, err := invokeRPCRequest(common.NewBalanceRequest(accountID), i.transport)
	if err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

func (i *rpcBankClient) Save(accountID uint64, name string, data []byte) error {
	_, err := invokeRPCRequest(common.NewUploadRequest(accountID, name, string(data)), i.transport)
	return err
}

func (i *rpcBankClient) Load(accountID uint64, name string) ([]byte, error) {
	resp, err := invokeRPCRequest(common.NewDownloadRequest(accountID, name), i.transport)
	if err != nil {
		return nil, err
	}
	return []byte(resp.Data), nil
}

func (i *rpcBankClient) Quit() error {
	_, err := invokeRPCRequest(common.NewQuitRequest(), i.transport)
	return err
}

func (i *rpcBankClient) Close() error {
	return i.transport.Close()
}
