package server

import (
	"errors"
	"fmt"
	"github.com/klind25/teller/lib/filestore"
	"github.com/klind25/teller/lib/ledger"
	"github.com/klind25/teller/rpc/common"
)

// NewBankServerAdapter creates an adapter that dispatches decoded requests
// to the given ledger and file store
func NewBankServerAdapter(accounts ledger.ILedger, files filestore.IFileStore) IRPCServerAdapter {
	return &bankServerAdapterImpl{
		accounts: accounts,
		files:    files,
	}
}

type bankServerAdapterImpl struct {
	accounts ledger.ILedger
	files    filestore.IFileStore
}

func (adapter *bankServerAdapterImpl) Handle(peer string, req *common.Request) *common.Response {
	// Check for nil dependencies
	if adapter.accounts == nil || adapter.files == nil {
		return common.NewErrorResponse("handler: ledger or file store is nil")
	}

	// Handle different request types
	switch req.Type {
	case common.ReqDeposit:
		balance, err := adapter.accounts.Deposit(req.UserID, req.Amount)
		if err != nil {
			return common.NewErrorResponse(errorMessage(err))
		}
		return common.NewBalanceResponse(balance)

	case common.ReqWithdraw:
		balance, err := adapter.accounts.Withdraw(req.UserID, req.Amount)
		if err != nil {
			return common.NewErrorResponse(errorMessage(err))
		}
		return common.NewBalanceResponse(balance)

	case common.ReqBalance:
		balance, err := adapter.accounts.Balance(req.UserID)
		if err != nil {
			return common.NewErrorResponse(errorMessage(err))
		}
		return common.NewBalanceResponse(balance)

	case common.ReqUpload:
		if err := adapter.files.Save(req.UserID, req.Filename, []byte(req.Data)); err != nil {
			return common.NewErrorResponse(errorMessage(err))
		}
		return common.NewAckResponse(fmt.Sprintf("stored %s", req.Filename))

	case common.ReqDownload:
		data, err := adapter.files.Load(req.UserID, req.Filename)
		if err != nil {
			return common.NewErrorResponse(errorMessage(err))
		}
		return common.NewFileResponse(string(data))

	case common.ReqQuit:
		// The transport closes the connection after this response is sent
		return common.NewAckResponse("goodbye")

	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC BankAdapter - Unsupported request type: %s", req.Type),
		)
	}
}

// errorMessage extracts the short reason from the domain error types; the
// full Error() string carries code prefixes the wire message doesn't need
func errorMessage(err error) string {
	var lerr *ledger.Error
	if errors.As(err, &lerr) {
		return lerr.Msg
	}
	var ferr *filestore.Error
	if errors.As(err, &ferr) {
		return ferr.Msg
	}
	return err.Error()
}
