package account

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	depositCmd = &cobra.Command{
		Use:   "deposit [account] [amount]",
		Short: "Deposits an amount into an account",
		Long:  "Deposits an amount into an account. The first deposit opens the account.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("account must be a number: %w", err)
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("amount must be a decimal number: %w", err)
			}
			if balance, err := bank.Deposit(accountID, amount); err != nil {
				return err
			} else {
				fmt.Printf("account=%d, balance=%s\n", accountID, balance)
			}
			return nil
		},
	}
	withdrawCmd = &cobra.Command{
		Use:   "withdraw [account] [amount]",
		Short: "Withdraws an amount from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("account must be a number: %w", err)
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("amount must be a decimal number: %w", err)
			}
			if balance, err := bank.Withdraw(accountID, amount); err != nil {
				return err
			} else {
				fmt.Printf("account=%d, balance=%s\n", accountID, balance)
			}
			return nil
		},
	}
	balanceCmd = &cobra.Command{
		Use:   "balance [account]",
		Short: "Reads the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("account must be a number: %w", err)
			}
			if balance, err := bank.Balance(accountID); err != nil {
				return err
			} else {
				fmt.Printf("account=%d, balance=%s\n", accountID, balance)
			}
			return nil
		},
	}
	quitCmd = &cobra.Command{
		Use:   "quit",
		Short: "Performs a quit exchange with the server",
		Long:  "Performs a quit exchange with the server. Every invocation of this tool is its own session, so this is mostly useful as a connectivity check.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bank.Quit(); err != nil {
				return err
			}
			fmt.Println("session ended")
			return nil
		},
	}
)
