package account

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/klind25/teller/cmd/util"
	"github.com/klind25/teller/rpc/common"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for teller servers",
		Long:    "",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}

	// Benchmark accounts start high up in the id space to stay away from
	// accounts used interactively
	perfAccountBase   = uint64(1_000_000)
	perfFileSizeKB    = 100
	perfNumThreads    = 10
	perfAccountSpread = 100
	perfSkip          = make([]string, 0)
)

// perfResult pairs the wall-clock result of a benchmark with the latency
// distribution of its individual requests
type perfResult struct {
	bench testing.BenchmarkResult
	timer metrics.Timer
}

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. deposit,balance)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "file-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the payload for the upload and download tests should be (in KB)"))
	key = "accounts"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different accounts to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfFileSizeKB = viper.GetInt("file-size")
	perfAccountSpread = viper.GetInt("accounts")
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for teller servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	// The protocol has no delete operation, so benchmark accounts stay in
	// server memory and benchmark files in the server's data dir

	// Create results map
	results := make(map[string]perfResult)

	depositTimer := metrics.NewTimer()
	depositResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("deposit") {
			return
		}

		// prepare accounts
		getAccount, _ := benchAccounts(0)
		amount := decimal.New(125, -2) // 1.25

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				_, err := bank.Deposit(getAccount(counter), amount)
				depositTimer.UpdateSince(start)
				if err != nil {
					log.Printf("(deposit) - error depositing: %v\n", err)
				}
				counter++
			}
		})
	})

	results["deposit"] = perfResult{depositResult, depositTimer}
	printResult("deposit", results["deposit"])

	balanceTimer := metrics.NewTimer()
	balanceResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("balance") {
			return
		}

		// prepare accounts
		getAccount, iter := benchAccounts(1)

		// open the accounts
		iter(func(acc uint64) {
			_, err := bank.Deposit(acc, decimal.New(125, -2))
			if err != nil {
				log.Printf("(balance) - error opening account: %v\n", err)
			}
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				_, err := bank.Balance(getAccount(counter))
				balanceTimer.UpdateSince(start)
				if err != nil {
					log.Printf("(balance) - error reading balance: %v\n", err)
				}
				counter++
			}
		})
	})

	results["balance"] = perfResult{balanceResult, balanceTimer}
	printResult("balance", results["balance"])

	withdrawTimer := metrics.NewTimer()
	withdrawResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("withdraw") {
			return
		}

		// prepare accounts
		getAccount, iter := benchAccounts(2)

		// seed the accounts with enough funds for any iteration count
		iter(func(acc uint64) {
			_, err := bank.Deposit(acc, decimal.New(1_000_000_000, 0))
			if err != nil {
				log.Printf("(withdraw) - error seeding account: %v\n", err)
			}
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				_, err := bank.Withdraw(getAccount(counter), decimal.New(1, -2))
				withdrawTimer.UpdateSince(start)
				if err != nil {
					log.Printf("(withdraw) - error withdrawing: %v\n", err)
				}
				counter++
			}
		})
	})

	results["withdraw"] = perfResult{withdrawResult, withdrawTimer}
	printResult("withdraw", results["withdraw"])

	uploadTimer := metrics.NewTimer()
	uploadResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("upload") {
			return
		}

		// prepare accounts and payload
		getAccount, _ := benchAccounts(3)
		payload := make([]byte, perfFileSizeKB*1024)

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				err := bank.Save(getAccount(counter), "bench.dat", payload)
				uploadTimer.UpdateSince(start)
				if err != nil {
					log.Printf("(upload) - error uploading: %v\n", err)
				}
				counter++
			}
		})
	})

	results["upload"] = perfResult{uploadResult, uploadTimer}
	printResult("upload", results["upload"])

	downloadTimer := metrics.NewTimer()
	downloadResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("download") {
			return
		}

		// prepare accounts and payload
		getAccount, iter := benchAccounts(4)
		payload := make([]byte, perfFileSizeKB*1024)

		// store the files to download
		iter(func(acc uint64) {
			err := bank.Save(acc, "bench.dat", payload)
			if err != nil {
				log.Printf("(download) - error storing file: %v\n", err)
			}
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				start := time.Now()
				_, err := bank.Load(getAccount(counter), "bench.dat")
				downloadTimer.UpdateSince(start)
				if err != nil {
					log.Printf("(download) - error downloading: %v\n", err)
				}
				counter++
			}
		})
	})

	results["download"] = perfResult{downloadResult, downloadTimer}
	printResult("download", results["download"])

	mixedTimer := metrics.NewTimer()
	mixedResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("mixed") {
			return
		}

		// prepare accounts
		getAccount, iter := benchAccounts(5)

		// seed the accounts with enough funds for any iteration count
		iter(func(acc uint64) {
			_, err := bank.Deposit(acc, decimal.New(1_000_000_000, 0))
			if err != nil {
				log.Printf("(mixed) - error seeding account: %v\n", err)
			}
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				acc := getAccount(counter)

				start := time.Now()
				var err error
				switch counter % 4 {
				case 0: // deposit
					_, err = bank.Deposit(acc, decimal.New(125, -2))
				case 1: // balance
					_, err = bank.Balance(acc)
				case 2: // withdraw
					_, err = bank.Withdraw(acc, decimal.New(1, -2))
				case 3: // balance
					_, err = bank.Balance(acc)
				}
				mixedTimer.UpdateSince(start)

				if err != nil {
					log.Printf("(mixed) - error performing operation (%d): %v\n", counter%4, err)
				}
				counter++
			}
		})
	})

	results["mixed"] = perfResult{mixedResult, mixedTimer}
	printResult("mixed", results["mixed"])

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, util.GetClientConfig()); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// benchAccounts creates a block of test account ids and functions to work
// with them. Each benchmark uses its own block so the tests do not
// interfere with each other.
func benchAccounts(block int) (func(int) uint64, func(func(uint64))) {
	base := perfAccountBase + uint64(block*perfAccountSpread)

	// Function to get an account by index (with wraparound)
	getAccount := func(i int) uint64 {
		return base + uint64(i%perfAccountSpread)
	}

	// Function to iterate over all accounts and apply a function to each
	iterateAccounts := func(fn func(uint64)) {
		for i := 0; i < perfAccountSpread; i++ {
			fn(base + uint64(i))
		}
	}

	return getAccount, iterateAccounts
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result perfResult) {
	if result.bench.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.bench.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)
	ps := result.timer.Percentiles([]float64{0.5, 0.95, 0.99})

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\tp50=%s p95=%s p99=%s\n",
		test, nsPerOp, time.Duration(nsPerOp), opsPerSec,
		time.Duration(ps[0]), time.Duration(ps[1]), time.Duration(ps[2]))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]perfResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "P50", "P95", "P99", "Skipped",
		"Endpoints", "TimeoutSec", "RetryCount", "ConnectionsPerEndpoint",
		"Serializer", "Transport",
		"Threads", "FileSizeKB", "Accounts",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.bench.NsPerOp() == 0 {
			skipped = "true"
			nsPerOp = 0
			opsPerSec = 0
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.bench.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		ps := result.timer.Percentiles([]float64{0.5, 0.95, 0.99})

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			time.Duration(ps[0]).String(),
			time.Duration(ps[1]).String(),
			time.Duration(ps[2]).String(),
			skipped,
			strings.Join(config.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.RetryCount),
			strconv.Itoa(config.ConnectionsPerEndpoint),
			viper.GetString("serializer"),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfFileSizeKB),
			strconv.Itoa(perfAccountSpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
