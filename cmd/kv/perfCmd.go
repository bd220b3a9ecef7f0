package kv

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stratadb/strata-go/cmd/util"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for StrataDB servers",
		Long:    "",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__test"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the set-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func shouldSkip(name string) bool {
	for _, s := range perfSkip {
		if s == name {
			return true
		}
	}
	return false
}

// runBenchmark runs fn from perfNumThreads goroutines b.N times total while a
// latency timer records every call
func runBenchmark(name string, fn func(key string) error) (testing.BenchmarkResult, gometrics.Timer) {
	timer := gometrics.NewTimer()

	result := testing.Benchmark(func(b *testing.B) {
		var wg sync.WaitGroup
		perThread := b.N/perfNumThreads + 1

		b.ResetTimer()
		for t := 0; t < perfNumThreads; t++ {
			wg.Add(1)
			go func(thread int) {
				defer wg.Done()
				for i := 0; i < perThread; i++ {
					key := fmt.Sprintf("%s-%d", perfKeyPrefix, (thread*perThread+i)%perfKeySpread)
					start := time.Now()
					if err := fn(key); err != nil {
						b.Errorf("%s failed: %v", name, err)
						return
					}
					timer.UpdateSince(start)
				}
			}(t)
		}
		wg.Wait()
	})

	return result, timer
}

func printResult(name string, result testing.BenchmarkResult, timer gometrics.Timer) {
	ps := timer.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Printf("%-12s %10d ops %12.0f ns/op | p50 %8s p95 %8s p99 %8s\n",
		name, result.N, float64(result.T.Nanoseconds())/float64(result.N),
		time.Duration(ps[0]), time.Duration(ps[1]), time.Duration(ps[2]))
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for StrataDB servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	value := []byte("test-value")
	largeValue := make([]byte, perfLargeValueSizeKB*1024)

	if !shouldSkip("set") {
		result, timer := runBenchmark("set", func(key string) error {
			return strataClient.Put(key, value)
		})
		printResult("set", result, timer)
	}

	if !shouldSkip("set-large") {
		result, timer := runBenchmark("set-large", func(key string) error {
			return strataClient.Put(key, largeValue)
		})
		printResult("set-large", result, timer)
	}

	if !shouldSkip("get") {
		result, timer := runBenchmark("get", func(key string) error {
			_, _, err := strataClient.Get(key)
			return err
		})
		printResult("get", result, timer)
	}

	if !shouldSkip("scan") {
		result, timer := runBenchmark("scan", func(string) error {
			_, err := strataClient.Scan(perfKeyPrefix)
			return err
		})
		printResult("scan", result, timer)
	}

	if !shouldSkip("del") {
		result, timer := runBenchmark("del", func(key string) error {
			return strataClient.Delete(key)
		})
		printResult("del", result, timer)
	}

	return nil
}
