// Package main provides a performance benchmarking tool for the aiready CLI.
// It measures execution times of assessments over a set of analysis files,
// running each command several times, treating the first successful run as cold and averaging the rest as warm,
// and writes a CSV file for performance analysis and documentation.
//
// Prerequisites:
// - aiready binary installed and available in PATH
// - Analysis files named <repo>.json in the base directory, each pointing at a cloned repository
//
// Usage: go run benchmark/main.go [analysis-dir]
//
//	analysis-dir: Directory containing the analysis files
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository    string
	Command       string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	AnalysisDir   string
	HistoryDB     string
	Timeout       time.Duration
	Workers       int
	NoHistoryRuns int
	HistoryRuns   int
	TestRepos     []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [analysis-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		AnalysisDir:   os.Args[1],
		HistoryDB:     filepath.Join(os.TempDir(), "aiready_benchmark_history.db"),
		Timeout:       2 * time.Minute,
		Workers:       8,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		TestRepos:     []string{"csv-parser", "fd", "git", "kubernetes"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty history so the first run has no trend to compute
	fmt.Printf("Clearing history...\n")
	if err := os.Remove(config.HistoryDB); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Warning: failed to clear history: %v\n", err)
	} else {
		fmt.Printf("History cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the aiready binary and the analysis files exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("aiready"); err != nil {
		return fmt.Errorf("aiready binary not found in PATH")
	}

	for _, repo := range config.TestRepos {
		path := analysisPath(config, repo)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("analysis for %s not found at %s", repo, path)
		}
	}

	return nil
}

// analysisPath returns the analysis file of a repository.
func analysisPath(config BenchmarkConfig, repo string) string {
	return filepath.Join(config.AnalysisDir, repo+".json")
}

// runBenchmarks executes all benchmark tests across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d workers, no-history: %d runs, history: %d runs\n",
		len(config.TestRepos), config.Timeout, config.Workers, config.NoHistoryRuns, config.HistoryRuns)

	all := make([]string, 0, len(config.TestRepos))
	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)
		path := analysisPath(config, repo)
		all = append(all, path)

		results = append(results,
			runBenchmarkSuite(config, repo, "assess", "single assessment", path, "--trend"),
			runBenchmarkSuite(config, repo, "check", "policy check", path, "--min-score", "0"),
		)
	}

	// One batch over every analysis exercises the worker pool
	args := append([]string{"--workers", fmt.Sprint(config.Workers)}, all...)
	results = append(results, runBenchmarkSuite(config, "all", "assess", "batch assessment", args...))

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, repo, command, description string, extraArgs ...string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, repo)

	// Helper to run a benchmark phase
	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, extraArgs, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: history disabled
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: every run saves to SQLite and reads the previous assessment
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:    repo,
		Command:       command,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes an aiready command multiple times with the given history backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, extraArgs []string, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, "--output", "json", "--history-backend", backend}
	if backend == "sqlite" {
		args = append(args, "--history-db-connect", config.HistoryDB)
	}
	args = append(args, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "aiready", args...).Output()
		elapsed := time.Since(start)
		cancel()

		// Timeouts and failures are not added to times
		if err == nil && json.Valid(output) {
			times = append(times, elapsed.Seconds())
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("aiready_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"repo", "cmd", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Command, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "assess", "Assessments:")
	printCommandSummary(results, "check", "Policy Checks:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-history: %s, Cold: %s, Warm: %s\n", result.Repository, result.NoHistoryTime, result.ColdTime, result.WarmTime)
		}
	}
}
