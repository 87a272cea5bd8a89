// Package main provides a performance benchmarking tool for the sprintburn CLI.
// It generates synthetic sprints of growing size, seeds them into a fresh SQLite
// store and times the read commands, treating the first successful run as cold
// and averaging the rest as warm, generating CSV output for performance tracking.
//
// Prerequisites:
// - sprintburn binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated seed files and databases
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sprintburn/sprintburn/internal/seed"
	"github.com/sprintburn/sprintburn/schema"
	"gopkg.in/yaml.v3"
)

// BenchmarkResult holds the result of a benchmark run (seed time, cold run and average of warm runs).
type BenchmarkResult struct {
	Scenario string
	Command  string
	SeedTime string
	ColdTime string
	WarmTime string
}

// Scenario is one synthetic sprint shape.
type Scenario struct {
	Name  string
	Weeks int
	Items int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir   string
	Timeout   time.Duration
	Runs      int
	Start     time.Time
	Scenarios []Scenario
	Commands  map[string][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	start, _ := schema.ParseDate("2024-01-01")
	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 2 * time.Minute,
		Runs:    5,
		Start:   start,
		Scenarios: []Scenario{
			{Name: "one-week", Weeks: 1, Items: 10},
			{Name: "two-weeks", Weeks: 2, Items: 50},
			{Name: "month", Weeks: 4, Items: 200},
			{Name: "quarter", Weeks: 13, Items: 1000},
		},
		Commands: map[string][]string{
			"dataset":  {"dataset", "--output", "json"},
			"chart":    {"chart", "--record", "no", "--output", "json"},
			"workdays": {"dataset", "--include-weekends", "no", "--output", "json"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the sprintburn binary and the work dir exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("sprintburn"); err != nil {
		return fmt.Errorf("sprintburn binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// buildSeed returns a seed document for a sprint with one snapshot per elapsed day.
func buildSeed(config BenchmarkConfig, sc Scenario) seed.File {
	days := sc.Weeks * 7
	end := config.Start.AddDate(0, 0, days-3) // end on a Friday

	sprint := seed.Sprint{
		Number: 1,
		Start:  schema.FormatDate(config.Start),
		End:    schema.FormatDate(end),
	}

	total := 0.0
	for i := range sc.Items {
		estimate := float64(1 + i%8)
		total += estimate
		status := "To Do"
		if i%3 == 0 {
			status = "Done"
		}
		sprint.Backlog = append(sprint.Backlog, seed.Item{
			ID:       fmt.Sprintf("BENCH-%d", i+1),
			Title:    fmt.Sprintf("Synthetic item %d", i+1),
			Status:   status,
			Estimate: &estimate,
		})
	}

	burn := total / float64(days)
	for d := range days - 2 {
		sprint.Snapshots = append(sprint.Snapshots, seed.Snapshot{
			Date:   schema.FormatDate(config.Start.AddDate(0, 0, d)),
			Points: max(total-burn*float64(d), 0),
		})
	}
	return seed.File{Sprints: []seed.Sprint{sprint}}
}

// writeSeed marshals the scenario seed into the work dir.
func writeSeed(config BenchmarkConfig, sc Scenario) (string, error) {
	data, err := yaml.Marshal(buildSeed(config, sc))
	if err != nil {
		return "", fmt.Errorf("failed to marshal seed: %w", err)
	}
	path := filepath.Join(config.WorkDir, sc.Name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write seed: %w", err)
	}
	return path, nil
}

// runBenchmarks executes all commands for every scenario
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d scenarios, %v timeout, %d runs\n",
		len(config.Scenarios), config.Timeout, config.Runs)

	for _, sc := range config.Scenarios {
		fmt.Printf("Benchmarking %s (%d weeks, %d items)\n", sc.Name, sc.Weeks, sc.Items)

		seedPath, err := writeSeed(config, sc)
		if err != nil {
			fmt.Printf("  skipped: %v\n", err)
			continue
		}
		dbPath := filepath.Join(config.WorkDir, sc.Name+".db")
		_ = os.Remove(dbPath)
		env := []string{
			"SPRINTBURN_STORE_BACKEND=sqlite",
			"SPRINTBURN_STORE_DB_CONNECT=" + dbPath,
			"SPRINTBURN_CHART_DIR=" + filepath.Join(config.WorkDir, "charts"),
			"SPRINTBURN_OUTPUT_FILE=" + os.DevNull,
		}

		seedTime := "FAILED"
		if secs, ok := timeCommand(config, env, "seed", "--file", seedPath); ok {
			seedTime = fmt.Sprintf("%.3fs", secs)
		}

		for _, name := range []string{"dataset", "chart", "workdays"} {
			result := runBenchmarkSuite(config, env, sc.Name, name)
			result.SeedTime = seedTime
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs one command several times against a seeded store
func runBenchmarkSuite(config BenchmarkConfig, env []string, scenario, command string) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", command, config.Runs)
	today := config.Start.AddDate(0, 0, 1)
	args := slices.Concat(config.Commands[command], []string{"--today", schema.FormatDate(today)})

	var times []float64
	for range config.Runs {
		if secs, ok := timeCommand(config, env, args...); ok {
			times = append(times, secs)
		}
	}

	result := BenchmarkResult{Scenario: scenario, Command: command, ColdTime: "TIMEOUT", WarmTime: "TIMEOUT"}
	if len(times) > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", times[0])
	}
	if warm := times[min(1, len(times)):]; len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		result.WarmTime = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}
	fmt.Printf("    Cold time: %s, Warm average: %s\n", result.ColdTime, result.WarmTime)
	return result
}

// timeCommand runs sprintburn once and reports the elapsed seconds on success
func timeCommand(config BenchmarkConfig, env []string, args ...string) (float64, bool) {
	start := time.Now()

	cmd := exec.Command("sprintburn", args...)
	cmd.Env = append(os.Environ(), env...)

	done := make(chan bool, 1)
	var output []byte
	var cmdErr error

	go func() {
		output, cmdErr = cmd.CombinedOutput()
		done <- true
	}()

	select {
	case <-done:
		if cmdErr != nil {
			fmt.Printf("    sprintburn %s failed: %v\n%s", strings.Join(args, " "), cmdErr, output)
			return 0, false
		}
		return time.Since(start).Seconds(), true
	case <-time.After(config.Timeout):
		_ = cmd.Process.Kill()
		return 0, false
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("sprintburn_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"scenario", "cmd", "seed_time", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Scenario, result.Command, result.SeedTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"dataset", "chart", "workdays"} {
		fmt.Printf("%s (%s):\n", command, strings.Join(config.Commands[command], " "))
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-10s: Seed: %s, Cold: %s, Warm: %s\n", result.Scenario, result.SeedTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
