// Package main provides a performance benchmarking tool for the Mirador CLI.
// It measures execution times across different dataset sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - mirador binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic datasets are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	Timeout      time.Duration
	Runs         int
	DatasetSizes map[string]int
	SizeOrder    []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    4,
		DatasetSizes: map[string]int{
			"small":  100,
			"medium": 5000,
			"large":  50000,
		},
		SizeOrder: []string{"small", "medium", "large"},
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

	printSummary(results)
}

// checkPrerequisites verifies that the mirador binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if mirador is available
	if _, err := exec.LookPath("mirador"); err != nil {
		return fmt.Errorf("mirador binary not found in PATH")
	}

	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work directory not found at %s", config.WorkDir)
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured dataset sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d dataset sizes, %v timeout, %d runs\n",
		len(config.SizeOrder), config.Timeout, config.Runs)

	for _, size := range config.SizeOrder {
		projects := config.DatasetSizes[size]
		fmt.Printf("Benchmarking %s dataset (%d projects)\n", size, projects)

		projectsFile, qualityFile, err := generateDatasets(config.WorkDir, size, projects)
		if err != nil {
			fmt.Printf("Failed to generate datasets: %v\n", err)
			os.Exit(1)
		}
		fileArgs := fmt.Sprintf("--projects %s --quality %s --snapshot-backend none", projectsFile, qualityFile)

		// KPI computation
		result := runBenchmarkSuite(config, size, "kpi", "KPI computation", fileArgs)
		results = append(results, result)

		// Scorecard generation
		result = runBenchmarkSuite(config, size, "okr", "scorecard generation", fileArgs)
		results = append(results, result)

		// Cube validation
		result = runBenchmarkSuite(config, size, "check", "cube validation", fileArgs)
		results = append(results, result)

		// Defect prediction scaled to the dataset size
		predictArgs := fmt.Sprintf("--size %d --months 12 --team 10", projects*100)
		desc := fmt.Sprintf("defect prediction (%d LOC)", projects*100)
		result = runBenchmarkSuite(config, size, "predict", desc, predictArgs)
		results = append(results, result)
	}

	return results
}

// generateDatasets writes synthetic project and quality exports for one size tier
func generateDatasets(workDir, size string, projects int) (string, string, error) {
	projectsFile := filepath.Join(workDir, fmt.Sprintf("projects_%s.csv", size))
	qualityFile := filepath.Join(workDir, fmt.Sprintf("quality_%s.csv", size))

	clients := []string{"Acme Corp", "Beta Industries", "Gamma LLC", "Delta SA"}
	countries := []string{"Chile", "Peru", "Colombia", "Mexico"}
	severities := []string{"critica", "alta", "media", "baja"}

	pf, err := os.Create(projectsFile)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = pf.Close() }()
	pw := csv.NewWriter(pf)
	_ = pw.Write([]string{"nombre_proyecto", "nombre_cliente", "ganancia_neta", "costo_total_real", "nombre_pais"})
	for i := 0; i < projects; i++ {
		// Every third project finishes at a loss
		profit := 100000 + i*37
		if i%3 == 2 {
			profit = -profit
		}
		_ = pw.Write([]string{
			fmt.Sprintf("project-%06d", i),
			clients[i%len(clients)],
			strconv.Itoa(profit),
			strconv.Itoa(200000 + i*53),
			countries[i%len(countries)],
		})
	}
	pw.Flush()
	if err := pw.Error(); err != nil {
		return "", "", err
	}

	qf, err := os.Create(qualityFile)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = qf.Close() }()
	qw := csv.NewWriter(qf)
	_ = qw.Write([]string{"nombre_proyecto", "severidad", "cantidad_defectos_encontrados"})
	for i := 0; i < projects; i++ {
		_ = qw.Write([]string{
			fmt.Sprintf("project-%06d", i),
			severities[i%len(severities)],
			strconv.Itoa(1 + i%20),
		})
	}
	qw.Flush()
	if err := qw.Error(); err != nil {
		return "", "", err
	}

	return projectsFile, qualityFile, nil
}

// runBenchmarkSuite runs the benchmark for one command and aggregates timings
func runBenchmarkSuite(config BenchmarkConfig, dataset, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s dataset\n", description, dataset)

	coldTime, warmTimes := runBenchmark(config, command, extraArgs)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:  dataset,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a mirador command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command, extraArgs string) (coldTime float64, warmTimes []float64) {
	args := []string{command}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("mirador", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
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
	filename := fmt.Sprintf("/tmp/mirador_benchmark_%s.csv", timestamp)

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

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "kpi", "KPI Computation:")
	printCommandSummary(results, "okr", "Scorecard Generation:")
	printCommandSummary(results, "check", "Cube Validation:")
	printCommandSummary(results, "predict", "Defect Prediction:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Cold: %s, Warm: %s\n", result.Dataset, result.ColdTime, result.WarmTime)
		}
	}
}
