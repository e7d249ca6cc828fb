// Package main implements analyzelogs, an offline utility that scans the
// engine's JSON-lines logs for completed trades and reports per-pair
// count, average volume and average spread. It is a separate binary
// rather than a core package: log analysis happens after the fact,
// against files the daemon has already written, not against live state.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

type pairStats struct {
	count       int
	volumeSum   decimal.Decimal
	spreadSum   decimal.Decimal
	failedCount int
}

func main() {
	path := flag.String("log", "", "Path to a JSON-lines log file")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzelogs -log <path>")
		os.Exit(1)
	}

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", *path, err)
		os.Exit(1)
	}
	defer f.Close()

	stats := map[string]*pairStats{}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		applyLine(scanner.Bytes(), stats)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", *path, err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("no completed trades found")
		return
	}

	for pair, s := range stats {
		fmt.Println(formatStats(pair, s))
	}
}

// applyLine decodes a single JSON-lines log entry and folds it into stats
// if it's a "trade completed" record naming a pair. Lines that fail to
// decode, or that aren't trade-completion records, are silently skipped:
// logs may interleave unrelated entries this tool has no use for.
func applyLine(line []byte, stats map[string]*pairStats) {
	var entry map[string]interface{}
	if err := json.Unmarshal(line, &entry); err != nil {
		return
	}
	if entry["msg"] != "trade completed" {
		return
	}

	pair, _ := entry["pair"].(string)
	if pair == "" {
		return
	}

	s, ok := stats[pair]
	if !ok {
		s = &pairStats{volumeSum: decimal.Zero, spreadSum: decimal.Zero}
		stats[pair] = s
	}
	s.count++

	if volumeStr, ok := entry["volume"].(string); ok {
		if v, err := decimal.NewFromString(volumeStr); err == nil {
			s.volumeSum = s.volumeSum.Add(v)
		}
	}
	if spreadStr, ok := entry["spread"].(string); ok {
		if v, err := decimal.NewFromString(spreadStr); err == nil {
			s.spreadSum = s.spreadSum.Add(v)
		}
	}
	if status, ok := entry["status"].(string); ok && status == "failed" {
		s.failedCount++
	}
}

// formatStats renders one pair's summary line.
func formatStats(pair string, s *pairStats) string {
	avgVolume := s.volumeSum.Div(decimal.NewFromInt(int64(s.count)))
	avgSpread := s.spreadSum.Div(decimal.NewFromInt(int64(s.count)))
	return fmt.Sprintf("%s: trades=%d failed=%d avg_volume=%s avg_spread=%s",
		pair, s.count, s.failedCount, avgVolume.StringFixed(8), avgSpread.StringFixed(6))
}
