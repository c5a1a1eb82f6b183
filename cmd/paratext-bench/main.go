// Command paratext-bench generates a synthetic CSV file and measures
// pkg/paratext.Load's throughput against it.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/wiseio/paratext/pkg/paratext"
)

func main() {
	sizeMB := 500
	if len(os.Args) > 1 {
		v, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Println("Usage: paratext-bench [size_mb]")
			os.Exit(1)
		}
		sizeMB = v
	}

	fmt.Printf("Generating %d MB CSV...\n", sizeMB)
	tmpDir, err := os.MkdirTemp("", "paratext_bench")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	csvPath := filepath.Join(tmpDir, "bench.csv")
	rows, bytesWritten, err := generateCSV(csvPath, int64(sizeMB)*1024*1024)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Generated %d rows (%.2f MB)\n", rows, float64(bytesWritten)/1024/1024)

	fmt.Println("Starting Load...")
	opts := paratext.DefaultOptions()
	opts.NumThreads = runtime.NumCPU()
	opts.Verbose = true

	start := time.Now()
	frame, err := paratext.Load(csvPath, opts)
	if err != nil {
		panic(err)
	}
	elapsed := time.Since(start)

	mbPerSec := float64(bytesWritten) / 1024 / 1024 / elapsed.Seconds()
	fmt.Printf("\n--------------------------------------------------\n")
	fmt.Printf("Columns:    %d\n", frame.NumColumns())
	fmt.Printf("Throughput: %.2f MB/s\n", mbPerSec)
	fmt.Printf("Time:       %v\n", elapsed)
	if len(frame.Anomalies) > 0 {
		fmt.Printf("Anomalies:  %d columns/records flagged\n", len(frame.Anomalies))
	}
	fmt.Printf("--------------------------------------------------\n")
}

// generateCSV writes a synthetic "id,code,value,description" CSV to path
// until it reaches at least limit bytes, returning the row count and
// actual byte count written.
func generateCSV(path string, limit int64) (rows int, bytesWritten int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 64*1024)
	if _, err := w.WriteString("id,code,value,description\n"); err != nil {
		return 0, 0, err
	}

	rng := rand.New(rand.NewSource(123))
	buf := make([]byte, 0, 1024)
	for bytesWritten < limit {
		rows++
		buf = buf[:0]
		buf = fmt.Appendf(buf, "%d,US-%d,%d,\"Description for item %d with some padding to make it longer\"\n",
			rows, rng.Intn(1000), rng.Intn(10000), rows)
		n, err := w.Write(buf)
		bytesWritten += int64(n)
		if err != nil {
			return rows, bytesWritten, err
		}
	}
	if err := w.Flush(); err != nil {
		return rows, bytesWritten, err
	}
	return rows, bytesWritten, nil
}
