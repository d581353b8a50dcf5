package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// ExportJSONL writes all runs matching the filter to path, one JSON
// run per line.
func ExportJSONL(ctx context.Context, s RunStore, filter RunFilter, path string) (int, error) {
	runs, err := s.ListRuns(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to list runs: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, run := range runs {
		if err := enc.Encode(run); err != nil {
			return 0, fmt.Errorf("failed to encode run %s: %w", run.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("failed to flush export file: %w", err)
	}
	return len(runs), nil
}

// ImportJSONL reads runs from a JSONL file into the store. Malformed
// lines are skipped with a warning, matching the export format's
// tolerance for hand editing.
func ImportJSONL(ctx context.Context, s RunStore, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	imported := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var run Run
		if err := json.Unmarshal([]byte(line), &run); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to parse line %d: %v\n", lineNum, err)
			continue
		}
		if _, err := s.SaveRun(ctx, run); err != nil {
			return imported, fmt.Errorf("failed to import run %s: %w", run.ID, err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("failed to read import file: %w", err)
	}
	return imported, nil
}

// arrowSchema is the columnar layout for distribution exports: one row
// per (run, node) pair, long format, ready for dataframe tooling.
var arrowSchema = arrow.NewSchema([]arrow.Field{
	{Name: "run_id", Type: arrow.BinaryTypes.String},
	{Name: "kind", Type: arrow.BinaryTypes.String},
	{Name: "steps", Type: arrow.PrimitiveTypes.Int32},
	{Name: "shots", Type: arrow.PrimitiveTypes.Int32},
	{Name: "node", Type: arrow.PrimitiveTypes.Int32},
	{Name: "count", Type: arrow.PrimitiveTypes.Int64},
	{Name: "probability", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// ExportArrow writes the distributions of all runs matching the filter
// to an Arrow IPC file at path. Returns the number of rows written.
func ExportArrow(ctx context.Context, s RunStore, filter RunFilter, path string) (int, error) {
	runs, err := s.ListRuns(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to list runs: %w", err)
	}

	builder := array.NewRecordBuilder(memory.DefaultAllocator, arrowSchema)
	defer builder.Release()

	runID := builder.Field(0).(*array.StringBuilder)
	kind := builder.Field(1).(*array.StringBuilder)
	steps := builder.Field(2).(*array.Int32Builder)
	shots := builder.Field(3).(*array.Int32Builder)
	node := builder.Field(4).(*array.Int32Builder)
	count := builder.Field(5).(*array.Int64Builder)
	prob := builder.Field(6).(*array.Float64Builder)

	rows := 0
	for _, run := range runs {
		total := run.Distribution.TotalShots()
		for _, n := range run.Distribution.SortedNodes() {
			c := run.Distribution.Counts[n]
			runID.Append(run.ID)
			kind.Append(string(run.Kind))
			steps.Append(int32(run.Steps))
			shots.Append(int32(run.Shots))
			node.Append(int32(n))
			count.Append(int64(c))
			if total > 0 {
				prob.Append(float64(c) / float64(total))
			} else {
				prob.Append(0)
			}
			rows++
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create arrow file: %w", err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(arrowSchema))
	if err != nil {
		return 0, fmt.Errorf("failed to create arrow writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return 0, fmt.Errorf("failed to write arrow record: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to close arrow writer: %w", err)
	}
	return rows, nil
}
