// Package writer persists one entity's row set in fixed-size chunks, one
// transaction per chunk. A failed chunk rolls back alone: chunks committed
// before it stay in the store. Callers treat any chunk error as fatal for
// the stage, so the partial commit is visible in the run report rather
// than silently retried.
package writer

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/eduforge/eduforge/internal/model"
	"github.com/eduforge/eduforge/internal/store"
)

// Sink receives each successfully committed chunk, e.g. a CSV mirror.
type Sink interface {
	Append(table model.Table, rows [][]any) error
}

type BatchWriter struct {
	conn        store.Conn
	chunkSize   int
	placeholder squirrel.PlaceholderFormat
	sink        Sink
}

type Result struct {
	Attempted int
	Committed int
}

func New(conn store.Conn, chunkSize int, placeholder squirrel.PlaceholderFormat) *BatchWriter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	return &BatchWriter{
		conn:        conn,
		chunkSize:   chunkSize,
		placeholder: placeholder,
	}
}

// Mirror attaches a sink that receives each committed chunk.
func (w *BatchWriter) Mirror(s Sink) {
	w.sink = s
}

// Write splits rows into chunks of at most the configured size and
// commits each chunk in its own transaction. On a chunk failure that
// chunk is rolled back and the error returned; the Result reports how
// many rows were already committed.
func (w *BatchWriter) Write(ctx context.Context, table model.Table, rows [][]any) (Result, error) {
	res := Result{Attempted: len(rows)}

	for start := 0; start < len(rows); start += w.chunkSize {
		end := start + w.chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		if err := w.writeChunk(ctx, table, chunk); err != nil {
			return res, fmt.Errorf("failed to write %s rows %d-%d: %w", table.Name, start, end-1, err)
		}
		res.Committed += len(chunk)

		if w.sink != nil {
			if err := w.sink.Append(table, chunk); err != nil {
				return res, fmt.Errorf("failed to mirror %s chunk to sink: %w", table.Name, err)
			}
		}
	}
	return res, nil
}

func (w *BatchWriter) writeChunk(ctx context.Context, table model.Table, chunk [][]any) error {
	builder := squirrel.Insert(table.Name).
		Columns(table.Columns...).
		PlaceholderFormat(w.placeholder)
	for _, row := range chunk {
		builder = builder.Values(row...)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	tx, err := w.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := tx.Exec(ctx, query, args...); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to commit chunk: %w", err)
	}
	return nil
}
