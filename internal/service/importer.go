package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/ports"
)

// ImportState is the phase the import workflow is in. Committing is only
// reachable from a previewed batch without validation errors.
type ImportState string

const (
	StateIdle         ImportState = "idle"
	StateFileSelected ImportState = "file_selected"
	StatePreviewing   ImportState = "previewing"
	StatePreviewed    ImportState = "previewed"
	StateCommitting   ImportState = "committing"
	StateCommitted    ImportState = "committed"
	StateFailed       ImportState = "failed"
)

// ImporterOptions groups dependencies for Importer.
type ImporterOptions struct {
	Directory ports.UserDirectory
	// MaxBytes caps the CSV size before any upload is attempted.
	MaxBytes int64
	// OnCommitted runs after a successful commit, before Commit returns.
	// Used to refresh the user list.
	OnCommitted func(ctx context.Context)
	Logger      *slog.Logger
}

// Importer drives the two-phase CSV user import: select a file, preview
// it server-side, then commit. Selecting a new file replaces the whole
// batch; a failed commit keeps it for retry.
type Importer struct {
	dir         ports.UserDirectory
	maxBytes    int64
	onCommitted func(ctx context.Context)
	logger      *slog.Logger

	mu      sync.Mutex
	state   ImportState
	batchID uuid.UUID
	file    ports.ImportFile
	preview *model.ImportPreview
	result  *model.ImportResult
}

// NewImporter constructs a new Importer.
func NewImporter(opts ImporterOptions) *Importer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = int64(5 << 20)
	}
	return &Importer{
		dir:         opts.Directory,
		maxBytes:    maxBytes,
		onCommitted: opts.OnCommitted,
		logger:      logger,
		state:       StateIdle,
	}
}

// SelectFile reads and selects a CSV file from disk.
func (im *Importer) SelectFile(path string, sendCredentials bool) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		return fmt.Errorf("unsupported file type %q, expected .csv", ext)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat import file: %w", err)
	}
	if info.Size() > im.maxBytes {
		return fmt.Errorf("file is %d bytes, limit is %d", info.Size(), im.maxBytes)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	return im.Select(filepath.Base(path), content, sendCredentials)
}

// Select stages CSV content as the current batch, fully replacing any
// prior batch and its preview. The header is sanity-checked locally; row
// validation stays with the server.
func (im *Importer) Select(name string, content []byte, sendCredentials bool) error {
	if int64(len(content)) > im.maxBytes {
		return fmt.Errorf("file is %d bytes, limit is %d", len(content), im.maxBytes)
	}
	if err := checkHeader(content); err != nil {
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	if im.state == StatePreviewing || im.state == StateCommitting {
		return ErrBusy
	}
	im.batchID = uuid.New()
	im.file = ports.ImportFile{Name: name, Content: content, SendCredentials: sendCredentials}
	im.preview = nil
	im.result = nil
	im.state = StateFileSelected
	im.logger.Info("import file selected", "batch_id", im.batchID, "file", name, "bytes", len(content))
	return nil
}

// checkHeader rejects files whose first record is not the expected import
// header. The server re-validates; this only saves a pointless upload.
func checkHeader(content []byte) error {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read CSV header: %w", err)
	}
	if len(header) != len(model.ImportHeader) {
		return fmt.Errorf("unexpected CSV header %v, want %v", header, model.ImportHeader)
	}
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) != model.ImportHeader[i] {
			return fmt.Errorf("unexpected CSV header %v, want %v", header, model.ImportHeader)
		}
	}
	return nil
}

// Preview dry-runs the current batch server-side. Candidate rows and
// row errors are stored independently; either may be empty.
func (im *Importer) Preview(ctx context.Context) (*model.ImportPreview, error) {
	im.mu.Lock()
	switch im.state {
	case StateIdle, StateCommitted:
		im.mu.Unlock()
		return nil, ErrNoFile
	case StatePreviewing, StateCommitting:
		im.mu.Unlock()
		return nil, ErrBusy
	}
	file := im.file
	im.state = StatePreviewing
	im.mu.Unlock()

	preview, err := im.dir.ImportPreview(ctx, file)

	im.mu.Lock()
	defer im.mu.Unlock()
	if err != nil {
		im.state = StateFailed
		return nil, fmt.Errorf("import preview: %w", err)
	}
	im.preview = preview
	im.state = StatePreviewed
	im.logger.Info("import previewed",
		"batch_id", im.batchID, "rows", len(preview.Rows), "row_errors", len(preview.Errors))
	return preview, nil
}

// CanCommit reports whether the batch is previewed and free of row
// errors.
func (im *Importer) CanCommit() bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.state == StatePreviewed && im.preview != nil && im.preview.Valid()
}

// Commit creates the accounts from the previewed batch. With row errors
// still present it fails locally with ErrValidationPending. A failed
// commit keeps the batch so Commit can be retried.
func (im *Importer) Commit(ctx context.Context) (*model.ImportResult, error) {
	im.mu.Lock()
	switch im.state {
	case StatePreviewing, StateCommitting:
		im.mu.Unlock()
		return nil, ErrBusy
	case StatePreviewed, StateFailed:
		// A failed commit retains its preview and stays retryable.
	default:
		im.mu.Unlock()
		return nil, ErrNoPreview
	}
	if im.preview == nil {
		im.mu.Unlock()
		return nil, ErrNoPreview
	}
	if !im.preview.Valid() {
		im.mu.Unlock()
		return nil, ErrValidationPending
	}
	file := im.file
	batchID := im.batchID
	im.state = StateCommitting
	im.mu.Unlock()

	result, err := im.dir.ImportConfirm(ctx, file)

	im.mu.Lock()
	defer im.mu.Unlock()
	if err != nil {
		im.state = StateFailed
		im.logger.Warn("import commit failed, batch retained", "batch_id", batchID, "error", err)
		return nil, fmt.Errorf("import commit: %w", err)
	}

	im.result = result
	im.file = ports.ImportFile{}
	im.preview = nil
	im.state = StateCommitted
	im.logger.Info("import committed", "batch_id", batchID, "created", result.CreatedCount)

	if im.onCommitted != nil {
		im.onCommitted(ctx)
	}
	return result, nil
}

// Reset discards the current batch and returns to idle.
func (im *Importer) Reset() {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.state == StatePreviewing || im.state == StateCommitting {
		return
	}
	im.file = ports.ImportFile{}
	im.preview = nil
	im.result = nil
	im.batchID = uuid.UUID{}
	im.state = StateIdle
}

// State returns the current workflow phase.
func (im *Importer) State() ImportState {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.state
}

// CurrentPreview returns the stored preview, nil before one exists.
func (im *Importer) CurrentPreview() *model.ImportPreview {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.preview
}

// BatchID identifies the current batch, zero when idle.
func (im *Importer) BatchID() uuid.UUID {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.batchID
}

// ExportFileName names an export written at the given time.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("utenti_export_%s.csv", now.Format("2006-01-02"))
}

// Export downloads the filtered user list and writes it under dir using
// the dated export file name. It returns the written path.
func (im *Importer) Export(ctx context.Context, filter model.ExportFilter, dir string) (string, error) {
	data, err := im.dir.Export(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("export users: %w", err)
	}
	path := filepath.Join(dir, ExportFileName(time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	im.logger.Info("users exported", "path", path, "bytes", len(data))
	return path, nil
}
