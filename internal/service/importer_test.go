package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/mocks"
	"github.com/volops/voladmin/internal/ports"
)

const csvHeader = "username,email,first_name,last_name,role,phone,work_area_codes\n"

func validCSV() []byte {
	return []byte(csvHeader + "mrossi,mario.rossi@volontari.it,Mario,Rossi,base,333 1234567,log\n")
}

func previewWith(errs []model.RowErrors) func(context.Context, ports.ImportFile) (*model.ImportPreview, error) {
	return func(_ context.Context, _ ports.ImportFile) (*model.ImportPreview, error) {
		return &model.ImportPreview{
			Rows:   []model.CandidateUser{{Username: "mrossi", Email: "mario.rossi@volontari.it"}},
			Errors: errs,
		}, nil
	}
}

func TestImporter_HappyPath(t *testing.T) {
	var refreshed bool
	dir := &mocks.MockUserDirectory{
		ImportPreviewFunc: previewWith(nil),
		ImportConfirmFunc: func(_ context.Context, file ports.ImportFile) (*model.ImportResult, error) {
			assert.Equal(t, "volontari.csv", file.Name)
			return &model.ImportResult{Message: "1 utente creato", CreatedCount: 1}, nil
		},
	}
	im := NewImporter(ImporterOptions{
		Directory:   dir,
		OnCommitted: func(context.Context) { refreshed = true },
	})
	ctx := context.Background()

	assert.Equal(t, StateIdle, im.State())
	require.NoError(t, im.Select("volontari.csv", validCSV(), false))
	assert.Equal(t, StateFileSelected, im.State())
	assert.False(t, im.CanCommit())

	preview, err := im.Preview(ctx)
	require.NoError(t, err)
	assert.True(t, preview.Valid())
	assert.Equal(t, StatePreviewed, im.State())
	assert.True(t, im.CanCommit())

	result, err := im.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, StateCommitted, im.State())
	assert.True(t, refreshed, "commit must fire the refresh callback")
	assert.Nil(t, im.CurrentPreview())
}

func TestImporter_CommitBlockedByRowErrors(t *testing.T) {
	var confirmed bool
	dir := &mocks.MockUserDirectory{
		ImportPreviewFunc: previewWith([]model.RowErrors{{Row: 3, Errors: []string{"email gia presente"}}}),
		ImportConfirmFunc: func(_ context.Context, _ ports.ImportFile) (*model.ImportResult, error) {
			confirmed = true
			return nil, nil
		},
	}
	im := NewImporter(ImporterOptions{Directory: dir})
	ctx := context.Background()

	require.NoError(t, im.Select("volontari.csv", validCSV(), false))
	_, err := im.Preview(ctx)
	require.NoError(t, err)
	assert.False(t, im.CanCommit())

	_, err = im.Commit(ctx)
	require.ErrorIs(t, err, ErrValidationPending)
	assert.False(t, confirmed, "commit with row errors must never reach the network")
}

func TestImporter_CommitWithoutPreview(t *testing.T) {
	im := NewImporter(ImporterOptions{Directory: &mocks.MockUserDirectory{}})

	_, err := im.Commit(context.Background())
	require.ErrorIs(t, err, ErrNoPreview)

	require.NoError(t, im.Select("volontari.csv", validCSV(), false))
	_, err = im.Commit(context.Background())
	assert.ErrorIs(t, err, ErrNoPreview)
}

func TestImporter_FailedCommitRetainsBatch(t *testing.T) {
	attempts := 0
	dir := &mocks.MockUserDirectory{
		ImportPreviewFunc: previewWith(nil),
		ImportConfirmFunc: func(_ context.Context, _ ports.ImportFile) (*model.ImportResult, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("backend timeout")
			}
			return &model.ImportResult{CreatedCount: 1}, nil
		},
	}
	im := NewImporter(ImporterOptions{Directory: dir})
	ctx := context.Background()

	require.NoError(t, im.Select("volontari.csv", validCSV(), false))
	_, err := im.Preview(ctx)
	require.NoError(t, err)

	_, err = im.Commit(ctx)
	require.Error(t, err)
	assert.Equal(t, StateFailed, im.State())

	// Retry without re-selecting or re-previewing.
	result, err := im.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 2, attempts)
}

func TestImporter_SelectReplacesBatch(t *testing.T) {
	dir := &mocks.MockUserDirectory{ImportPreviewFunc: previewWith(nil)}
	im := NewImporter(ImporterOptions{Directory: dir})
	ctx := context.Background()

	require.NoError(t, im.Select("a.csv", validCSV(), false))
	first := im.BatchID()
	_, err := im.Preview(ctx)
	require.NoError(t, err)

	require.NoError(t, im.Select("b.csv", validCSV(), true))
	assert.NotEqual(t, first, im.BatchID(), "re-select starts a new batch")
	assert.Equal(t, StateFileSelected, im.State())
	assert.Nil(t, im.CurrentPreview(), "prior preview discarded")
}

func TestImporter_RejectsWrongExtension(t *testing.T) {
	im := NewImporter(ImporterOptions{Directory: &mocks.MockUserDirectory{}})

	path := filepath.Join(t.TempDir(), "utenti.xlsx")
	require.NoError(t, os.WriteFile(path, validCSV(), 0o644))

	err := im.SelectFile(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".csv")
}

func TestImporter_RejectsOversizedFile(t *testing.T) {
	im := NewImporter(ImporterOptions{Directory: &mocks.MockUserDirectory{}, MaxBytes: 64})

	big := csvHeader + strings.Repeat("mrossi,m@v.it,Mario,Rossi,base,,\n", 10)
	err := im.Select("big.csv", []byte(big), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
	assert.Equal(t, StateIdle, im.State())
}

func TestImporter_RejectsWrongHeader(t *testing.T) {
	im := NewImporter(ImporterOptions{Directory: &mocks.MockUserDirectory{}})

	err := im.Select("bad.csv", []byte("nome,cognome\nMario,Rossi\n"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestImporter_PreviewWithoutFile(t *testing.T) {
	im := NewImporter(ImporterOptions{Directory: &mocks.MockUserDirectory{}})

	_, err := im.Preview(context.Background())
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestImporter_SelectFileReadsFromDisk(t *testing.T) {
	im := NewImporter(ImporterOptions{Directory: &mocks.MockUserDirectory{}})

	path := filepath.Join(t.TempDir(), "volontari.csv")
	require.NoError(t, os.WriteFile(path, validCSV(), 0o644))

	require.NoError(t, im.SelectFile(path, true))
	assert.Equal(t, StateFileSelected, im.State())
}

func TestImporter_Export(t *testing.T) {
	dir := &mocks.MockUserDirectory{
		ExportFunc: func(_ context.Context, filter model.ExportFilter) ([]byte, error) {
			assert.Equal(t, "csv", filter.Query()["format"])
			return []byte(csvHeader), nil
		},
	}
	im := NewImporter(ImporterOptions{Directory: dir})

	out := t.TempDir()
	path, err := im.Export(context.Background(), model.ExportFilter{}, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, ExportFileName(time.Now())), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, csvHeader, string(data))
}

func TestExportFileName(t *testing.T) {
	ts := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "utenti_export_2026-03-09.csv", ExportFileName(ts))
}
