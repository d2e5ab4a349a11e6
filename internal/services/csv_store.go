package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"syscall"

	"alfredoptarigan/talentscout/internal/models"
)

// CandidateStore is the append-only home of completed interviews.
type CandidateStore interface {
	Save(record models.CandidateRecord) error
	Count() int
	LoadAll() ([]models.CandidateRecord, error)
	EnsureDataDir() error
	FilePath() string
}

type csvStore struct {
	dataDir  string
	filename string
	mu       sync.Mutex
	log      *slog.Logger
}

func NewCSVStore(dataDir, filename string, log *slog.Logger) CandidateStore {
	return &csvStore{
		dataDir:  dataDir,
		filename: filename,
		log:      log,
	}
}

func (s *csvStore) FilePath() string {
	return filepath.Join(s.dataDir, s.filename)
}

func (s *csvStore) EnsureDataDir() error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	return nil
}

// Save appends record. A new or empty file gets the header first; an existing
// header must match record.Header exactly.
func (s *csvStore) Save(record models.CandidateRecord) error {
	if err := s.save(record); err != nil {
		RecordsSavedTotal.WithLabelValues("failure").Inc()
		s.log.Error("failed to save candidate record",
			slog.String("path", s.FilePath()),
			slog.String("error", err.Error()),
		)
		return err
	}

	RecordsSavedTotal.WithLabelValues("success").Inc()
	s.log.Info("candidate record saved", slog.String("path", s.FilePath()))
	return nil
}

func (s *csvStore) save(record models.CandidateRecord) error {
	if len(record.Header) != len(record.Values) {
		return fmt.Errorf("record has %d columns but %d values", len(record.Header), len(record.Values))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.EnsureDataDir(); err != nil {
		return err
	}

	file, err := os.OpenFile(s.FilePath(), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open candidate file: %w", err)
	}
	defer file.Close()

	// mu only covers this process; the API and the CLI may share the file.
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("failed to lock candidate file: %w", err)
	}
	defer func() { _ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN) }()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat candidate file: %w", err)
	}

	rows := [][]string{record.Values}
	if info.Size() == 0 {
		rows = [][]string{record.Header, record.Values}
	} else {
		header, err := csv.NewReader(file).Read()
		if err != nil {
			return fmt.Errorf("failed to read candidate file header: %w", err)
		}
		if !slices.Equal(header, record.Header) {
			return ErrHeaderMismatch
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to encode candidate record: %w", err)
	}

	// One write per save keeps a row from ever being split by another append.
	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append candidate record: %w", err)
	}

	return nil
}

// Count returns the number of stored rows. It reports 0 instead of failing.
func (s *csvStore) Count() int {
	records, err := s.LoadAll()
	if err != nil {
		s.log.Warn("failed to count candidate records", slog.String("error", err.Error()))
		return 0
	}
	return len(records)
}

// LoadAll returns every stored row in file order, or nothing when the file
// does not exist yet.
func (s *csvStore) LoadAll() ([]models.CandidateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.FilePath())
	if errors.Is(err, os.ErrNotExist) {
		return []models.CandidateRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open candidate file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []models.CandidateRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate file header: %w", err)
	}

	records := []models.CandidateRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read candidate record %d: %w", len(records)+1, err)
		}
		records = append(records, models.CandidateRecord{Header: header, Values: row})
	}

	return records, nil
}

// EncodeCSV renders header and the values of records as a standalone CSV document.
func EncodeCSV(header []string, records []models.CandidateRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Values); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
