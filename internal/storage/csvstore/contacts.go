package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/pkg/log"
)

const (
	ContactRegisteredMsg = "Your contact information was registered, a human representative will call you back soon"
	ContactExistsMsg     = "I can see that you already requested for human representative, I will try to hurry " +
		"out human customer services to call you back!"
)

var contactsHeader = []string{"Full Name", "Email", "Phone Number"}

var _ core.ContactRepository = (*ContactStore)(nil)

// ContactStore is an append-only CSV file of callback requests.
// Appends are serialized within the process only; separate processes sharing the file can race.
type ContactStore struct {
	path string
	mu   sync.Mutex
}

func NewContactStore(path string) *ContactStore {
	return &ContactStore{path: path}
}

func (s *ContactStore) Add(ctx context.Context, rec core.ContactRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows()
	if err != nil {
		return "", err
	}

	for _, row := range rows {
		if row == rec {
			log.FromCtx(ctx).Info().Str("email", rec.Email).Msg("contact already registered")
			return ContactExistsMsg, nil
		}
	}

	if err := s.append(rec); err != nil {
		return "", err
	}

	log.FromCtx(ctx).Info().Str("email", rec.Email).Msg("contact registered")
	return ContactRegisteredMsg, nil
}

func (s *ContactStore) List(ctx context.Context) ([]core.ContactRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readRows()
}

func (s *ContactStore) readRows() ([]core.ContactRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open contacts file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []core.ContactRecord
	for first := true; ; first = false {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read contacts file: %w", err)
		}
		if first && isHeader(row, contactsHeader) {
			continue
		}
		if len(row) != 3 {
			continue
		}
		rows = append(rows, core.ContactRecord{FullName: row[0], Email: row[1], PhoneNumber: row[2]})
	}
	return rows, nil
}

func (s *ContactStore) append(rec core.ContactRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create contacts directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open contacts file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat contacts file: %w", err)
	}
	isNew := info.Size() == 0

	// Hand-edited files may lack the final newline.
	if !isNew {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, info.Size()-1); err != nil {
			return fmt.Errorf("failed to read contacts file: %w", err)
		}
		if last[0] != '\n' {
			if _, err := f.Write([]byte{'\n'}); err != nil {
				return fmt.Errorf("failed to terminate last contact: %w", err)
			}
		}
	}

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(contactsHeader); err != nil {
			return fmt.Errorf("failed to write contacts header: %w", err)
		}
	}
	if err := w.Write([]string{rec.FullName, rec.Email, rec.PhoneNumber}); err != nil {
		return fmt.Errorf("failed to write contact: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush contacts file: %w", err)
	}
	return f.Sync()
}

func isHeader(row, header []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i := range row {
		if row[i] != header[i] {
			return false
		}
	}
	return true
}
