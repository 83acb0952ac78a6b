package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/budgetwise/backend/internal/ledger"
)

// FileStore keeps the mirrored book in a JSON file.
type FileStore struct {
	Path string
}

// Load reads the book. A missing file is an empty book.
func (f FileStore) Load(ctx context.Context) (ledger.Book, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Book{}, err
	}

	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.Book{}, nil
	} else if err != nil {
		return ledger.Book{}, fmt.Errorf("read mirror %s: %w", f.Path, err)
	}

	var book ledger.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return ledger.Book{}, fmt.Errorf("decode mirror %s: %w", f.Path, err)
	}

	return book, nil
}

// Save writes the book to a temporary file and renames it over the old one.
func (f FileStore) Save(ctx context.Context, book ledger.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mirror: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create mirror directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mirror-*")
	if err != nil {
		return fmt.Errorf("create mirror file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write mirror file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write mirror file: %w", err)
	}

	return os.Rename(tmp.Name(), f.Path)
}
