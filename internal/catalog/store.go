package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stonks/internal/domain"
	"stonks/internal/errs"
	"stonks/internal/util"
)

// Fetcher retrieves a catalog file by name from the remote directory.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Store keeps catalog files in a local directory and refreshes them through
// a Fetcher when they are missing or stale.
type Store struct {
	dir        string
	fetcher    Fetcher
	calendar   *util.TradingCalendar
	logger     *slog.Logger
	now        func() time.Time
	retries    int
	retryDelay time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithCalendar sets the calendar used for staleness checks.
func WithCalendar(cal *util.TradingCalendar) Option {
	return func(s *Store) { s.calendar = cal }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRetry sets how many fetch attempts a refresh makes and the initial
// backoff between them.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *Store) {
		s.retries = attempts
		s.retryDelay = delay
	}
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, fetcher Fetcher, opts ...Option) *Store {
	s := &Store{
		dir:     dir,
		fetcher: fetcher,
		logger:  util.DiscardLogger(),
		now:     time.Now,
		retries: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the local catalog directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the local path of the named catalog file.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

// Load returns the current contents of the catalog file described by f. A
// file that cannot be read is fetched first; a file that is stale is
// fetched again and re-read. Errors are of kind errs.KindCatalogInit.
func Load[T any](ctx context.Context, s *Store, f Format[T]) (File[T], error) {
	data, err := os.ReadFile(s.Path(f.Filename))
	if err != nil {
		s.logger.Info("catalog file missing, fetching", "file", f.Filename, "error", err)
		data, err = s.refreshAndRead(ctx, f.Filename)
		if err != nil {
			return File[T]{}, err
		}
		return ParseFile(string(data), f, s.now()), nil
	}

	file := ParseFile(string(data), f, s.now())
	if !IsStale(file.Created, s.now(), s.calendar) {
		return file, nil
	}

	s.logger.Info("catalog file stale, fetching",
		"file", f.Filename,
		"created", file.Created.Format(time.DateOnly),
	)
	data, err = s.refreshAndRead(ctx, f.Filename)
	if err != nil {
		return File[T]{}, err
	}
	return ParseFile(string(data), f, s.now()), nil
}

// Symbols loads nasdaqlisted.txt and appends otherlisted.txt. Only a
// failure of the NASDAQ file is returned; the other-listed file is best
// effort.
func (s *Store) Symbols(ctx context.Context) (File[domain.Symbol], error) {
	file, err := Load(ctx, s, NasdaqListed)
	if err != nil {
		return File[domain.Symbol]{}, err
	}

	other, err := Load(ctx, s, OtherListed)
	if err != nil {
		s.logger.Warn("skipping other-listed symbols", "error", err)
		return file, nil
	}
	file.Records = append(file.Records, other.Records...)
	file.Dropped += other.Dropped
	return file, nil
}

// Options loads options.txt.
func (s *Store) Options(ctx context.Context) (File[domain.OptionListing], error) {
	return Load(ctx, s, Options)
}

// Refresh fetches the named file and atomically replaces the local copy.
func (s *Store) Refresh(ctx context.Context, name string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errs.CatalogInit("creating catalog directory", err)
	}

	var data []byte
	err := util.Retry(ctx, s.retries, s.retryDelay, func() error {
		var ferr error
		data, ferr = s.fetcher.Fetch(ctx, name)
		if ferr != nil {
			s.logger.Warn("catalog fetch failed", "file", name, "error", ferr)
		}
		return ferr
	})
	if err != nil {
		return errs.CatalogInit("fetching "+name, err)
	}

	if err := writeAtomic(s.Path(name), data); err != nil {
		return errs.CatalogInit("writing "+name, err)
	}
	s.logger.Info("catalog file refreshed", "file", name, "bytes", len(data))
	return nil
}

// RefreshAll refreshes every known catalog file, stopping at the first
// failure.
func (s *Store) RefreshAll(ctx context.Context) error {
	for _, name := range []string{NasdaqListedFile, OtherListedFile, OptionsFile} {
		if err := s.Refresh(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) refreshAndRead(ctx context.Context, name string) ([]byte, error) {
	if err := s.Refresh(ctx, name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, errs.CatalogInit("reading "+name, err)
	}
	return data, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
