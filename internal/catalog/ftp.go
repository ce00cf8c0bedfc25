package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/jlaffaye/ftp"
)

// Defaults for the exchange's public symbol directory.
const (
	DefaultFTPAddr   = "206.200.251.105:21"
	DefaultFTPUser   = "anonymous"
	DefaultFTPPass   = "anonymous"
	DefaultRemoteDir = "SymbolDirectory"
)

// FTPFetcher downloads catalog files from an FTP server. Each Fetch opens
// its own connection and logs out before returning.
type FTPFetcher struct {
	Addr     string
	User     string
	Password string
	Dir      string
}

// NewFTPFetcher returns a fetcher for the given server and directory.
func NewFTPFetcher(addr, user, password, dir string) *FTPFetcher {
	return &FTPFetcher{Addr: addr, User: user, Password: password, Dir: dir}
}

// Fetch retrieves name from the configured directory.
func (f *FTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	conn, err := ftp.Dial(f.Addr, ftp.DialWithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", f.Addr, err)
	}
	defer conn.Quit()

	if err := conn.Login(f.User, f.Password); err != nil {
		return nil, fmt.Errorf("logging in to %s: %w", f.Addr, err)
	}
	if f.Dir != "" {
		if err := conn.ChangeDir(f.Dir); err != nil {
			return nil, fmt.Errorf("changing to %s: %w", f.Dir, err)
		}
	}

	resp, err := conn.Retr(name)
	if err != nil {
		return nil, fmt.Errorf("retrieving %s: %w", name, err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}
