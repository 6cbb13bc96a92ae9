package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"rblint/internal/diag"
	"rblint/internal/source"
)

// Bump when the payload layout changes; stale entries are ignored.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file lint results keyed by content hash. A file
// with identical bytes always yields identical diagnostics, so hits need
// no revalidation beyond the schema check. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Span File IDs are assigned per run, so cached spans keep offsets only
// and are rebound to the live file on lookup.
type spanPayload struct {
	Start uint32
	End   uint32
}

type notePayload struct {
	Span spanPayload
	Msg  string
}

type editPayload struct {
	Span    spanPayload
	NewText string
	OldText string
}

type fixPayload struct {
	ID            string
	Title         string
	Applicability uint8
	IsPreferred   bool
	Edits         []editPayload
}

type diagnosticPayload struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  spanPayload
	Notes    []notePayload
	Fixes    []fixPayload
}

type filePayload struct {
	Schema      uint16
	Diagnostics []diagnosticPayload
}

// OpenDiskCache initializes the cache at the standard user location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes the cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(hash [32]byte) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(hash[:])+".mp")
}

// Store writes the bag's diagnostics for the file's current content.
func (c *DiskCache) Store(file *source.File, bag *diag.Bag) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := filePayload{Schema: diskCacheSchemaVersion}
	for _, d := range bag.Items() {
		payload.Diagnostics = append(payload.Diagnostics, packDiagnostic(d))
	}

	p := c.pathFor(file.Hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace keeps concurrent readers consistent.
	return os.Rename(f.Name(), p)
}

// Lookup loads cached diagnostics into bag, rebinding spans to file.
// It reports whether a usable entry was found.
func (c *DiskCache) Lookup(file *source.File, bag *diag.Bag) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(file.Hash))
	if err != nil {
		return false
	}
	defer f.Close()

	var payload filePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return false
	}
	for _, dp := range payload.Diagnostics {
		bag.Add(unpackDiagnostic(dp, file.ID))
	}
	return true
}

// DropAll wipes the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.RemoveAll(filepath.Join(c.dir, "files"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func packSpan(sp source.Span) spanPayload {
	return spanPayload{Start: sp.Start, End: sp.End}
}

func packDiagnostic(d diag.Diagnostic) diagnosticPayload {
	dp := diagnosticPayload{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Message:  d.Message,
		Primary:  packSpan(d.Primary),
	}
	for _, n := range d.Notes {
		dp.Notes = append(dp.Notes, notePayload{Span: packSpan(n.Span), Msg: n.Msg})
	}
	for _, f := range d.Fixes {
		fp := fixPayload{
			ID:            f.ID,
			Title:         f.Title,
			Applicability: uint8(f.Applicability),
			IsPreferred:   f.IsPreferred,
		}
		for _, e := range f.Edits {
			fp.Edits = append(fp.Edits, editPayload{
				Span:    packSpan(e.Span),
				NewText: e.NewText,
				OldText: e.OldText,
			})
		}
		dp.Fixes = append(dp.Fixes, fp)
	}
	return dp
}

func unpackDiagnostic(dp diagnosticPayload, fileID source.FileID) diag.Diagnostic {
	bind := func(sp spanPayload) source.Span {
		return source.Span{File: fileID, Start: sp.Start, End: sp.End}
	}

	d := diag.Diagnostic{
		Severity: diag.Severity(dp.Severity),
		Code:     diag.Code(dp.Code),
		Message:  dp.Message,
		Primary:  bind(dp.Primary),
	}
	for _, n := range dp.Notes {
		d.Notes = append(d.Notes, diag.Note{Span: bind(n.Span), Msg: n.Msg})
	}
	for _, fp := range dp.Fixes {
		f := diag.Fix{
			ID:            fp.ID,
			Title:         fp.Title,
			Applicability: diag.FixApplicability(fp.Applicability),
			IsPreferred:   fp.IsPreferred,
		}
		for _, e := range fp.Edits {
			f.Edits = append(f.Edits, diag.TextEdit{
				Span:    bind(e.Span),
				NewText: e.NewText,
				OldText: e.OldText,
			})
		}
		d.Fixes = append(d.Fixes, f)
	}
	return d
}
