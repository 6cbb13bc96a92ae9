package driver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rblint/internal/config"
	"rblint/internal/diag"
	"rblint/internal/rules"
	"rblint/internal/rules/strsub"
)

func defaultRules() []rules.Enabled {
	return []rules.Enabled{{Rule: strsub.New(), Severity: diag.SevWarning}}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCheckDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app.rb":         "s.gsub('a', 'b')\n",
		"lib/helpers.rb": "x = 1\ny = s.gsub(/ /, '')\n",
		"lib/clean.rb":   "puts 'hello'\n",
		"README.md":      "not ruby\n",
		".git/hook.rb":   "s.gsub('a', 'b')\n",
	})

	res, err := CheckDir(context.Background(), dir, Options{Rules: defaultRules()})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("linted %d files, want 3 (hidden dirs and non-ruby skipped)", len(res.Files))
	}
	// Sorted by path.
	for i := 1; i < len(res.Files); i++ {
		if res.Files[i-1].Path > res.Files[i].Path {
			t.Fatalf("file order not deterministic: %q before %q", res.Files[i-1].Path, res.Files[i].Path)
		}
	}

	bag := res.Bag(config.DefaultMaxDiagnostics)
	if bag.Len() != 2 {
		t.Fatalf("got %d diagnostics, want 2", bag.Len())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.StyStringReplacement {
			t.Errorf("unexpected code %s", d.Code.ID())
		}
	}
}

func TestCheckDirExcludes(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app.rb":               "s.gsub('a', 'b')\n",
		"vendor/gems/dep.rb":   "s.gsub('a', 'b')\n",
		"spec/fixtures/bad.rb": "s.gsub('a', 'b')\n",
		"spec/app_spec.rb":     "s.gsub('a', 'b')\n",
	})

	cfg := config.Default()
	cfg.Exclude = []string{"vendor", "spec/fixtures/*.rb"}

	res, err := CheckDir(context.Background(), dir, Options{Config: cfg, Rules: defaultRules()})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("linted %d files, want 2 (excludes honored)", len(res.Files))
	}
	for _, f := range res.Files {
		rel, _ := filepath.Rel(dir, f.Path)
		if rel != "app.rb" && rel != filepath.Join("spec", "app_spec.rb") {
			t.Errorf("excluded file was linted: %s", rel)
		}
	}
}

func TestCheckFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"one.rb": "s.gsub!('x', 'y')\n"})

	res, err := CheckFile(context.Background(), filepath.Join(dir, "one.rb"), Options{Rules: defaultRules()})
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	bag := res.Bag(config.DefaultMaxDiagnostics)
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics", bag.Len())
	}
	if bag.Items()[0].Message != "Use `tr!` instead of `gsub!`." {
		t.Errorf("message = %q", bag.Items()[0].Message)
	}
}

func TestCheckDirEmpty(t *testing.T) {
	res, err := CheckDir(context.Background(), t.TempDir(), Options{Rules: defaultRules()})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("files = %d", len(res.Files))
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	dir := writeTree(t, map[string]string{"app.rb": "s.gsub('a', 'b')\n"})
	opts := Options{Rules: defaultRules(), Cache: cache}

	first, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Files[0].FromCache {
		t.Fatal("first run served from cache")
	}

	second, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Files[0].FromCache {
		t.Fatal("second run not served from cache")
	}
	if !reflect.DeepEqual(first.Files[0].Bag.Items(), second.Files[0].Bag.Items()) {
		t.Errorf("cached diagnostics differ:\n%+v\n%+v",
			first.Files[0].Bag.Items(), second.Files[0].Bag.Items())
	}

	// Content change invalidates by key.
	if err := os.WriteFile(filepath.Join(dir, "app.rb"), []byte("puts 'ok'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	third, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.Files[0].FromCache {
		t.Fatal("modified file served from cache")
	}
	if third.Files[0].Bag.Len() != 0 {
		t.Fatalf("diagnostics after edit: %d", third.Files[0].Bag.Len())
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := writeTree(t, map[string]string{"app.rb": "s.gsub('a', 'b')\n"})
	opts := Options{Rules: defaultRules(), Cache: cache}

	if _, err := CheckDir(context.Background(), dir, opts); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	res, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].FromCache {
		t.Fatal("hit after DropAll")
	}
}

func TestCheckDirCanceled(t *testing.T) {
	dir := writeTree(t, map[string]string{"app.rb": "s.gsub('a', 'b')\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := CheckDir(ctx, dir, Options{Rules: defaultRules()}); err == nil {
		t.Fatal("canceled context not propagated")
	}
}
