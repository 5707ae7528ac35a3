package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func collect(t *testing.T, dir string) []Candidate {
	t.Helper()
	var out []Candidate
	for c, err := range Scan(dir) {
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		out = append(out, c)
	}
	return out
}

func TestScan_ExtensionFiltering(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.txt", "c.TGA", "d.jpeg"} {
		touch(t, dir, name)
	}

	var names []string
	for _, c := range collect(t, dir) {
		names = append(names, c.Name)
	}
	sort.Strings(names)

	want := []string{"a.png", "c.TGA", "d.jpeg"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("candidate %d: got %s, want %s", i, names[i], want[i])
		}
	}
}

func TestScan_AllRecognizedExtensions(t *testing.T) {
	dir := t.TempDir()
	exts := []string{".png", ".jpg", ".jpeg", ".tga", ".bmp", ".tif", ".tiff"}
	for i, ext := range exts {
		touch(t, dir, string(rune('a'+i))+ext)
	}
	touch(t, dir, "z.gif")
	touch(t, dir, "README")

	got := collect(t, dir)
	if len(got) != len(exts) {
		t.Fatalf("got %d candidates, want %d", len(got), len(exts))
	}
}

func TestScan_LowerCasesExt(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Rock_Normal.TIFF")

	got := collect(t, dir)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Name != "Rock_Normal.TIFF" || got[0].Ext != ".tiff" {
		t.Errorf("got %+v", got[0])
	}
}

func TestScan_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "folder.png"), 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	touch(t, dir, "real.png")

	got := collect(t, dir)
	if len(got) != 1 || got[0].Name != "real.png" {
		t.Errorf("got %+v, want only real.png", got)
	}
}

func TestScan_NotRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	touch(t, sub, "deep.png")

	if got := collect(t, dir); len(got) != 0 {
		t.Errorf("got %+v, want no candidates", got)
	}
}

func TestScan_ManyEntries(t *testing.T) {
	dir := t.TempDir()
	n := readBatch*2 + 5
	for i := 0; i < n; i++ {
		touch(t, dir, fmt.Sprintf("tex%03d.png", i))
	}

	if got := collect(t, dir); len(got) != n {
		t.Errorf("got %d candidates, want %d", len(got), n)
	}
}

func TestScan_EarlyStop(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		touch(t, dir, name)
	}

	count := 0
	for range Scan(dir) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("got %d iterations, want 1", count)
	}
}

func TestScan_Restartable(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png")
	touch(t, dir, "b.bmp")

	seq := Scan(dir)
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 2 || second != 2 {
		t.Errorf("got %d then %d candidates, want 2 both times", first, second)
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	errs := 0
	for c, err := range Scan(filepath.Join(t.TempDir(), "missing")) {
		if err == nil {
			t.Errorf("unexpected candidate %+v", c)
			continue
		}
		errs++
	}
	if errs != 1 {
		t.Errorf("got %d errors, want 1", errs)
	}
}
