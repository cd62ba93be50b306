package hasher

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const codeSnippet = "const f = () => 1;"

func TestHashFileMissing(t *testing.T) {
	if h, ok := HashFile("/nonexistent/path", true); ok || h != "" {
		t.Errorf("HashFile(missing) = %q, %v; want absence", h, ok)
	}
	if _, ok := DualHashFile("/nonexistent/path"); ok {
		t.Error("DualHashFile(missing) should report absence")
	}
	if _, ok := HashFileMode("/nonexistent/path", Dual); ok {
		t.Error("HashFileMode(missing) should report absence")
	}
	if _, ok := AutoHashFile("/nonexistent/path"); ok {
		t.Error("AutoHashFile(missing) should report absence")
	}
}

func TestHashFileDirectory(t *testing.T) {
	if _, ok := HashFile(t.TempDir(), false); ok {
		t.Error("HashFile(directory) should report absence")
	}
}

func TestHashFileExtensionGate(t *testing.T) {
	tests := []struct {
		name     string
		semantic bool
		wantSem  bool
	}{
		{"data.json", true, false},
		{"README.md", true, false},
		{"noext", true, false},
		{"app.ts", true, true},
		{"main.go", true, true},
		{"lib.rs", true, true},
		{"Main.JAVA", true, false},
		{"app.ts", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.name, codeSnippet)
			got, ok := HashFile(path, tt.semantic)
			if !ok {
				t.Fatal("HashFile reported absence")
			}
			want := TextHash([]byte(codeSnippet))
			if tt.wantSem {
				want = ProteinHash([]byte(codeSnippet))
			}
			if got != want {
				t.Errorf("HashFile(%s, %v) = %q, want %q", tt.name, tt.semantic, got, want)
			}
		})
	}
}

func TestHashFileEmpty(t *testing.T) {
	path := writeFile(t, "empty.ts", "")
	got, ok := HashFile(path, false)
	if !ok {
		t.Fatal("empty file should hash, not report absence")
	}
	if got != TextHash(nil) {
		t.Errorf("HashFile(empty) = %q, want %q", got, TextHash(nil))
	}
}

func TestDualHashFile(t *testing.T) {
	path := writeFile(t, "data.json", codeSnippet)
	d, ok := DualHashFile(path)
	if !ok {
		t.Fatal("DualHashFile reported absence")
	}
	// Dual hashing is not extension gated.
	if d != ComputeDual([]byte(codeSnippet)) {
		t.Errorf("DualHashFile = %+v, want %+v", d, ComputeDual([]byte(codeSnippet)))
	}
	if d.Semantic == "" || d.Textual == "" {
		t.Error("both halves must be populated")
	}
}

func TestHashFileMode(t *testing.T) {
	code := writeFile(t, "a.js", codeSnippet)
	data := writeFile(t, "a.csv", codeSnippet)
	content := []byte(codeSnippet)

	tests := []struct {
		path string
		mode Mode
		want string
	}{
		{code, Textual, TextHash(content)},
		{code, Semantic, ProteinHash(content)},
		{data, Semantic, TextHash(content)},
		{data, Dual, Hash(content, Dual)},
	}
	for _, tt := range tests {
		got, ok := HashFileMode(tt.path, tt.mode)
		if !ok {
			t.Fatalf("HashFileMode(%s, %v) reported absence", tt.path, tt.mode)
		}
		if got != tt.want {
			t.Errorf("HashFileMode(%s, %v) = %q, want %q", filepath.Base(tt.path), tt.mode, got, tt.want)
		}
	}
}

func TestAutoHashFile(t *testing.T) {
	path := writeFile(t, "notes.txt", codeSnippet)
	got, ok := AutoHashFile(path)
	if !ok {
		t.Fatal("AutoHashFile reported absence")
	}
	if got != ProteinHash([]byte(codeSnippet)) {
		t.Errorf("AutoHashFile = %q, want protein hash", got)
	}
}

func TestIsCodeExtension(t *testing.T) {
	for _, p := range []string{"a.js", "a.ts", "a.jsx", "a.tsx", "a.rs", "a.go", "a.java", "a.py", "dir.d/x.py"} {
		if !IsCodeExtension(p) {
			t.Errorf("IsCodeExtension(%q) = false", p)
		}
	}
	for _, p := range []string{"a.json", "a.PY", "a", "a.", "py", "a.pyc", "dir.go/readme"} {
		if IsCodeExtension(p) {
			t.Errorf("IsCodeExtension(%q) = true", p)
		}
	}
}
