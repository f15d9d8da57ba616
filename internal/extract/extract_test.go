package extract

import (
	"testing"
)

func TestForFileDispatch(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"dump.json", "elements"},
		{"notes.md", "markdown"},
		{"notes.markdown", "markdown"},
		{"page.html", "html"},
		{"page.htm", "html"},
		{"report.docx", "docx"},
		{"report.pdf", "pdf"},
		{"data.csv", "csv"},
		{"plain.txt", "text"},
		{"UPPER.MD", "markdown"},
	}
	for _, tt := range tests {
		fe, err := ForFile(tt.filename)
		if err != nil {
			t.Fatalf("ForFile(%q): unexpected error: %v", tt.filename, err)
		}
		if got := fe.Name(); got != tt.want {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}
}

func TestForFileUnsupported(t *testing.T) {
	if _, err := ForFile("archive.zip"); err == nil {
		t.Error("expected error for .zip")
	}
	if _, err := ForFile("noextension"); err == nil {
		t.Error("expected error for missing extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("doc.md") {
		t.Error("expected .md to be supported")
	}
	if IsSupportedExtension("doc.exe") {
		t.Error("expected .exe to be unsupported")
	}
}
