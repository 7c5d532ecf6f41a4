package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/schoolsby-tools/teacherscrape/pkg/models"
)

func TestWriteSubdomains(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdomains.txt")
	subdomains := []string{
		"https://a.schools.by",
		"https://b.schools.by",
		"",
	}

	if err := WriteSubdomains(path, subdomains); err != nil {
		t.Fatalf("WriteSubdomains failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}

	want := "https://a.schools.by\nhttps://b.schools.by\n\n"
	if string(data) != want {
		t.Errorf("Content mismatch: got %q, want %q", string(data), want)
	}
}

func TestWriteSubdomains_EmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdomains.txt")

	if err := WriteSubdomains(path, nil); err != nil {
		t.Fatalf("WriteSubdomains failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Expected empty file, got %q", string(data))
	}
}

func TestWriteTeachers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teachers.json")
	teachers := []models.Teacher{
		{Name: "Jane Doe", ImgURL: "https://a.schools.by/x.jpg"},
		{Name: "Иванова Мария"},
		{ImgURL: "https://b.schools.by/y.jpg?v=1&s=2"},
	}

	if err := WriteTeachers(path, teachers); err != nil {
		t.Fatalf("WriteTeachers failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}

	want := `[{"name":"Jane Doe","img_url":"https://a.schools.by/x.jpg"},` +
		`{"name":"Иванова Мария"},` +
		`{"img_url":"https://b.schools.by/y.jpg?v=1&s=2"}]` + "\n"
	if string(data) != want {
		t.Errorf("Content mismatch:\ngot  %q\nwant %q", string(data), want)
	}
}

func TestWriteTeachers_EmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teachers.json")

	if err := WriteTeachers(path, nil); err != nil {
		t.Fatalf("WriteTeachers failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", string(data))
	}
}
