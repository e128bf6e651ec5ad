package mapdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/louisbranch/sagashuffle/internal/platform/errors"
)

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt"))
	if got := apperrors.CodeOf(err); got != apperrors.CodeMapDataMissing {
		t.Fatalf("code = %s, want %s", got, apperrors.CodeMapDataMissing)
	}
}

func TestLoadFileMalformedCarriesLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("{\"m_flag\": 1}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadFile(path)
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.Code != apperrors.CodeMapDataMalformed {
		t.Fatalf("code = %s", domainErr.Code)
	}
	if domainErr.Metadata["Line"] != "1" {
		t.Fatalf("line = %q, want 1", domainErr.Metadata["Line"])
	}
}

func TestWriteFileThenLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chests.txt")
	want := &Data{Floors: []Floor{{
		Key:         "map_010",
		DisplayName: "Melvir",
		Chests:      []Chest{{Flag: 4, GroupID: 2, TypeFlag: 1, Value: 99}},
	}}}
	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Len() != 1 || got.Get(0) != want.Get(0) {
		t.Fatalf("chest = %+v, want %+v", got.Get(0), want.Get(0))
	}
	if got.Floors[0].DisplayName != "Melvir" {
		t.Fatalf("display name = %q", got.Floors[0].DisplayName)
	}
}
