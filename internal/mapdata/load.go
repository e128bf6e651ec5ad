package mapdata

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	apperrors "github.com/louisbranch/sagashuffle/internal/platform/errors"
)

// LoadFile reads and parses the map-data file at path. A missing file is
// reported as MAPDATA_MISSING and anything unreadable or unparsable as
// MAPDATA_MALFORMED.
func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		meta := map[string]string{"Path": path}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeMapDataMissing, "open map data", meta, err)
		}
		return nil, apperrors.WrapWithMetadata(apperrors.CodeMapDataMalformed, "open map data", withLine(meta, 0), err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		line := 0
		var perr *ParseError
		if errors.As(err, &perr) {
			line = perr.Line
		}
		return nil, apperrors.WrapWithMetadata(apperrors.CodeMapDataMalformed, "parse map data",
			withLine(map[string]string{"Path": path}, line), err)
	}
	return data, nil
}

// WriteFile writes d to path, replacing any existing file.
func WriteFile(path string, d *Data) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, d); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func withLine(meta map[string]string, line int) map[string]string {
	meta["Line"] = strconv.Itoa(line)
	return meta
}
