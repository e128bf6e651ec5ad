// Package tuning holds the quality-of-life settings and the formulas the
// game patch applies with them.
package tuning

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	apperrors "github.com/louisbranch/sagashuffle/internal/platform/errors"
)

// Settings is the persisted settings file. Field names follow the file the
// patch has always written.
type Settings struct {
	SkipLogos bool `json:"skipLogos"`

	NormalFPS int `json:"normalFps"`
	FastFPS   int `json:"fastFps"`
	TurboFPS  int `json:"turboFps"`

	// BattleSpeed and FieldSpeed index into the three frame rates.
	BattleSpeed int `json:"battleSpeed"`
	FieldSpeed  int `json:"fieldSpeed"`

	ENTextSpeed int `json:"enTextSpeed"`
	JPTextSpeed int `json:"jpTextSpeed"`

	MapAnywhere bool `json:"mapAnywhere"`

	FastGrow      int `json:"fastGrow"`
	FastGrowSkill int `json:"fastGrowSkill"`
	FastGrowEnemy int `json:"fastGrowEnemy"`

	SparkRateMultiplier   float64 `json:"sparkRateMultiplier"`
	AcquireRateMultiplier float64 `json:"acquireRateMultiplier"`

	// Speedrun turns every tweak off.
	Speedrun bool `json:"speedrun"`
}

// Defaults returns the settings written when no file exists.
func Defaults() Settings {
	return Settings{
		SkipLogos:             true,
		NormalFPS:             30,
		FastFPS:               60,
		TurboFPS:              90,
		ENTextSpeed:           1,
		JPTextSpeed:           2,
		SparkRateMultiplier:   1,
		AcquireRateMultiplier: 1,
	}
}

// Load reads the settings file at path. A missing file is created with
// Defaults. Keys absent from the file keep their default value.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s := Defaults()
		if err := Save(path, s); err != nil {
			return Settings{}, err
		}
		return s, nil
	}
	if err != nil {
		return Settings{}, invalid(path, err)
	}
	s := Defaults()
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, invalid(path, err)
	}
	return s, nil
}

// Save writes s to path as indented JSON.
func Save(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

func invalid(path string, err error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeSettingsInvalid, "read settings", map[string]string{"Path": path}, err)
}
