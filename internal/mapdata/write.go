package mapdata

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Write emits d in the map-data format with indented chest objects, the
// layout the host collector produces.
func Write(w io.Writer, d *Data) error {
	if d == nil {
		return fmt.Errorf("map data is required")
	}
	bw := bufio.NewWriter(w)
	for _, floor := range d.Floors {
		if _, err := fmt.Fprintf(bw, "%s%s%s\n", floor.Key, HeaderSeparator, floor.DisplayName); err != nil {
			return err
		}
		for _, chest := range floor.Chests {
			payload, err := json.MarshalIndent(chest, "", "    ")
			if err != nil {
				return fmt.Errorf("encode chest on %s: %w", floor.Key, err)
			}
			if _, err := bw.Write(append(payload, '\n')); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
