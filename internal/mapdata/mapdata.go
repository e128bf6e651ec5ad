// Package mapdata reads and writes the per-floor treasure chest file the host
// collects from its map tables.
//
// The file is line oriented. A header line "<floor-key> - <display-name>"
// opens a floor; every JSON object after it, up to the next header, is one
// chest on that floor. Objects may sit on one line or be indented across
// several lines.
package mapdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/sagashuffle/internal/core/shuffle"
)

// HeaderSeparator splits a floor key from its display name.
const HeaderSeparator = " - "

// Number is an integer field that also accepts a quoted numeric string.
type Number int

// UnmarshalJSON accepts 12, 12.0 and "12".
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = Number(v)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int64(f)) {
		return fmt.Errorf("not an integer: %s", string(data))
	}
	*n = Number(int64(f))
	return nil
}

// Chest is one treasure box record.
type Chest struct {
	Flag     Number `json:"m_flag"`
	GroupID  Number `json:"m_gid"`
	TypeFlag Number `json:"m_tflag"`
	Value    Number `json:"m_val"`
}

// Floor is a map floor and the chests placed on it, in file order.
type Floor struct {
	Key         string
	DisplayName string
	Chests      []Chest
}

// Data is a parsed map-data file. Floors keep file order.
type Data struct {
	Floors []Floor
}

// Len returns the number of chests across every floor.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, f := range d.Floors {
		n += len(f.Chests)
	}
	return n
}

// Get returns the chest at flat index i, counting floors in order.
func (d *Data) Get(i int) Chest {
	f, j := d.locate(i)
	return d.Floors[f].Chests[j]
}

// Set replaces the chest at flat index i.
func (d *Data) Set(i int, c Chest) {
	f, j := d.locate(i)
	d.Floors[f].Chests[j] = c
}

func (d *Data) locate(i int) (int, int) {
	if i >= 0 {
		for f, floor := range d.Floors {
			if i < len(floor.Chests) {
				return f, i
			}
			i -= len(floor.Chests)
		}
	}
	panic(fmt.Sprintf("mapdata: chest index %d out of range", i))
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := &Data{Floors: make([]Floor, len(d.Floors))}
	for i, f := range d.Floors {
		out.Floors[i] = Floor{
			Key:         f.Key,
			DisplayName: f.DisplayName,
			Chests:      append([]Chest(nil), f.Chests...),
		}
	}
	return out
}

// Contents moves everything a chest holds; the chest keeps its place on the floor.
var Contents = shuffle.FieldGroup[Chest]{
	Name:      "chest.contents",
	Direction: shuffle.Gather,
	Copy: func(dst *Chest, src Chest) {
		*dst = src
	},
}

var _ shuffle.Table[Chest] = (*Data)(nil)
