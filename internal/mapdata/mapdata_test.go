package mapdata

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/louisbranch/sagashuffle/internal/core/shuffle"
)

const sampleFile = `map_001 - Loanne Castle
{
    "m_flag": 1,
    "m_gid": 10,
    "m_tflag": 0,
    "m_val": 200
}
{"m_flag": 2, "m_gid": 11, "m_tflag": 1, "m_val": "35"}
map_002 - Empty Hall
map_003 - Sinon
{"m_flag": 3, "m_gid": 12, "m_tflag": 0, "m_val": 7}
`

func TestParseReadsFloorsInOrder(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(data.Floors) != 3 {
		t.Fatalf("floors = %d, want 3", len(data.Floors))
	}
	keys := []string{data.Floors[0].Key, data.Floors[1].Key, data.Floors[2].Key}
	if !reflect.DeepEqual(keys, []string{"map_001", "map_002", "map_003"}) {
		t.Fatalf("keys = %v", keys)
	}
	if data.Floors[0].DisplayName != "Loanne Castle" {
		t.Fatalf("display name = %q", data.Floors[0].DisplayName)
	}
	want := []Chest{
		{Flag: 1, GroupID: 10, TypeFlag: 0, Value: 200},
		{Flag: 2, GroupID: 11, TypeFlag: 1, Value: 35},
	}
	if !reflect.DeepEqual(data.Floors[0].Chests, want) {
		t.Fatalf("chests = %+v, want %+v", data.Floors[0].Chests, want)
	}
	if len(data.Floors[1].Chests) != 0 {
		t.Fatalf("empty floor has %d chests", len(data.Floors[1].Chests))
	}
	if data.Len() != 3 {
		t.Fatalf("Len = %d, want 3", data.Len())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "chest before header", input: "{\"m_flag\": 1}\n"},
		{name: "garbage line", input: "map_001 - A\nnot json\n"},
		{name: "unterminated object", input: "map_001 - A\n{\n\"m_flag\": 1,\n"},
		{name: "bad number", input: "map_001 - A\n{\"m_flag\": \"x\"}\n"},
		{name: "empty key", input: " - A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if perr.Line < 1 {
				t.Fatalf("line = %d, want >= 1", perr.Line)
			}
		})
	}
}

func TestParseEmptyFile(t *testing.T) {
	if _, err := Parse(strings.NewReader("\n\n")); !errors.Is(err, ErrNoFloors) {
		t.Fatalf("error = %v, want ErrNoFloors", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	again, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse written file: %v", err)
	}
	if !reflect.DeepEqual(data, again) {
		t.Fatalf("round trip differs:\n%+v\n%+v", data, again)
	}
}

func TestWriteRoundTripEmptyDisplayName(t *testing.T) {
	data := &Data{Floors: []Floor{
		{Key: "f001", DisplayName: "", Chests: []Chest{{Flag: 1, GroupID: 2, TypeFlag: 0, Value: 3}}},
		{Key: "f002", DisplayName: "Hall", Chests: []Chest{{Flag: 4}}},
	}}
	var buf bytes.Buffer
	if err := Write(&buf, data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "f001 - \n") {
		t.Fatalf("header = %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
	again, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse written file: %v", err)
	}
	if !reflect.DeepEqual(data, again) {
		t.Fatalf("round trip differs:\n%+v\n%+v", data, again)
	}
}

func TestParseHeaderWithoutTrailingSpace(t *testing.T) {
	data, err := Parse(strings.NewReader("f001 -\n{\"m_flag\": 1}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if data.Floors[0].Key != "f001" || data.Floors[0].DisplayName != "" {
		t.Fatalf("floor = %+v", data.Floors[0])
	}
	if len(data.Floors[0].Chests) != 1 {
		t.Fatalf("chests = %d, want 1", len(data.Floors[0].Chests))
	}
}

func TestParseRepeatedFloorKeepsLastBlock(t *testing.T) {
	input := `f001 - First
{"m_flag": 1}
{"m_flag": 2}
f002 - Second
{"m_flag": 3}
f001 - First
{"m_flag": 7}
`
	data, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(data.Floors) != 2 {
		t.Fatalf("floors = %d, want 2", len(data.Floors))
	}
	if data.Floors[0].Key != "f001" || data.Floors[1].Key != "f002" {
		t.Fatalf("floor order = %s, %s", data.Floors[0].Key, data.Floors[1].Key)
	}
	if want := []Chest{{Flag: 7}}; !reflect.DeepEqual(data.Floors[0].Chests, want) {
		t.Fatalf("f001 chests = %+v, want %+v", data.Floors[0].Chests, want)
	}
	if want := []Chest{{Flag: 3}}; !reflect.DeepEqual(data.Floors[1].Chests, want) {
		t.Fatalf("f002 chests = %+v, want %+v", data.Floors[1].Chests, want)
	}
}

func TestDataTableAccess(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := data.Get(2); got.Flag != 3 {
		t.Fatalf("Get(2) = %+v, want chest from map_003", got)
	}
	data.Set(2, Chest{Flag: 9})
	if data.Floors[2].Chests[0].Flag != 9 {
		t.Fatal("Set(2) did not write map_003's first chest")
	}

	clone := data.Clone()
	clone.Set(0, Chest{Flag: 42})
	if data.Get(0).Flag == 42 {
		t.Fatal("Clone shares chest storage")
	}
}

func TestContentsShuffleKeepsFloorSizes(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := shuffle.BuildMapping(shuffle.Range(0, data.Len()), shuffle.NewSource(5))
	if err := shuffle.ApplyFieldCopy[Chest](data, m, Contents); err != nil {
		t.Fatalf("ApplyFieldCopy: %v", err)
	}
	if len(data.Floors[0].Chests) != 2 || len(data.Floors[1].Chests) != 0 || len(data.Floors[2].Chests) != 1 {
		t.Fatal("floor chest counts changed")
	}
	flags := map[Number]bool{}
	for i := 0; i < data.Len(); i++ {
		flags[data.Get(i).Flag] = true
	}
	if len(flags) != 3 || !flags[1] || !flags[2] || !flags[3] {
		t.Fatalf("chest contents lost or duplicated: %v", flags)
	}
}

func TestRepairDisplayName(t *testing.T) {
	original := "ロアーヌ城"
	var mangled strings.Builder
	for _, b := range []byte(original) {
		mangled.WriteRune(rune(b))
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "mangled utf-8", in: mangled.String(), want: original},
		{name: "plain ascii", in: "Loanne", want: "Loanne"},
		{name: "already utf-8", in: original, want: original},
		{name: "real latin-1", in: "Café", want: "Café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairDisplayName(tt.in); got != tt.want {
				t.Fatalf("RepairDisplayName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNumberAcceptsFloatsAndStrings(t *testing.T) {
	data, err := Parse(strings.NewReader("f - F\n{\"m_flag\": 4.0, \"m_gid\": \" 5 \", \"m_tflag\": null, \"m_val\": -1}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := data.Floors[0].Chests[0]
	if got != (Chest{Flag: 4, GroupID: 5, TypeFlag: 0, Value: -1}) {
		t.Fatalf("chest = %+v", got)
	}
}
