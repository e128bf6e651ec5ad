package mapdata

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoFloors is returned when a file holds no floor header at all.
var ErrNoFloors = errors.New("map data has no floors")

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("map data line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("map data line %d: %s", e.Line, e.Msg)
}

// Unwrap returns the decoding error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a map-data file.
func Parse(r io.Reader) (*Data, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	data := &Data{}
	seen := map[string]int{}
	current := -1

	var (
		object    strings.Builder
		depth     int
		startLine int
		lineNo    int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if depth == 0 {
			switch {
			case trimmed == "":
				continue
			case strings.HasPrefix(trimmed, "{"):
				if current < 0 {
					return nil, &ParseError{Line: lineNo, Msg: "chest before any floor header"}
				}
				object.Reset()
				startLine = lineNo
			case isHeader(line):
				key, name := splitHeader(line)
				if key == "" {
					return nil, &ParseError{Line: lineNo, Msg: "floor header has empty key"}
				}
				// A repeated floor restarts its chest list in its first position.
				if idx, ok := seen[key]; ok {
					data.Floors[idx].DisplayName = RepairDisplayName(name)
					data.Floors[idx].Chests = nil
					current = idx
					continue
				}
				data.Floors = append(data.Floors, Floor{
					Key:         key,
					DisplayName: RepairDisplayName(name),
				})
				current = len(data.Floors) - 1
				seen[key] = current
				continue
			default:
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unexpected line %q", trimmed)}
			}
		}

		object.WriteString(line)
		object.WriteByte('\n')
		depth += braceDelta(line)
		if depth < 0 {
			return nil, &ParseError{Line: lineNo, Msg: "unbalanced closing brace"}
		}
		if depth > 0 {
			continue
		}

		var chest Chest
		if err := json.Unmarshal([]byte(object.String()), &chest); err != nil {
			return nil, &ParseError{Line: startLine, Msg: "decode chest", Err: err}
		}
		data.Floors[current].Chests = append(data.Floors[current].Chests, chest)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read map data: %w", err)
	}
	if depth > 0 {
		return nil, &ParseError{Line: startLine, Msg: "unterminated chest object"}
	}
	if len(data.Floors) == 0 {
		return nil, ErrNoFloors
	}
	return data, nil
}

// isHeader reports whether line is a floor header. The display name may be
// empty, and the trailing space after the separator may have been stripped.
func isHeader(line string) bool {
	return strings.Contains(line, HeaderSeparator) ||
		strings.HasSuffix(strings.TrimRight(line, " \t"), strings.TrimRight(HeaderSeparator, " "))
}

// splitHeader returns the trimmed key and display name of a header line.
func splitHeader(line string) (string, string) {
	if key, name, ok := strings.Cut(line, HeaderSeparator); ok {
		return strings.TrimSpace(key), strings.TrimSpace(name)
	}
	key := strings.TrimSuffix(strings.TrimRight(line, " \t"), strings.TrimRight(HeaderSeparator, " "))
	return strings.TrimSpace(key), ""
}

// braceDelta counts object nesting change on a line, ignoring braces inside
// JSON strings.
func braceDelta(line string) int {
	delta := 0
	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}
