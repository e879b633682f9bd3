package tktest

import (
	"strconv"
	"strings"
)

// entryIndex resolves an entry index to a rune offset in [0, n].
func entryIndex(s string, n int) (int, error) {
	switch s {
	case "end", "insert":
		return n, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errorf("bad entry index %q", s)
	}
	return max(0, min(i, n)), nil
}

// listIndex resolves a listbox index. "end" names the slot after the last
// element when inserting and the last element otherwise.
func listIndex(s string, size int, insert bool) (int, error) {
	switch s {
	case "end":
		if insert {
			return size, nil
		}
		return size - 1, nil
	case "active", "anchor":
		return 0, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errorf("bad listbox index %q: must be active, anchor, end, @x,y, or a number", s)
	}
	if insert {
		return max(0, min(i, size)), nil
	}
	return i, nil
}

// textIndex resolves a text index ("line.char", "line.end", "end",
// "end-1c" or "insert") to a rune offset into buf, which always ends with
// the newline Tk keeps after the last line.
func textIndex(s string, buf []rune) (int, error) {
	switch s {
	case "end":
		return len(buf), nil
	case "end-1c", "insert":
		return len(buf) - 1, nil
	}
	lineStr, charStr, ok := strings.Cut(s, ".")
	if !ok {
		return 0, errorf("bad text index %q", s)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return 0, errorf("bad text index %q", s)
	}

	// offsets of the first rune of each line
	starts := []int{0}
	for i, r := range buf[:len(buf)-1] {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	if line < 1 {
		return 0, nil
	}
	if line > len(starts) {
		return len(buf) - 1, nil
	}
	start := starts[line-1]
	end := len(buf) - 1
	if line < len(starts) {
		end = starts[line] - 1
	}

	if charStr == "end" {
		return end, nil
	}
	char, err := strconv.Atoi(charStr)
	if err != nil {
		return 0, errorf("bad text index %q", s)
	}
	return start + max(0, min(char, end-start)), nil
}
