// seehuhn.de/go/fontmerge - composite fonts from per-script subsets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package charset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Read parses a charset file: UTF-8 text with one entry per line,
// either a literal character or a hexadecimal codepoint in the form
// "U+XXXX".  Blank lines and lines starting with '#' are ignored.
func Read(r io.Reader) (Set, error) {
	res := make(Set)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "U+") || strings.HasPrefix(line, "u+") {
			x, err := strconv.ParseUint(line[2:], 16, 32)
			if err != nil {
				return nil, fmt.Errorf("charset line %d: %q is not a codepoint", lineNo, line)
			}
			res[rune(x)] = struct{}{}
			continue
		}
		c, size := utf8.DecodeRuneInString(line)
		if c == utf8.RuneError || size != len(line) {
			return nil, fmt.Errorf("charset line %d: expected a single character", lineNo)
		}
		res[c] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ReadFile reads a charset file from disk.
func ReadFile(fname string) (Set, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	set, err := Read(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return set, nil
}

// Write writes the set in charset file format, one "U+XXXX" entry per
// line in increasing order.
func (s Set) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range s.Runes() {
		fmt.Fprintf(bw, "U+%04X\n", r)
	}
	return bw.Flush()
}

// WriteFile writes the set to a charset file.
func (s Set) WriteFile(fname string) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := s.Write(fd); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
