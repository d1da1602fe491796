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
	"io"
	"strconv"
	"strings"
)

// FromUnihan derives a unified CJK reference charset from Unihan
// database records ("U+XXXX<TAB>key<TAB>value" per line).
//
// A codepoint is kept when it carries a kGB0 mapping (GB 2312), a kJis0
// mapping (JIS X 0208), or a kBigFive mapping within the level-1 block
// A440..C67E.
func FromUnihan(r io.Reader) (Set, error) {
	res := make(Set)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 3 || !strings.HasPrefix(fields[0], "U+") {
			continue
		}

		var keep bool
		switch fields[1] {
		case "kGB0", "kJis0":
			keep = true
		case "kBigFive":
			code, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 16, 32)
			keep = err == nil && code >= 0xA440 && code <= 0xC67E
		}
		if !keep {
			continue
		}

		x, err := strconv.ParseUint(fields[0][2:], 16, 32)
		if err != nil {
			continue
		}
		res[rune(x)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
