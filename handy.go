/*
 * handy.go, part of goCSG.
 *
 * Copyright 2026 The goCSG Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package csg

import (
	"math"
	"strconv"
	"strings"
)

// Deg2Rad converts an angle from degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

// Rad2Deg converts an angle from radians to degrees.
func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}

// ParseRange returns the integers described by the range expression r, in
// the order they appear. r is a comma-separated list of elements, each of which
// can be a number ("7"), an inclusive range ("1-3" or "1:3") or a range with
// a step ("1:2:9", which gives 1, 3, 5, 7, 9). Blanks around elements are
// ignored. Repeated numbers are kept.
func ParseRange(r string) ([]int, error) {
	ret := make([]int, 0, 4)
	if strings.TrimSpace(r) == "" {
		return nil, newError(ErrRangeSyntax, "ParseRange", "empty range expression")
	}
	for _, elem := range strings.Split(r, ",") {
		elem = strings.TrimSpace(elem)
		var fields []string
		switch {
		case strings.Contains(elem, ":"):
			fields = strings.Split(elem, ":")
		case strings.Index(elem, "-") > 0:
			//a leading '-' is a sign, not a range.
			i := strings.Index(elem, "-")
			fields = []string{elem[:i], elem[i+1:]}
		default:
			fields = []string{elem}
		}
		nums := make([]int, len(fields))
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, newError(ErrRangeSyntax, "ParseRange", "can't parse %q in %q", elem, r)
			}
			nums[i] = n
		}
		begin, step, end := nums[0], 1, nums[0]
		switch len(nums) {
		case 1:
		case 2:
			end = nums[1]
		case 3:
			step, end = nums[1], nums[2]
		default:
			return nil, newError(ErrRangeSyntax, "ParseRange", "too many fields in %q", elem)
		}
		if step <= 0 || end < begin {
			return nil, newError(ErrRangeSyntax, "ParseRange", "%q is not an increasing range", elem)
		}
		for i := begin; i <= end; i += step {
			ret = append(ret, i)
		}
	}
	return ret, nil
}

// Wildcmp reports whether s matches the shell-style pattern, where '*'
// matches any sequence of characters (including none) and '?' matches
// exactly one character. Every other character matches only itself.
func Wildcmp(pattern, s string) bool {
	p := []rune(pattern)
	str := []rune(s)
	pi, si := 0, 0
	star, mark := -1, 0
	for si < len(str) {
		switch {
		case pi < len(p) && p[pi] == '*':
			star = pi
			mark = si
			pi++
		case pi < len(p) && (p[pi] == '?' || p[pi] == str[si]):
			pi++
			si++
		case star >= 0:
			//backtrack: let the last star eat one more character.
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
