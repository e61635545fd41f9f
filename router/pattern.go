// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import "regexp"

// entry is a pattern bound to a handler.
type entry struct {
	pattern string
	re      *regexp.Regexp // nil when pattern is not a valid expression
	handler HandlerFunc
}

// matches reports whether s is the pattern itself or fully matches it as a
// regular expression.
func (e *entry) matches(s string) bool {
	if s == e.pattern {
		return true
	}

	return e.re != nil && e.re.MatchString(s)
}

// compilePattern anchors pattern at both ends. Invalid expressions yield nil
// and are matched literally only.
func compilePattern(pattern string) *regexp.Regexp {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil
	}

	return re
}

// entries is an insertion-ordered pattern map. Re-adding a pattern replaces
// its handler in place.
type entries struct {
	order  []*entry
	byName map[string]*entry
}

func (l *entries) set(pattern string, h HandlerFunc) {
	if h == nil {
		panic("router: nil handler for pattern " + pattern)
	}
	if l.byName == nil {
		l.byName = make(map[string]*entry)
	}
	if e, ok := l.byName[pattern]; ok {
		e.handler = h
		return
	}
	e := &entry{pattern: pattern, re: compilePattern(pattern), handler: h}
	l.order = append(l.order, e)
	l.byName[pattern] = e
}

// find returns the exact entry for s, or the first entry in order whose
// expression fully matches s.
func (l *entries) find(s string) (*entry, bool) {
	if e, ok := l.byName[s]; ok {
		return e, true
	}
	for _, e := range l.order {
		if e.re != nil && e.re.MatchString(s) {
			return e, true
		}
	}

	return nil, false
}

func (l *entries) len() int {
	return len(l.order)
}
