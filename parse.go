package routec

import (
	"go/ast"
	"go/parser"
	"strings"
	"unicode"
)

// Route is the parsed form of one route attribute, before binding.
//
// Attribute text has the shape:
//
//	<METHOD> "<PATH>" [with <TYPE>]
//
// where PATH follows the grammar ("/" segment)* ("?" name ("&" name)*)?
// and segment := ":" name | "*" name | literal.
type Route struct {
	// Method is the decoded HTTP method.
	Method Method

	// Segments is the ordered path segment sequence. Empty for the root
	// path "/".
	Segments []Segment

	// QueryNames is the ordered list of declared query parameter names.
	// Declaration order determines the field order of the generated
	// query record.
	QueryNames []string

	// ExplicitState is the type expression from the "with" clause, or nil
	// when the clause is absent and the state type must be inferred.
	ExplicitState ast.Expr

	// Literal is the path+query literal exactly as written.
	Literal string

	// queryOff holds the byte offset of each query name within the
	// attribute text, parallel to QueryNames.
	queryOff []int
}

// ParseRoute parses full route attribute text: a method keyword, a quoted
// path literal, and an optional "with <type>" clause.
func ParseRoute(text string) (*Route, error) {
	off := 0
	skipSpace := func() {
		for off < len(text) && (text[off] == ' ' || text[off] == '\t') {
			off++
		}
	}

	skipSpace()
	start := off
	for off < len(text) && text[off] != ' ' && text[off] != '\t' {
		off++
	}
	keyword := text[start:off]
	if keyword == "" {
		return nil, syntaxErrorf(start, "", "missing method keyword")
	}
	method, ok := ParseMethod(keyword)
	if !ok {
		return nil, syntaxErrorf(start, keyword, "unknown method keyword `%s`", keyword)
	}

	skipSpace()
	if off >= len(text) || text[off] != '"' {
		return nil, syntaxErrorf(off, "", "route path must be a quoted string literal")
	}
	off++
	litStart := off
	end := strings.IndexByte(text[off:], '"')
	if end < 0 {
		return nil, syntaxErrorf(litStart-1, text[litStart-1:], "unterminated path literal")
	}
	lit := text[off : off+end]
	off += end + 1

	segments, queryNames, queryOff, err := parsePath(lit, litStart)
	if err != nil {
		return nil, err
	}
	route := &Route{
		Method:     method,
		Segments:   segments,
		QueryNames: queryNames,
		Literal:    lit,
		queryOff:   queryOff,
	}

	skipSpace()
	if off < len(text) {
		rest := text[off:]
		if rest != "with" && !strings.HasPrefix(rest, "with ") && !strings.HasPrefix(rest, "with\t") {
			return nil, syntaxErrorf(off, rest, "unexpected text after path literal: `%s`", rest)
		}
		typeText := strings.TrimSpace(rest[len("with"):])
		if typeText == "" {
			return nil, syntaxErrorf(off, rest, "missing state type after `with`")
		}
		state, perr := parser.ParseExpr(typeText)
		if perr != nil {
			return nil, syntaxErrorf(off, typeText, "invalid state type `%s`: %v", typeText, perr)
		}
		route.ExplicitState = state
	}

	return route, nil
}

// ParsePath parses a path+query literal (the quoted part of a route
// attribute) into its ordered segments and query names.
func ParsePath(lit string) ([]Segment, []string, error) {
	segments, queryNames, _, err := parsePath(lit, 0)
	return segments, queryNames, err
}

// parsePath does the grammar work. base is the offset of lit within the
// surrounding attribute text so diagnostics point into the original input.
// Parsing is all-or-nothing; on error no partial result is returned.
func parsePath(lit string, base int) ([]Segment, []string, []int, error) {
	pathPart := lit
	queryPart := ""
	queryPos := -1
	if i := strings.IndexByte(lit, '?'); i >= 0 {
		pathPart, queryPart, queryPos = lit[:i], lit[i+1:], i+1
	}

	if pathPart == "" || pathPart[0] != '/' {
		return nil, nil, nil, syntaxErrorf(base, pathPart, "route path must begin with `/`")
	}

	var segments []Segment
	if pathPart != "/" {
		seen := make(map[string]bool)
		rest := pathPart[1:]
		pos := 1
		for {
			i := strings.IndexByte(rest, '/')
			raw := rest
			if i >= 0 {
				raw = rest[:i]
			}
			seg, err := parseSegment(raw, base+pos, seen)
			if err != nil {
				return nil, nil, nil, err
			}
			if w, isWild := seg.(*WildcardSegment); isWild && i >= 0 {
				return nil, nil, nil, syntaxErrorf(base+pos, raw,
					"wildcard `*%s` must be the final path segment", w.Name)
			}
			segments = append(segments, seg)
			if i < 0 {
				break
			}
			pos += i + 1
			rest = rest[i+1:]
		}
	}

	var queryNames []string
	var queryOff []int
	if queryPos >= 0 {
		if queryPart == "" {
			return nil, nil, nil, syntaxErrorf(base+queryPos, "", "query section declares no parameter names")
		}
		seen := make(map[string]bool)
		rest := queryPart
		pos := queryPos
		for {
			i := strings.IndexByte(rest, '&')
			raw := rest
			if i >= 0 {
				raw = rest[:i]
			}
			switch {
			case raw == "":
				return nil, nil, nil, syntaxErrorf(base+pos, raw, "query parameter name is empty")
			case !isIdentifier(raw):
				return nil, nil, nil, syntaxErrorf(base+pos, raw, "query parameter name `%s` is not a valid identifier", raw)
			case seen[raw]:
				return nil, nil, nil, syntaxErrorf(base+pos, raw, "duplicate query parameter `%s`", raw)
			}
			seen[raw] = true
			queryNames = append(queryNames, raw)
			queryOff = append(queryOff, base+pos)
			if i < 0 {
				break
			}
			pos += i + 1
			rest = rest[i+1:]
		}
	}

	return segments, queryNames, queryOff, nil
}

// parseSegment decodes a single "/"-delimited component. seen tracks
// capture/wildcard names already declared in this path.
func parseSegment(raw string, off int, seen map[string]bool) (Segment, error) {
	if raw == "" {
		return nil, syntaxErrorf(off, raw, "empty path segment")
	}
	switch raw[0] {
	case ':':
		name := raw[1:]
		if err := checkParamName(name, raw, off); err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, syntaxErrorf(off, raw, "duplicate path parameter `%s`", name)
		}
		seen[name] = true
		return &CaptureSegment{Name: name, off: off + 1}, nil
	case '*':
		name := raw[1:]
		if err := checkParamName(name, raw, off); err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, syntaxErrorf(off, raw, "duplicate path parameter `%s`", name)
		}
		seen[name] = true
		return &WildcardSegment{Name: name, off: off + 1}, nil
	default:
		return &StaticSegment{Text: raw}, nil
	}
}

func checkParamName(name, raw string, off int) error {
	if name == "" {
		return syntaxErrorf(off, raw, "path parameter name is empty")
	}
	if !isIdentifier(name) {
		return syntaxErrorf(off, raw, "path parameter name `%s` is not a valid identifier", name)
	}
	return nil
}

// isIdentifier reports whether s is a valid Go identifier.
func isIdentifier(s string) bool {
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return s != ""
}
