package dataset

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
)

// pgnGame is the tag section and mainline SAN tokens of one PGN game.
type pgnGame struct {
	Tags  map[string]string
	Moves []string
}

var (
	tagsRegex    = regexp.MustCompile(`\[[^\]]+\]`)
	tagPairRegex = regexp.MustCompile(`\[(\w+)\s+"((?:[^"\\]|\\.)*)"\]`)
)

// splitPGN calls fn with the text of every game in r. A new game starts at a tag
// line that follows a blank line.
func splitPGN(r io.Reader, fn func(text string) error) error {
	var sb strings.Builder
	isEmptyPrevLine := true
	hasMoves := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "[") && isEmptyPrevLine && hasMoves {
			if err := fn(sb.String()); err != nil {
				return err
			}
			sb.Reset()
			hasMoves = false
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "[") {
			hasMoves = true
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		isEmptyPrevLine = trimmed == ""
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(sb.String()) != "" {
		return fn(sb.String())
	}
	return nil
}

// parsePGN reads the tags and mainline of a single game. Comments, variations,
// numeric annotation glyphs, move numbers and the result token are dropped.
func parsePGN(text string) (pgnGame, error) {
	g := pgnGame{Tags: make(map[string]string)}
	for _, m := range tagPairRegex.FindAllStringSubmatch(text, -1) {
		g.Tags[m[1]] = strings.ReplaceAll(m[2], `\"`, `"`)
	}

	body := tagsRegex.ReplaceAllString(text, "")
	var (
		tok     strings.Builder
		comment bool
		line    bool
		depth   int
	)
	flush := func() {
		if tok.Len() == 0 {
			return
		}
		s := tok.String()
		tok.Reset()
		if depth == 0 && isMoveToken(s) {
			g.Moves = append(g.Moves, s)
		}
	}
	for _, ch := range body {
		switch {
		case line:
			if ch == '\n' {
				line = false
			}
		case comment:
			if ch == '}' {
				comment = false
			}
		case ch == '{':
			flush()
			comment = true
		case ch == ';':
			flush()
			line = true
		case ch == '(':
			flush()
			depth++
		case ch == ')':
			flush()
			if depth == 0 {
				return g, fmt.Errorf("unbalanced ')' in movetext")
			}
			depth--
		case ch == '.':
			tok.Reset()
		case unicode.IsSpace(ch):
			flush()
		default:
			tok.WriteRune(ch)
		}
	}
	flush()
	if comment || depth != 0 {
		return g, fmt.Errorf("unterminated comment or variation in movetext")
	}
	return g, nil
}

func isMoveToken(s string) bool {
	switch s {
	case ResultWhiteWin, ResultBlackWin, ResultDraw, ResultNone:
		return false
	}
	if s[0] == '$' {
		return false
	}
	if strings.HasPrefix(s, "0-0") {
		return true
	}
	return strings.IndexFunc(s, func(ch rune) bool {
		return !strings.ContainsRune("12345678abcdefghNBRQKOxnbrq=-+#!?", ch)
	}) == -1 && strings.IndexFunc(s, unicode.IsLetter) != -1
}
