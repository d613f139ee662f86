package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses a single key specification into a Code.
//
// Supported formats:
//   - Single character: "a", "A", "1", ":"
//   - Vim-style: "<C-a>", "<Ctrl-a>", "<CR>", "<Esc>", "<Space>", "<lt>"
//   - Bare key names: "Esc", "Enter", "Up"
func Parse(spec string) (Code, error) {
	if spec == "" {
		return None, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return Rune(r), nil
	}

	if c := FromName(spec); c != None {
		return c, nil
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseBracketed parses the inside of a <...> specification.
func parseBracketed(inner string) (Code, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return None, ErrInvalidSpec
	}

	if i := strings.IndexAny(inner, "-+"); i > 0 && i < len(inner)-1 {
		mod := strings.ToLower(inner[:i])
		rest := inner[i+1:]
		switch mod {
		case "c", "ctrl", "control":
		default:
			return None, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, inner[:i])
		}
		if utf8.RuneCountInString(rest) != 1 {
			return None, fmt.Errorf("%w: control key %q", ErrInvalidSpec, rest)
		}
		r, _ := utf8.DecodeRuneInString(rest)
		c := Ctrl(r)
		if c == None {
			return None, fmt.Errorf("%w: control key %q", ErrInvalidSpec, rest)
		}
		return c, nil
	}

	if c := FromName(inner); c != None {
		return c, nil
	}
	if utf8.RuneCountInString(inner) == 1 {
		r, _ := utf8.DecodeRuneInString(inner)
		return Rune(r), nil
	}
	return None, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, inner)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Code {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// ParseSequence parses a continuous Vim-style sequence like "<C-a><C-b>" or
// "<Esc>j". A space-separated list of specifications is also accepted
// ("Esc j"); use "<Space>" for a literal space.
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySpec
	}

	if strings.Contains(s, " ") {
		seq := make(Sequence, 0, 4)
		for _, part := range strings.Fields(s) {
			c, err := Parse(part)
			if err != nil {
				return nil, err
			}
			seq = append(seq, c)
		}
		return seq, nil
	}

	seq := make(Sequence, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end == -1 {
				// No closing >, treat as literal <
				seq = append(seq, '<')
				i++
				continue
			}
			if end == 1 {
				return nil, fmt.Errorf("%w: %q", ErrUnmatchedBracket, s)
			}
			c, err := parseBracketed(s[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			seq = append(seq, c)
			i += end + 1
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		seq = append(seq, Rune(r))
		i += size
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
