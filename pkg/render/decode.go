package render

import (
	"strings"
	"unicode/utf8"
)

// PercentDecode decodes %XX escapes in s. Decoding is lenient: escaped
// bytes that do not start a valid UTF-8 sequence keep their escape verbatim
// while the bytes around them are still decoded, and anything that is not a
// complete escape ("100%", "%zz") is kept as is. Plain "+" is not treated as
// a space.
func PercentDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}

		start := i
		var run []byte
		for i+2 < len(s) && s[i] == '%' {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if !okHi || !okLo {
				break
			}
			run = append(run, hi<<4|lo)
			i += 3
		}

		if len(run) == 0 {
			b.WriteByte('%')
			i = start + 1
			continue
		}
		if utf8.Valid(run) {
			b.Write(run)
			continue
		}
		writeRun(&b, run, s[start:i])
	}
	return b.String()
}

// writeRun decodes every complete UTF-8 sequence in run and writes the
// original three-byte escape from raw for each byte that is not part of one.
func writeRun(b *strings.Builder, run []byte, raw string) {
	for p := 0; p < len(run); {
		r, size := utf8.DecodeRune(run[p:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteString(raw[p*3 : p*3+3])
			p++
			continue
		}
		b.Write(run[p : p+size])
		p += size
	}
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
