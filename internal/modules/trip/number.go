// README: Number carries a loosely typed JSON number (number or numeric string) until validation.
package trip

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNotNumber = errors.New("not a number")

type Number struct {
	text string
	sent bool
}

func NumberOf(v float64) Number {
	return Number{text: strconv.FormatFloat(v, 'f', -1, 64), sent: true}
}

// NumberFromString is used for query parameters.
func NumberFromString(s string) Number {
	return Number{text: s, sent: true}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number{text: s, sent: true}
		return nil
	}
	*n = Number{text: string(b), sent: true}
	return nil
}

// Sent reports whether a non-null value was supplied.
func (n Number) Sent() bool {
	return n.sent
}

// Present treats blank strings as missing; 0 is present.
func (n Number) Present() bool {
	return n.sent && strings.TrimSpace(n.text) != ""
}

func (n Number) Float() (float64, error) {
	if !n.sent {
		return 0, errNotNumber
	}
	text := strings.TrimSpace(n.text)
	if !decimal(text) {
		return 0, errNotNumber
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotNumber
	}
	return v, nil
}

// decimal rejects the hex and underscore forms strconv would otherwise accept.
func decimal(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return false
	}
	return !strings.Contains(s, "_")
}
