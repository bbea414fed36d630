// Package path interprets the relative subset of vector path data into
// polyline borders.
package path

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"vecview/internal/geom"
)

// letters known to the lexer; the builder only supports a subset of them
const commandLetters = "MmLlHhVvCcSsQqTtAaZz"

// Command is one path command with the numbers that follow it.
type Command struct {
	Letter byte
	Params []float64
}

// Relative reports whether the command letter is the lower-case form.
func (c Command) Relative() bool { return c.Letter >= 'a' && c.Letter <= 'z' }

func (c Command) String() string {
	if len(c.Params) == 0 {
		return string(c.Letter)
	}
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return fmt.Sprintf("%c %s", c.Letter, strings.Join(parts, " "))
}

// Parse splits path data such as "m 0,0 l 10,0 z" into commands.
// Whitespace and commas separate numbers; a sign starts a new number unless
// it follows an exponent, and a second decimal point starts a new number
// too ("0.5.5" is 0.5 followed by .5).
func Parse(d string) ([]Command, error) {
	var cmds []Command
	var num strings.Builder

	flush := func() error {
		if num.Len() == 0 {
			return nil
		}
		s := num.String()
		num.Reset()
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Wrapf(geom.ErrMalformedInput, "path data: invalid number %q", s)
		}
		if len(cmds) == 0 {
			return errors.Wrapf(geom.ErrMalformedInput, "path data: number %q before the first command", s)
		}
		last := &cmds[len(cmds)-1]
		last.Params = append(last.Params, v)
		return nil
	}

	for i := 0; i < len(d); i++ {
		c := d[i]
		var err error
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			err = flush()
		case (c == 'e' || c == 'E') && num.Len() > 0:
			num.WriteByte(c)
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			if err = flush(); err != nil {
				break
			}
			if strings.IndexByte(commandLetters, c) < 0 {
				return nil, errors.Wrapf(geom.ErrMalformedInput, "path data: unknown command %q", c)
			}
			cmds = append(cmds, Command{Letter: c})
		case c == '-' || c == '+':
			if num.Len() > 0 {
				s := num.String()
				if last := s[len(s)-1]; last != 'e' && last != 'E' {
					err = flush()
				}
			}
			num.WriteByte(c)
		case c == '.':
			if s := num.String(); strings.ContainsAny(s, ".eE") {
				err = flush()
			}
			num.WriteByte(c)
		case c >= '0' && c <= '9':
			num.WriteByte(c)
		default:
			return nil, errors.Wrapf(geom.ErrMalformedInput, "path data: unexpected character %q at %d", c, i)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	for _, c := range cmds {
		if (c.Letter == 'z' || c.Letter == 'Z') && len(c.Params) > 0 {
			return nil, errors.Wrapf(geom.ErrMalformedInput, "path data: %q takes no parameters", c.Letter)
		}
	}
	return cmds, nil
}
