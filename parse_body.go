package vcd

import (
	"strconv"
	"strings"
)

// NextDelta pumps value-change tokens until a new, non-zero timestamp is
// reached or the file ends. Every Link whose endpoint changed is added to
// changes. It returns false once the stream is exhausted, mirroring
// VcdFile::next_delta's bool return.
func (f *File) NextDelta(changes map[*Link]struct{}) (bool, error) {
	for {
		tok, ok := f.tok.Next()
		if !ok {
			return false, nil
		}

		switch tok[0] {
		case '#':
			tstamp, err := strconv.ParseUint(tok[1:], 10, 64)
			if err != nil {
				return false, f.errorf("invalid timestamp: %s", tok)
			}
			if tstamp != 0 {
				f.curTimestamp = f.nextTimestamp
				f.nextTimestamp = tstamp
				return true, nil
			}

		case '$':
			// $dumpvars/$dumpon/$dumpoff/$dumpall open a run of value
			// changes and $end closes it; neither carries information this
			// pump needs, so both are silently consumed.
			switch tok {
			case "$dumpvars", "$dumpon", "$dumpoff", "$dumpall", "$end":
			default:
				if f.opts.WarnUnexpectedTokens && f.curTimestamp == 0 {
					f.warnf("unexpected section token: %s", tok)
				}
			}

		case 'b', 'B':
			bits := tok[1:]
			ident, ok := f.tok.Next()
			if !ok {
				return false, f.errorf("expected identifier after vector value %s", tok)
			}
			f.applyValue(ident, NewVectorBits([]byte(strings.ToUpper(bits))), changes)

		case 'r', 'R':
			v, err := ParseFloatToken(tok[1:])
			if err != nil {
				return false, err
			}
			ident, ok := f.tok.Next()
			if !ok {
				return false, f.errorf("expected identifier after real value %s", tok)
			}
			f.applyValue(ident, NewReal(v), changes)

		case '0', '1', 'x', 'X', 'z', 'Z':
			if len(tok) < 2 {
				f.warnf("invalid entry: %s", tok)
				continue
			}
			f.applyValue(tok[1:], NewBit(tok[0]), changes)

		default:
			f.warnf("invalid entry: %s", tok)
		}
	}
}

// applyValue sets var's value and records the Link it drives (if any) as
// changed. A variable with no assigned ident_ (a slot of a vector whose
// bits are carried solely through the top vector's own identifier) is
// looked up via the file's identifier table, so a missing identifier is
// silently ignored: VCD files commonly describe more structure than a
// given scope actually drives values for.
func (f *File) applyValue(ident string, v Value, changes map[*Link]struct{}) {
	variable, ok := f.idents[ident]
	if !ok {
		return
	}
	variable.SetValue(v)

	var link *Link
	if parent := variable.Parent(); parent != nil {
		link = parent.Link()
	}
	if link == nil {
		link = variable.Link()
	}
	if link != nil {
		changes[link] = struct{}{}
	}
}
