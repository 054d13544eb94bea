package domain

import (
	"fmt"
	"strings"
)

// Bit is one classical bit selected by the user. The zero value is unset.
type Bit uint8

const (
	BitUnset Bit = iota
	Bit0
	Bit1
)

// ParseBit converts the wire form ("0", "1" or "" for unset) into a Bit.
func ParseBit(s string) (Bit, error) {
	switch strings.TrimSpace(s) {
	case "":
		return BitUnset, nil
	case "0":
		return Bit0, nil
	case "1":
		return Bit1, nil
	default:
		return BitUnset, fmt.Errorf("%w: %q", ErrInvalidBit, s)
	}
}

// IsSet reports whether the bit holds a value.
func (b Bit) IsSet() bool {
	return b == Bit0 || b == Bit1
}

// Next cycles unset -> 0 -> 1 -> unset. Used by interactive pickers.
func (b Bit) Next() Bit {
	switch b {
	case BitUnset:
		return Bit0
	case Bit0:
		return Bit1
	default:
		return BitUnset
	}
}

func (b Bit) String() string {
	switch b {
	case Bit0:
		return "0"
	case Bit1:
		return "1"
	default:
		return ""
	}
}

func (b Bit) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bit) UnmarshalText(text []byte) error {
	v, err := ParseBit(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Slot addresses one of the two positions of a BitPair.
type Slot int

const (
	SlotFirst Slot = iota
	SlotSecond
)

// BitPair is the two-bit message. It is complete only when both bits are set.
type BitPair struct {
	First  Bit
	Second Bit
}

// NewBitPair builds a complete pair from two booleans (true = 1).
func NewBitPair(first, second bool) BitPair {
	toBit := func(v bool) Bit {
		if v {
			return Bit1
		}
		return Bit0
	}
	return BitPair{First: toBit(first), Second: toBit(second)}
}

// ParseBitPair parses the two character text form, e.g. "10". A '-' marks an unset slot.
func ParseBitPair(s string) (BitPair, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return BitPair{}, fmt.Errorf("%w: %q must have exactly two characters", ErrInvalidBit, s)
	}
	var pair BitPair
	for i, slot := range []*Bit{&pair.First, &pair.Second} {
		c := s[i : i+1]
		if c == "-" {
			continue
		}
		b, err := ParseBit(c)
		if err != nil {
			return BitPair{}, err
		}
		*slot = b
	}
	return pair, nil
}

// Complete reports whether both bits are chosen.
func (p BitPair) Complete() bool {
	return p.First.IsSet() && p.Second.IsSet()
}

// With returns a copy of the pair with the given slot replaced.
func (p BitPair) With(slot Slot, b Bit) BitPair {
	if slot == SlotFirst {
		p.First = b
	} else {
		p.Second = b
	}
	return p
}

// Get returns the bit stored in slot.
func (p BitPair) Get(slot Slot) Bit {
	if slot == SlotFirst {
		return p.First
	}
	return p.Second
}

// String renders the pair as two characters, '-' marking unset slots.
func (p BitPair) String() string {
	return charFor(p.First) + charFor(p.Second)
}

// Display is the user facing form: the bits when complete, "--" otherwise.
func (p BitPair) Display() string {
	if !p.Complete() {
		return NoValue
	}
	return p.String()
}

func (p BitPair) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *BitPair) UnmarshalText(text []byte) error {
	v, err := ParseBitPair(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func charFor(b Bit) string {
	if !b.IsSet() {
		return "-"
	}
	return b.String()
}

// AllBitPairs lists the four complete messages in table order.
func AllBitPairs() []BitPair {
	return []BitPair{
		{Bit0, Bit0},
		{Bit0, Bit1},
		{Bit1, Bit0},
		{Bit1, Bit1},
	}
}
