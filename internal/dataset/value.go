package dataset

import (
	"strconv"
	"time"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	KindMissing Kind = iota
	KindNumber
	KindString
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "numeric"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	default:
		return "missing"
	}
}

// Value is a single typed cell.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Time time.Time
}

// Missing is the zero Value.
var Missing = Value{}

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// Key returns a canonical encoding of the value. Two values are equal iff
// their keys are equal; missing values share one key.
func (v Value) Key() string {
	switch v.Kind {
	case KindNumber:
		n := v.Num
		if n == 0 {
			n = 0 // -0 and 0 are one value
		}
		return "n:" + strconv.FormatFloat(n, 'g', -1, 64)
	case KindString:
		return "s:" + v.Str
	case KindDate:
		return "d:" + v.Time.UTC().Format(time.RFC3339Nano)
	default:
		return "-"
	}
}

// String renders the value for display. Missing renders as an empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	case KindDate:
		return v.Time.Format("2006-01-02")
	default:
		return ""
	}
}

// MarshalJSON encodes numbers as JSON numbers, dates as ISO dates and
// missing values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return []byte(strconv.FormatFloat(v.Num, 'g', -1, 64)), nil
	case KindString, KindDate:
		return []byte(strconv.Quote(v.String())), nil
	default:
		return []byte("null"), nil
	}
}
