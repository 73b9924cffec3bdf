package obmm

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumericKind is a fixed-width little-endian value written by the
// SetPlugin* commands.
type NumericKind int

const (
	NumericByte NumericKind = iota
	NumericShort
	NumericInt
	NumericLong
	NumericFloat
)

func (k NumericKind) String() string {
	switch k {
	case NumericByte:
		return "Byte"
	case NumericShort:
		return "Short"
	case NumericInt:
		return "Int"
	case NumericLong:
		return "Long"
	case NumericFloat:
		return "Float"
	}
	return fmt.Sprintf("NumericKind(%d)", int(k))
}

// Width is the encoded size in bytes.
func (k NumericKind) Width() int {
	switch k {
	case NumericByte:
		return 1
	case NumericShort:
		return 2
	case NumericInt, NumericFloat:
		return 4
	case NumericLong:
		return 8
	}
	return 0
}

// Encode parses s as the kind's type and returns its little-endian bytes.
func (k NumericKind) Encode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	buf := make([]byte, k.Width())
	switch k {
	case NumericByte:
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return nil, err
		}
		buf[0] = byte(v)
	case NumericShort:
		v, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return nil, err
		}
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case NumericInt:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, err
		}
		binary.LittleEndian.PutUint32(buf, uint32(v))
	case NumericLong:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		binary.LittleEndian.PutUint64(buf, uint64(v))
	case NumericFloat:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, err
		}
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(v)))
	default:
		return nil, fmt.Errorf("unknown numeric kind %d", int(k))
	}
	return buf, nil
}

// Decode is the inverse of Encode.
func (k NumericKind) Decode(b []byte) (string, error) {
	if len(b) != k.Width() || k.Width() == 0 {
		return "", fmt.Errorf("%s needs %d bytes, got %d", k, k.Width(), len(b))
	}
	switch k {
	case NumericByte:
		return strconv.FormatUint(uint64(b[0]), 10), nil
	case NumericShort:
		return strconv.FormatInt(int64(int16(binary.LittleEndian.Uint16(b))), 10), nil
	case NumericInt:
		return strconv.FormatInt(int64(int32(binary.LittleEndian.Uint32(b))), 10), nil
	case NumericLong:
		return strconv.FormatInt(int64(binary.LittleEndian.Uint64(b)), 10), nil
	case NumericFloat:
		f := math.Float32frombits(binary.LittleEndian.Uint32(b))
		return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
	}
	return "", fmt.Errorf("unknown numeric kind %d", int(k))
}
