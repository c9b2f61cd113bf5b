package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Value is a type the CSV dump can format.
type Value interface {
	float64 | constraints.Integer
}

// Source supplies per-channel streams in canonical channel order.
type Source interface {
	Samples() ([][]float64, error)
	Codes() ([][]uint16, error)
	Residuals() [][]int16
}

// WriteCSV writes one "index;value" line per frame of every channel.
// Floats use the shortest representation that parses back exactly.
func WriteCSV[V Value](w io.Writer, channels [][]V) error {
	bw := bufio.NewWriter(w)

	var line []byte

	for _, ch := range channels {
		for i, v := range ch {
			line = strconv.AppendInt(line[:0], int64(i), 10)
			line = append(line, ';')
			line = appendValue(line, v)
			line = append(line, '\n')

			if _, err := bw.Write(line); err != nil {
				return errors.Wrap(err, "export: write csv")
			}
		}
	}

	return errors.Wrap(bw.Flush(), "export: flush csv")
}

func appendValue[V Value](dst []byte, v V) []byte {
	if f, ok := any(v).(float64); ok {
		return strconv.AppendFloat(dst, f, 'g', -1, 64)
	}

	if u, ok := any(v).(uint64); ok {
		return strconv.AppendUint(dst, u, 10)
	}

	return strconv.AppendInt(dst, int64(v), 10)
}

// WriteRaw writes every residual at the given width.
//
// [Width8] writes each residual modulo 2^8. It accepts residuals whose
// running sum stays in [0, 255], which holds for delta streams of codes up to
// 8 bits, and [ReadRaw] recovers them exactly. [WidthInt8] writes residuals
// that fit int8 as is. Residuals outside either range fail with
// [ErrOverflow]; nothing is truncated.
func WriteRaw(w io.Writer, residuals [][]int16, width Width) error {
	if !width.Valid() {
		return fmt.Errorf("%w: raw width %d", ErrInvalidArgument, int(width))
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 2)

	for c, ch := range residuals {
		var sum int32

		for i, r := range ch {
			buf = buf[:0]

			switch width {
			case Width8:
				sum += int32(r)
				if _, ok := narrow[uint8](int64(sum)); !ok {
					return fmt.Errorf("%w: channel %d frame %d: residual %d reaches code %d outside [0, 255], use a wider raw width",
						ErrOverflow, c, i, r, sum)
				}

				buf = append(buf, byte(r))
			case WidthInt8:
				b, ok := narrow[int8](int64(r))
				if !ok {
					return fmt.Errorf("%w: channel %d frame %d: %d", ErrOverflow, c, i, r)
				}

				buf = append(buf, byte(b))
			case Width16:
				buf = binary.LittleEndian.AppendUint16(buf, uint16(r))
			}

			if _, err := bw.Write(buf); err != nil {
				return errors.Wrap(err, "export: write raw")
			}
		}
	}

	return errors.Wrap(bw.Flush(), "export: flush raw")
}

// ReadRaw reads channels*frames residuals written by [WriteRaw]. A stream
// ending early fails with [ErrShortStream]; trailing bytes are not read.
func ReadRaw(r io.Reader, channels, frames int, width Width) ([][]int16, error) {
	if !width.Valid() {
		return nil, fmt.Errorf("%w: raw width %d", ErrInvalidArgument, int(width))
	}

	if channels < 0 || frames < 0 {
		return nil, fmt.Errorf("%w: %d channels, %d frames", ErrInvalidArgument, channels, frames)
	}

	br := bufio.NewReader(r)
	buf := make([]byte, width.Size()*frames)
	out := make([][]int16, channels)

	for c := range out {
		if _, err := io.ReadFull(br, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: channel %d of %d", ErrShortStream, c, channels)
			}

			return nil, errors.Wrap(err, "export: read raw")
		}

		ch := make([]int16, frames)

		var code uint8

		for i := range ch {
			switch width {
			case Width8:
				// Codes wrap modulo 2^8; the residual is the step between them.
				next := code + buf[i]
				ch[i] = int16(next) - int16(code)
				code = next
			case WidthInt8:
				ch[i] = int16(int8(buf[i]))
			case Width16:
				ch[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
			}
		}

		out[c] = ch
	}

	return out, nil
}

// Export writes the dumps selected by mode. csv and raw may be nil when mode
// does not use them.
func Export(src Source, mode Mode, csv, raw io.Writer, opts ...Option) error {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return err
		}
	}

	if mode < ModeCSV || mode > ModeBoth {
		return fmt.Errorf("%w: mode %d", ErrInvalidArgument, int(mode))
	}

	if mode.csv() && csv == nil || mode.raw() && raw == nil {
		return fmt.Errorf("%w: mode %v needs a writer for each dump", ErrInvalidArgument, mode)
	}

	if mode.csv() {
		if err := writeField(csv, src, cfg.field); err != nil {
			return err
		}
	}

	if mode.raw() {
		return WriteRaw(raw, src.Residuals(), cfg.width)
	}

	return nil
}

func writeField(w io.Writer, src Source, field Field) error {
	switch field {
	case FieldSample:
		samples, err := src.Samples()
		if err != nil {
			return err
		}

		return WriteCSV(w, samples)
	case FieldCode:
		codes, err := src.Codes()
		if err != nil {
			return err
		}

		return WriteCSV(w, codes)
	default:
		return WriteCSV(w, src.Residuals())
	}
}

// narrow converts v to T when it is representable.
func narrow[T constraints.Integer](v int64) (T, bool) {
	t := T(v)

	return t, int64(t) == v
}
