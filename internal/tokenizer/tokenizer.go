package tokenizer

import (
	"unicode/utf8"

	"github.com/wiseio/paratext/internal/errs"
	"github.com/wiseio/paratext/internal/simd"
)

// Field is one emitted field. Data is valid only until the next call to
// the driving Tokenizer method; callers that need to retain it must copy.
type Field struct {
	Data      []byte
	WasQuoted bool
}

// Options configures a Tokenizer's byte-level behavior.
type Options struct {
	Separator           byte
	AllowQuotedNewlines bool
	ConvertNullToSpace  bool
	ValidateUTF8In      bool
}

// DefaultOptions returns comma-separated, strict (non-quoted-newline),
// UTF-8-validating defaults.
func DefaultOptions() Options {
	return Options{Separator: ',', ValidateUTF8In: true}
}

// RecordFunc receives one parsed record: its source row index (0-based,
// counting only rows this tokenizer run has seen) and its fields. The
// fields slice and each Field.Data are reused across calls; copy anything
// that must outlive the call.
type RecordFunc func(row int, fields []Field) error

// Tokenizer runs the field state machine over a byte range.
type Tokenizer struct {
	opts      Options
	Anomalies errs.Anomalies

	fields []Field
	buf    []byte
}

// New builds a Tokenizer for opts.
func New(opts Options) *Tokenizer {
	if opts.Separator == 0 {
		opts.Separator = ','
	}
	return &Tokenizer{opts: opts}
}

// classify maps b onto the DFA's character classes via the package's
// 256-entry table, honoring a non-comma separator.
func (tk *Tokenizer) classify(b byte) charClass {
	if b == tk.opts.Separator {
		return classComma
	}
	c := charClassTable[b]
	if c == classComma {
		// b == ',' but the configured separator is something else.
		return classOther
	}
	return c
}

// Run scans data, which must hold zero or more complete records and at
// most one trailing partial record (the partial record, if any, is still
// emitted — callers feeding one worker's whole byte range get every
// record that range's chunk boundary assigned them). It returns the
// number of records emitted and the first error fn returns.
func (tk *Tokenizer) Run(data []byte, fn RecordFunc) (int, error) {
	state := FieldStart
	fieldStart := 0
	wasQuoted := false
	copying := false
	quoteEnd := 0
	tk.buf = tk.buf[:0]
	tk.fields = tk.fields[:0]
	row := 0

	startField := func(at int) {
		fieldStart = at
		wasQuoted = false
		copying = false
		tk.buf = tk.buf[:0]
	}

	appendByte := func(b byte) {
		if copying {
			tk.buf = append(tk.buf, b)
		}
	}

	beginCopy := func(uptoExclusive int, data []byte) {
		if !copying {
			copying = true
			tk.buf = append(tk.buf[:0], data[fieldStart:uptoExclusive]...)
		}
	}

	emit := func(endExclusive int, data []byte, trimCR bool) {
		var out []byte
		if endExclusive < fieldStart {
			out = nil
		} else if copying {
			out = tk.buf
		} else {
			out = data[fieldStart:endExclusive]
		}
		// A record terminated by LF may have been preceded by a CR that
		// is part of a CRLF line ending rather than field content.
		if trimCR && len(out) > 0 && out[len(out)-1] == '\r' {
			out = out[:len(out)-1]
		}
		tk.fields = append(tk.fields, Field{Data: out, WasQuoted: wasQuoted})
	}

	finishRecord := func(fn RecordFunc) error {
		if err := tk.emitRecord(fn, row, tk.fields); err != nil {
			return err
		}
		tk.fields = tk.fields[:0]
		row++
		return nil
	}

	n := len(data)
	classes := simd.NewClasses(n)
	simd.Scan(data, tk.opts.Separator, classes)

	for i := 0; i < n; i++ {
		// Unquoted bytes before the next separator/newline have no side
		// effect (copying is never true in this state), so that whole
		// span is skipped in one bitmap lookup instead of being
		// classified byte by byte. Quoted bytes before the next quote (or
		// newline, when quoted newlines are disallowed) are skipped the
		// same way, but copied into buf first if an escaped quote earlier
		// in this field already put the builder into copying mode.
		switch state {
		case Unquoted:
			if next := nextUnquotedBoundary(classes, i, n); next > i {
				i = next
			}
		case Quoted:
			if next := nextQuotedBoundary(classes, i, n, tk.opts.AllowQuotedNewlines); next > i {
				if copying {
					tk.buf = append(tk.buf, data[i:next]...)
				}
				i = next
			}
		}
		if i >= n {
			break
		}
		b := data[i]
		cls := tk.classify(b)

		switch state {
		case FieldStart:
			switch cls {
			case classQuote:
				state = Quoted
				startField(i + 1)
				wasQuoted = true
			case classComma:
				tk.fields = append(tk.fields, Field{})
				startField(i + 1)
			case classLF:
				tk.fields = append(tk.fields, Field{})
				if err := finishRecord(fn); err != nil {
					return row, err
				}
				state = FieldStart
				startField(i + 1)
			default:
				state = Unquoted
				startField(i)
			}

		case Unquoted:
			switch cls {
			case classComma:
				emit(i, data, false)
				state = FieldStart
				startField(i + 1)
			case classLF:
				emit(i, data, true)
				if err := finishRecord(fn); err != nil {
					return row, err
				}
				state = FieldStart
				startField(i + 1)
			default:
				appendByte(b)
			}

		case Quoted:
			switch cls {
			case classQuote:
				quoteEnd = i
				state = QuotedEscapePeek
			case classLF:
				if tk.opts.AllowQuotedNewlines {
					appendByte(b)
					continue
				}
				tk.Anomalies.FieldCountAnomaly++
				emit(i, data, false)
				if err := finishRecord(fn); err != nil {
					return row, err
				}
				state = FieldStart
				startField(i + 1)
			default:
				appendByte(b)
			}

		case QuotedEscapePeek:
			switch cls {
			case classQuote:
				beginCopy(i-1, data)
				appendByte('"')
				state = Quoted
			case classComma:
				emit(quoteEnd, data, false)
				state = FieldStart
				startField(i + 1)
			case classLF:
				emit(quoteEnd, data, false)
				if err := finishRecord(fn); err != nil {
					return row, err
				}
				state = FieldStart
				startField(i + 1)
			default:
				if b != ' ' && b != '\t' && b != '\r' {
					tk.Anomalies.FieldCountAnomaly++
				}
				state = AfterQuoted
			}

		case AfterQuoted:
			switch cls {
			case classComma:
				emit(quoteEnd, data, false)
				state = FieldStart
				startField(i + 1)
			case classLF:
				emit(quoteEnd, data, false)
				if err := finishRecord(fn); err != nil {
					return row, err
				}
				state = FieldStart
				startField(i + 1)
			default:
				if b != ' ' && b != '\t' && b != '\r' {
					tk.Anomalies.FieldCountAnomaly++
				}
			}
		}
	}

	// Trailing partial record with no terminating newline.
	switch state {
	case FieldStart:
		// Nothing pending; input ended exactly on a record boundary.
	case Unquoted, QuotedEscapePeek, AfterQuoted:
		end := n
		if state != Unquoted {
			end = quoteEnd
		}
		emit(end, data, false)
		if err := finishRecord(fn); err != nil {
			return row, err
		}
	case Quoted:
		emit(n, data, false)
		if err := finishRecord(fn); err != nil {
			return row, err
		}
	}

	return row, nil
}

func (tk *Tokenizer) emitRecord(fn RecordFunc, row int, fields []Field) error {
	if tk.opts.ConvertNullToSpace || tk.opts.ValidateUTF8In {
		for i := range fields {
			fields[i].Data = tk.sanitize(fields[i].Data)
		}
	}
	return fn(row, fields)
}

// sanitize applies convert_null_to_space and UTF-8 validation, copying
// only when a byte must actually change.
func (tk *Tokenizer) sanitize(data []byte) []byte {
	if data == nil {
		return nil
	}
	needsCopy := false
	if tk.opts.ConvertNullToSpace {
		for _, b := range data {
			if b == 0 {
				needsCopy = true
				break
			}
		}
	}
	if !needsCopy && tk.opts.ValidateUTF8In && !utf8.Valid(data) {
		needsCopy = true
	}
	if !needsCopy {
		return data
	}
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		if tk.opts.ConvertNullToSpace && data[0] == 0 {
			out = append(out, ' ')
			data = data[1:]
			continue
		}
		if tk.opts.ValidateUTF8In {
			r, size := utf8.DecodeRune(data)
			if r == utf8.RuneError && size <= 1 {
				tk.Anomalies.EncodingAnomaly++
				out = utf8.AppendRune(out, utf8.RuneError)
				data = data[1:]
				continue
			}
			out = append(out, data[:size]...)
			data = data[size:]
			continue
		}
		out = append(out, data[0])
		data = data[1:]
	}
	return out
}
