package tui

import (
	"context"
	"errors"
	"io"

	"github.com/aretw0/sweetwater/pkg/domain"
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b

	maxCSILen = 16
)

// Decoder turns raw terminal bytes into intents. Escape sequences split across
// reads are carried over to the next call.
type Decoder struct {
	pending []byte
}

// Decode consumes b and returns the intents it holds. quit reports a request to
// leave (q, Q or Ctrl+C); bytes after it are ignored.
func (d *Decoder) Decode(b []byte) (intents []domain.Intent, quit bool) {
	buf := append(d.pending, b...)
	d.pending = nil

	for len(buf) > 0 {
		c := buf[0]
		switch {
		case c == keyEscape:
			n, intent, ok := parseEscape(buf)
			if n == 0 {
				d.pending = append([]byte(nil), buf...)
				return intents, false
			}
			if ok {
				intents = append(intents, intent)
			}
			buf = buf[n:]
		case c == keyCtrlC || c == 'q' || c == 'Q':
			return intents, true
		default:
			if intent, ok := letter(c); ok {
				intents = append(intents, intent)
			}
			buf = buf[1:]
		}
	}
	return intents, false
}

// parseEscape returns the length of the sequence at the start of data and the
// intent it maps to. A zero length means the sequence is incomplete.
func parseEscape(data []byte) (int, domain.Intent, bool) {
	if len(data) < 2 {
		return 0, "", false
	}
	switch data[1] {
	case '[':
		return parseCSI(data)
	case 'O':
		return parseSS3(data)
	}
	// A lone escape; the next byte is read as a key of its own.
	return 1, "", false
}

// parseCSI consumes parameters up to the final byte, so modified arrows
// (ESC [ 1 ; 5 A) still map to their direction.
func parseCSI(data []byte) (int, domain.Intent, bool) {
	limit := min(len(data), maxCSILen)
	for end := 2; end < limit; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			intent, ok := arrow(b)
			return end + 1, intent, ok
		}
		if b < 0x20 || b > 0x7e {
			return end, "", false
		}
	}
	if len(data) >= maxCSILen {
		return 2, "", false
	}
	return 0, "", false
}

// parseSS3 handles application cursor mode (ESC O A).
func parseSS3(data []byte) (int, domain.Intent, bool) {
	if len(data) < 3 {
		return 0, "", false
	}
	intent, ok := arrow(data[2])
	return 3, intent, ok
}

func arrow(c byte) (domain.Intent, bool) {
	switch c {
	case 'A':
		return domain.IntentUp, true
	case 'B':
		return domain.IntentDown, true
	case 'C':
		return domain.IntentRight, true
	case 'D':
		return domain.IntentLeft, true
	}
	return "", false
}

func letter(c byte) (domain.Intent, bool) {
	switch c {
	case 'w', 'W':
		return domain.IntentUp, true
	case 's', 'S':
		return domain.IntentDown, true
	case 'a', 'A':
		return domain.IntentLeft, true
	case 'd', 'D':
		return domain.IntentRight, true
	case ' ', '\r', '\n':
		return domain.IntentConfirm, true
	}
	return "", false
}

// ReadIntents decodes r until EOF, a quit key or ctx cancellation, calling emit
// for every intent. A quit key or EOF returns nil.
func ReadIntents(ctx context.Context, r io.Reader, emit func(domain.Intent)) error {
	var dec Decoder
	buf := make([]byte, 64)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			intents, quit := dec.Decode(buf[:n])
			for _, intent := range intents {
				emit(intent)
			}
			if quit {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
