// ABOUTME: Terminal size discovery: driver query first, cursor-position probe as fallback
// ABOUTME: The probe parks the cursor at the bottom-right corner and parses the CSI 6n reply

package lineedit

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/mauromedda/ashe-go/internal/log"
	"github.com/mauromedda/ashe-go/pkg/tui/input"
)

// ErrMalformedReply is returned when a cursor-position report cannot be parsed.
var ErrMalformedReply = errors.New("lineedit: malformed cursor position reply")

const (
	probeRequest = "\x1b[s\x1b[99999C\x1b[99999B\x1b[6n"
	probeRestore = "\x1b[u"
	maxReplyLen  = 64
	replyIntro   = "\x1b["
)

type unreader interface {
	Unread(b []byte)
}

// geometry returns the terminal width and height.
func (s *Session) geometry(src ByteSource) (width, height int, err error) {
	width, height, err = s.term.Size()
	if err == nil && width > 0 {
		return width, height, nil
	}
	log.Debug("lineedit: size query gave %dx%d (%v), probing", width, height, err)

	for attempt := 0; attempt < 2; attempt++ {
		var row, col int
		row, col, err = s.probe(src)
		if err == nil {
			return col, row, nil
		}
		if !errors.Is(err, ErrMalformedReply) {
			break
		}
		log.Warn("%v", err)
	}
	return 0, 0, fatal("terminal size", err)
}

// probe moves the cursor as far down and right as the terminal allows and
// asks where it ended up.
func (s *Session) probe(src ByteSource) (row, col int, err error) {
	if _, err := s.term.Write([]byte(probeRequest)); err != nil {
		return 0, 0, fmt.Errorf("write probe: %w", err)
	}
	defer func() {
		if _, werr := s.term.Write([]byte(probeRestore)); werr != nil && err == nil {
			err = fmt.Errorf("restore cursor: %w", werr)
		}
	}()

	reply := make([]byte, 0, maxReplyLen)
	for len(reply) < maxReplyLen {
		c, err := src.ReadByte()
		if errors.Is(err, input.ErrInterrupted) {
			continue
		}
		if err != nil {
			return 0, 0, fmt.Errorf("read probe reply: %w", err)
		}
		reply = append(reply, c)
		if c == 'R' && bytes.Contains(reply, []byte(replyIntro)) {
			break
		}
	}
	// Keys typed before the reply go back to the decoder.
	if i := bytes.LastIndex(reply, []byte(replyIntro)); i > 0 {
		if u, ok := src.(unreader); ok {
			u.Unread(reply[:i])
		}
		reply = reply[i:]
	}
	return ParseCursorReply(reply)
}

// ParseCursorReply parses "ESC [ row ; col R".
func ParseCursorReply(b []byte) (row, col int, err error) {
	if !bytes.HasPrefix(b, []byte("\x1b[")) || !bytes.HasSuffix(b, []byte("R")) {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedReply, b)
	}
	body := b[2 : len(b)-1]
	sep := bytes.IndexByte(body, ';')
	if sep < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedReply, b)
	}
	row, rerr := strconv.Atoi(string(body[:sep]))
	col, cerr := strconv.Atoi(string(body[sep+1:]))
	if rerr != nil || cerr != nil || row < 1 || col < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedReply, b)
	}
	return row, col, nil
}
