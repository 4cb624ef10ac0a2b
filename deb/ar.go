package deb

import (
	"fmt"
	"io"
	"strconv"
)

// arMagic is the global header opening every AR archive.
const arMagic = "!<arch>\n"

// arCopyChunk is the buffer size used to stream member content. Member
// payloads can be arbitrarily large; copying in bounded chunks keeps peak
// memory independent of payload size.
const arCopyChunk = 32 * 1024

// ArHeader describes one member of an AR archive. The zero value of every
// field except Name and Size matches the conventions for .deb members:
// timestamp 0, owner/group 0, mode 0644.
type ArHeader struct {
	// Name is the member name, at most 15 bytes. It is stored SysV style,
	// terminated with "/" and space-padded to 16 bytes.
	Name string

	// ModTime is the member timestamp in seconds since the epoch.
	ModTime int64

	// UID and GID are the numeric owner and group ids.
	UID, GID int

	// Mode is the octal file mode. Zero means 0644.
	Mode int64

	// Size is the exact payload length in bytes.
	Size int64
}

// ArWriter writes an AR archive to an underlying stream, one member at a
// time. Every member header is exactly 60 bytes of fixed-width ASCII, and
// every member is padded to a 2-byte boundary, so members always start on an
// even offset.
type ArWriter struct {
	w io.Writer
}

// NewArWriter returns an ArWriter targeting w. WriteGlobalHeader must be
// called before the first member.
func NewArWriter(w io.Writer) *ArWriter {
	return &ArWriter{w: w}
}

// WriteGlobalHeader writes the 8-byte AR magic ("!<arch>\n").
func (aw *ArWriter) WriteGlobalHeader() error {
	_, err := io.WriteString(aw.w, arMagic)
	return err
}

// WriteEntry writes one member: the 60-byte header, the payload streamed from
// body in bounded chunks, and a single "\n" pad byte when the payload length
// is odd. The payload must be exactly h.Size bytes long.
func (aw *ArWriter) WriteEntry(h ArHeader, body io.Reader) error {
	name := h.Name + "/"
	if len(name) > 16 {
		return &FormatError{What: "ar member name", Value: h.Name}
	}
	mode := h.Mode
	if mode == 0 {
		mode = 0644
	}

	header := pad(name, 16) +
		pad(strconv.FormatInt(h.ModTime, 10), 12) +
		pad(strconv.Itoa(h.UID), 6) +
		pad(strconv.Itoa(h.GID), 6) +
		pad("0"+strconv.FormatInt(mode, 8), 8) +
		pad(strconv.FormatInt(h.Size, 10), 10) +
		"\x60\x0a"
	if _, err := io.WriteString(aw.w, header); err != nil {
		return err
	}

	written, err := io.CopyBuffer(aw.w, body, make([]byte, arCopyChunk))
	if err != nil {
		return err
	}
	if written != h.Size {
		return fmt.Errorf("ar member %s: wrote %d bytes, header declares %d", h.Name, written, h.Size)
	}
	if written%2 != 0 {
		if _, err := aw.w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

// pad left-justifies s in a field of n spaces.
func pad(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
