// Package pngtext reads textual metadata from PNG files without decoding
// image data.
//
// Only tEXt, zTXt and iTXt chunks are parsed. Every other chunk is skipped
// unread, so looking up a key costs one pass over the chunk headers.
package pngtext

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unicode/utf8"
)

// URIKey is the key under which thumbnailers record the origin URI.
const URIKey = "Thumb::URI"

var (
	// ErrNotPNG is returned when the input does not start with the PNG signature
	// or its chunk stream is malformed.
	ErrNotPNG = errors.New("not a png file")

	// ErrNotFound is returned when no text chunk carries the requested key.
	ErrNotFound = errors.New("text key not found")
)

const (
	maxTextChunk   = 1 << 20
	maxInflated    = 1 << 20
	chunkHeaderLen = 8
)

var signature = []byte("\x89PNG\r\n\x1a\n")

// Entry is one decoded text chunk.
type Entry struct {
	Chunk string // tEXt, zTXt or iTXt
	Key   string
	Value string
}

// ReadURI returns the Thumb::URI value stored in the PNG at path.
func ReadURI(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	v, err := Lookup(bufio.NewReader(f), URIKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Lookup scans r for the first text chunk whose key equals key.
func Lookup(r io.Reader, key string) (string, error) {
	var (
		found string
		ok    bool
	)
	err := Walk(r, func(e Entry) bool {
		if e.Key == key {
			found, ok = e.Value, true
		}
		return !ok
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return found, nil
}

// Walk calls fn for each text chunk in stream order until fn returns false
// or IEND is reached. Text chunks that fail their CRC or cannot be decoded
// are skipped.
func Walk(r io.Reader, fn func(Entry) bool) error {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil || !bytes.Equal(sig[:], signature) {
		return ErrNotPNG
	}

	var hdr [chunkHeaderLen]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return fmt.Errorf("%w: truncated chunk header", ErrNotPNG)
		}
		length := binary.BigEndian.Uint32(hdr[:4])
		typ := string(hdr[4:8])
		if length > 0x7fffffff {
			return fmt.Errorf("%w: chunk %q too large", ErrNotPNG, typ)
		}

		switch typ {
		case "IEND":
			return nil
		case "tEXt", "zTXt", "iTXt":
			if length > maxTextChunk {
				if err := skip(r, int64(length)+4); err != nil {
					return err
				}
				continue
			}
			data := make([]byte, length+4)
			if _, err := io.ReadFull(r, data); err != nil {
				return fmt.Errorf("%w: truncated %s chunk", ErrNotPNG, typ)
			}
			body, crc := data[:length], binary.BigEndian.Uint32(data[length:])
			if crc32.Update(crc32.ChecksumIEEE(hdr[4:8]), crc32.IEEETable, body) != crc {
				continue
			}
			e, ok := decode(typ, body)
			if ok && !fn(e) {
				return nil
			}
		default:
			if err := skip(r, int64(length)+4); err != nil {
				return err
			}
		}
	}
}

func skip(r io.Reader, n int64) error {
	if s, ok := r.(io.Seeker); ok {
		if _, err := s.Seek(n, io.SeekCurrent); err == nil {
			return nil
		}
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("%w: truncated chunk", ErrNotPNG)
	}
	return nil
}

func decode(typ string, body []byte) (Entry, bool) {
	key, rest, ok := bytes.Cut(body, []byte{0})
	if !ok || len(key) == 0 || len(key) > 79 {
		return Entry{}, false
	}
	e := Entry{Chunk: typ, Key: latin1(key)}

	switch typ {
	case "tEXt":
		e.Value = latin1(rest)
	case "zTXt":
		if len(rest) < 1 || rest[0] != 0 {
			return Entry{}, false
		}
		text, err := inflate(rest[1:])
		if err != nil {
			return Entry{}, false
		}
		e.Value = latin1(text)
	case "iTXt":
		if len(rest) < 2 {
			return Entry{}, false
		}
		compressed, method := rest[0], rest[1]
		_, rest, ok = bytes.Cut(rest[2:], []byte{0}) // language tag
		if !ok {
			return Entry{}, false
		}
		_, text, ok := bytes.Cut(rest, []byte{0}) // translated keyword
		if !ok {
			return Entry{}, false
		}
		if compressed == 1 {
			if method != 0 {
				return Entry{}, false
			}
			var err error
			if text, err = inflate(text); err != nil {
				return Entry{}, false
			}
		}
		if !utf8.Valid(text) {
			return Entry{}, false
		}
		e.Value = string(text)
	}
	return e, true
}

func inflate(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxInflated+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxInflated {
		return nil, errors.New("inflated text too large")
	}
	return out, nil
}

// latin1 converts ISO 8859-1 bytes to a UTF-8 string.
func latin1(b []byte) string {
	ascii := true
	for _, c := range b {
		if c >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}
