// Package pngtexttest builds PNG files with text chunks for tests.
package pngtexttest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// Chunk describes a text chunk to embed.
type Chunk struct {
	Type  string // "tEXt", "zTXt" or "iTXt"
	Key   string
	Value string
}

// Text returns a tEXt chunk.
func Text(key, value string) Chunk { return Chunk{Type: "tEXt", Key: key, Value: value} }

// Compressed returns a zTXt chunk.
func Compressed(key, value string) Chunk { return Chunk{Type: "zTXt", Key: key, Value: value} }

// International returns an uncompressed iTXt chunk.
func International(key, value string) Chunk { return Chunk{Type: "iTXt", Key: key, Value: value} }

// ihdrEnd is the offset just past the signature and the IHDR chunk.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// Encode returns a 2x2 PNG with chunks spliced in after IHDR.
func Encode(t testing.TB, chunks ...Chunk) []byte {
	t.Helper()

	var img bytes.Buffer
	if err := imaging.Encode(&img, imaging.New(2, 2, color.NRGBA{R: 200, A: 255}), imaging.PNG); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	raw := img.Bytes()

	var out bytes.Buffer
	out.Write(raw[:ihdrEnd])
	for _, c := range chunks {
		out.Write(RawChunk(t, c.Type, body(t, c)))
	}
	out.Write(raw[ihdrEnd:])
	return out.Bytes()
}

// Write encodes a PNG with chunks to path, creating parent directories.
func Write(t testing.TB, path string, chunks ...Chunk) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, Encode(t, chunks...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// RawChunk frames data as a PNG chunk with a valid CRC.
func RawChunk(t testing.TB, typ string, data []byte) []byte {
	t.Helper()
	var b bytes.Buffer
	_ = binary.Write(&b, binary.BigEndian, uint32(len(data)))
	b.WriteString(typ)
	b.Write(data)
	crc := crc32.Update(crc32.ChecksumIEEE([]byte(typ)), crc32.IEEETable, data)
	_ = binary.Write(&b, binary.BigEndian, crc)
	return b.Bytes()
}

func body(t testing.TB, c Chunk) []byte {
	t.Helper()
	var b bytes.Buffer
	b.WriteString(c.Key)
	b.WriteByte(0)
	switch c.Type {
	case "tEXt":
		b.WriteString(c.Value)
	case "zTXt":
		b.WriteByte(0)
		b.Write(deflate(t, c.Value))
	case "iTXt":
		b.Write([]byte{0, 0}) // uncompressed
		b.WriteByte(0)        // empty language tag
		b.WriteByte(0)        // empty translated keyword
		b.WriteString(c.Value)
	default:
		t.Fatalf("unsupported chunk type %q", c.Type)
	}
	return b.Bytes()
}

func deflate(t testing.TB, s string) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zlib.NewWriter(&b)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatalf("deflate: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("deflate: %v", err)
	}
	return b.Bytes()
}
