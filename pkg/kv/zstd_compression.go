package kv

import (
	"bytes"
	"encoding/gob"

	"github.com/DataDog/zstd"
)

// Encode gob lalu zstd.
func Encode(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return Compress(buf.Bytes())
}

func Decode(bbCompressed []byte, v any) error {
	bb, err := Decompress(bbCompressed)
	if err != nil {
		return err
	}
	return gob.NewDecoder(bytes.NewReader(bb)).Decode(v)
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
