package kv

import (
	"fmt"

	"campusnav/indoornav/pkg/datastructure"

	"github.com/DataDog/zstd"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeFloorGraph json lalu zstd, format value yang disimpan di pebble.
func EncodeFloorGraph(g datastructure.FloorGraph) ([]byte, error) {
	return encode(g)
}

func DecodeFloorGraph(bb []byte) (datastructure.FloorGraph, error) {
	var g datastructure.FloorGraph
	if err := decode(bb, &g); err != nil {
		return nil, err
	}
	return g, nil
}

func encode(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return Compress(raw)
}

func decode(bb []byte, v interface{}) error {
	raw, err := Decompress(bb)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
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
