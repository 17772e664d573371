// Package blocks slices a firmware image into TransferData-sized blocks
// with wrap-around block sequence counters, ready to be sent one request at
// a time after a RequestDownload.
package blocks

import (
	"fmt"
	"io"
	"sort"

	"github.com/marcinbor85/gohex"

	"github.com/LoveWonYoung/udskit/services"
)

// Block is one TransferData round: the counter to send and the data slice
// it carries.
type Block struct {
	SequenceCounter byte
	Address         uint32
	Data            []byte
}

// Segment is a contiguous region of the parsed image.
type Segment struct {
	Address uint32
	Data    []byte
}

// firstSequenceCounter is the counter of the first TransferData request
// after a RequestDownload; the counter wraps from 0xFF to 0x00.
const firstSequenceCounter = 1

// ParseIntelHex reads an Intel HEX image and returns its data segments in
// ascending address order.
func ParseIntelHex(r io.Reader) ([]Segment, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, fmt.Errorf("parse hex image: %w", err)
	}

	var segments []Segment
	for _, seg := range mem.GetDataSegments() {
		data := make([]byte, len(seg.Data))
		copy(data, seg.Data)
		segments = append(segments, Segment{Address: seg.Address, Data: data})
	}
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Address < segments[j].Address
	})
	return segments, nil
}

// Split cuts segments into blocks of at most blockSize bytes each, numbering
// them with the wrap-around sequence counter the TransferData service
// expects.
func Split(segments []Segment, blockSize int) ([]Block, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("block size must be positive, got %d", blockSize)
	}

	var out []Block
	counter := byte(firstSequenceCounter)
	for _, seg := range segments {
		for offset := 0; offset < len(seg.Data); offset += blockSize {
			end := offset + blockSize
			if end > len(seg.Data) {
				end = len(seg.Data)
			}
			out = append(out, Block{
				SequenceCounter: counter,
				Address:         seg.Address + uint32(offset),
				Data:            seg.Data[offset:end],
			})
			counter++ // wraps from 0xFF to 0x00
		}
	}
	return out, nil
}

// Requests renders each block as a complete TransferData request buffer.
func Requests(blks []Block) ([][]byte, error) {
	out := make([][]byte, 0, len(blks))
	for _, b := range blks {
		req, err := services.NewTransferDataRequest(b.SequenceCounter, b.Data)
		if err != nil {
			return nil, fmt.Errorf("block at 0x%08X: %w", b.Address, err)
		}
		out = append(out, req)
	}
	return out, nil
}

// FromIntelHex is ParseIntelHex followed by Split.
func FromIntelHex(r io.Reader, blockSize int) ([]Block, error) {
	segments, err := ParseIntelHex(r)
	if err != nil {
		return nil, err
	}
	return Split(segments, blockSize)
}
