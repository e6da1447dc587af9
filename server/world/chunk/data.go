package chunk

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/mc173/mc173/server/block/cube"
)

// WriteData writes the chunk's data for the cuboid starting at from with the
// given size to the writer. The cuboid must be clipped to this chunk. The Y of
// the start point is snapped down to an even value and the Y size rounded up
// to an even value so that nibble bytes are never split; the adjusted values
// are returned.
func (c *Chunk) WriteData(w io.Writer, from cube.Pos, size cube.Pos) (cube.Pos, cube.Pos, error) {
	if from[1]%2 != 0 {
		from[1]--
		size[1]++
	}
	size[1] = (size[1] + 1) &^ 1

	if size[0] <= 0 || size[0] > Width || size[2] <= 0 || size[2] > Width || size[1] <= 0 || from[1]+size[1] > Height {
		return from, size, fmt.Errorf("chunk data cuboid %v+%v out of bounds", from, size)
	}

	height := size[1]
	halfHeight := height / 2

	// A full chunk is written as the four arrays verbatim.
	if size[0] == Width && size[2] == Width && size[1] == Height {
		for _, b := range [][]byte{c.Blocks[:], c.Metadata[:], c.BlockLight[:], c.SkyLight[:]} {
			if _, err := w.Write(b); err != nil {
				return from, size, err
			}
		}
		return from, size, nil
	}

	for x := from[0]; x < from[0]+size[0]; x++ {
		for z := from[2]; z < from[2]+size[2]; z++ {
			i := Index3D(cube.Pos{x, from[1], z})
			if _, err := w.Write(c.Blocks[i : i+height]); err != nil {
				return from, size, err
			}
		}
	}
	for _, nibbles := range []*NibbleArray{&c.Metadata, &c.BlockLight, &c.SkyLight} {
		for x := from[0]; x < from[0]+size[0]; x++ {
			for z := from[2]; z < from[2]+size[2]; z++ {
				i := Index3D(cube.Pos{x, from[1], z}) / 2
				if _, err := w.Write(nibbles[i : i+halfHeight]); err != nil {
					return from, size, err
				}
			}
		}
	}
	return from, size, nil
}

// CompressData returns the zlib-compressed chunk data payload for the cuboid,
// along with the adjusted start point and size actually written. Compression
// runs at the fastest level: payloads are produced on the tick path.
func (c *Chunk) CompressData(from cube.Pos, size cube.Pos) ([]byte, cube.Pos, cube.Pos, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 1024))
	zw, err := zlib.NewWriterLevel(buf, zlib.BestSpeed)
	if err != nil {
		return nil, from, size, err
	}
	from, size, err = c.WriteData(zw, from, size)
	if err != nil {
		return nil, from, size, err
	}
	if err := zw.Close(); err != nil {
		return nil, from, size, err
	}
	return buf.Bytes(), from, size, nil
}
