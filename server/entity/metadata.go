package entity

import (
	"encoding/binary"
	"math"
)

// Metadata field types of the entity metadata wire format. Each entry is a
// header byte packing the type in the top three bits and the field index in
// the low five, followed by the typed payload; 0x7F terminates the list.
const (
	metaTypeByte  = 0
	metaTypeShort = 1
	metaTypeInt   = 2
	metaTypeFloat = 3
	metaTypeStr   = 4
)

// Entity flag bits of metadata field zero.
const (
	// FlagOnFire marks a burning entity.
	FlagOnFire byte = 0x01
	// FlagSneaking marks a crouching entity.
	FlagSneaking byte = 0x02
	// FlagRiding marks an entity sitting on a vehicle.
	FlagRiding byte = 0x04
)

// MetadataWriter assembles an entity metadata payload.
type MetadataWriter struct {
	buf []byte
}

func (m *MetadataWriter) header(kind, index byte) {
	m.buf = append(m.buf, kind<<5|index&0x1F)
}

// PutByte appends a byte field.
func (m *MetadataWriter) PutByte(index, v byte) *MetadataWriter {
	m.header(metaTypeByte, index)
	m.buf = append(m.buf, v)
	return m
}

// PutShort appends a 16-bit field.
func (m *MetadataWriter) PutShort(index byte, v int16) *MetadataWriter {
	m.header(metaTypeShort, index)
	m.buf = binary.BigEndian.AppendUint16(m.buf, uint16(v))
	return m
}

// PutInt appends a 32-bit field.
func (m *MetadataWriter) PutInt(index byte, v int32) *MetadataWriter {
	m.header(metaTypeInt, index)
	m.buf = binary.BigEndian.AppendUint32(m.buf, uint32(v))
	return m
}

// PutFloat appends a float field.
func (m *MetadataWriter) PutFloat(index byte, v float32) *MetadataWriter {
	m.header(metaTypeFloat, index)
	m.buf = binary.BigEndian.AppendUint32(m.buf, math.Float32bits(v))
	return m
}

// PutString appends a length-prefixed string field.
func (m *MetadataWriter) PutString(index byte, v string) *MetadataWriter {
	m.header(metaTypeStr, index)
	m.buf = binary.BigEndian.AppendUint16(m.buf, uint16(len(v)))
	m.buf = append(m.buf, v...)
	return m
}

// Bytes terminates and returns the payload.
func (m *MetadataWriter) Bytes() []byte {
	return append(m.buf, 0x7F)
}

// FlagsMetadata returns a payload holding only the entity flag byte, used
// for sneak and fire state updates.
func FlagsMetadata(flags byte) []byte {
	var w MetadataWriter
	return w.PutByte(0, flags).Bytes()
}
