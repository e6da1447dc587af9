package entity

import (
	"bytes"
	"testing"
)

func TestFlagsMetadata(t *testing.T) {
	got := FlagsMetadata(FlagSneaking)
	want := []byte{0x00, FlagSneaking, 0x7F}
	if !bytes.Equal(got, want) {
		t.Fatalf("flags payload %v, want %v", got, want)
	}
}

func TestMetadataWriterTypes(t *testing.T) {
	var w MetadataWriter
	got := w.PutByte(0, 1).PutShort(1, 0x0203).PutInt(2, 0x04050607).Bytes()
	want := []byte{
		0x00, 0x01,
		0x21, 0x02, 0x03,
		0x42, 0x04, 0x05, 0x06, 0x07,
		0x7F,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("payload %v, want %v", got, want)
	}
}

func TestMetadataWriterString(t *testing.T) {
	var w MetadataWriter
	got := w.PutString(5, "ab").Bytes()
	want := []byte{0x85, 0x00, 0x02, 'a', 'b', 0x7F}
	if !bytes.Equal(got, want) {
		t.Fatalf("payload %v, want %v", got, want)
	}
}
