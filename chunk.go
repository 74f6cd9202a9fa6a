package gochunk

// ChunkIndex is an emitted chunk together with its byte offset into the
// original input. For trim=false, input[Offset:Offset+len(Text)] == Text.
// For trim=true, Offset is the offset of Text's first byte after trimming.
type ChunkIndex struct {
	Offset int
	Text   string
}
