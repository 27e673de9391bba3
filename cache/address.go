package cache

// Decoder splits addresses into tag, index and offset fields.
//
// Only the low AddressBits bits of an address are meaningful. Higher bits are
// dropped by the tag mask.
type Decoder struct {
	offsetBits uint
	indexBits  uint
	tagBits    uint
}

// NewDecoder creates a decoder for the given geometry.
func NewDecoder(g Geometry) Decoder {
	return Decoder{
		offsetBits: uint(g.OffsetBits),
		indexBits:  uint(g.IndexBits),
		tagBits:    uint(g.TagBits),
	}
}

// Tag returns the tag field of addr.
//
// Example: with 4 bits each of tag, index and offset,
// Tag(0b1111_0101_0001) returns 0b1111.
func (d Decoder) Tag(addr uint64) uint64 {
	return (addr >> (d.indexBits + d.offsetBits)) & mask(d.tagBits)
}

// Index returns the set index field of addr.
//
// Example: with 4 bits each of tag, index and offset,
// Index(0b1111_0101_0001) returns 0b0101.
func (d Decoder) Index(addr uint64) int {
	return int((addr >> d.offsetBits) & mask(d.indexBits))
}

// Offset returns the byte offset of addr within its block.
func (d Decoder) Offset(addr uint64) uint64 {
	return addr & mask(d.offsetBits)
}

// BlockAddress clears the offset bits of addr.
func (d Decoder) BlockAddress(addr uint64) uint64 {
	return addr &^ mask(d.offsetBits)
}

// Compose rebuilds an address from its fields.
func (d Decoder) Compose(tag uint64, index int, offset uint64) uint64 {
	return (tag&mask(d.tagBits))<<(d.indexBits+d.offsetBits) |
		(uint64(index)&mask(d.indexBits))<<d.offsetBits |
		offset&mask(d.offsetBits)
}

func mask(width uint) uint64 {
	return (uint64(1) << width) - 1
}
