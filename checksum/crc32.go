package checksum

import "hash/crc32"

// CRCFunc updates a running CRC-32 (IEEE polynomial) with p.
// A nil p returns 0, the initial CRC-32 value.
type CRCFunc func(crc uint32, p []byte) uint32

// CRC32Generic is the table-driven, byte-at-a-time CRC-32.
func CRC32Generic(crc uint32, p []byte) uint32 {
	if p == nil {
		return 0
	}
	tab := crc32.IEEETable
	crc = ^crc
	for _, b := range p {
		crc = tab[byte(crc)^b] ^ crc>>8
	}
	return ^crc
}

// CRC32PCLMUL uses hash/crc32, which folds with carry-less multiplication
// on hosts that support it and slicing-by-8 elsewhere.
func CRC32PCLMUL(crc uint32, p []byte) uint32 {
	if p == nil {
		return 0
	}
	return crc32.Update(crc, crc32.IEEETable, p)
}
