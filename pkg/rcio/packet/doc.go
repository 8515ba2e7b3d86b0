// Package packet provides the wire format of the RC I/O register protocol.
package packet

// Every transaction is one request frame from the host followed by one
// response frame of the same size from the coprocessor:
//
//	[count_code][crc][page][offset][reg0 lo][reg0 hi]...[regN-1 lo][regN-1 hi]
//
// count_code carries the operation in the top two bits and the number of
// registers in the low six bits. crc is a CRC-8 over the whole frame with
// the crc byte itself set to zero.
