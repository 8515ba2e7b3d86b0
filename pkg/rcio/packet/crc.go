package packet

// crc8Table is CRC-8 with polynomial 0x07.
var crc8Table [256]byte

func init() {
	for n := range crc8Table {
		crc := byte(n)
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
		crc8Table[n] = crc
	}
}

// CRC8 calculates the CRC-8 of data with initial value 0.
func CRC8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc = crc8Table[crc^b]
	}
	return crc
}

// FrameCRC calculates the crc of a frame as if its crc byte were zero.
func FrameCRC(frame []byte) byte {
	var crc byte
	for n, b := range frame {
		if n == crcIndex {
			b = 0
		}
		crc = crc8Table[crc^b]
	}
	return crc
}
