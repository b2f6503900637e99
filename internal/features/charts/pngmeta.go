package charts

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"
)

const inchesPerMeter = 39.3700787

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

var errNotPNG = errors.New("not a PNG stream")

// withPhysicalDPI inserts a pHYs chunk right after IHDR so viewers
// report the image at the requested resolution.
func withPhysicalDPI(data []byte, dpi float64) ([]byte, error) {
	if len(data) < len(pngSignature)+8 || !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return nil, errNotPNG
	}
	pos := len(pngSignature)
	ihdrLen := int(binary.BigEndian.Uint32(data[pos:]))
	if string(data[pos+4:pos+8]) != "IHDR" {
		return nil, errNotPNG
	}
	end := pos + 12 + ihdrLen // length + type + data + crc
	if end > len(data) {
		return nil, errNotPNG
	}

	ppm := uint32(math.Round(dpi * inchesPerMeter))
	body := make([]byte, 0, 13)
	body = append(body, "pHYs"...)
	body = binary.BigEndian.AppendUint32(body, ppm)
	body = binary.BigEndian.AppendUint32(body, ppm)
	body = append(body, 1) // unit: meter

	out := make([]byte, 0, len(data)+len(body)+8)
	out = append(out, data[:end]...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(body)-4))
	out = append(out, body...)
	out = binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(body))
	out = append(out, data[end:]...)
	return out, nil
}

// PhysicalDPI reads the horizontal resolution stored in a PNG pHYs chunk,
// rounded to whole dots per inch. pHYs keeps integer pixels per meter, so
// the exact value written by withPhysicalDPI cannot be recovered.
func PhysicalDPI(data []byte) (float64, bool) {
	if len(data) < len(pngSignature) || !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return 0, false
	}
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[pos:]))
		typ := string(data[pos+4 : pos+8])
		start := pos + 8
		if start+n+4 > len(data) {
			return 0, false
		}
		switch typ {
		case "pHYs":
			if n != 9 || data[start+8] != 1 {
				return 0, false
			}
			ppm := binary.BigEndian.Uint32(data[start:])
			return math.Round(float64(ppm) / inchesPerMeter), true
		case "IDAT", "IEND":
			return 0, false
		}
		pos = start + n + 4
	}
	return 0, false
}
