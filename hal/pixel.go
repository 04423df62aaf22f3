package hal

// argbToRGBA expands packed ARGB words into RGBA bytes, as image.RGBA
// stores them. The frame is opaque on screen, so alpha is forced to 0xFF.
func argbToRGBA(dst []byte, src []uint32) {
	n := min(len(src), len(dst)/4)
	for i := 0; i < n; i++ {
		p := src[i]
		j := i * 4
		dst[j+0] = byte(p >> 16)
		dst[j+1] = byte(p >> 8)
		dst[j+2] = byte(p)
		dst[j+3] = 0xFF
	}
}
