package hal

// hostFramebuffer is a heap frame. It is not locked: the runners call the
// step function and snapshotRGBA from the same goroutine (ebiten runs Update
// and Draw on its game loop goroutine).
type hostFramebuffer struct {
	width  int
	height int
	stride int
	buf    []uint32
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: width * 4,
		buf:    make([]uint32, width*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatARGB8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Pixels() []uint32    { return f.buf }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) Clear() { clear(f.buf) }

// snapshotRGBA converts the current frame into dst, which holds
// width*height*4 bytes.
func (f *hostFramebuffer) snapshotRGBA(dst []byte) {
	argbToRGBA(dst, f.buf)
}
