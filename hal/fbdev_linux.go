//go:build linux

package hal

import (
	"context"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	fbiogetVScreenInfo = 0x4600
	fbiogetFScreenInfo = 0x4602
)

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MSBRight uint32
}

// fbVarScreenInfo mirrors struct fb_var_screeninfo.
type fbVarScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp fbBitfield
	NonStd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	PixClock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HSyncLen, VSyncLen       uint32
	Sync                     uint32
	VMode                    uint32
	Rotate                   uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

// fbFixScreenInfo mirrors struct fb_fix_screeninfo.
type fbFixScreenInfo struct {
	ID           [16]byte
	SMemStart    uintptr
	SMemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MMIOStart    uintptr
	MMIOLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// FBDev is a Linux framebuffer device mapped into memory. Drawing goes to a
// back buffer with the device's stride; Present copies it to the visible
// area.
type FBDev struct {
	path   string
	fd     int
	mem    []byte
	front  []uint32
	back   []uint32
	offset int
	width  int
	height int
	stride int
}

// OpenFBDev maps /dev/fb<index>. The device must already be in a 32-bit
// ARGB mode; no mode is set.
func OpenFBDev(index int) (*FBDev, error) {
	path := fmt.Sprintf("/dev/fb%d", index)
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", path, err)
	}

	var vinfo fbVarScreenInfo
	var finfo fbFixScreenInfo
	if err := ioctl(fd, fbiogetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%s: FBIOGET_VSCREENINFO: %w", path, err)
	}
	if err := ioctl(fd, fbiogetFScreenInfo, unsafe.Pointer(&finfo)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%s: FBIOGET_FSCREENINFO: %w", path, err)
	}
	if err := checkFBFormat(&vinfo, &finfo); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	mem, err := unix.Mmap(fd, 0, int(finfo.SMemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%s: mmap: %w", path, err)
	}

	stride := int(finfo.LineLength / 4)
	d := &FBDev{
		path:   path,
		fd:     fd,
		mem:    mem,
		front:  unsafe.Slice((*uint32)(unsafe.Pointer(&mem[0])), len(mem)/4),
		offset: int(vinfo.YOffset)*stride + int(vinfo.XOffset),
		width:  int(vinfo.XRes),
		height: int(vinfo.YRes),
		stride: stride,
	}
	d.back = make([]uint32, stride*d.height)
	return d, nil
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// checkFBFormat accepts 32bpp modes with red, green and blue in the ARGB
// byte positions, a word-aligned stride and enough mapped memory for the
// visible area.
func checkFBFormat(v *fbVarScreenInfo, f *fbFixScreenInfo) error {
	switch {
	case v.BitsPerPixel != 32:
		return fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedFormat, v.BitsPerPixel)
	case v.Red.Offset != 16 || v.Green.Offset != 8 || v.Blue.Offset != 0:
		return fmt.Errorf("%w: rgb offsets %d/%d/%d", ErrUnsupportedFormat, v.Red.Offset, v.Green.Offset, v.Blue.Offset)
	case v.XRes == 0 || v.YRes == 0:
		return fmt.Errorf("%w: %dx%d", ErrUnsupportedFormat, v.XRes, v.YRes)
	case f.LineLength%4 != 0 || f.LineLength/4 < v.XRes:
		return fmt.Errorf("%w: line length %d", ErrUnsupportedFormat, f.LineLength)
	}
	need := (uint64(v.YOffset)+uint64(v.YRes)-1)*uint64(f.LineLength) + (uint64(v.XOffset)+uint64(v.XRes))*4
	if uint64(f.SMemLen) < need {
		return fmt.Errorf("%w: %d bytes mapped, %d needed", ErrUnsupportedFormat, f.SMemLen, need)
	}
	return nil
}

func (d *FBDev) Width() int          { return d.width }
func (d *FBDev) Height() int         { return d.height }
func (d *FBDev) Format() PixelFormat { return PixelFormatARGB8888 }
func (d *FBDev) StrideBytes() int    { return d.stride * 4 }
func (d *FBDev) Pixels() []uint32    { return d.back }
func (d *FBDev) Clear()              { clear(d.back) }

func (d *FBDev) Present() error {
	if d.front == nil {
		return fmt.Errorf("%s: closed", d.path)
	}
	dst := d.front[d.offset:]
	copy(dst, d.back)
	return nil
}

// Close unmaps the device memory and closes the device.
func (d *FBDev) Close() error {
	if d.mem == nil {
		return nil
	}
	err := unix.Munmap(d.mem)
	d.mem, d.front = nil, nil
	if cerr := unix.Close(d.fd); err == nil {
		err = cerr
	}
	return err
}

type deviceHAL struct {
	logger *hostLogger
	fb     *FBDev
	kbd    *ttyKeyboard
}

func (h *deviceHAL) Logger() Logger   { return h.logger }
func (h *deviceHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *deviceHAL) Input() Input     { return hostInput{kbd: h.kbd} }

// RunDevice draws straight to /dev/fb<index> and reads keys from the
// terminal on stdin.
func RunDevice(ctx context.Context, index int, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	fb, err := OpenFBDev(index)
	if err != nil {
		return err
	}
	defer fb.Close()

	kbd, err := openTTYKeyboard(os.Stdin)
	if err != nil {
		return err
	}
	defer kbd.Close()

	h := &deviceHAL{logger: &hostLogger{w: os.Stderr}, fb: fb, kbd: kbd}
	h.logger.WriteLineString(fmt.Sprintf("fbdev: %s %dx%d stride %d", fb.path, fb.width, fb.height, fb.StrideBytes()))
	step, err := newApp(h)
	if err != nil {
		return err
	}
	return runTicker(ctx, step, cfg)
}
