package raster

import (
	"bytes"
	"errors"
	"testing"
)

func TestInterpolationMode_String(t *testing.T) {
	tests := []struct {
		mode InterpolationMode
		want string
	}{
		{InterpNearest, "Nearest"},
		{InterpBilinear, "Bilinear"},
		{InterpCatmullRom, "CatmullRom"},
		{InterpolationMode(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestScale_SameSizeCopies(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	src, _ := FromBytes(data, 3, 3, FormatGray8)
	for _, mode := range []InterpolationMode{InterpNearest, InterpBilinear, InterpCatmullRom} {
		t.Run(mode.String(), func(t *testing.T) {
			dst, _ := NewBuffer(3, 3, FormatGray8)
			if err := Scale(dst, src, mode); err != nil {
				t.Fatalf("Scale() error = %v", err)
			}
			if !bytes.Equal(dst.Data(), data) {
				t.Errorf("Scale() = %v, want %v", dst.Data(), data)
			}
		})
	}
}

func TestScale_NearestUpscale(t *testing.T) {
	src, _ := FromBytes([]byte{10, 20, 30, 40}, 2, 2, FormatGray8)
	dst, _ := NewBuffer(4, 4, FormatGray8)
	if err := Scale(dst, src, InterpNearest); err != nil {
		t.Fatalf("Scale() error = %v", err)
	}
	want := []byte{
		10, 10, 20, 20,
		10, 10, 20, 20,
		30, 30, 40, 40,
		30, 30, 40, 40,
	}
	if !bytes.Equal(dst.Data(), want) {
		t.Errorf("Scale() = %v, want %v", dst.Data(), want)
	}
}

func TestScale_NearestDownscaleMultiByte(t *testing.T) {
	// 4x2 RGB8 where each column has a distinct colour.
	src, _ := NewBuffer(4, 2, FormatRGB8)
	for y := range 2 {
		for x := range 4 {
			copy(src.PixelBytes(x, y), []byte{byte(x), byte(10 * x), byte(100 + x)})
		}
	}
	dst, _ := NewBuffer(2, 1, FormatRGB8)
	if err := Scale(dst, src, InterpNearest); err != nil {
		t.Fatalf("Scale() error = %v", err)
	}
	want := []byte{1, 10, 101, 3, 30, 103}
	if !bytes.Equal(dst.Data(), want) {
		t.Errorf("Scale() = %v, want %v", dst.Data(), want)
	}
}

func TestScale_FillsDestination(t *testing.T) {
	src, _ := NewBuffer(3, 7, FormatRGBA8)
	for i := range src.Data() {
		src.Data()[i] = 0xff
	}
	for _, mode := range []InterpolationMode{InterpNearest, InterpBilinear, InterpCatmullRom} {
		t.Run(mode.String(), func(t *testing.T) {
			dst, _ := NewBuffer(10, 4, FormatRGBA8)
			if err := Scale(dst, src, mode); err != nil {
				t.Fatalf("Scale() error = %v", err)
			}
			// Filtering kernels may round a constant field down by one.
			for i, v := range dst.Data() {
				if v < 0xfe {
					t.Fatalf("byte %d = %d, want ~255 (destination not fully covered)", i, v)
				}
			}
		})
	}
}

func TestScale_Deterministic(t *testing.T) {
	src, _ := NewBuffer(5, 3, FormatGray8)
	for i := range src.Data() {
		src.Data()[i] = byte(i * 17)
	}
	for _, mode := range []InterpolationMode{InterpNearest, InterpBilinear, InterpCatmullRom} {
		a, _ := NewBuffer(7, 9, FormatGray8)
		b, _ := NewBuffer(7, 9, FormatGray8)
		_ = Scale(a, src, mode)
		_ = Scale(b, src, mode)
		if !bytes.Equal(a.Data(), b.Data()) {
			t.Errorf("%v: two runs differ", mode)
		}
	}
}

func TestScale_FormatMismatch(t *testing.T) {
	src, _ := NewBuffer(2, 2, FormatGray8)
	dst, _ := NewBuffer(4, 4, FormatRGB8)
	if err := Scale(dst, src, InterpNearest); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Scale() error = %v, want ErrInvalidFormat", err)
	}
}
