package raster

import (
	"errors"
	"sync"
	"testing"
)

func TestPool_GetPut(t *testing.T) {
	pool := NewPool(2)

	buf, err := pool.Get(8, 8, FormatGray8)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !buf.Matches(8, 8, FormatGray8) {
		t.Errorf("Get() returned %dx%d %v", buf.Width(), buf.Height(), buf.Format())
	}

	pool.Put(buf)
	if pool.Len() != 1 {
		t.Errorf("Len() = %d, want 1", pool.Len())
	}

	again, _ := pool.Get(8, 8, FormatGray8)
	if again != buf {
		t.Error("Get() did not reuse the pooled buffer")
	}
	if pool.Len() != 0 {
		t.Errorf("Len() = %d, want 0", pool.Len())
	}

	other, _ := pool.Get(8, 8, FormatRGB8)
	if other == buf {
		t.Error("Get() reused a buffer of a different format")
	}
}

func TestPool_MaxPerBucket(t *testing.T) {
	pool := NewPool(2)
	for range 5 {
		b, _ := NewBuffer(4, 4, FormatGray8)
		pool.Put(b)
	}
	if pool.Len() != 2 {
		t.Errorf("Len() = %d, want 2", pool.Len())
	}
	pool.Put(nil)
	if pool.Len() != 2 {
		t.Errorf("Put(nil) changed Len() to %d", pool.Len())
	}
}

func TestPool_InvalidFormat(t *testing.T) {
	pool := NewPool(0)
	if _, err := pool.Get(0, 4, FormatGray8); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Get() error = %v, want ErrInvalidFormat", err)
	}
}

func TestPool_Concurrent(t *testing.T) {
	pool := NewPool(0)
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 50 {
				b, err := pool.Get(16, 16, FormatRGBA8)
				if err != nil {
					t.Error(err)
					return
				}
				pool.Put(b)
			}
		})
	}
	wg.Wait()
}
