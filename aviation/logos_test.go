// aviation/logos_test.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"pixooradar/settings"
)

// testPNGSplit encodes a two-tone image: a|b as left/right halves, or
// top/bottom when vertical is set. Two full-range tones keep the contrast
// stretch close to an identity, which makes pixel assertions stable.
func testPNGSplit(t *testing.T, w, h int, a, b color.RGBA, vertical bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := a
			if (!vertical && x >= w/2) || (vertical && y >= h/2) {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

func testLogoCache(t *testing.T) *LogoCache {
	t.Helper()
	st := settings.Default()
	st.LogoDir = t.TempDir()
	lc, err := NewLogoCache(&st, nil)
	if err != nil {
		t.Fatalf("NewLogoCache: %v", err)
	}
	return lc
}

func TestSafeBaseName(t *testing.T) {
	for _, tc := range []struct {
		iata, icao, expected string
	}{
		{"LH", "DLH", "LH"},
		{"", "DLH", "DLH"},
		{"A/B", "", "AB"},
		{"u2", "", "u2"},
		{"..", "", "airline_logo"},
		{"", "", "airline_logo"},
	} {
		if got := safeBaseName(tc.iata, tc.icao); got != tc.expected {
			t.Errorf("safeBaseName(%q, %q) = %q, expected %q", tc.iata, tc.icao, got, tc.expected)
		}
	}
}

// logoProvider serves canned logo bytes and counts fetches.
type logoProvider struct {
	Offline
	logo  []byte
	err   error
	calls int
}

func (p *logoProvider) Logo(ctx context.Context, iata, icao string) ([]byte, error) {
	p.calls++
	return p.logo, p.err
}

func rgb8(t *testing.T, img image.Image, x, y int) (uint8, uint8, uint8) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestLogoCacheFetchesOnceAndNormalizes(t *testing.T) {
	lc := testLogoCache(t)
	red := color.RGBA{R: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	p := &logoProvider{logo: testPNGSplit(t, 32, 32, red, green, false)}

	path, err := lc.ResolveOrFetch(context.Background(), p, "LH", "DLH")
	if err != nil {
		t.Fatalf("ResolveOrFetch: %v", err)
	}
	if filepath.Base(path) != "LH.png" {
		t.Errorf("cached as %q, expected LH.png", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening cached logo: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding cached logo: %v", err)
	}
	if b := img.Bounds(); b.Dx() != LogoWidth || b.Dy() != LogoHeight {
		t.Errorf("cached logo is %dx%d, expected %dx%d", b.Dx(), b.Dy(), LogoWidth, LogoHeight)
	}

	// The square source scales by 20/32 to 20x20, centered at x in
	// [22,42). Outside that band the canvas is the configured background,
	// painted after all the filtering, so it is exact.
	if r, g, b := rgb8(t, img, 0, 10); r != 0xBA || g != 0xBA || b != 0xBA {
		t.Errorf("canvas margin pixel (%d,%d,%d), expected the #BABABA background", r, g, b)
	}
	// Sample well away from the color boundary at x=32 so neither the
	// scale kernel nor the sharpen pass reaches across it.
	if r, g, b := rgb8(t, img, 26, 10); r < 200 || g > 50 || b > 50 {
		t.Errorf("left content pixel (%d,%d,%d), expected red", r, g, b)
	}
	if r, g, b := rgb8(t, img, 38, 10); g < 200 || r > 50 || b > 50 {
		t.Errorf("right content pixel (%d,%d,%d), expected green", r, g, b)
	}

	// Second resolve hits the disk cache.
	if _, err := lc.ResolveOrFetch(context.Background(), p, "LH", "DLH"); err != nil {
		t.Fatalf("second ResolveOrFetch: %v", err)
	}
	if p.calls != 1 {
		t.Errorf("provider fetched %d times, expected 1", p.calls)
	}
}

func TestLogoCacheKeepsRawBytesItCannotDecode(t *testing.T) {
	lc := testLogoCache(t)
	raw := []byte("GIF89a-but-not-really")
	p := &logoProvider{logo: raw}

	path, err := lc.ResolveOrFetch(context.Background(), p, "", "DLH")
	if err != nil {
		t.Fatalf("ResolveOrFetch: %v", err)
	}
	if filepath.Base(path) != "DLH.png" {
		t.Errorf("cached as %q, expected DLH.png", filepath.Base(path))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading cached file: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("cached bytes differ from the fetched ones")
	}
}

func TestLogoCachePropagatesFetchErrors(t *testing.T) {
	lc := testLogoCache(t)
	p := &logoProvider{err: os.ErrDeadlineExceeded}
	if _, err := lc.ResolveOrFetch(context.Background(), p, "LH", "DLH"); err == nil {
		t.Errorf("fetch error swallowed")
	}
	if entries, _ := os.ReadDir(lc.dir); len(entries) != 0 {
		t.Errorf("failed fetch left %d files in the cache dir", len(entries))
	}
}

func TestNormalizeLogoWideSource(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	bg := color.RGBA{R: 0xBA, G: 0xBA, B: 0xBA, A: 255}

	out, err := normalizeLogo(testPNGSplit(t, 128, 16, white, black, true), bg)
	if err != nil {
		t.Fatalf("normalizeLogo: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 20 {
		t.Fatalf("output is %dx%d, expected 64x20", b.Dx(), b.Dy())
	}

	// Scale is min(64/128, 20/16) = 0.5, so the 64x8 content sits at y in
	// [6,14): white rows on top, black below, background above and under.
	if r, g, b := rgb8(t, img, 32, 2); r != 0xBA || g != 0xBA || b != 0xBA {
		t.Errorf("pixel above the content band (%d,%d,%d), expected background", r, g, b)
	}
	if r, g, b := rgb8(t, img, 32, 17); r != 0xBA || g != 0xBA || b != 0xBA {
		t.Errorf("pixel below the content band (%d,%d,%d), expected background", r, g, b)
	}
	if r, _, _ := rgb8(t, img, 32, 7); r < 200 {
		t.Errorf("upper content row R=%d, expected white", r)
	}
	if r, _, _ := rgb8(t, img, 32, 12); r > 50 {
		t.Errorf("lower content row R=%d, expected black", r)
	}
}
