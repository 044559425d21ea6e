// pixoo/client_test.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pixoo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"pixooradar/render"
	"pixooradar/settings"
)

// fakeDevice records the JSON commands a Client posts and answers like a
// Pixoo: HTTP 200 with an error_code field.
type fakeDevice struct {
	mu       sync.Mutex
	commands []gifFrame
	respond  func(w http.ResponseWriter)
}

func (d *fakeDevice) handler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var cmd gifFrame
	if err := json.Unmarshal(body, &cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d.mu.Lock()
	d.commands = append(d.commands, cmd)
	d.mu.Unlock()

	if d.respond != nil {
		d.respond(w)
		return
	}
	fmt.Fprint(w, `{"error_code":0}`)
}

func (d *fakeDevice) recorded() []gifFrame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]gifFrame(nil), d.commands...)
}

func deviceClient(t *testing.T, rawURL string) *Client {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parsing server url: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("splitting server host: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parsing server port: %v", err)
	}
	st := settings.Default()
	st.PixooIP = host
	st.PixooPort = port
	st.PixooReconnectSeconds = 1
	return NewClient(context.Background(), &st, nil, nil)
}

func TestConnectSendsAnimationReset(t *testing.T) {
	dev := &fakeDevice{}
	srv := httptest.NewServer(http.HandlerFunc(dev.handler))
	defer srv.Close()

	c := deviceClient(t, srv.URL)
	if err := c.ConnectWithRetry(true); err != nil {
		t.Fatalf("ConnectWithRetry: %v", err)
	}

	cmds := dev.recorded()
	if len(cmds) != 1 || cmds[0].Command != "Draw/ResetHttpGifId" {
		t.Errorf("connect sent %+v, expected a single Draw/ResetHttpGifId", cmds)
	}
}

func TestRenderUploadsFrames(t *testing.T) {
	dev := &fakeDevice{}
	srv := httptest.NewServer(http.HandlerFunc(dev.handler))
	defer srv.Close()

	c := deviceClient(t, srv.URL)
	c.DrawRect(1, 0, 1, 1, render.RGB{R: 255}, true)
	c.AddFrame()
	if err := c.Render(150); err != nil {
		t.Fatalf("Render: %v", err)
	}

	cmds := dev.recorded()
	if len(cmds) != 2 {
		t.Fatalf("Render sent %d commands, expected 2", len(cmds))
	}
	for i, cmd := range cmds {
		if cmd.Command != "Draw/SendHttpGif" {
			t.Errorf("command %d = %q, expected Draw/SendHttpGif", i, cmd.Command)
		}
		if cmd.PicNum != 2 || cmd.PicWidth != render.CanvasWidth {
			t.Errorf("command %d PicNum=%d PicWidth=%d, expected 2 and %d",
				i, cmd.PicNum, cmd.PicWidth, render.CanvasWidth)
		}
		if cmd.PicOffset != i {
			t.Errorf("command %d PicOffset = %d", i, cmd.PicOffset)
		}
		if cmd.PicID != 1 {
			t.Errorf("command %d PicID = %d, expected 1", i, cmd.PicID)
		}
		if cmd.PicSpeed != 150 {
			t.Errorf("command %d PicSpeed = %d, expected 150", i, cmd.PicSpeed)
		}
	}

	pix, err := base64.StdEncoding.DecodeString(cmds[0].PicData)
	if err != nil {
		t.Fatalf("decoding PicData: %v", err)
	}
	if len(pix) != render.CanvasWidth*render.CanvasHeight*3 {
		t.Fatalf("PicData is %d bytes, expected %d", len(pix), render.CanvasWidth*render.CanvasHeight*3)
	}
	// Pixel (1,0) was drawn red; packed RGB puts it at bytes 3..5.
	if pix[0] != 0 || pix[3] != 255 || pix[4] != 0 || pix[5] != 0 {
		t.Errorf("packed pixels wrong: first=%v second=%v", pix[0:3], pix[3:6])
	}

	// A later animation gets the next id.
	if err := c.Render(150); err != nil {
		t.Fatalf("second Render: %v", err)
	}
	cmds = dev.recorded()
	last := cmds[len(cmds)-1]
	if last.PicNum != 1 || last.PicID != 2 {
		t.Errorf("second Render PicNum=%d PicID=%d, expected 1 and 2", last.PicNum, last.PicID)
	}
}

func TestRenderResetsLargePicID(t *testing.T) {
	dev := &fakeDevice{}
	srv := httptest.NewServer(http.HandlerFunc(dev.handler))
	defer srv.Close()

	c := deviceClient(t, srv.URL)
	c.picID = 100
	if err := c.Render(100); err != nil {
		t.Fatalf("Render: %v", err)
	}

	cmds := dev.recorded()
	if len(cmds) != 2 || cmds[0].Command != "Draw/ResetHttpGifId" {
		t.Fatalf("expected a reset before the upload, got %+v", cmds)
	}
	if cmds[1].PicID != 1 {
		t.Errorf("PicID after reset = %d, expected 1", cmds[1].PicID)
	}
}

func TestRenderPropagatesDeviceErrors(t *testing.T) {
	dev := &fakeDevice{respond: func(w http.ResponseWriter) {
		fmt.Fprint(w, `{"error_code":5}`)
	}}
	srv := httptest.NewServer(http.HandlerFunc(dev.handler))
	defer srv.Close()

	c := deviceClient(t, srv.URL)
	err := c.Render(100)
	if err == nil || !strings.Contains(err.Error(), "error_code 5") {
		t.Errorf("Render error = %v, expected device error_code 5", err)
	}
}

func TestRenderPropagatesHTTPErrors(t *testing.T) {
	dev := &fakeDevice{respond: func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusInternalServerError)
	}}
	srv := httptest.NewServer(http.HandlerFunc(dev.handler))
	defer srv.Close()

	c := deviceClient(t, srv.URL)
	err := c.Render(100)
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("Render error = %v, expected an HTTP status error", err)
	}
}

func TestConnectFailFastHonorsDeadline(t *testing.T) {
	// A listener that is immediately closed gives a port nothing accepts on.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserving a port: %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	c := deviceClient(t, "http://"+addr)
	c.startupTimeout = 0

	err = c.ConnectWithRetry(true)
	if err == nil || !strings.Contains(err.Error(), "failed to connect to Pixoo") {
		t.Errorf("ConnectWithRetry = %v, expected a startup deadline error", err)
	}
}

func TestReachable(t *testing.T) {
	dev := &fakeDevice{}
	srv := httptest.NewServer(http.HandlerFunc(dev.handler))

	c := deviceClient(t, srv.URL)
	if !c.Reachable() {
		t.Errorf("Reachable() = false with the server up")
	}

	srv.Close()
	if c.Reachable() {
		t.Errorf("Reachable() = true with the server down")
	}
}
