// pixoo/client.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pixoo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"pixooradar/log"
	"pixooradar/render"
	"pixooradar/settings"
	"pixooradar/util"
)

// Client drives a Divoom Pixoo 64 over its local HTTP API: frames are
// rasterized locally and uploaded base64-encoded with Draw/SendHttpGif. The
// HTTP timeout lives here so a wedged device can never hang the poll loop.
type Client struct {
	*Rasterizer

	ctx   context.Context
	addr  string
	url   string
	httpc *http.Client

	reconnectDelay time.Duration
	startupTimeout time.Duration
	picID          int

	lg *log.Logger
}

func NewClient(ctx context.Context, st *settings.Settings, fonts map[string]*Font, lg *log.Logger) *Client {
	addr := net.JoinHostPort(st.PixooIP, strconv.Itoa(st.PixooPort))
	return &Client{
		Rasterizer:     NewRasterizer(fonts, lg),
		ctx:            ctx,
		addr:           addr,
		url:            "http://" + addr + "/post",
		httpc:          &http.Client{Timeout: 4 * time.Second},
		reconnectDelay: time.Duration(st.PixooReconnectSeconds) * time.Second,
		startupTimeout: time.Duration(st.PixooStartupConnectTimeoutSeconds) * time.Second,
		lg:             lg,
	}
}

// Reachable probes the device with a plain TCP dial. The HTTP API answers on
// the same port, so a completed handshake is a reliable liveness signal.
func (c *Client) Reachable() bool {
	conn, err := net.DialTimeout("tcp", c.addr, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// ConnectWithRetry blocks until the device accepts commands. With failFast
// set the attempts stop at the configured startup deadline and the last
// error is returned; otherwise it retries forever, which is what the steady
// state reconnect path wants.
func (c *Client) ConnectWithRetry(failFast bool) error {
	var deadline time.Time
	if failFast {
		deadline = time.Now().Add(c.startupTimeout)
	}
	for {
		c.lg.Infof("connecting to Pixoo at %s", c.addr)
		err := c.connect()
		if err == nil {
			c.lg.Infof("Pixoo connected")
			return nil
		}
		if failFast && !time.Now().Before(deadline) {
			return fmt.Errorf("failed to connect to Pixoo at %s within %s: %w",
				c.addr, c.startupTimeout, err)
		}
		c.lg.Warnf("Pixoo unavailable (%v); retrying in %s", err, c.reconnectDelay)
		select {
		case <-c.ctx.Done():
			return c.ctx.Err()
		case <-time.After(c.reconnectDelay):
		}
	}
}

func (c *Client) connect() error {
	if !c.Reachable() {
		return fmt.Errorf("no TCP connection to %s", c.addr)
	}
	return c.resetAnimation()
}

type gifFrame struct {
	Command   string `json:"Command"`
	PicNum    int    `json:"PicNum"`
	PicWidth  int    `json:"PicWidth"`
	PicOffset int    `json:"PicOffset"`
	PicID     int    `json:"PicID"`
	PicSpeed  int    `json:"PicSpeed"`
	PicData   string `json:"PicData"`
}

// Render uploads the buffered animation. The device ignores animations whose
// PicID it has already played, so the id only moves forward and is reset
// before it gets large.
func (c *Client) Render(frameSpeedMS int) error {
	frames := c.takeFrames()

	if c.picID >= 100 {
		if err := c.resetAnimation(); err != nil {
			return err
		}
	}
	c.picID++

	payloads := util.MapSlice(frames, func(f *image.RGBA) string {
		return base64.StdEncoding.EncodeToString(frameRGB(f))
	})
	for i, data := range payloads {
		cmd := gifFrame{
			Command:   "Draw/SendHttpGif",
			PicNum:    len(frames),
			PicWidth:  render.CanvasWidth,
			PicOffset: i,
			PicID:     c.picID,
			PicSpeed:  frameSpeedMS,
			PicData:   data,
		}
		if err := c.command(cmd); err != nil {
			return fmt.Errorf("frame %d/%d: %w", i+1, len(frames), err)
		}
	}
	return nil
}

func (c *Client) resetAnimation() error {
	err := c.command(struct {
		Command string `json:"Command"`
	}{"Draw/ResetHttpGifId"})
	if err != nil {
		return err
	}
	c.picID = 0
	return nil
}

func (c *Client) command(payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(c.ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("device returned status %d", resp.StatusCode)
	}

	var r struct {
		ErrorCode int `json:"error_code"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return fmt.Errorf("device response %q: %w", raw, err)
	}
	if r.ErrorCode != 0 {
		return fmt.Errorf("device error_code %d", r.ErrorCode)
	}
	return nil
}

// frameRGB flattens a frame to the packed RGB byte order the device expects.
func frameRGB(img *image.RGBA) []byte {
	buf := make([]byte, 0, render.CanvasWidth*render.CanvasHeight*3)
	for y := 0; y < render.CanvasHeight; y++ {
		for x := 0; x < render.CanvasWidth; x++ {
			o := img.PixOffset(x, y)
			buf = append(buf, img.Pix[o], img.Pix[o+1], img.Pix[o+2])
		}
	}
	return buf
}
