//go:build js && wasm

package main

import (
	"errors"
	"sync"
	"syscall/js"

	"fitstudio/internal/domain/playback"
)

const iframeAPIURL = "https://www.youtube.com/iframe_api"

var errAPINotReady = errors.New("youtube iframe api not loaded")

// youtubeProvider creates players through the YouTube iframe API.
type youtubeProvider struct {
	mu       sync.Mutex
	ready    bool
	onLoaded js.Func
}

// load injects the iframe API script once. Create fails until it has loaded.
func (p *youtubeProvider) load() {
	global := js.Global()
	if yt := global.Get("YT"); yt.Truthy() && yt.Get("Player").Truthy() {
		p.setReady()
		return
	}
	p.onLoaded = js.FuncOf(func(this js.Value, args []js.Value) any {
		p.setReady()
		return nil
	})
	global.Set("onYouTubeIframeAPIReady", p.onLoaded)

	doc := global.Get("document")
	script := doc.Call("createElement", "script")
	script.Set("src", iframeAPIURL)
	script.Set("async", true)
	doc.Get("head").Call("appendChild", script)
}

func (p *youtubeProvider) setReady() {
	p.mu.Lock()
	p.ready = true
	p.mu.Unlock()
}

func (p *youtubeProvider) Create(containerID, mediaID string, opts playback.Options, events playback.Events) (playback.Handle, error) {
	p.mu.Lock()
	ready := p.ready
	p.mu.Unlock()
	if !ready {
		return nil, errAPINotReady
	}

	h := &youtubeHandle{}
	// Callbacks run on the browser event loop; the controller may block on
	// its mutex, so hand them to a goroutine.
	h.onReady = js.FuncOf(func(this js.Value, args []js.Value) any {
		go events.OnReady(h)
		return nil
	})
	h.onStateChange = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		state := playback.PlayerState(args[0].Get("data").Int())
		go events.OnStateChange(h, state)
		return nil
	})

	controls := 0
	if opts.Controls {
		controls = 1
	}
	config := map[string]any{
		"width":   opts.Width,
		"height":  opts.Height,
		"videoId": mediaID,
		"playerVars": map[string]any{
			"controls":       controls,
			"modestbranding": 1,
			"playsinline":    1,
		},
		"events": map[string]any{
			"onReady":       h.onReady,
			"onStateChange": h.onStateChange,
		},
	}
	h.player = js.Global().Get("YT").Get("Player").New(containerID, config)
	return h, nil
}

// youtubeHandle wraps one YT.Player.
type youtubeHandle struct {
	player        js.Value
	onReady       js.Func
	onStateChange js.Func
	destroyed     bool
}

// call invokes a player method, ignoring it while the player is still
// loading or after Destroy.
func (h *youtubeHandle) call(method string, args ...any) js.Value {
	if h.destroyed || h.player.Get(method).Type() != js.TypeFunction {
		return js.Undefined()
	}
	return h.player.Call(method, args...)
}

func (h *youtubeHandle) Play()  { h.call("playVideo") }
func (h *youtubeHandle) Pause() { h.call("pauseVideo") }

func (h *youtubeHandle) CurrentTime() float64 {
	if v := h.call("getCurrentTime"); v.Type() == js.TypeNumber {
		return v.Float()
	}
	return 0
}

func (h *youtubeHandle) Duration() float64 {
	if v := h.call("getDuration"); v.Type() == js.TypeNumber {
		return v.Float()
	}
	return 0
}

func (h *youtubeHandle) SeekTo(seconds float64, allowSeekAhead bool) {
	h.call("seekTo", seconds, allowSeekAhead)
}

func (h *youtubeHandle) SetVolume(level int) { h.call("setVolume", level) }

func (h *youtubeHandle) Destroy() {
	if h.destroyed {
		return
	}
	h.call("destroy")
	h.destroyed = true
	h.onReady.Release()
	h.onStateChange.Release()
}

var (
	_ playback.Seeker       = (*youtubeHandle)(nil)
	_ playback.VolumeSetter = (*youtubeHandle)(nil)
)
