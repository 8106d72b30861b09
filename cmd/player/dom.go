//go:build js && wasm

package main

import (
	"html"
	"strconv"
	"syscall/js"

	"fitstudio/internal/domain/playback"
)

// domPage finds episode cards rendered inside root.
type domPage struct {
	root js.Value
}

func (p domPage) Card(episodeID string) playback.Card {
	if episodeID == "" {
		return nil
	}
	selector := `[data-episode-id="` + js.Global().Get("CSS").Call("escape", episodeID).String() + `"]`
	el := p.root.Call("querySelector", selector)
	if !el.Truthy() {
		return nil
	}
	return domCard{el: el, episodeID: episodeID}
}

func (p domPage) DeactivateSurfaces() {
	cards := p.root.Call("querySelectorAll", "[data-episode-id]")
	for i := 0; i < cards.Length(); i++ {
		el := cards.Index(i)
		c := domCard{el: el, episodeID: el.Get("dataset").Get("episodeId").String()}
		c.SetListening(false)
		c.ShowPlaying(false)
		c.HideVideo()
	}
}

// domCard drives the markup produced by renderEpisodes.
type domCard struct {
	el        js.Value
	episodeID string
}

func (c domCard) find(selector string) js.Value {
	return c.el.Call("querySelector", selector)
}

// PlayerContainerID puts a fresh container in the card's slot. The provider
// replaces the container with its iframe, so each activation needs a new one.
func (c domCard) PlayerContainerID() string {
	id := playerContainerID(c.episodeID)
	slot := c.find("[data-player-slot]")
	if !slot.Truthy() {
		return id
	}
	container := js.Global().Get("document").Call("createElement", "div")
	container.Set("id", id)
	slot.Set("innerHTML", "")
	slot.Call("appendChild", container)
	return id
}

func (c domCard) ListeningVisible() bool {
	panel := c.find(".listening-panel")
	return panel.Truthy() && !panel.Get("hidden").Bool()
}

func (c domCard) SetListening(active bool) {
	if panel := c.find(".listening-panel"); panel.Truthy() {
		panel.Set("hidden", !active)
	}
	if btn := c.find(`[data-action="listen"]`); btn.Truthy() {
		btn.Call("setAttribute", "aria-expanded", strconv.FormatBool(active))
	}
}

func (c domCard) ShowPlaying(playing bool) {
	btn := c.find(`[data-action="play"]`)
	if !btn.Truthy() {
		return
	}
	label := "Play"
	if playing {
		label = "Pause"
	}
	btn.Set("textContent", label)
	btn.Call("setAttribute", "aria-pressed", strconv.FormatBool(playing))
	c.el.Get("classList").Call("toggle", "is-playing", playing)
}

func (c domCard) Volume() int {
	input := c.find(`[data-action="volume"]`)
	if !input.Truthy() {
		return playback.DefaultVolume
	}
	v, err := strconv.Atoi(input.Get("value").String())
	if err != nil {
		return playback.DefaultVolume
	}
	return v
}

func (c domCard) SetProgress(p playback.Progress) {
	if seek := c.find(`[data-action="seek"]`); seek.Truthy() {
		seek.Set("max", strconv.FormatFloat(p.Duration, 'f', 0, 64))
		seek.Set("value", strconv.FormatFloat(p.Position, 'f', 0, 64))
	}
	if pos := c.find(`[data-role="position"]`); pos.Truthy() {
		pos.Set("textContent", p.PositionLabel)
	}
	if dur := c.find(`[data-role="duration"]`); dur.Truthy() {
		dur.Set("textContent", p.DurationLabel)
	}
}

func (c domCard) VideoVisible() bool {
	v := c.find(".episode-video")
	return v.Truthy() && !v.Get("hidden").Bool()
}

func (c domCard) ShowVideo(embedURL string) {
	v := c.find(".episode-video")
	if !v.Truthy() {
		return
	}
	v.Set("innerHTML", `<iframe src="`+html.EscapeString(embedURL)+`" title="Episode video" allow="autoplay; encrypted-media" allowfullscreen></iframe>`)
	v.Set("hidden", false)
}

func (c domCard) HideVideo() {
	v := c.find(".episode-video")
	if !v.Truthy() {
		return
	}
	v.Set("innerHTML", "")
	v.Set("hidden", true)
}
