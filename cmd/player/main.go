//go:build js && wasm

// Command player renders the podcast episode list and drives one shared
// audio player across its cards.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"syscall/js"
	"time"

	"fitstudio/internal/domain/playback"
)

const episodesEndpoint = "/api/episodes"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	doc := js.Global().Get("document")
	root := doc.Call("getElementById", "episode-list")
	if !root.Truthy() {
		logger.Error("player_root_missing", "id", "episode-list")
		return
	}

	provider := &youtubeProvider{}
	provider.load()
	ctrl := playback.NewController(provider, domPage{root: root}, playback.TickerScheduler{}, playback.WithLogger(logger))

	bind(root, ctrl)
	go loadEpisodes(logger, root)

	select {}
}

// bind delegates card clicks and range input on root to the controller.
func bind(root js.Value, ctrl controller) {
	handler := func(eventName string) js.Func {
		return js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) == 0 {
				return nil
			}
			a, ok := readAction(args[0])
			if !ok {
				return nil
			}
			if eventName == "click" && (a.Name == actionSeek || a.Name == actionVolume) {
				return nil
			}
			go dispatch(ctrl, a)
			return nil
		})
	}
	root.Call("addEventListener", "click", handler("click"))
	root.Call("addEventListener", "input", handler("input"))
}

// readAction resolves an event target to the action on its closest card.
func readAction(event js.Value) (cardAction, bool) {
	target := event.Get("target")
	if !target.Truthy() || target.Get("closest").Type() != js.TypeFunction {
		return cardAction{}, false
	}
	control := target.Call("closest", "[data-action]")
	card := target.Call("closest", "[data-episode-id]")
	if !control.Truthy() || !card.Truthy() {
		return cardAction{}, false
	}

	data := card.Get("dataset")
	a := cardAction{
		Name:      control.Get("dataset").Get("action").String(),
		EpisodeID: data.Get("episodeId").String(),
		MediaID:   stringOr(data.Get("mediaId")),
		SourceURL: stringOr(data.Get("sourceUrl")),
	}
	if v := control.Get("value"); v.Type() == js.TypeString {
		a.Value = v.String()
	}
	return a, true
}

func stringOr(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func loadEpisodes(logger *slog.Logger, root js.Value) {
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	eps, err := fetchEpisodes(ctx)
	if err != nil {
		logger.Warn("episodes_load_failed", "error", err)
		root.Set("innerHTML", `<p class="episode-empty">Episodes are unavailable right now.</p>`)
		return
	}
	root.Set("innerHTML", renderEpisodes(eps))
}

func fetchEpisodes(ctx context.Context) ([]episode, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, episodesEndpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch episodes: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch episodes: status %d", resp.StatusCode)
	}

	var eps []episode
	if err := json.NewDecoder(resp.Body).Decode(&eps); err != nil {
		return nil, fmt.Errorf("decode episodes: %w", err)
	}
	return eps, nil
}
