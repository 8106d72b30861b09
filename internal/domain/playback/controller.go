package playback

import (
	"log/slog"
	"sync"
	"time"

	"fitstudio/internal/domain/media"
)

// State is the controller's view of the active episode.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

const (
	// ProgressInterval is how often the active card's progress is refreshed.
	ProgressInterval = time.Second
	// DefaultVolume is the slider position cards render with.
	DefaultVolume = 75
)

// session is one activation of one episode. A new session is created on
// every activation, so callbacks holding an old one are recognisably stale.
type session struct {
	episodeID string
	handle    Handle
	timer     Timer
	state     State
}

// Controller coordinates a single audio player across every episode card.
// INVARIANT: at most one handle exists at a time, and it belongs to the active episode
// INVARIANT: no progress is written for an episode after its session ended
type Controller struct {
	mu       sync.Mutex
	provider Provider
	page     Page
	sched    Scheduler
	logger   *slog.Logger
	interval time.Duration

	sess     *session
	watching string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithProgressInterval overrides ProgressInterval.
func WithProgressInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// NewController wires a controller to its provider, page and scheduler.
func NewController(provider Provider, page Page, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		provider: provider,
		page:     page,
		sched:    sched,
		logger:   slog.Default(),
		interval: ProgressInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate starts audio playback of mediaID for episodeID.
// PRE: none
// POST: re-activating the active episode resumes it if paused and creates no new handle
// POST: activating a different episode tears the old one down and resets its card first
// POST: is a no-op when either id is empty or the episode's card is absent
func (c *Controller) Activate(episodeID, mediaID string) {
	if episodeID == "" || mediaID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activateLocked(episodeID, mediaID)
}

// ActivateSource resolves sourceURL to a media id and activates it.
// Unresolvable sources are ignored.
func (c *Controller) ActivateSource(episodeID, sourceURL string) {
	mediaID, ok := media.ResolveVideoID(sourceURL)
	if !ok {
		c.logger.Debug("playback_source_unresolved", "episode_id", episodeID)
		return
	}
	c.Activate(episodeID, mediaID)
}

func (c *Controller) activateLocked(episodeID, mediaID string) {
	if s := c.sess; s != nil && s.episodeID == episodeID {
		if s.state == StatePaused {
			s.handle.Play()
		}
		return
	}

	card := c.page.Card(episodeID)
	if card == nil {
		return
	}

	c.closeVideoLocked()
	c.teardownLocked(true)

	h, err := c.provider.Create(card.PlayerContainerID(), mediaID, AudioOptions, c)
	if err != nil {
		c.logger.Warn("playback_create_failed", "episode_id", episodeID, "error", err)
		return
	}
	if h == nil {
		return
	}
	c.sess = &session{episodeID: episodeID, handle: h, state: StateLoading}
	card.SetListening(true)
	c.logger.Info("playback_activated", "episode_id", episodeID, "media_id", mediaID)
}

// OnReady starts playback, applies the card's volume and begins progress updates.
// Callbacks for a handle that is no longer active are dropped.
func (c *Controller) OnReady(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.sess
	if s == nil || s.handle != h {
		c.logger.Debug("playback_stale_ready")
		return
	}

	h.Play()
	if card := c.page.Card(s.episodeID); card != nil {
		if vs, ok := h.(VolumeSetter); ok {
			vs.SetVolume(clampVolume(card.Volume()))
		}
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = c.sched.Every(c.interval, func() { c.tick(s) })
}

// OnStateChange mirrors the provider state on the active card. Ended
// releases the handle and the timer; the card keeps its panel open.
func (c *Controller) OnStateChange(h Handle, st PlayerState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.sess
	if s == nil || s.handle != h {
		c.logger.Debug("playback_stale_state", "state", st.String())
		return
	}

	if card := c.page.Card(s.episodeID); card != nil {
		card.ShowPlaying(st == PlayerPlaying)
	}

	switch st {
	case PlayerPlaying:
		s.state = StatePlaying
	case PlayerPaused:
		s.state = StatePaused
	case PlayerEnded:
		c.logger.Info("playback_ended", "episode_id", s.episodeID)
		c.teardownLocked(false)
	}
}

func (c *Controller) tick(s *session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess != s {
		return
	}
	card := c.page.Card(s.episodeID)
	if card == nil {
		return
	}
	card.SetProgress(NewProgress(s.handle.CurrentTime(), s.handle.Duration()))
}

// Seek jumps the active player to seconds. Negative positions seek to 0.
func (c *Controller) Seek(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess == nil {
		return
	}
	if sk, ok := c.sess.handle.(Seeker); ok {
		sk.SeekTo(max(seconds, 0), true)
	}
}

// SetVolume sets the active player's volume, clamped to 0..100.
func (c *Controller) SetVolume(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess == nil {
		return
	}
	if vs, ok := c.sess.handle.(VolumeSetter); ok {
		vs.SetVolume(clampVolume(level))
	}
}

// Pause pauses the active player.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess != nil {
		c.sess.handle.Pause()
	}
}

// Stop tears down the active player and resets its card.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked(true)
}

// ToggleWatch shows or hides the inline video for an episode. Showing a
// video stops audio and closes every other surface on the page.
func (c *Controller) ToggleWatch(episodeID, mediaID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	card := c.page.Card(episodeID)
	if card == nil {
		return
	}
	if card.VideoVisible() {
		card.HideVideo()
		if c.watching == episodeID {
			c.watching = ""
		}
		return
	}
	if mediaID == "" {
		return
	}

	c.teardownLocked(true)
	c.page.DeactivateSurfaces()
	card.ShowVideo(media.EmbedURL(mediaID, true))
	c.watching = episodeID
}

// ToggleListen opens or closes an episode's listening panel. Opening the
// panel of an inactive episode activates it from sourceURL.
func (c *Controller) ToggleListen(episodeID, sourceURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	card := c.page.Card(episodeID)
	if card == nil {
		return
	}
	if card.ListeningVisible() {
		card.SetListening(false)
		return
	}
	card.SetListening(true)

	if c.sess != nil && c.sess.episodeID == episodeID {
		return
	}
	mediaID, ok := media.ResolveVideoID(sourceURL)
	if !ok {
		return
	}
	c.activateLocked(episodeID, mediaID)
}

// State reports the controller state. Idle when nothing is active.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess == nil {
		return StateIdle
	}
	return c.sess.state
}

// ActiveEpisode returns the active episode id, if any.
func (c *Controller) ActiveEpisode() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sess == nil {
		return "", false
	}
	return c.sess.episodeID, true
}

// Watching returns the episode whose inline video is open, or "".
func (c *Controller) Watching() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.watching
}

// teardownLocked stops the timer and destroys the handle. With resetCard
// the old card's panel is closed and its button shows play again.
func (c *Controller) teardownLocked(resetCard bool) {
	s := c.sess
	if s == nil {
		return
	}
	c.sess = nil
	if s.timer != nil {
		s.timer.Stop()
	}
	s.handle.Destroy()

	if !resetCard {
		return
	}
	if card := c.page.Card(s.episodeID); card != nil {
		card.SetListening(false)
		card.ShowPlaying(false)
	}
}

func (c *Controller) closeVideoLocked() {
	if c.watching == "" {
		return
	}
	if card := c.page.Card(c.watching); card != nil {
		card.HideVideo()
	}
	c.watching = ""
}

func clampVolume(level int) int {
	return min(max(level, 0), 100)
}
