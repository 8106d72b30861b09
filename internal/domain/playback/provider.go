package playback

// PlayerState is the embed provider's playback state, numbered as the
// YouTube iframe API numbers them.
type PlayerState int

const (
	PlayerUnstarted PlayerState = -1
	PlayerEnded     PlayerState = 0
	PlayerPlaying   PlayerState = 1
	PlayerPaused    PlayerState = 2
	PlayerBuffering PlayerState = 3
	PlayerCued      PlayerState = 5
)

// String returns the lower-case state name used in logs.
func (s PlayerState) String() string {
	switch s {
	case PlayerUnstarted:
		return "unstarted"
	case PlayerEnded:
		return "ended"
	case PlayerPlaying:
		return "playing"
	case PlayerPaused:
		return "paused"
	case PlayerBuffering:
		return "buffering"
	case PlayerCued:
		return "cued"
	default:
		return "unknown"
	}
}

// Options configures a new player instance. Audio-only playback uses a
// zero-sized player with the provider's own controls hidden.
type Options struct {
	Width    int
	Height   int
	Controls bool
}

// AudioOptions hides the video surface of an embed.
var AudioOptions = Options{Width: 0, Height: 0, Controls: false}

// Events receives provider notifications for a handle it created.
// Providers must deliver them after Create has returned, never from inside it.
type Events interface {
	OnReady(h Handle)
	OnStateChange(h Handle, state PlayerState)
}

// Handle is one live player instance. Implementations must be comparable
// (pointer types) because callbacks are matched against the active handle.
type Handle interface {
	Play()
	Pause()
	CurrentTime() float64
	Duration() float64
	Destroy()
}

// Seeker is implemented by handles that can jump to a position in seconds.
type Seeker interface {
	SeekTo(seconds float64, allowSeekAhead bool)
}

// VolumeSetter is implemented by handles with volume control (0..100).
type VolumeSetter interface {
	SetVolume(level int)
}

// Provider creates embeddable players. Any implementation offering this
// capability set can back the Controller.
type Provider interface {
	Create(containerID, mediaID string, opts Options, events Events) (Handle, error)
}
