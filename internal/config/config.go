// Package config loads the daemon's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tapware/touchlink/internal/gesture"
)

var (
	ErrUnknownTransport = errors.New("config: unknown transport kind")
	ErrMissingDevice    = errors.New("config: serial transport needs a device")
	ErrMissingURL       = errors.New("config: websocket transport needs a url")
)

// TransportKind selects how frames reach the dongle.
type TransportKind string

const (
	TransportSerial TransportKind = "serial"
	TransportWS     TransportKind = "ws"
)

// Config is the resolved daemon configuration.
type Config struct {
	ListenAddr   string
	APIToken     string
	TouchDevice  string
	PingInterval time.Duration

	Transport  TransportKind
	SerialDev  string
	SerialBaud int
	WSURL      string

	Gesture gesture.Config
}

// Default returns the daemon defaults: serial dongle on the usual CDC
// device, status server on localhost.
func Default() Config {
	return Config{
		ListenAddr:   "127.0.0.1:9321",
		TouchDevice:  "/dev/input/event0",
		PingInterval: 5 * time.Second,
		Transport:    TransportSerial,
		SerialDev:    "/dev/ttyACM0",
		SerialBaud:   115200,
		Gesture:      gesture.DefaultConfig(),
	}
}

type fileConfig struct {
	Listen       string        `toml:"listen"`
	APIToken     string        `toml:"api_token"`
	TouchDevice  string        `toml:"touch_device"`
	PingInterval string        `toml:"ping_interval"`
	Transport    fileTransport `toml:"transport"`
	Gesture      fileGesture   `toml:"gesture"`
}

type fileTransport struct {
	Kind   string `toml:"kind"`
	Device string `toml:"device"`
	Baud   int    `toml:"baud"`
	URL    string `toml:"url"`
}

type fileGesture struct {
	TapThreshold        string  `toml:"tap_threshold"`
	DoubleTapInterval   string  `toml:"double_tap_interval"`
	DoubleTapDragWindow string  `toml:"double_tap_drag_window"`
	DragTapProximity    float64 `toml:"drag_tap_proximity"`
	MoveThreshold       float64 `toml:"move_threshold"`
	ScrollThreshold     float64 `toml:"scroll_threshold"`
	ScrollSensitivity   float64 `toml:"scroll_sensitivity"`
	PinchTolerance      float64 `toml:"pinch_tolerance"`
}

// Load reads path and overlays it onto the defaults. Only keys present in
// the file override.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, os.ErrNotExist) {
		// no file means run on defaults
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("listen") && strings.TrimSpace(raw.Listen) != "" {
		cfg.ListenAddr = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("api_token") {
		cfg.APIToken = strings.TrimSpace(raw.APIToken)
	}
	if meta.IsDefined("touch_device") && strings.TrimSpace(raw.TouchDevice) != "" {
		cfg.TouchDevice = strings.TrimSpace(raw.TouchDevice)
	}
	if meta.IsDefined("ping_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.PingInterval))
		if err != nil {
			return Config{}, fmt.Errorf("parse ping_interval: %w", err)
		}
		cfg.PingInterval = d
	}

	if meta.IsDefined("transport", "kind") {
		switch TransportKind(strings.TrimSpace(raw.Transport.Kind)) {
		case TransportSerial:
			cfg.Transport = TransportSerial
		case TransportWS:
			cfg.Transport = TransportWS
		default:
			return Config{}, fmt.Errorf("%w: %q", ErrUnknownTransport, raw.Transport.Kind)
		}
	}
	if meta.IsDefined("transport", "device") {
		cfg.SerialDev = strings.TrimSpace(raw.Transport.Device)
	}
	if meta.IsDefined("transport", "baud") && raw.Transport.Baud > 0 {
		cfg.SerialBaud = raw.Transport.Baud
	}
	if meta.IsDefined("transport", "url") {
		cfg.WSURL = strings.TrimSpace(raw.Transport.URL)
	}

	if err := overlayGesture(&cfg.Gesture, meta, raw.Gesture); err != nil {
		return Config{}, err
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayGesture(g *gesture.Config, meta toml.MetaData, raw fileGesture) error {
	durations := []struct {
		key string
		val string
		dst *time.Duration
	}{
		{"tap_threshold", raw.TapThreshold, &g.TapThreshold},
		{"double_tap_interval", raw.DoubleTapInterval, &g.DoubleTapInterval},
		{"double_tap_drag_window", raw.DoubleTapDragWindow, &g.DoubleTapDragWindow},
	}
	for _, d := range durations {
		if !meta.IsDefined("gesture", d.key) {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(d.val))
		if err != nil {
			return fmt.Errorf("parse gesture.%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if meta.IsDefined("gesture", "drag_tap_proximity") && raw.DragTapProximity > 0 {
		g.DragTapProximity = raw.DragTapProximity
	}
	if meta.IsDefined("gesture", "move_threshold") && raw.MoveThreshold > 0 {
		g.MoveThreshold = raw.MoveThreshold
	}
	if meta.IsDefined("gesture", "scroll_threshold") && raw.ScrollThreshold > 0 {
		g.ScrollThreshold = raw.ScrollThreshold
	}
	if meta.IsDefined("gesture", "scroll_sensitivity") && raw.ScrollSensitivity > 0 {
		g.ScrollSensitivity = raw.ScrollSensitivity
	}
	if meta.IsDefined("gesture", "pinch_tolerance") && raw.PinchTolerance > 0 {
		g.PinchTolerance = raw.PinchTolerance
	}
	return nil
}

func validate(cfg Config) error {
	switch cfg.Transport {
	case TransportSerial:
		if cfg.SerialDev == "" {
			return ErrMissingDevice
		}
	case TransportWS:
		if cfg.WSURL == "" {
			return ErrMissingURL
		}
	default:
		return ErrUnknownTransport
	}
	return nil
}
