package logging

import (
	"log/slog"

	"github.com/Unleash/unleash-go-sdk/v5"
)

// SlogListener implements unleash.Listener. Every event is logged with the app name,
// and toggle evaluations are passed on to an optional counter.
type SlogListener struct {
	logger  *slog.Logger
	counted func(toggle string, enabled bool)
}

// NewSlogListener creates a listener for appName. counted may be nil.
func NewSlogListener(appName string, counted func(toggle string, enabled bool)) *SlogListener {
	return &SlogListener{
		logger:  slog.Default().With(slog.String("app_name", appName)),
		counted: counted,
	}
}

func (l *SlogListener) OnError(err error) {
	l.logger.Error("Unleash error", slog.String("error", err.Error()))
}

func (l *SlogListener) OnWarning(warning error) {
	l.logger.Warn("Unleash warning", slog.String("warning", warning.Error()))
}

func (l *SlogListener) OnReady() {
	l.logger.Info("Unleash toggles fetched")
}

// OnCount is called for every toggle evaluation, including those of capture gates.
func (l *SlogListener) OnCount(toggle string, enabled bool) {
	if l.counted != nil {
		l.counted(toggle, enabled)
	}
}

func (l *SlogListener) OnSent(payload unleash.MetricsData) {
	l.logger.Debug("Unleash metrics sent",
		slog.Time("start", payload.Bucket.Start),
		slog.Time("stop", payload.Bucket.Stop),
		slog.Int("toggles", len(payload.Bucket.Toggles)),
	)
}

func (l *SlogListener) OnRegistered(payload unleash.ClientData) {
	l.logger.Info("Unleash client registered",
		slog.String("instance_id", payload.InstanceID),
		slog.String("sdk_version", payload.SDKVersion),
		slog.Any("strategies", payload.Strategies),
		slog.Int64("interval", payload.Interval),
	)
}
