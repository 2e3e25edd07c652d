package config

const (
	defaultVideosDir         = "~/.local/share/clipflow/videos"
	defaultProcessedDir      = "~/.local/share/clipflow/processed_videos"
	defaultLogDir            = "~/.local/share/clipflow/logs"
	defaultAPIBind           = "127.0.0.1:8000"
	defaultBrokerAddr        = "localhost:6379"
	defaultBrokerChannel     = "video_tasks"
	defaultBaseURL           = "http://localhost:8000"
	defaultRequestTimeout    = 10
	defaultObserverBuffer    = 16
	defaultMaxUploadMiB      = 1024
	defaultShutdownTimeout   = 5
	defaultKeepaliveInterval = 30
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultBrightness        = 0.12
	defaultContrast          = 1.2
	defaultTargetFPS         = 30
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			VideosDir:    defaultVideosDir,
			ProcessedDir: defaultProcessedDir,
			LogDir:       defaultLogDir,
			APIBind:      defaultAPIBind,
		},
		Broker: Broker{
			Addr:    defaultBrokerAddr,
			Channel: defaultBrokerChannel,
		},
		Coordinator: Coordinator{
			BaseURL:           defaultBaseURL,
			RequestTimeout:    defaultRequestTimeout,
			ObserverBuffer:    defaultObserverBuffer,
			MaxUploadMiB:      defaultMaxUploadMiB,
			ShutdownTimeout:   defaultShutdownTimeout,
			KeepaliveInterval: defaultKeepaliveInterval,
		},
		Workers: Workers{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			Brightness:    defaultBrightness,
			Contrast:      defaultContrast,
			TargetFPS:     defaultTargetFPS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
