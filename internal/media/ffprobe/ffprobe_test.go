package ffprobe

import (
	"math"
	"testing"
)

func TestParseDecodesStreamsAndFormat(t *testing.T) {
	payload := []byte(`{
        "streams": [
            {"index": 0, "codec_type": "audio", "codec_name": "aac"},
            {"index": 1, "codec_type": "video", "codec_name": "h264",
             "width": 1920, "height": 1080,
             "r_frame_rate": "30000/1001", "nb_frames": "300"}
        ],
        "format": {"filename": "clip.mp4", "nb_streams": 2, "duration": "10.010000"}
    }`)

	result, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	stream := result.VideoStream()
	if stream == nil {
		t.Fatal("expected a video stream")
	}
	if stream.Resolution() != "1920x1080" {
		t.Fatalf("unexpected resolution: %q", stream.Resolution())
	}
	if got := stream.FPS(); math.Abs(got-29.97) > 0.01 {
		t.Fatalf("unexpected fps: %f", got)
	}
	if stream.FrameCount() != 300 {
		t.Fatalf("unexpected frame count: %d", stream.FrameCount())
	}
	if got := result.DurationSeconds(); math.Abs(got-10.01) > 0.001 {
		t.Fatalf("unexpected duration: %f", got)
	}
}

func TestVideoStreamMissing(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio"}}}
	if result.VideoStream() != nil {
		t.Fatal("expected nil for audio-only container")
	}
}

func TestFPSFallsBackToAverageRate(t *testing.T) {
	stream := &Stream{RFrameRate: "0/0", AvgRate: "24/1"}
	if got := stream.FPS(); got != 24 {
		t.Fatalf("expected avg rate fallback, got %f", got)
	}
}

func TestFractionParsingEdgeCases(t *testing.T) {
	cases := []struct {
		value string
		want  float64
	}{
		{"", 0},
		{"30", 30},
		{"30/0", 0},
		{"-25/1", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := parseFraction(tc.value); got != tc.want {
			t.Fatalf("parseFraction(%q) = %f, want %f", tc.value, got, tc.want)
		}
	}
}

func TestFrameCountIgnoresInvalid(t *testing.T) {
	stream := &Stream{NBFrames: "N/A"}
	if stream.FrameCount() != 0 {
		t.Fatalf("expected 0 for invalid frame count")
	}
}
