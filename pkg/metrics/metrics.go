package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks what the transmitter pushed into the sink.
type Metrics struct {
	SegmentsTotal      *prometheus.CounterVec
	BytesWrittenTotal  prometheus.Counter
	AudioSecondsTotal  prometheus.Counter
	TransmissionsTotal *prometheus.CounterVec
	BitsTotal          *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SegmentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tonecast_segments_total",
			Help: "Segments written to the audio sink by kind",
		}, []string{"kind"}),
		BytesWrittenTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "tonecast_bytes_written_total",
			Help: "PCM bytes accepted by the audio sink",
		}),
		AudioSecondsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "tonecast_audio_seconds_total",
			Help: "Seconds of audio queued for playback",
		}),
		TransmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tonecast_transmissions_total",
			Help: "Transmissions by outcome",
		}, []string{"outcome"}),
		BitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tonecast_bits_total",
			Help: "Data bits sent by value",
		}, []string{"value"}),
	}
}
