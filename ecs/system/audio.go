package system

import (
	"log"

	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// Sink plays drained sound requests.
type Sink interface {
	Play(req component.SoundRequest)
}

// LogSink prints every request.
type LogSink struct{}

func (LogSink) Play(req component.SoundRequest) {
	log.Printf("audio: play %s vol=%.2f pitch=%.2f interrupt=%t", req.Clip, req.Volume, req.Pitch, req.Interrupt)
}

// AudioSystem drains the audio bus into a sink once per frame. An
// interrupting request drops whatever was queued before it.
type AudioSystem struct {
	sink Sink
}

func NewAudioSystem(sink Sink) *AudioSystem {
	return &AudioSystem{sink: sink}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		pending := audioComp.Requests
		audioComp.Requests = nil
		start := 0
		for i, req := range pending {
			if req.Interrupt {
				start = i
			}
		}
		if a.sink == nil {
			return
		}
		for _, req := range pending[start:] {
			a.sink.Play(req)
		}
	})
}

// AudioQueue appends requests to the audio bus entity.
type AudioQueue struct {
	w   *ecs.World
	bus ecs.Entity
}

func NewAudioQueue(w *ecs.World, bus ecs.Entity) *AudioQueue {
	return &AudioQueue{w: w, bus: bus}
}

func (q *AudioQueue) PlaySound(clip string, volume, pitch float64, interrupt bool) {
	if q == nil || clip == "" {
		return
	}
	audioComp, ok := ecs.Get(q.w, q.bus, component.AudioComponent.Kind())
	if !ok {
		return
	}
	audioComp.Requests = append(audioComp.Requests, component.SoundRequest{
		Clip:      clip,
		Volume:    volume,
		Pitch:     pitch,
		Interrupt: interrupt,
	})
}
