package simplequi

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// soundSampleRate is the shared mixer rate; decoded clips resample to it.
const soundSampleRate = 48000

// soundPlayer is the slice of audio.Player the Sound lifecycle needs.
// Tests substitute scripted stubs through Runtime.newSoundPlayer.
type soundPlayer interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

// sharedAudio is the process-wide mixer, created on first use. The audio
// backend allows exactly one context per process.
var sharedAudio *audio.Context

func audioContext() *audio.Context {
	if sharedAudio == nil {
		sharedAudio = audio.NewContext(soundSampleRate)
	}
	return sharedAudio
}

// Sound is an audio clip loaded from a URL or local path. A sound counts as
// busy while it loads and while it plays, keeping the application alive.
type Sound struct {
	rt  *Runtime
	url string

	state         assetState
	player        soundPlayer
	playing       bool
	playRequested bool
	volume        float64
}

// LoadSound starts fetching and decoding the sound behind url.
func (rt *Runtime) LoadSound(url string) *Sound {
	s := &Sound{rt: rt, url: url, volume: 1}
	rt.sounds = append(rt.sounds, s)
	rt.track(s)
	rt.fetchAsync(url, s.complete)
	return s
}

// complete runs on the application loop once the fetch finishes.
func (s *Sound) complete(data []byte, err error) {
	s.rt.untrack(s)
	if err != nil {
		s.state = assetFailed
		log.Printf("simplequi: sound %s failed to load: %v", s.url, err)
		return
	}
	player, err := s.rt.newPlayer(data)
	if err != nil {
		s.state = assetFailed
		log.Printf("simplequi: sound %s failed to decode: %v", s.url, err)
		return
	}
	s.player = player
	s.player.SetVolume(s.volume)
	s.state = assetReady
	if s.playRequested {
		s.Play()
	}
}

// Play starts or resumes playback from the current position. Calling Play
// before the clip is ready marks it to start as soon as loading finishes.
func (s *Sound) Play() {
	s.playRequested = true
	if s.state != assetReady || s.playing {
		return
	}
	s.player.Play()
	s.playing = true
	s.rt.track(s)
}

// Pause stops playback, keeping the position.
func (s *Sound) Pause() {
	s.playRequested = false
	if !s.playing {
		return
	}
	s.player.Pause()
	s.playing = false
	s.rt.untrack(s)
}

// Rewind stops playback and seeks back to the start.
func (s *Sound) Rewind() {
	s.playRequested = false
	if s.state != assetReady {
		return
	}
	s.player.Pause()
	if err := s.player.Rewind(); err != nil {
		log.Printf("simplequi: sound %s rewind: %v", s.url, err)
	}
	if s.playing {
		s.playing = false
		s.rt.untrack(s)
	}
}

// SetVolume sets playback volume. volume must be given in range 0-1
// inclusive.
func (s *Sound) SetVolume(volume float64) {
	if volume < 0 || volume > 1 {
		panic("simplequi: volume must be given in range 0-1 inclusive")
	}
	s.volume = volume
	if s.state == assetReady {
		s.player.SetVolume(volume)
	}
}

// pollSounds notices players that ran to the end and releases their hold on
// the application.
func (rt *Runtime) pollSounds() {
	for _, s := range rt.sounds {
		if s.playing && !s.player.IsPlaying() {
			s.playing = false
			s.playRequested = false
			rt.untrack(s)
		}
	}
}

// newPlayer decodes data and wraps it in a player on the shared mixer.
func (rt *Runtime) newPlayer(data []byte) (soundPlayer, error) {
	if rt.newSoundPlayer != nil {
		return rt.newSoundPlayer(data)
	}
	stream, err := decodeAudio(data)
	if err != nil {
		return nil, err
	}
	return audioContext().NewPlayer(stream)
}

// decodeAudio sniffs the container format and decodes to a PCM stream at the
// shared sample rate. WAV, MP3 and Ogg Vorbis are supported.
func decodeAudio(data []byte) (io.ReadSeeker, error) {
	switch {
	case len(data) >= 4 && string(data[:4]) == "RIFF":
		s, err := wav.DecodeWithSampleRate(soundSampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("simplequi: decoding wav: %w", err)
		}
		return s, nil
	case len(data) >= 4 && string(data[:4]) == "OggS":
		s, err := vorbis.DecodeWithSampleRate(soundSampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("simplequi: decoding ogg: %w", err)
		}
		return s, nil
	case len(data) >= 3 && (string(data[:3]) == "ID3" || data[0] == 0xff && data[1]&0xe0 == 0xe0):
		s, err := mp3.DecodeWithSampleRate(soundSampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("simplequi: decoding mp3: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("simplequi: unrecognised audio container")
}
