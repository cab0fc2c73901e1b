package sequence

import (
	"github.com/google/uuid"

	"github.com/ivlev/autocamera/internal/timing"
	"github.com/ivlev/autocamera/internal/yamlfile"
)

// Snapshot is the exported form of a LevelSequence.
type Snapshot struct {
	Version       string             `yaml:"version"`
	Name          string             `yaml:"name"`
	FrameRate     timing.FrameRate   `yaml:"frameRate"`
	PlaybackRange timing.FrameRange  `yaml:"playbackRange"`
	Bindings      []BindingSnapshot  `yaml:"bindings"`
	Cuts          []CameraCutSection `yaml:"cuts,omitempty"`
}

// BindingSnapshot is one spawnable and its transform sections.
type BindingSnapshot struct {
	ID       uuid.UUID         `yaml:"id"`
	Name     string            `yaml:"name"`
	Sections []SectionSnapshot `yaml:"sections,omitempty"`
}

// SectionSnapshot is one transform section.
type SectionSnapshot struct {
	Range                      timing.FrameRange `yaml:"range"`
	RowIndex                   int               `yaml:"rowIndex"`
	Blend                      BlendType         `yaml:"blend"`
	UseQuaternionInterpolation bool              `yaml:"useQuaternionInterpolation"`
	Channels                   []ChannelSnapshot `yaml:"channels"`
}

// ChannelSnapshot is one named key curve.
type ChannelSnapshot struct {
	Name string `yaml:"name"`
	Keys []Key  `yaml:"keys"`
}

// Snapshot captures the current state of the sequence.
func (s *LevelSequence) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version:       "1.0",
		Name:          s.Name,
		FrameRate:     s.rate,
		PlaybackRange: s.playback,
	}

	for _, b := range s.bindings {
		bs := BindingSnapshot{ID: b.ID, Name: b.Name}
		if t := s.tracks[b.ID]; t != nil {
			for _, sec := range t.sections {
				bs.Sections = append(bs.Sections, snapshotSection(sec))
			}
		}
		snap.Bindings = append(snap.Bindings, bs)
	}

	if s.cutTrack != nil {
		snap.Cuts = s.cutTrack.Cuts()
	}

	return snap
}

func snapshotSection(sec *TransformSection) SectionSnapshot {
	ss := SectionSnapshot{
		Range:                      sec.frameRange,
		RowIndex:                   sec.rowIndex,
		Blend:                      sec.blend,
		UseQuaternionInterpolation: sec.quatRot,
	}
	for _, idx := range AllChannels {
		ch := sec.channels[idx]
		if ch == nil {
			continue
		}
		ss.Channels = append(ss.Channels, ChannelSnapshot{Name: idx.String(), Keys: ch.Keys()})
	}
	return ss
}

// WriteSnapshot writes the sequence snapshot to a YAML file
func WriteSnapshot(seq *LevelSequence, path string) error {
	return yamlfile.Write(path, seq.Snapshot())
}

// ReadSnapshot reads a sequence snapshot from a YAML file
func ReadSnapshot(path string) (*Snapshot, error) {
	return yamlfile.Read[Snapshot](path)
}
