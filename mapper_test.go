package dbfader

import "testing"

func TestLoadStripsWithoutCard(t *testing.T) {
	cfg := &Config{Strips: []StripConfig{
		{Name: "Main", Stereo: true, Level: -12, Controls: []string{"Master Playback Volume"}},
		{Name: "Mic", Level: -30, Levels: []string{"Level Meter 1"}},
	}}
	reg := NewRegistry()
	strips, err := NewControlMapper(nil, cfg, reg).LoadStrips()
	if err != nil {
		t.Fatal(err)
	}
	if len(strips) != 2 {
		t.Fatalf("strips=%d want=2", len(strips))
	}
	if strips[0].Channels() != 2 || strips[1].Channels() != 1 {
		t.Fatalf("channels=%d,%d", strips[0].Channels(), strips[1].Channels())
	}
	if strips[0].Level() != -12 || strips[1].Level() != -30 {
		t.Fatalf("levels=%v,%v", strips[0].Level(), strips[1].Level())
	}

	for _, s := range strips {
		s.Step(Input{Extent: testExtent})
	}
	if reg.Stereo().Len() != 1 || reg.Mono().Len() != 1 {
		t.Fatalf("stores mono=%d stereo=%d", reg.Mono().Len(), reg.Stereo().Len())
	}
}

func TestLoadStripsRejectsBadFader(t *testing.T) {
	cfg := &Config{Strips: []StripConfig{{Name: "Main", Increments: []float32{3}}}}
	if _, err := NewControlMapper(nil, cfg, NewRegistry()).LoadStrips(); err == nil {
		t.Fatal("expected error")
	}
}
