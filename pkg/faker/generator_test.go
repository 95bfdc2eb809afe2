package faker

import (
	"testing"
)

const draws = 5000

func TestRandomGeneratorValueRanges(t *testing.T) {
	g := NewRandomGenerator()

	seen := [3]bool{}
	for i := 0; i < draws; i++ {
		rec := g.Next()
		s, ok := rec.(Sample)
		if !ok {
			t.Fatalf("Expected a Sample record, got %T", rec)
		}

		if s.MsgType < 0 || s.MsgType > 2 {
			t.Fatalf("Message type out of range: %d", s.MsgType)
		}
		seen[s.MsgType] = true

		switch s.MsgType {
		case 1:
			// Integer-like type: whole number in [0, 255]
			if s.Value != float64(int(s.Value)) {
				t.Errorf("Type 1 value not a whole number: %v", s.Value)
			}
			if s.Value < 0 || s.Value > 255 {
				t.Errorf("Type 1 value out of [0, 255]: %v", s.Value)
			}
		default:
			if s.Value < -1000.0 || s.Value >= 1000.0 {
				t.Errorf("Type %d value out of [-1000.0, 1000.0): %v", s.MsgType, s.Value)
			}
		}

		if s.Timestamp == "" {
			t.Errorf("Sample missing timestamp")
		}
	}

	// Types 0 and 1 are near-certain across this many draws; the residual
	// type 2 (~0.2%) is likely but not asserted.
	if !seen[0] || !seen[1] {
		t.Errorf("Expected both common message types to appear, seen=%v", seen)
	}
}

func TestRandomGeneratorSequenceIsStrictlyIncreasing(t *testing.T) {
	g := NewRandomGenerator()

	last := [3]int64{}
	for i := 0; i < draws; i++ {
		s := g.Next().(Sample)
		if s.Sequence != last[s.MsgType]+1 {
			t.Fatalf("Sequence for type %d jumped from %d to %d", s.MsgType, last[s.MsgType], s.Sequence)
		}
		last[s.MsgType] = s.Sequence
	}

	if g.Total() != draws {
		t.Errorf("Expected %d attempts across all types, got %d", draws, g.Total())
	}
}

func TestRandomGeneratorTypeDistribution(t *testing.T) {
	g := NewRandomGenerator()

	for i := 0; i < draws; i++ {
		g.Next()
	}

	// ~80% type 0, ~20% type 1. Wide tolerances keep the test deterministic
	// in practice.
	share0 := float64(g.Counter(0)) / draws
	share1 := float64(g.Counter(1)) / draws

	if share0 < 0.70 || share0 > 0.90 {
		t.Errorf("Type 0 share out of expected band: %.3f", share0)
	}
	if share1 < 0.12 || share1 > 0.28 {
		t.Errorf("Type 1 share out of expected band: %.3f", share1)
	}
}

func TestEncoderBatchGeneratorShape(t *testing.T) {
	const perRecord = 4
	g := NewEncoderBatchGenerator(perRecord)

	batch, ok := g.Next().([]EncoderSample)
	if !ok {
		t.Fatalf("Expected []EncoderSample, got %T", batch)
	}

	if len(batch) != perRecord {
		t.Fatalf("Expected batch of %d, got %d", perRecord, len(batch))
	}

	for i, s := range batch {
		if s.MsgType != 3 {
			t.Errorf("Sample %d: expected msg_type 3, got %d", i, s.MsgType)
		}
		if s.Encoder < -180 || s.Encoder >= 180 {
			t.Errorf("Sample %d: encoder out of [-180, 180): %d", i, s.Encoder)
		}
		if s.Motor < -255 || s.Motor >= 256 {
			t.Errorf("Sample %d: motor out of [-255, 256): %d", i, s.Motor)
		}
		if s.MotorCounter != int64(i) {
			t.Errorf("Sample %d: expected motor counter %d, got %d", i, i, s.MotorCounter)
		}
		if s.EncoderCounter != int64(i)*100 {
			t.Errorf("Sample %d: expected encoder counter %d, got %d", i, i*100, s.EncoderCounter)
		}
		if s.Timestamp == "" {
			t.Errorf("Sample %d: missing timestamp", i)
		}
	}
}

func TestEncoderBatchGeneratorCounterAdvancesAcrossSends(t *testing.T) {
	const perRecord = 3
	g := NewEncoderBatchGenerator(perRecord)

	first := g.Next().([]EncoderSample)
	second := g.Next().([]EncoderSample)

	if first[perRecord-1].MotorCounter != perRecord-1 {
		t.Errorf("First batch should end at counter %d, got %d",
			perRecord-1, first[perRecord-1].MotorCounter)
	}
	if second[0].MotorCounter != perRecord {
		t.Errorf("Second batch should start at counter %d, got %d",
			perRecord, second[0].MotorCounter)
	}

	if g.Counter() != 2*perRecord {
		t.Errorf("Expected counter %d after two sends, got %d", 2*perRecord, g.Counter())
	}
}

func TestEncoderBatchGeneratorMinimumSize(t *testing.T) {
	g := NewEncoderBatchGenerator(0)

	batch := g.Next().([]EncoderSample)
	if len(batch) != 1 {
		t.Errorf("Expected batch size clamped to 1, got %d", len(batch))
	}
}
