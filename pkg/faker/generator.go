package faker

import (
	"math/rand" // Using weak random for test data generation only
	"time"
)

const (
	weightedDie      = 501 // Size of the discrete distribution die
	integerTypeBound = 401 // Rolls below this are the default numeric type
	integerValueSpan = 256 // Integer-like samples land in [0, 255]
	valueSpan        = 2000.0
	valueOffset      = 1000.0

	encoderMsgType = 3 // Message kind for encoder/motor batches
	encoderSpan    = 360
	encoderOffset  = 180
	motorSpan      = 511
	motorOffset    = 255

	encoderCounterStep = 100

	timestampLayout = "2006-01-02 15:04:05.000000"
)

// Sample is one synthetic measurement. Timestamp is stamped when the record
// is built for sending, not when the generator was constructed.
type Sample struct {
	MsgType   int     `json:"msg_type" avro:"msg_type"`
	Value     float64 `json:"value" avro:"value"`
	Sequence  int64   `json:"sequence" avro:"sequence"`
	Timestamp string  `json:"timestamp" avro:"timestamp"`
}

// EncoderSample mimics one reading of the encoder/motor rig.
type EncoderSample struct {
	MsgType        int    `json:"msg_type" avro:"msg_type"`
	Encoder        int    `json:"encoder" avro:"encoder"`
	Motor          int    `json:"motor" avro:"motor"`
	Timestamp      string `json:"timestamp" avro:"timestamp"`
	EncoderCounter int64  `json:"encoder_counter" avro:"encoder_counter"`
	MotorCounter   int64  `json:"motor_counter" avro:"motor_counter"`
}

// Generator produces one record per call. A record is either a single Sample
// or an ordered batch of EncoderSamples, depending on the variant picked at
// startup.
type Generator interface {
	Next() any
}

func timestamp() string {
	return time.Now().Format(timestampLayout)
}

// RandomGenerator emits one Sample per record with a weighted message type:
// roughly 80% type 0, 20% type 1 and a residual type 2. Type 1 values are
// whole numbers in [0, 255]; everything else lands in [-1000.0, 1000.0).
type RandomGenerator struct {
	counters [3]int64
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// Next advances the per-type sequence counter unconditionally: the counter
// tracks records attempted, never records delivered.
func (g *RandomGenerator) Next() any {
	r := rand.Intn(weightedDie) + 1 //nolint:gosec // Using weak random for test data generation only
	msgType := 0
	switch {
	case r < integerTypeBound:
		msgType = 0
	case r < weightedDie:
		msgType = 1
	default:
		msgType = 2
	}

	var value float64
	if msgType == 1 {
		value = float64(rand.Intn(integerValueSpan)) //nolint:gosec // Using weak random for test data generation only
	} else {
		value = rand.Float64()*valueSpan - valueOffset //nolint:gosec // Using weak random for test data generation only
	}

	g.counters[msgType]++

	return Sample{
		MsgType:   msgType,
		Value:     value,
		Sequence:  g.counters[msgType],
		Timestamp: timestamp(),
	}
}

// Counter reports the sequence counter for one message type.
func (g *RandomGenerator) Counter(msgType int) int64 {
	return g.counters[msgType]
}

// Total reports the number of records attempted across all message types.
func (g *RandomGenerator) Total() int64 {
	var n int64
	for _, c := range g.counters {
		n += c
	}
	return n
}

// EncoderBatchGenerator emits a fixed-size ordered batch of encoder/motor
// readings per record. Values are drawn once at construction; every send
// re-stamps the timestamps and advances the motor counter across the batch.
type EncoderBatchGenerator struct {
	samples []EncoderSample
	counter int64
}

func NewEncoderBatchGenerator(perRecord int) *EncoderBatchGenerator {
	if perRecord < 1 {
		perRecord = 1
	}
	samples := make([]EncoderSample, perRecord)
	for i := range samples {
		samples[i] = EncoderSample{
			MsgType:        encoderMsgType,
			Encoder:        rand.Intn(encoderSpan) - encoderOffset, //nolint:gosec // Using weak random for test data generation only
			Motor:          rand.Intn(motorSpan) - motorOffset,     //nolint:gosec // Using weak random for test data generation only
			EncoderCounter: int64(i) * encoderCounterStep,
			MotorCounter:   int64(i),
		}
	}
	return &EncoderBatchGenerator{samples: samples}
}

func (g *EncoderBatchGenerator) Next() any {
	ts := timestamp()
	for i := range g.samples {
		g.samples[i].Timestamp = ts
		g.samples[i].MotorCounter = g.counter
		g.counter++
	}

	// Hand out a copy; the caller serializes it after this generator has
	// possibly moved on.
	out := make([]EncoderSample, len(g.samples))
	copy(out, g.samples)
	return out
}

// Counter reports the motor counter, i.e. samples attempted so far.
func (g *EncoderBatchGenerator) Counter() int64 {
	return g.counter
}
