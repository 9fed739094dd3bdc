package flatai

import (
	"context"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/flat-ai/flat-go"
)

func getTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

type AccumulateSpan struct {
	startTime        time.Time
	span             trace.Span
	timeToFirstChunk *float64
}

func NewAccumulateSpan(ctx context.Context, acc *ChunkAccumulator) (context.Context, *AccumulateSpan) {
	spanCtx, span := getTracer().Start(ctx, "flat_ai.accumulate",
		trace.WithAttributes(
			attribute.String("flat_ai.stream.origin", acc.Origin()),
			attribute.String("flat_ai.stream.id", acc.ID()),
		))

	return spanCtx, &AccumulateSpan{
		startTime: time.Now(),
		span:      span,
	}
}

func (s *AccumulateSpan) OnChunk() {
	if s.timeToFirstChunk == nil {
		elapsed := time.Since(s.startTime).Seconds()
		s.timeToFirstChunk = &elapsed
		s.span.SetAttributes(
			attribute.Float64("flat_ai.stream.time_to_first_chunk", elapsed),
		)
	}
}

func (s *AccumulateSpan) OnError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *AccumulateSpan) OnEnd(acc *ChunkAccumulator) {
	s.span.SetAttributes(
		attribute.Int("flat_ai.stream.chunks", acc.Size()),
		attribute.Int("flat_ai.stream.characters", utf8.RuneCountInString(acc.Text())),
	)
	s.span.End()
}
