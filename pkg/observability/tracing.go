package observability

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer wraps bus dispatch in X-Ray subsegments so every command and query
// shows up as its own timed operation under the service trace.
type Tracer struct {
	service string
}

// NewTracer creates a tracer for the named service
func NewTracer(service string) *Tracer {
	return &Tracer{service: service}
}

// Capture runs fn inside a subsegment named "<service>.<op>", recording the
// returned error on the segment before propagating it.
func (t *Tracer) Capture(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, seg := xray.BeginSubsegment(ctx, t.service+"."+op)
	if seg == nil {
		// No parent segment, as in local runs without the X-Ray daemon.
		return fn(ctx)
	}
	defer seg.Close(nil)

	err := fn(ctx)
	if err != nil {
		seg.AddError(err)
	}

	return err
}
