package otelhelper

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrorMessageKey carries the failing error's message on the error event.
const ErrorMessageKey = "postwave.error.message"

// SetError records err on the span, marks the span failed and attaches an
// error event carrying the message plus any stage attributes.
func SetError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.AddEvent("error_occurred", trace.WithAttributes(
		append(attrs, attribute.String(ErrorMessageKey, err.Error()))...,
	))
}
