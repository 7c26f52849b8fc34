package logging

const (
	// FieldComponent names the subsystem that wrote a line.
	FieldComponent = "component"
	// FieldInvocationID groups the lines written by one CLI run.
	FieldInvocationID = "invocation_id"
	// FieldRequestID identifies a single backend call.
	FieldRequestID = "request_id"
	// FieldEndpoint is the backend path an operation targets.
	FieldEndpoint = "endpoint"
	// FieldArtifact is the kind of generated study artifact.
	FieldArtifact = "artifact"
	// FieldErrorKind is the classification of a failed backend call.
	FieldErrorKind = "error_kind"
)
