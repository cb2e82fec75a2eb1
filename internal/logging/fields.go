package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID correlates every line emitted during one run.
	FieldRunID = "run_id"
	// FieldTitle is the inferred or user-supplied title being resolved.
	FieldTitle = "title"
	// FieldDirectory is the source directory specification from the input list.
	FieldDirectory = "directory"
	// FieldStep names the disambiguation step that produced a line.
	FieldStep = "step"
	// FieldProvider names the active catalog provider.
	FieldProvider = "provider"
	// FieldImageIndex is the 1-based position of an image in the user's selection.
	FieldImageIndex = "image_index"
	// FieldImageCount is the number of images selected for a title.
	FieldImageCount = "image_count"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to check next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)
