package driven

// TextProcessor is one cleanup step applied to normalised document text
// before it is summarized.
type TextProcessor interface {
	// Process returns the cleaned text
	Process(text string) string

	// Name returns the processor name.
	Name() string

	// Order determines processing order (lower = earlier).
	Order() int
}

// TextPipeline chains text processors in order
type TextPipeline interface {
	// Process applies every processor in order
	Process(text string) string

	// Add adds a processor to the pipeline.
	Add(processor TextProcessor)

	// List returns processor names in order.
	List() []string
}
