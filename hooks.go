package timespeak

// DecodeHookContext is passed to decode hooks before and after the pipeline
// runs. Before hooks may rewrite the inputs; after hooks may observe or
// replace the outcome.
type DecodeHookContext struct {
	Sentence string
	Locale   string
	Hint     TypeHint

	Result *Result
	Err    error
}

// DecodeHook observes or adjusts decode calls, typically for metrics or
// trace logging around the pipeline.
type DecodeHook interface {
	BeforeDecode(ctx *DecodeHookContext)
	AfterDecode(ctx *DecodeHookContext)
}

// DecodeHookFuncs adapts bare functions to the DecodeHook interface. Either
// field may be nil.
type DecodeHookFuncs struct {
	Before func(ctx *DecodeHookContext)
	After  func(ctx *DecodeHookContext)
}

func (h DecodeHookFuncs) BeforeDecode(ctx *DecodeHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h DecodeHookFuncs) AfterDecode(ctx *DecodeHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}
