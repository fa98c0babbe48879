package handler

type ContextKey string

var (
	AdminCtx ContextKey = "admin"
	DraftCtx ContextKey = "availabilityDraft"
)
