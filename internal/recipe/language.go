package recipe

// Language identifies a source language a project recipe compiles.
type Language string

const (
	LangC   Language = "c"
	LangCPP Language = "c++"
)
