package config

const SourceFileExt = ".vela"

// MaxAliasDepth bounds repeated one-level alias expansion. A recursive alias
// degrades to non-expansion instead of hanging the checker.
const MaxAliasDepth = 10

// Built-in type names
const (
	OptionTypeName  = "Option"
	ResultTypeName  = "Result"
	SomeCtorName    = "Some"
	NoneCtorName    = "None"
	OkCtorName      = "Ok"
	ErrCtorName     = "Err"
	ArrayTypeName   = "Array"
	StringTypeName  = "String"
	NumberTypeName  = "Number"
	BooleanTypeName = "Boolean"
	UnitTypeName    = "Unit"
	UnknownTypeName = "Unknown"
)
