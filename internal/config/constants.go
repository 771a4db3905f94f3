package config

const SourceFileExt = ".plc"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".plc"}

// Built-in function names
const (
	PrintFuncName = "print"
	RangeFuncName = "range"
	MainFuncName  = "main"
)

// Target-language names bound during scope setup
const (
	PrintTargetName = "System.out.println"
	RangeTargetName = "IntStream.range"
)

// Emitter defaults
const (
	TargetClassName = "Main"
	IndentWidth     = 4
)

// Built-in type names
const (
	AnyTypeName        = "Any"
	NilTypeName        = "Nil"
	ComparableTypeName = "Comparable"
	IntegerTypeName    = "Integer"
	DecimalTypeName    = "Decimal"
	BooleanTypeName    = "Boolean"
	CharacterTypeName  = "Character"
	StringTypeName     = "String"
	IterableTypeName   = "IntegerIterable"
)
