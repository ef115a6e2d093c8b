package isa

// IOType names what an Input or Output column refers to. The fixed types
// have a fixed column text; anything else passes through as free text.
type IOType interface {
	ioType()
	// String returns the tabular column text, "Source Name" for Source.
	String() string
}

type SourceIO struct{}

func (SourceIO) ioType() {}

func (SourceIO) String() string { return "Source Name" }

type SampleIO struct{}

func (SampleIO) ioType() {}

func (SampleIO) String() string { return "Sample Name" }

type DataIO struct{}

func (DataIO) ioType() {}

func (DataIO) String() string { return "Data" }

type MaterialIO struct{}

func (MaterialIO) ioType() {}

func (MaterialIO) String() string { return "Material" }

// FreeTextIO carries unrecognized IO-type text unchanged.
type FreeTextIO struct{ Value string }

func (FreeTextIO) ioType() {}

func (f FreeTextIO) String() string { return f.Value }

// ParseIOType maps column text back to an IO type. The fixed types accept
// both the bare and the "Name"-suffixed spellings; unknown text becomes
// FreeTextIO.
func ParseIOType(s string) IOType {
	switch s {
	case "Source", "Source Name":
		return SourceIO{}
	case "Sample", "Sample Name":
		return SampleIO{}
	case "Data":
		return DataIO{}
	case "Material":
		return MaterialIO{}
	default:
		return FreeTextIO{Value: s}
	}
}
