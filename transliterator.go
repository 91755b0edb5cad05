package fatvo

// Direction selects which way a Transliterator converts.
type Direction int

const (
	LatinToCyrillic Direction = iota
	CyrillicToLatin
)

func (d Direction) String() string {
	switch d {
	case LatinToCyrillic:
		return "lat->cyr"
	case CyrillicToLatin:
		return "cyr->lat"
	default:
		return "unknown"
	}
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	if d == LatinToCyrillic {
		return CyrillicToLatin
	}
	return LatinToCyrillic
}

// Outcome tags the result of a conversion.
type Outcome int

const (
	Converted Outcome = iota
	Failed
)

func (o Outcome) String() string {
	if o == Converted {
		return "converted"
	}
	return "failed"
}

// Status maps the outcome to the status stored on a Message.
func (o Outcome) Status() ConversionStatus {
	if o == Converted {
		return ConversionConverted
	}
	return ConversionFailed
}

// Transliterator converts text between the two scripts of one language.
//
// Convert is total: it never panics and always returns a string. When the
// outcome is Failed the returned string is the input, unchanged.
type Transliterator interface {
	Convert(text string, dir Direction) (string, Outcome)
}
