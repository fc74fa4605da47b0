package wav

import "fmt"

// FormatErrorKind classifies structural problems found in a RIFF/WAVE stream.
type FormatErrorKind int

const (
	// NotRiff means the stream does not start with the "RIFF" magic.
	NotRiff FormatErrorKind = iota + 1
	// NotWave means the RIFF form type is not "WAVE".
	NotWave
	// MissingFmtChunk means the first chunk after the header is not "fmt ".
	MissingFmtChunk
	// NoDataChunk means the stream ended before a "data" chunk was found.
	NoDataChunk
	// CorruptHeader means a header field holds an impossible value.
	CorruptHeader
)

func (k FormatErrorKind) String() string {
	switch k {
	case NotRiff:
		return "not a RIFF stream"
	case NotWave:
		return "not a WAVE form"
	case MissingFmtChunk:
		return "missing fmt chunk"
	case NoDataChunk:
		return "no data chunk"
	case CorruptHeader:
		return "corrupt header"
	default:
		return fmt.Sprintf("format error %d", int(k))
	}
}

// FormatError reports a structurally invalid container. It is never retried.
type FormatError struct {
	Kind   FormatErrorKind
	Detail string
	// Err optionally carries the underlying cause.
	Err error
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return "wav: " + e.Kind.String()
	}

	return fmt.Sprintf("wav: %s: %s", e.Kind, e.Detail)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is matches any *FormatError of the same Kind, so the package sentinels work
// with errors.Is regardless of Detail.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

// CodecErrorKind classifies sample conversion failures.
type CodecErrorKind int

const (
	// UnsupportedBitDepth means the bit depth is not 16, 24 or 32.
	UnsupportedBitDepth CodecErrorKind = iota + 1
	// InvalidSampleData means the payload or the channel layout is inconsistent.
	InvalidSampleData
	// UnsupportedEncoding means the format tag is neither PCM nor IEEE float.
	UnsupportedEncoding
)

func (k CodecErrorKind) String() string {
	switch k {
	case UnsupportedBitDepth:
		return "unsupported bit depth"
	case InvalidSampleData:
		return "invalid sample data"
	case UnsupportedEncoding:
		return "unsupported encoding"
	default:
		return fmt.Sprintf("codec error %d", int(k))
	}
}

// CodecError reports a failed decode or encode call.
type CodecError struct {
	Kind   CodecErrorKind
	Detail string
}

func (e *CodecError) Error() string {
	if e.Detail == "" {
		return "wav: " + e.Kind.String()
	}

	return fmt.Sprintf("wav: %s: %s", e.Kind, e.Detail)
}

// Is matches any *CodecError of the same Kind.
func (e *CodecError) Is(target error) bool {
	t, ok := target.(*CodecError)
	return ok && t.Kind == e.Kind
}

var (
	// ErrNotRiff matches FormatError(NotRiff).
	ErrNotRiff = &FormatError{Kind: NotRiff}
	// ErrNotWave matches FormatError(NotWave).
	ErrNotWave = &FormatError{Kind: NotWave}
	// ErrMissingFmtChunk matches FormatError(MissingFmtChunk).
	ErrMissingFmtChunk = &FormatError{Kind: MissingFmtChunk}
	// ErrNoDataChunk matches FormatError(NoDataChunk).
	ErrNoDataChunk = &FormatError{Kind: NoDataChunk}
	// ErrCorruptHeader matches FormatError(CorruptHeader).
	ErrCorruptHeader = &FormatError{Kind: CorruptHeader}

	// ErrUnsupportedBitDepth matches CodecError(UnsupportedBitDepth).
	ErrUnsupportedBitDepth = &CodecError{Kind: UnsupportedBitDepth}
	// ErrInvalidSampleData matches CodecError(InvalidSampleData).
	ErrInvalidSampleData = &CodecError{Kind: InvalidSampleData}
	// ErrUnsupportedEncoding matches CodecError(UnsupportedEncoding).
	ErrUnsupportedEncoding = &CodecError{Kind: UnsupportedEncoding}
)

func formatErrorf(kind FormatErrorKind, format string, args ...any) error {
	return &FormatError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func codecErrorf(kind CodecErrorKind, format string, args ...any) error {
	return &CodecError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
