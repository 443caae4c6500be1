package entity

// ResultFormat is the file format for answer export.
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatPDF      ResultFormat = "pdf"
)

func ParseResultFormat(s string) (ResultFormat, error) {
	switch ResultFormat(s) {
	case FormatMarkdown, FormatPDF:
		return ResultFormat(s), nil
	default:
		return "", ErrUnsupportedFormat
	}
}
