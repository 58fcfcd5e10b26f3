package validators

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nvoronin/portfolio-backend/errs"
)

const defaultFileSizeMessage = "Ensure that file size are less than %s %sBytes."

var decimalPrefixes = [...]string{"k", "M", "G"}

// FileSizeValidator rejects files whose byte size exceeds MaxSize. The
// rendered message reports the limit in human-readable units (kB/MB/GB).
type FileSizeValidator struct {
	MaxSize int64
	Message string
	Code    string
}

func NewFileSizeValidator(maxSize int64) FileSizeValidator {
	return FileSizeValidator{
		MaxSize: maxSize,
		Message: defaultFileSizeMessage,
		Code:    errs.CodeLimitFileSize,
	}
}

// Validate accepts any size up to and including MaxSize.
func (v FileSizeValidator) Validate(field string, size int64) *errs.Violation {
	if size <= v.MaxSize {
		return nil
	}
	value, prefix := PrettySize(v.MaxSize)
	return &errs.Violation{
		Field:   field,
		Code:    v.Code,
		Message: fmt.Sprintf(v.Message, formatScaled(value), prefix),
	}
}

// Equal reports whether two validators describe the same rule. Schema
// tooling relies on this to detect unchanged validation rules.
func (v FileSizeValidator) Equal(other FileSizeValidator) bool {
	return v.MaxSize == other.MaxSize &&
		v.Message == other.Message &&
		v.Code == other.Code
}

// PrettySize scales maxSize by the largest applicable base (G=1024^3,
// M=1024^2, k=1024), rounded to two decimal places. The boundary is
// inclusive: exactly 1024 scales to 1.00 with prefix "k". Below 1024 the
// value is returned unscaled with an empty prefix.
func PrettySize(maxSize int64) (float64, string) {
	size := float64(maxSize)
	prefix := ""

	for i := len(decimalPrefixes); i > 0; i-- {
		base := math.Pow(1024, float64(i))
		if size >= base {
			size = math.Round(size/base*100) / 100
			prefix = decimalPrefixes[i-1]
			break
		}
	}
	return size, prefix
}

// formatScaled renders the scaled value without trailing zeros, so a 500
// byte limit reads "500" and a 2.5 MiB one "2.5".
func formatScaled(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FileExtensionValidator whitelists file extensions, case-insensitively and
// independently of any size check.
type FileExtensionValidator struct {
	Allowed []string
}

func NewFileExtensionValidator(allowed ...string) FileExtensionValidator {
	return FileExtensionValidator{Allowed: allowed}
}

func (v FileExtensionValidator) Validate(field, filename string) *errs.Violation {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, allowed := range v.Allowed {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return &errs.Violation{
		Field:   field,
		Code:    errs.CodeFileExtension,
		Message: fmt.Sprintf("file extension %q is not allowed, allowed extensions are: %s", ext, strings.Join(v.Allowed, ", ")),
	}
}
