package compression

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
)

// Level is a named deflate effort.
type Level string

// Method is a named ZIP compression method.
type Method string

const (
	// LevelFastest favours speed over ratio.
	LevelFastest Level = "fastest"
	// LevelFaster is a little slower than LevelFastest.
	LevelFaster Level = "faster"
	// LevelNormal uses the deflate library default.
	LevelNormal Level = "normal"
	// LevelBetter trades speed for a smaller container.
	LevelBetter Level = "better"
	// LevelBest gives the smallest container.
	LevelBest Level = "best"

	// MethodStored writes entries without compression.
	MethodStored Method = "ZIP_STORED"
	// MethodDeflated writes deflate-compressed entries.
	MethodDeflated Method = "ZIP_DEFLATED"

	// DefaultLevel is used when no level is configured.
	DefaultLevel = LevelNormal
	// DefaultMethod is used when no method is configured.
	DefaultMethod = MethodDeflated

	fasterFlateLevel = 3
	betterFlateLevel = 7
)

var (
	// ErrUnknownLevel is returned when a level name is not recognised.
	ErrUnknownLevel = errors.New("unknown compression level")
	// ErrUnknownMethod is returned when a method name is not recognised.
	ErrUnknownMethod = errors.New("unknown compression method")
)

// Levels lists the supported levels from fastest to best.
func Levels() []Level {
	return []Level{LevelFastest, LevelFaster, LevelNormal, LevelBetter, LevelBest}
}

// Methods lists the supported methods.
func Methods() []Method {
	return []Method{MethodStored, MethodDeflated}
}

// ParseLevel converts a case-insensitive name into a Level.
// An empty name yields DefaultLevel.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLevel, nil
	}

	for _, level := range Levels() {
		if string(level) == s {
			return level, nil
		}
	}

	return "", fmt.Errorf("%q: %w", s, ErrUnknownLevel)
}

// ParseMethod converts a case-insensitive name into a Method.
// The short forms "stored" and "deflated" are accepted as well.
// An empty name yields DefaultMethod.
func ParseMethod(s string) (Method, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "":
		return DefaultMethod, nil
	case string(MethodStored), "STORED", "STORE":
		return MethodStored, nil
	case string(MethodDeflated), "DEFLATED", "DEFLATE":
		return MethodDeflated, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownMethod)
	}
}

// FlateLevel maps the level onto a deflate compression level.
func (l Level) FlateLevel() int {
	switch l {
	case LevelFastest:
		return flate.BestSpeed
	case LevelFaster:
		return fasterFlateLevel
	case LevelBetter:
		return betterFlateLevel
	case LevelBest:
		return flate.BestCompression
	default:
		return flate.DefaultCompression
	}
}

// ZipMethod returns the archive/zip method identifier.
func (m Method) ZipMethod() uint16 {
	if m == MethodStored {
		return zip.Store
	}

	return zip.Deflate
}

// Compressor returns a deflate compressor tuned for the level,
// suitable for zip.Writer.RegisterCompressor.
func Compressor(level Level) zip.Compressor {
	flateLevel := level.FlateLevel()

	return func(w io.Writer) (io.WriteCloser, error) {
		fw, err := flate.NewWriter(w, flateLevel)
		if err != nil {
			return nil, fmt.Errorf("create deflate writer: %w", err)
		}

		return fw, nil
	}
}

// Decompressor returns a deflate decompressor suitable for zip.Reader.RegisterDecompressor.
func Decompressor() zip.Decompressor {
	return flate.NewReader
}
