package converter

import (
	"archivio/imageindex"
	"strings"
)

type Strategy string

const (
	StrategyExact      Strategy = "exact"
	StrategyNormalized Strategy = "normalized"
	StrategyDerived    Strategy = "derived"
	StrategyLiteral    Strategy = "literal"
	StrategyNone       Strategy = "none"
)

// Strategies lists every strategy in precedence order.
func Strategies() []Strategy {
	return []Strategy{StrategyExact, StrategyNormalized, StrategyDerived, StrategyLiteral, StrategyNone}
}

type Resolution struct {
	Path     string
	Strategy Strategy
	// Key is the lowercased filename used for the exact lookup.
	Key string
	// ExactFile is set when the exact lookup hit.
	ExactFile string
}

// Resolver maps a row to an image path. Stops at the first hit:
// exact filename, normalized filename, artist/title derived name, then the
// raw filename with the fallback extension appended.
type Resolver struct {
	Index             *imageindex.Index
	Prefix            string
	FallbackExtension string
}

func (r *Resolver) Resolve(artist, title, filename string) Resolution {
	resolution := Resolution{Strategy: StrategyNone}

	if filename != "" {
		resolution.Key = strings.ToLower(filename)
		if file, ok := r.Index.Lookup(resolution.Key); ok {
			resolution.ExactFile = file
			resolution.Path = r.imagePath(file)
			resolution.Strategy = StrategyExact
			return resolution
		}
		if file, ok := r.Index.LookupNormalized(resolution.Key); ok {
			resolution.Path = r.imagePath(file)
			resolution.Strategy = StrategyNormalized
			return resolution
		}
	}

	if file, ok := r.Index.Lookup(DerivedKey(artist, title)); ok {
		resolution.Path = r.imagePath(file)
		resolution.Strategy = StrategyDerived
		return resolution
	}

	if filename != "" {
		resolution.Path = r.imagePath(filename + r.FallbackExtension)
		resolution.Strategy = StrategyLiteral
	}
	return resolution
}

// DerivedKey builds "<last name>_<title>" in lowercase. The last name is the
// final whitespace-separated token when the artist contains a space.
func DerivedKey(artist, title string) string {
	lastName := artist
	if strings.Contains(artist, " ") {
		fields := strings.Fields(artist)
		lastName = fields[len(fields)-1]
	}
	return strings.ToLower(lastName + "_" + title)
}

func (r *Resolver) imagePath(basename string) string {
	return strings.TrimRight(r.Prefix, "/") + "/" + basename
}
