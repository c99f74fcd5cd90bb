// Package match narrows an already fetched page of recommendations with
// user supplied expressions.
//
// Expressions use the expr language and must evaluate to a boolean. Each
// movie is exposed through these variables:
//
//	Title, Overview, ReleaseDate string
//	Year                         int     (0 when unknown)
//	Rating                       float64 (vote average)
//	Votes                        int
//	Language                     string  (ISO 639-1 code)
//	GenreIDs                     []int
//	Genres                       []string
//	HasPoster                    bool
//
// and these helpers:
//
//	hasGenre(name)          genre name match, case-insensitive
//	inDecade(year)          released in the decade starting at year
//	releasedWithin(years)   released in the last n years
//	contains(s, sub)        case-insensitive substring
//	startsWith(s, prefix)   case-insensitive prefix
//	endsWith(s, suffix)     case-insensitive suffix
//	lower(s), upper(s)
//
// Examples:
//
//	Rating >= 7.5 && Votes > 1000
//	hasGenre("Horror") && !hasGenre("Comedy")
//	inDecade(1980) || contains(Title, "alien")
//
// Matching is a display concern: it never changes what is requested from
// the recommendation API.
package match
