package movies

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/s0up4200/cinerecomenda/catalog"
	"github.com/s0up4200/cinerecomenda/validation"
)

// Query parameter names understood by the recommendation API.
const (
	ParamGenreIDs         = "genreIds"
	ParamDecade           = "decade"
	ParamSortBy           = "sortBy"
	ParamMood             = "mood"
	ParamOriginCountry    = "withOriginCountry"
	ParamOriginalLanguage = "withOriginalLanguage"
	ParamRuntimeMin       = "withRuntimeGte"
	ParamRuntimeMax       = "withRuntimeLte"
	ParamResponseLanguage = "responseLanguage"
	ParamPage             = "page"
)

// MaxPage is the deepest page the upstream movie database serves.
const MaxPage = 500

// Filters narrows a recommendation query. The zero value of every field
// means the constraint is absent.
type Filters struct {
	GenreIDs         []int  `query:"genreIds" validate:"omitempty,dive,gt=0"`
	Decade           int    `query:"decade" validate:"omitempty,min=1870,max=2100,decade"`
	SortBy           string `query:"sortBy"`
	Mood             string `query:"mood"`
	OriginCountry    string `query:"withOriginCountry" validate:"omitempty,iso3166_1_alpha2"`
	OriginalLanguage string `query:"withOriginalLanguage" validate:"omitempty,len=2,alpha"`
	RuntimeMin       int    `query:"withRuntimeGte" validate:"omitempty,min=1,max=300"`
	RuntimeMax       int    `query:"withRuntimeLte" validate:"omitempty,min=1,max=300"`
	ResponseLanguage string `query:"responseLanguage" validate:"omitempty,min=2,max=10"`
	Page             int    `query:"page" validate:"omitempty,min=1,max=500"`
}

// IsZero reports whether no constraint is set. The page is not a constraint.
func (f Filters) IsZero() bool {
	return len(f.GenreIDs) == 0 &&
		f.Decade == 0 &&
		f.SortBy == "" &&
		f.Mood == "" &&
		f.OriginCountry == "" &&
		f.OriginalLanguage == "" &&
		f.RuntimeMin == 0 &&
		f.RuntimeMax == 0 &&
		f.ResponseLanguage == ""
}

// WithPage returns a copy of the filters for the given page.
func (f Filters) WithPage(page int) Filters {
	f.GenreIDs = slices.Clone(f.GenreIDs)
	f.Page = page
	return f
}

// HasGenre reports whether the genre is selected.
func (f Filters) HasGenre(id int) bool {
	return slices.Contains(f.GenreIDs, id)
}

// ToggleGenre adds the genre when absent and removes it when present.
// Removing the last genre leaves the set absent.
func (f Filters) ToggleGenre(id int) Filters {
	if i := slices.Index(f.GenreIDs, id); i >= 0 {
		f.GenreIDs = slices.Delete(slices.Clone(f.GenreIDs), i, i+1)
	} else {
		f.GenreIDs = append(slices.Clone(f.GenreIDs), id)
	}
	if len(f.GenreIDs) == 0 {
		f.GenreIDs = nil
	}
	return f
}

// Normalize trims text fields, fixes the case the API expects, and drops
// repeated genre ids while keeping their order.
func (f Filters) Normalize() Filters {
	if len(f.GenreIDs) > 0 {
		ids := make([]int, 0, len(f.GenreIDs))
		for _, id := range f.GenreIDs {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
		f.GenreIDs = ids
	}
	f.SortBy = strings.ToLower(strings.TrimSpace(f.SortBy))
	f.Mood = strings.ToLower(strings.TrimSpace(f.Mood))
	f.OriginCountry = strings.ToUpper(strings.TrimSpace(f.OriginCountry))
	f.OriginalLanguage = strings.ToLower(strings.TrimSpace(f.OriginalLanguage))
	f.ResponseLanguage = strings.TrimSpace(f.ResponseLanguage)
	return f
}

// Validate checks field ranges and the values that must come from the catalog.
func (f Filters) Validate() error {
	verr := &validation.Error{}

	if err := validation.Struct(f); err != nil {
		fieldErrs, ok := err.(*validation.Error)
		if !ok {
			return err
		}
		verr.Fields = append(verr.Fields, fieldErrs.Fields...)
	}

	if f.Mood != "" {
		if _, err := catalog.LookupMood(f.Mood); err != nil {
			verr.Fields = append(verr.Fields, validation.FieldError{
				Field:   ParamMood,
				Tag:     "mood",
				Value:   f.Mood,
				Message: err.Error(),
			})
		}
	}

	if f.SortBy != "" {
		if err := catalog.ValidateSortKey(f.SortBy); err != nil {
			verr.Fields = append(verr.Fields, validation.FieldError{
				Field:   ParamSortBy,
				Tag:     "sort",
				Value:   f.SortBy,
				Message: err.Error(),
			})
		}
	}

	if f.RuntimeMin > 0 && f.RuntimeMax > 0 && f.RuntimeMin > f.RuntimeMax {
		verr.Fields = append(verr.Fields, validation.FieldError{
			Field:   ParamRuntimeMin,
			Tag:     "ltefield",
			Param:   ParamRuntimeMax,
			Value:   f.RuntimeMin,
			Message: fmt.Sprintf("%s (%d) must not exceed %s (%d)", ParamRuntimeMin, f.RuntimeMin, ParamRuntimeMax, f.RuntimeMax),
		})
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Values flattens the filters into query parameters. Absent fields are
// omitted and every genre id repeats the genreIds parameter.
func (f Filters) Values() url.Values {
	v := url.Values{}
	for _, id := range f.GenreIDs {
		v.Add(ParamGenreIDs, strconv.Itoa(id))
	}
	setInt(v, ParamDecade, f.Decade)
	setString(v, ParamSortBy, f.SortBy)
	setString(v, ParamMood, f.Mood)
	setString(v, ParamOriginCountry, f.OriginCountry)
	setString(v, ParamOriginalLanguage, f.OriginalLanguage)
	setInt(v, ParamRuntimeMin, f.RuntimeMin)
	setInt(v, ParamRuntimeMax, f.RuntimeMax)
	setString(v, ParamResponseLanguage, f.ResponseLanguage)
	setInt(v, ParamPage, f.Page)
	return v
}

// RandomValues is Values without the page, which the random endpoint picks itself.
func (f Filters) RandomValues() url.Values {
	v := f.Values()
	v.Del(ParamPage)
	return v
}

// ParseFilters reads filters back from query parameters. Genre ids may be
// repeated or comma separated; empty values are treated as absent.
func ParseFilters(v url.Values) (Filters, error) {
	var f Filters
	var err error

	for _, raw := range v[ParamGenreIDs] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, convErr := strconv.Atoi(part)
			if convErr != nil {
				return Filters{}, fmt.Errorf("invalid %s value %q: must be a number", ParamGenreIDs, part)
			}
			f.GenreIDs = append(f.GenreIDs, id)
		}
	}

	if f.Decade, err = intParam(v, ParamDecade); err != nil {
		return Filters{}, err
	}
	if f.RuntimeMin, err = intParam(v, ParamRuntimeMin); err != nil {
		return Filters{}, err
	}
	if f.RuntimeMax, err = intParam(v, ParamRuntimeMax); err != nil {
		return Filters{}, err
	}
	if f.Page, err = intParam(v, ParamPage); err != nil {
		return Filters{}, err
	}

	f.SortBy = strings.TrimSpace(v.Get(ParamSortBy))
	f.Mood = strings.TrimSpace(v.Get(ParamMood))
	f.OriginCountry = strings.TrimSpace(v.Get(ParamOriginCountry))
	f.OriginalLanguage = strings.TrimSpace(v.Get(ParamOriginalLanguage))
	f.ResponseLanguage = strings.TrimSpace(v.Get(ParamResponseLanguage))

	return f, nil
}

func intParam(v url.Values, key string) (int, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: must be a number", key, raw)
	}
	return n, nil
}

func setInt(v url.Values, key string, n int) {
	if n != 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}
