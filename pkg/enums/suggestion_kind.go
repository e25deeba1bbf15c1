package enums

// SuggestionKind tags the autosuggest result union resolved at the
// supplier gateway boundary.
type SuggestionKind string

const (
	SuggestionKindCity  SuggestionKind = "city"
	SuggestionKindHotel SuggestionKind = "hotel"
	SuggestionKindPoi   SuggestionKind = "poi"
)

func (k SuggestionKind) IsValid() bool {
	switch k {
	case SuggestionKindCity, SuggestionKindHotel, SuggestionKindPoi:
		return true
	}
	return false
}
