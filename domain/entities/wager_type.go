package entities

import "fmt"

// WagerType identifies the betting market a wager was placed on.
type WagerType string

// All wager types supported by the platform
const (
	WagerTypeGroup         WagerType = "group"
	WagerTypeDuqueGrupo    WagerType = "duque_grupo"
	WagerTypeTernoGrupo    WagerType = "terno_grupo"
	WagerTypeQuadraDuque   WagerType = "quadra_duque"
	WagerTypeQuinaGrupo    WagerType = "quina_grupo"
	WagerTypeDozen         WagerType = "dozen"
	WagerTypeDuqueDezena   WagerType = "duque_dezena"
	WagerTypeTernoDezena   WagerType = "terno_dezena"
	WagerTypeHundred       WagerType = "hundred"
	WagerTypeThousand      WagerType = "thousand"
	WagerTypePasseIda      WagerType = "passe_ida"
	WagerTypePasseIdaVolta WagerType = "passe_ida_volta"
)

// AllWagerTypes returns every supported wager type.
func AllWagerTypes() []WagerType {
	return []WagerType{
		WagerTypeGroup,
		WagerTypeDuqueGrupo,
		WagerTypeTernoGrupo,
		WagerTypeQuadraDuque,
		WagerTypeQuinaGrupo,
		WagerTypeDozen,
		WagerTypeDuqueDezena,
		WagerTypeTernoDezena,
		WagerTypeHundred,
		WagerTypeThousand,
		WagerTypePasseIda,
		WagerTypePasseIdaVolta,
	}
}

// IsValid reports whether the wager type is one of the known variants.
func (wt WagerType) IsValid() bool {
	switch wt {
	case WagerTypeGroup, WagerTypeDuqueGrupo, WagerTypeTernoGrupo,
		WagerTypeQuadraDuque, WagerTypeQuinaGrupo, WagerTypeDozen,
		WagerTypeDuqueDezena, WagerTypeTernoDezena, WagerTypeHundred,
		WagerTypeThousand, WagerTypePasseIda, WagerTypePasseIdaVolta:
		return true
	}
	return false
}

// AnimalSlots returns how many animal groups a wager of this type selects.
func (wt WagerType) AnimalSlots() int {
	switch wt {
	case WagerTypeGroup:
		return 1
	case WagerTypeDuqueGrupo, WagerTypePasseIda, WagerTypePasseIdaVolta:
		return 2
	case WagerTypeTernoGrupo:
		return 3
	case WagerTypeQuadraDuque:
		return 4
	case WagerTypeQuinaGrupo:
		return 5
	}
	return 0
}

// NumberSlots returns how many digit selections a wager of this type carries.
func (wt WagerType) NumberSlots() int {
	switch wt {
	case WagerTypeDozen, WagerTypeHundred, WagerTypeThousand:
		return 1
	case WagerTypeDuqueDezena:
		return 2
	case WagerTypeTernoDezena:
		return 3
	}
	return 0
}

// NumberLength returns the digit count each selected number must have,
// or 0 for group-based types.
func (wt WagerType) NumberLength() int {
	switch wt {
	case WagerTypeDozen, WagerTypeDuqueDezena, WagerTypeTernoDezena:
		return 2
	case WagerTypeHundred:
		return 3
	case WagerTypeThousand:
		return 4
	}
	return 0
}

// IsGroupKind reports whether the wager is resolved against animal groups.
func (wt WagerType) IsGroupKind() bool {
	return wt.AnimalSlots() > 0
}

// IsNumberKind reports whether the wager is resolved against drawn numbers.
func (wt WagerType) IsNumberKind() bool {
	return wt.NumberSlots() > 0
}

// String returns the string representation of the wager type.
func (wt WagerType) String() string {
	return string(wt)
}

// PremioSelection identifies which premio slot(s) a wager plays against.
// Valid values are "1" through "5" and PremioSelectionAll.
type PremioSelection string

// PremioSelectionAll spreads the stake across all five premios.
const PremioSelectionAll PremioSelection = "1-5"

// IsAll reports whether the wager plays against all five premios.
func (ps PremioSelection) IsAll() bool {
	return ps == PremioSelectionAll
}

// IsValid reports whether the selection is a known premio slot or "1-5".
func (ps PremioSelection) IsValid() bool {
	switch ps {
	case "1", "2", "3", "4", "5", PremioSelectionAll:
		return true
	}
	return false
}

// Premios returns the 1-based premio positions covered by the selection.
func (ps PremioSelection) Premios() []int {
	if ps.IsAll() {
		return []int{1, 2, 3, 4, 5}
	}
	switch ps {
	case "1", "2", "3", "4", "5":
		return []int{int(ps[0] - '0')}
	}
	return nil
}

// ParsePremioSelection validates and converts a raw selection string.
func ParsePremioSelection(s string) (PremioSelection, error) {
	ps := PremioSelection(s)
	if !ps.IsValid() {
		return "", fmt.Errorf("invalid premio selection %q", s)
	}
	return ps, nil
}
