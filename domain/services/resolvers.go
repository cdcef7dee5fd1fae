package services

import (
	"errors"
	"fmt"

	"bicho/domain/entities"
	"bicho/domain/utils"
)

// errUnresolvable marks a wager whose outcome could not be determined
// from the published results. Such wagers are left pending for manual
// reconciliation instead of being guessed won or lost.
var errUnresolvable = errors.New("wager outcome cannot be determined from published results")

// premioOutcome is one premio slot of a draw, with the animal resolved
// and the milhar normalized, ready for wager evaluation.
type premioOutcome struct {
	position int
	animal   *entities.Animal
	milhar   string // normalized 4 digits, empty when not published
}

// buildOutcomes prepares the draw's results for evaluation. The animal
// for a slot is resolved by an ordered chain: the stored group first,
// then the group owning the milhar's dezena.
func buildOutcomes(results []entities.PremioResult) []premioOutcome {
	outcomes := make([]premioOutcome, 0, len(results))
	for i, r := range results {
		o := premioOutcome{position: i + 1}
		if r.HasMilhar() {
			o.milhar = utils.NormalizeMilhar(*r.Milhar)
		}
		if r.HasAnimal() {
			o.animal = entities.AnimalByGroup(*r.AnimalGroup)
		} else if o.milhar != "" {
			o.animal = entities.AnimalByDezena(utils.Dezena(o.milhar))
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// scopeOutcomes returns the outcomes covered by the wager's premio
// selection. Positions without a published result are simply absent.
func scopeOutcomes(outcomes []premioOutcome, selection entities.PremioSelection) []premioOutcome {
	wanted := selection.Premios()
	scoped := make([]premioOutcome, 0, len(wanted))
	for _, pos := range wanted {
		for _, o := range outcomes {
			if o.position == pos {
				scoped = append(scoped, o)
			}
		}
	}
	return scoped
}

// numberStrategy derives candidate values of one kind from a premio.
// Strategies are tried in order; the first one yielding values wins.
type numberStrategy func(premioOutcome) []string

func dezenaFromMilhar(o premioOutcome) []string {
	if o.milhar == "" {
		return nil
	}
	return []string{utils.Dezena(o.milhar)}
}

// dezenaFromAnimal is the fallback when a premio published only the
// animal group: any of the group's four dezenas counts as drawn.
func dezenaFromAnimal(o premioOutcome) []string {
	if o.animal == nil {
		return nil
	}
	return o.animal.Dezenas
}

func centenaFromMilhar(o premioOutcome) []string {
	if o.milhar == "" {
		return nil
	}
	return []string{utils.Centena(o.milhar)}
}

func milharFromMilhar(o premioOutcome) []string {
	if o.milhar == "" {
		return nil
	}
	return []string{o.milhar}
}

// resolveNumbers applies the strategy chain with first-match-wins
// semantics.
func resolveNumbers(o premioOutcome, strategies ...numberStrategy) []string {
	for _, strategy := range strategies {
		if values := strategy(o); len(values) > 0 {
			return values
		}
	}
	return nil
}

func strategiesFor(wt entities.WagerType) ([]numberStrategy, error) {
	switch wt {
	case entities.WagerTypeDozen, entities.WagerTypeDuqueDezena, entities.WagerTypeTernoDezena:
		return []numberStrategy{dezenaFromMilhar, dezenaFromAnimal}, nil
	case entities.WagerTypeHundred:
		return []numberStrategy{centenaFromMilhar}, nil
	case entities.WagerTypeThousand:
		return []numberStrategy{milharFromMilhar}, nil
	}
	return nil, fmt.Errorf("wager type %s is not number-based", wt)
}

// resolveWager decides win or loss for a wager against the draw's
// outcomes. It returns errUnresolvable when no win was found but at
// least one premio in scope could not be evaluated, so a loss cannot be
// asserted either.
func resolveWager(wager *entities.Wager, outcomes []premioOutcome) (bool, error) {
	switch wager.WagerType {
	case entities.WagerTypeGroup:
		return resolveGroup(wager, outcomes)
	case entities.WagerTypeDuqueGrupo, entities.WagerTypeTernoGrupo,
		entities.WagerTypeQuadraDuque, entities.WagerTypeQuinaGrupo:
		return resolveGroupSet(wager, outcomes)
	case entities.WagerTypeDozen, entities.WagerTypeHundred, entities.WagerTypeThousand:
		return resolveSingleNumber(wager, outcomes)
	case entities.WagerTypeDuqueDezena, entities.WagerTypeTernoDezena:
		return resolveDezenaSet(wager, outcomes)
	case entities.WagerTypePasseIda:
		return resolvePasse(wager, outcomes, true)
	case entities.WagerTypePasseIdaVolta:
		return resolvePasse(wager, outcomes, false)
	}
	return false, fmt.Errorf("unknown wager type %s", wager.WagerType)
}

// resolveGroup wins when the selected animal is the animal of the chosen
// premio, or of any premio when the wager plays all five.
func resolveGroup(wager *entities.Wager, outcomes []premioOutcome) (bool, error) {
	selected := wager.SelectedAnimals[0]
	unresolved := 0
	for _, o := range scopeOutcomes(outcomes, wager.PremioSelection) {
		if o.animal == nil {
			unresolved++
			continue
		}
		if o.animal.Group == selected {
			return true, nil
		}
	}
	if unresolved > 0 {
		return false, errUnresolvable
	}
	return false, nil
}

// resolveGroupSet wins when every selected animal group appears among
// the animals drawn in the premios covered by the selection.
func resolveGroupSet(wager *entities.Wager, outcomes []premioOutcome) (bool, error) {
	drawn := make(map[int]bool)
	unresolved := 0
	for _, o := range scopeOutcomes(outcomes, wager.PremioSelection) {
		if o.animal == nil {
			unresolved++
			continue
		}
		drawn[o.animal.Group] = true
	}
	matched := true
	for _, g := range wager.SelectedAnimals {
		if !drawn[g] {
			matched = false
			break
		}
	}
	if matched {
		return true, nil
	}
	if unresolved > 0 {
		return false, errUnresolvable
	}
	return false, nil
}

// resolveSingleNumber wins when the wager's digit selection equals the
// value derived from the chosen premio, or from any premio when the
// wager plays all five.
func resolveSingleNumber(wager *entities.Wager, outcomes []premioOutcome) (bool, error) {
	strategies, err := strategiesFor(wager.WagerType)
	if err != nil {
		return false, err
	}
	selected := wager.SelectedNumbers[0]
	unresolved := 0
	for _, o := range scopeOutcomes(outcomes, wager.PremioSelection) {
		values := resolveNumbers(o, strategies...)
		if len(values) == 0 {
			unresolved++
			continue
		}
		for _, v := range values {
			if v == selected {
				return true, nil
			}
		}
	}
	if unresolved > 0 {
		return false, errUnresolvable
	}
	return false, nil
}

// resolveDezenaSet wins when every selected dezena is present among the
// dezenas drawn in the premios covered by the selection. Membership is
// positionless: the order of the selections does not matter.
func resolveDezenaSet(wager *entities.Wager, outcomes []premioOutcome) (bool, error) {
	strategies, err := strategiesFor(wager.WagerType)
	if err != nil {
		return false, err
	}
	drawn := make(map[string]bool)
	unresolved := 0
	for _, o := range scopeOutcomes(outcomes, wager.PremioSelection) {
		values := resolveNumbers(o, strategies...)
		if len(values) == 0 {
			unresolved++
			continue
		}
		for _, v := range values {
			drawn[v] = true
		}
	}
	matched := true
	for _, d := range wager.SelectedNumbers {
		if !drawn[d] {
			matched = false
			break
		}
	}
	if matched {
		return true, nil
	}
	if unresolved > 0 {
		return false, errUnresolvable
	}
	return false, nil
}

// resolvePasse wins when the wager's animal pair appears across distinct
// premios. The passe spans the whole result board regardless of the
// stored premio selection: ida requires the first animal to land on an
// earlier premio than the second, ida e volta accepts either order.
func resolvePasse(wager *entities.Wager, outcomes []premioOutcome, ordered bool) (bool, error) {
	first, second := wager.SelectedAnimals[0], wager.SelectedAnimals[1]
	unresolved := 0
	positions := make(map[int][]int) // group -> premio positions
	for _, o := range outcomes {
		if o.animal == nil {
			unresolved++
			continue
		}
		positions[o.animal.Group] = append(positions[o.animal.Group], o.position)
	}
	if pairAppears(positions, first, second) {
		return true, nil
	}
	if !ordered && pairAppears(positions, second, first) {
		return true, nil
	}
	if unresolved > 0 {
		return false, errUnresolvable
	}
	return false, nil
}

// pairAppears reports whether group a lands on a strictly earlier premio
// than group b.
func pairAppears(positions map[int][]int, a, b int) bool {
	for _, pa := range positions[a] {
		for _, pb := range positions[b] {
			if pa < pb {
				return true
			}
		}
	}
	return false
}
