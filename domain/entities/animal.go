package entities

// Animal represents one of the 25 animal groups of the jogo do bicho.
// Each group owns four consecutive dezenas; group 25 wraps around to "00".
type Animal struct {
	Group   int      `db:"group_number"`
	Name    string   `db:"name"`
	Dezenas []string `db:"-"`
}

// animalNames lists the canonical group names in group order (1-25).
var animalNames = []string{
	"Avestruz", "Águia", "Burro", "Borboleta", "Cachorro",
	"Cabra", "Carneiro", "Camelo", "Cobra", "Coelho",
	"Cavalo", "Elefante", "Galo", "Gato", "Jacaré",
	"Leão", "Macaco", "Porco", "Pavão", "Peru",
	"Touro", "Tigre", "Urso", "Veado", "Vaca",
}

// animalTable is built once at init; the group table is fixed by the game.
var animalTable = buildAnimalTable()

func buildAnimalTable() []Animal {
	animals := make([]Animal, len(animalNames))
	for i, name := range animalNames {
		group := i + 1
		dezenas := make([]string, 4)
		for j := 0; j < 4; j++ {
			n := (group-1)*4 + j + 1
			if n == 100 {
				n = 0
			}
			dezenas[j] = formatDezena(n)
		}
		animals[i] = Animal{Group: group, Name: name, Dezenas: dezenas}
	}
	return animals
}

func formatDezena(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

// AllAnimals returns the full group table in group order.
func AllAnimals() []Animal {
	return animalTable
}

// AnimalByGroup returns the animal for a group number, or nil if the
// group is outside 1-25.
func AnimalByGroup(group int) *Animal {
	if group < 1 || group > len(animalTable) {
		return nil
	}
	return &animalTable[group-1]
}

// AnimalByDezena returns the animal group that owns the given dezena.
// The dezena must be a 2-digit string ("00"-"99").
func AnimalByDezena(dezena string) *Animal {
	if len(dezena) != 2 {
		return nil
	}
	if dezena[0] < '0' || dezena[0] > '9' || dezena[1] < '0' || dezena[1] > '9' {
		return nil
	}
	n := int(dezena[0]-'0')*10 + int(dezena[1]-'0')
	if n == 0 {
		n = 100
	}
	group := (n-1)/4 + 1
	return AnimalByGroup(group)
}

// HasDezena reports whether the dezena belongs to this animal's group.
func (a *Animal) HasDezena(dezena string) bool {
	for _, d := range a.Dezenas {
		if d == dezena {
			return true
		}
	}
	return false
}
