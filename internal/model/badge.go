package model

// Rarity is the tier of a badge.
type Rarity string

// Badge rarities, from most to least frequently unlocked.
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Badge describes an achievement that can be unlocked once per profile.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Rarity      Rarity
}
