// Package badge holds the badge catalog and the rule engine that decides
// which badge a new purchase unlocks.
package badge

import "github.com/Veraticus/shopimpact/internal/model"

// Badge identifiers.
const (
	FirstStep     = "first_step"
	BabySteps     = "baby_steps"
	BronzeLogger  = "bronze_logger"
	SilverLogger  = "silver_logger"
	GoldLogger    = "gold_logger"
	DiamondLogger = "diamond_logger"
	ThriftCurious = "thrift_curious"
	ThriftKing    = "thrift_king"
	ZeroWaster    = "zero_waster"
	EcoWarrior    = "eco_warrior"
	LowCarbon     = "low_carbon"
	BigSaver      = "big_saver"
	RichieRich    = "richie_rich"
	Oopsie        = "oopsie"
	CoffeeAddict  = "coffee_addict"
	Gamer         = "gamer"
	SweetTooth    = "sweet_tooth"
)

var catalog = []model.Badge{
	{ID: FirstStep, Name: "First Step", Description: "Log your very first purchase.", Icon: "🌱", Rarity: model.RarityCommon},
	{ID: BabySteps, Name: "Baby Steps", Description: "Log 5 purchases.", Icon: "👣", Rarity: model.RarityCommon},
	{ID: BronzeLogger, Name: "Bronze Logger", Description: "Log 10 purchases.", Icon: "🥉", Rarity: model.RarityUncommon},
	{ID: SilverLogger, Name: "Silver Logger", Description: "Log 25 purchases.", Icon: "🥈", Rarity: model.RarityRare},
	{ID: GoldLogger, Name: "Gold Logger", Description: "Log 50 purchases.", Icon: "🥇", Rarity: model.RarityEpic},
	{ID: DiamondLogger, Name: "Diamond Logger", Description: "Log 100 purchases.", Icon: "💎", Rarity: model.RarityLegendary},
	{ID: ThriftCurious, Name: "Thrift Curious", Description: "Make your first eco-friendly purchase.", Icon: "🛍️", Rarity: model.RarityCommon},
	{ID: ThriftKing, Name: "Thrift King", Description: "Make 5 eco-friendly purchases.", Icon: "👑", Rarity: model.RarityRare},
	{ID: ZeroWaster, Name: "Zero Waster", Description: "Make 10 eco-friendly purchases.", Icon: "♻️", Rarity: model.RarityEpic},
	{ID: EcoWarrior, Name: "Eco Warrior", Description: "Keep at least half of more than 10 purchases eco-friendly.", Icon: "🛡️", Rarity: model.RarityLegendary},
	{ID: LowCarbon, Name: "Low Carbon", Description: "Log a purchase under 0.5 kg CO2.", Icon: "🍃", Rarity: model.RarityCommon},
	{ID: BigSaver, Name: "Big Saver", Description: "Spend over 10,000 on an eco-friendly purchase.", Icon: "💚", Rarity: model.RarityEpic},
	{ID: RichieRich, Name: "Richie Rich", Description: "Log a single purchase over 50,000.", Icon: "💰", Rarity: model.RarityRare},
	{ID: Oopsie, Name: "Oopsie", Description: "Log a purchase over 50 kg CO2.", Icon: "😬", Rarity: model.RarityUncommon},
	{ID: CoffeeAddict, Name: "Coffee Addict", Description: "Buy coffee 5 times.", Icon: "☕", Rarity: model.RarityUncommon},
	{ID: Gamer, Name: "Gamer", Description: "Buy a game or a console.", Icon: "🎮", Rarity: model.RarityCommon},
	{ID: SweetTooth, Name: "Sweet Tooth", Description: "Buy desserts 3 times.", Icon: "🍰", Rarity: model.RarityUncommon},
}

var catalogIndex = func() map[string]model.Badge {
	idx := make(map[string]model.Badge, len(catalog))
	for _, b := range catalog {
		idx[b.ID] = b
	}
	return idx
}()

// All returns every achievable badge in catalog order.
func All() []model.Badge {
	out := make([]model.Badge, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (model.Badge, bool) {
	b, ok := catalogIndex[id]
	return b, ok
}
