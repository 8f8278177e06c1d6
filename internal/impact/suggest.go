package impact

// Suggestion pairs a category with an advisory message.
type Suggestion struct {
	Category string
	Message  string
}

// SuggestionRule yields Message for categories containing one of Needles.
type SuggestionRule struct {
	Needles []string
	Message string
}

const (
	meatAdvice       = "Meat has one of the highest footprints per dollar. Try a plant-based meal or local poultry this week."
	smartphoneAdvice = "Phones carry most of their footprint from manufacturing. Consider a refurbished model or keep yours another year."
	laptopAdvice     = "Refurbished laptops cut emissions by up to 80%. Upgrading RAM or storage can extend the life of the one you own."
	fashionAdvice    = "Fast fashion is carbon and water intensive. Thrift stores and second-hand apps have great finds."
)

var suggestionTable = []Suggestion{
	{Category: "Electronics", Message: "Look for refurbished electronics or trade-in programs before buying new."},
	{Category: "Smartphones", Message: smartphoneAdvice},
	{Category: "Laptops", Message: laptopAdvice},
	{Category: "Gaming Consoles", Message: "Pre-owned consoles work just as well. Digital games also skip packaging and shipping."},
	{Category: "Home Appliances", Message: "Choose the highest energy rating you can; running costs dwarf the purchase footprint."},
	{Category: "Fast Fashion", Message: fashionAdvice},
	{Category: "Clothing", Message: "Buy fewer, better pieces, or browse second-hand clothing first."},
	{Category: "Shoes", Message: "Resoling and repair services can double the life of a good pair."},
	{Category: "Leather Goods", Message: "Vintage leather or plant-based alternatives avoid the impact of new hides."},
	{Category: "Beef", Message: "Beef is the most carbon intensive protein. Swapping one meal for beans or lentils makes a big difference."},
	{Category: "Meat", Message: meatAdvice},
	{Category: "Dairy", Message: "Oat and soy milk have a fraction of the footprint of dairy milk."},
	{Category: "Fast Food", Message: "Cooking at home with local produce cuts both cost and emissions."},
	{Category: "Coffee", Message: "Bring a reusable cup and pick shade-grown, fair-trade beans."},
	{Category: "Fuel", Message: "Combine trips, check tyre pressure, or try public transport for your commute."},
	{Category: "Flights", Message: "Trains beat short-haul flights. For long trips, fly economy and direct."},
	{Category: "Plastic Products", Message: "Reusable alternatives pay for themselves after a handful of uses."},
}

var suggestionRules = []SuggestionRule{
	{Needles: []string{"Meat"}, Message: meatAdvice},
	{Needles: []string{"Phone", "Mobile"}, Message: smartphoneAdvice},
	{Needles: []string{"Laptop", "Computer"}, Message: laptopAdvice},
	{Needles: []string{"Clothing", "Wear", "Jacket"}, Message: fashionAdvice},
}

var suggestionIndex = func() map[string]string {
	idx := make(map[string]string, len(suggestionTable))
	for _, s := range suggestionTable {
		idx[s.Category] = s.Message
	}
	return idx
}()

// Suggest returns eco advice for category, or false when nothing applies.
func Suggest(category string) (string, bool) {
	if msg, ok := suggestionIndex[category]; ok {
		return msg, true
	}

	for _, rule := range suggestionRules {
		if containsAny(category, rule.Needles) {
			return rule.Message, true
		}
	}

	return "", false
}
