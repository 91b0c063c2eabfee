package market

// Base prices in rupees per quintal, approximating 2024-25 MSP and average
// mandi rates.
var basePrices = map[string]float64{
	"Rice":      2320,
	"Wheat":     2275,
	"Maize":     2090,
	"Cotton":    7121,
	"Sugarcane": 315,
	"Soybean":   4892,
	"Groundnut": 6783,
	"Mustard":   5650,
	"Jowar":     3371,
	"Bajra":     2625,
	"Ragi":      4290,
	"Tur":       7550,
	"Moong":     8682,
	"Urad":      7400,
	"Coconut":   3400,
	"Tea":       22000,
	"Coffee":    29400,
	"Jute":      5050,
	"Tobacco":   7600,
	"Rubber":    17200,
	"Millets":   2625,
	"Pulses":    7400,
	"Sunflower": 7280,
	"Spices":    32000,
}

// defaultCrops lists popular crops shown when a state has no curated list.
var defaultCrops = []string{"Rice", "Wheat", "Maize", "Cotton", "Sugarcane", "Soybean", "Groundnut", "Mustard"}

var stateMandis = map[string][]string{
	"Tamil Nadu":       {"Coimbatore", "Madurai", "Salem"},
	"Kerala":           {"Ernakulam", "Thrissur", "Kozhikode"},
	"Andhra Pradesh":   {"Guntur", "Kurnool", "Vijayawada"},
	"Telangana":        {"Hyderabad", "Warangal", "Nizamabad"},
	"Karnataka":        {"Hubli", "Mysore", "Davangere"},
	"Maharashtra":      {"Pune", "Nagpur", "Nashik"},
	"Punjab":           {"Amritsar", "Ludhiana", "Jalandhar"},
	"Haryana":          {"Karnal", "Hisar", "Sirsa"},
	"Uttar Pradesh":    {"Lucknow", "Agra", "Kanpur"},
	"Madhya Pradesh":   {"Indore", "Bhopal", "Jabalpur"},
	"Rajasthan":        {"Jaipur", "Jodhpur", "Kota"},
	"Gujarat":          {"Ahmedabad", "Rajkot", "Surat"},
	"West Bengal":      {"Kolkata", "Bardhaman", "Siliguri"},
	"Bihar":            {"Patna", "Muzaffarpur", "Bhagalpur"},
	"Odisha":           {"Bhubaneswar", "Cuttack", "Sambalpur"},
	"Assam":            {"Guwahati", "Silchar", "Jorhat"},
	"Jharkhand":        {"Ranchi", "Dhanbad", "Jamshedpur"},
	"Chhattisgarh":     {"Raipur", "Bilaspur", "Durg"},
	"Uttarakhand":      {"Dehradun", "Haridwar", "Haldwani"},
	"Himachal Pradesh": {"Shimla", "Mandi", "Kangra"},
	"Goa":              {"Panaji", "Margao"},
	"All":              {"Delhi", "Mumbai", "Chennai"},
}

var stateCrops = map[string][]string{
	"Tamil Nadu":     {"Rice", "Sugarcane", "Coconut", "Groundnut", "Cotton"},
	"Kerala":         {"Coconut", "Rice", "Tea", "Coffee", "Rubber", "Spices"},
	"Andhra Pradesh": {"Rice", "Cotton", "Groundnut", "Sugarcane", "Maize"},
	"Telangana":      {"Rice", "Cotton", "Maize", "Soybean", "Tur"},
	"Karnataka":      {"Rice", "Ragi", "Sugarcane", "Cotton", "Groundnut"},
	"Maharashtra":    {"Sugarcane", "Cotton", "Soybean", "Groundnut", "Jowar"},
	"Punjab":         {"Wheat", "Rice", "Cotton", "Maize", "Sugarcane"},
	"Haryana":        {"Wheat", "Rice", "Mustard", "Sugarcane", "Bajra"},
	"Uttar Pradesh":  {"Wheat", "Rice", "Sugarcane", "Mustard", "Maize"},
	"Madhya Pradesh": {"Wheat", "Soybean", "Maize", "Tur", "Mustard"},
	"Rajasthan":      {"Wheat", "Mustard", "Bajra", "Groundnut", "Jowar"},
	"Gujarat":        {"Cotton", "Groundnut", "Wheat", "Rice", "Sugarcane"},
	"West Bengal":    {"Rice", "Jute", "Tea", "Maize", "Mustard"},
	"Bihar":          {"Rice", "Wheat", "Maize", "Sugarcane", "Tur"},
}
