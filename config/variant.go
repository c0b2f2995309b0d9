package config

// Variant is one ordinary item kind in the weighted spawn table
type Variant struct {
	Key    string
	Points int
	Weight float64
	Tint   uint32
}

// DefaultVariants is the reference item table
// Rarer items are worth more; golden_coin is the jackpot
func DefaultVariants() []Variant {
	return []Variant{
		{Key: "red_mask", Points: 10, Weight: 100, Tint: 0xE53935},
		{Key: "golden_crown", Points: 15, Weight: 80, Tint: 0xFFC107},
		{Key: "sheriff_hat", Points: 12, Weight: 100, Tint: 0x8D6E63},
		{Key: "jester_hat", Points: 12, Weight: 100, Tint: 0xAB47BC},
		{Key: "pearl_shell", Points: 14, Weight: 70, Tint: 0xF5F5F5},
		{Key: "red_wrench", Points: 11, Weight: 90, Tint: 0xC62828},
		{Key: "golden_coin", Points: 30, Weight: 2, Tint: 0xFFD700},
		{Key: "carousel_ride", Points: 16, Weight: 50, Tint: 0x26C6DA},
		{Key: "red_alchemist", Points: 14, Weight: 60, Tint: 0xD84315},
		{Key: "green_dragon", Points: 22, Weight: 15, Tint: 0x43A047},
		{Key: "phoenix_emblem", Points: 25, Weight: 5, Tint: 0xFF7043},
		{Key: "x_coin", Points: 18, Weight: 25, Tint: 0x90A4AE},
	}
}
