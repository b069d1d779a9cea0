package domain

// FavoritesKey is the storage key the favorites list lives under
const FavoritesKey = "@favorites_v2"

// FavoriteEntry is one saved city.
// Threshold is stored and round-tripped only; no read path acts on it yet.
type FavoriteEntry struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
}
