package model

// Cinema represents a venue whose screenings appear in the programme.
type Cinema struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Website string `json:"website"`
}
