package domain

type GenreStat struct {
	Genre         string  `json:"genre"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

type YearStat struct {
	Year          int     `json:"year"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

type DirectorStat struct {
	Director      string  `json:"director"`
	MovieCount    int     `json:"movieCount"`
	AverageRating float64 `json:"averageRating"`
}
