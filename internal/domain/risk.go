package domain

// RiskLevel is the user-facing risk category, in the French labels used by the
// Moroccan hydrological bulletins this service feeds.
type RiskLevel string

const (
	RiskFaible   RiskLevel = "FAIBLE"
	RiskModere   RiskLevel = "MODÉRÉ"
	RiskEleve    RiskLevel = "ÉLEVÉ"
	RiskCritique RiskLevel = "CRITIQUE"
)

// Display colors per level, matching the bulletin legend.
const (
	colorFaible   = "#388E3C"
	colorModere   = "#FBC02D"
	colorEleve    = "#F57C00"
	colorCritique = "#D32F2F"
)

// ScoreBreakdown echoes the inputs of an assessment next to the sub-score each
// contributed. JSON field names follow the historical report format.
type ScoreBreakdown struct {
	ElevationM         float64 `json:"altitude_m"`
	AltitudeScore      int     `json:"altitude_score"`
	WaterwayDistanceM  float64 `json:"distance_oued_m"`
	DistanceScore      int     `json:"distance_score"`
	Precipitation24hMm float64 `json:"pluie_24h_mm"`
	RainScore          int     `json:"pluie_score"`
}

// RiskAssessment is the immutable result of scoring one point. Score is always
// the sum of the three sub-scores in Details and lies in [0, 100].
type RiskAssessment struct {
	Score       int            `json:"score"`
	Level       RiskLevel      `json:"risk_level"`
	Color       string         `json:"color"`
	Details     ScoreBreakdown `json:"details"`
	Coordinates Geo            `json:"coordinates"`
}

// ScoreFloodRisk computes the heuristic flood-risk score for a point from its
// elevation, straight-line distance to the nearest waterway, and forecast
// 24-hour precipitation. It is a pure function: identical inputs always produce
// identical assessments. Coordinates are left zero; AssessPoint fills them in.
func ScoreFloodRisk(elevationM, waterwayDistanceM, precipitation24hMm float64) RiskAssessment {
	altitude := altitudeScore(elevationM)
	distance := distanceScore(waterwayDistanceM)
	rain := rainScore(precipitation24hMm)
	total := altitude + distance + rain

	level, color := riskLevelFor(total)

	return RiskAssessment{
		Score: total,
		Level: level,
		Color: color,
		Details: ScoreBreakdown{
			ElevationM:         elevationM,
			AltitudeScore:      altitude,
			WaterwayDistanceM:  waterwayDistanceM,
			DistanceScore:      distance,
			Precipitation24hMm: precipitation24hMm,
			RainScore:          rain,
		},
	}
}

// altitudeScore contributes up to 40 points: low-lying terrain floods first.
func altitudeScore(elevationM float64) int {
	switch {
	case elevationM < 50:
		return 40
	case elevationM < 100:
		return 30
	case elevationM < 200:
		return 15
	default:
		return 5
	}
}

// distanceScore contributes up to 35 points for proximity to the nearest oued.
func distanceScore(waterwayDistanceM float64) int {
	switch {
	case waterwayDistanceM < 100:
		return 35
	case waterwayDistanceM < 300:
		return 25
	case waterwayDistanceM < 500:
		return 15
	case waterwayDistanceM < 1000:
		return 5
	default:
		return 0
	}
}

// rainScore contributes up to 25 points for forecast 24-hour precipitation.
// Lower bounds are exclusive: exactly 10mm scores 0, exactly 80mm scores 20.
func rainScore(precipitation24hMm float64) int {
	switch {
	case precipitation24hMm > 80:
		return 25
	case precipitation24hMm > 50:
		return 20
	case precipitation24hMm > 30:
		return 12
	case precipitation24hMm > 10:
		return 5
	default:
		return 0
	}
}

// riskLevelFor maps a total score to its category and display color.
// Tiers are evaluated top-down with inclusive lower bounds.
func riskLevelFor(total int) (RiskLevel, string) {
	switch {
	case total >= 70:
		return RiskCritique, colorCritique
	case total >= 40:
		return RiskEleve, colorEleve
	case total >= 20:
		return RiskModere, colorModere
	default:
		return RiskFaible, colorFaible
	}
}
