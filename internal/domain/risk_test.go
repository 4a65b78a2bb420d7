package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAltitudeScore_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		elevation float64
		expected  int
	}{
		{"below sea level", -5, 40},
		{"just under 50", 49.999, 40},
		{"exactly 50", 50, 30},
		{"just under 100", 99.999, 30},
		{"exactly 100", 100, 15},
		{"just under 200", 199.999, 15},
		{"exactly 200", 200, 5},
		{"high atlas", 2500, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, altitudeScore(tt.elevation))
		})
	}
}

func TestDistanceScore_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected int
	}{
		{"on the bank", 0, 35},
		{"just under 100", 99.999, 35},
		{"exactly 100", 100, 25},
		{"exactly 300", 300, 15},
		{"exactly 500", 500, 5},
		{"just under 1000", 999.999, 5},
		{"exactly 1000", 1000, 0},
		{"far inland", 25000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, distanceScore(tt.distance))
		})
	}
}

func TestRainScore_Boundaries(t *testing.T) {
	// Rain buckets have exclusive lower bounds: the threshold value itself
	// belongs to the bucket below.
	tests := []struct {
		name     string
		rain     float64
		expected int
	}{
		{"dry", 0, 0},
		{"exactly 10", 10, 0},
		{"just over 10", 10.001, 5},
		{"exactly 30", 30, 5},
		{"just over 30", 30.001, 12},
		{"exactly 50", 50, 12},
		{"just over 50", 50.001, 20},
		{"exactly 80", 80, 20},
		{"just over 80", 80.001, 25},
		{"deluge", 200, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rainScore(tt.rain))
		})
	}
}

func TestRiskLevelFor_Boundaries(t *testing.T) {
	tests := []struct {
		total    int
		level    RiskLevel
		color    string
	}{
		{0, RiskFaible, "#388E3C"},
		{19, RiskFaible, "#388E3C"},
		{20, RiskModere, "#FBC02D"},
		{39, RiskModere, "#FBC02D"},
		{40, RiskEleve, "#F57C00"},
		{69, RiskEleve, "#F57C00"},
		{70, RiskCritique, "#D32F2F"},
		{100, RiskCritique, "#D32F2F"},
	}

	for _, tt := range tests {
		level, color := riskLevelFor(tt.total)
		assert.Equal(t, tt.level, level, "total %d", tt.total)
		assert.Equal(t, tt.color, color, "total %d", tt.total)
	}
}

func TestScoreFloodRisk_CoastalCritique(t *testing.T) {
	a := ScoreFloodRisk(30, 150, 65)

	assert.Equal(t, 40, a.Details.AltitudeScore)
	assert.Equal(t, 25, a.Details.DistanceScore)
	assert.Equal(t, 20, a.Details.RainScore)
	assert.Equal(t, 85, a.Score)
	assert.Equal(t, RiskCritique, a.Level)
	assert.Equal(t, "#D32F2F", a.Color)
}

func TestScoreFloodRisk_PlateauFaible(t *testing.T) {
	a := ScoreFloodRisk(250, 1200, 5)

	assert.Equal(t, 5, a.Details.AltitudeScore)
	assert.Equal(t, 0, a.Details.DistanceScore)
	assert.Equal(t, 0, a.Details.RainScore)
	assert.Equal(t, 5, a.Score)
	assert.Equal(t, RiskFaible, a.Level)
	assert.Equal(t, "#388E3C", a.Color)
}

func TestScoreFloodRisk_TotalIsSumAndBounded(t *testing.T) {
	elevations := []float64{-10, 0, 49.999, 50, 99, 100, 150, 200, 3000}
	distances := []float64{0, 99, 100, 299, 300, 499, 500, 999, 1000, 5000}
	rains := []float64{0, 10, 10.5, 30, 31, 50, 51, 80, 81, 120}

	for _, e := range elevations {
		for _, d := range distances {
			for _, r := range rains {
				a := ScoreFloodRisk(e, d, r)
				sum := a.Details.AltitudeScore + a.Details.DistanceScore + a.Details.RainScore
				assert.Equal(t, sum, a.Score, "e=%g d=%g r=%g", e, d, r)
				assert.GreaterOrEqual(t, a.Score, 0)
				assert.LessOrEqual(t, a.Score, 100)
			}
		}
	}
}

func TestScoreFloodRisk_Pure(t *testing.T) {
	first := ScoreFloodRisk(72.5, 420, 33.3)
	second := ScoreFloodRisk(72.5, 420, 33.3)

	assert.Equal(t, first, second)
}

func TestScoreFloodRisk_EchoesInputs(t *testing.T) {
	a := ScoreFloodRisk(72.5, 420, 33.3)

	assert.Equal(t, 72.5, a.Details.ElevationM)
	assert.Equal(t, 420.0, a.Details.WaterwayDistanceM)
	assert.Equal(t, 33.3, a.Details.Precipitation24hMm)
}
