package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPriorityOrder(t *testing.T) {
	tests := []struct {
		keyword string
		brand   string
		want    string
	}{
		// brand beats everything, including ticket terms
		{"romewalks colosseum tickets", "romewalks", CategoryBrand},
		// the canonical overlap: ticket terms beat discovery phrasing
		{"walking tour tickets london", "londondays", CategoryAttraction},
		{"tower of london entry", "", CategoryAttraction},
		{"skip the line vatican", "", CategoryAttraction},
		// competitor phrasing beats discovery
		{"viator vs getyourguide things to do", "", CategoryCompetitor},
		{"getyourguide alternatives", "", CategoryCompetitor},
		{"things to do in rome", "", CategoryDiscovery},
		{"hidden gems paris", "", CategoryDiscovery},
		// category patterns after discovery
		{"paris food tour", "", CategoryCategory},
		{"seine river cruise", "", CategoryCategory},
		{"best croissant montmartre", "", CategoryGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.keyword, tt.brand), "keyword %q", tt.keyword)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	assert.Equal(t, CategoryAttraction, Classify("Colosseum TICKETS", ""))
}

func TestBrandToken(t *testing.T) {
	assert.Equal(t, "romewalks", BrandToken("romewalks.example.com"))
	assert.Equal(t, "londondays", BrandToken("LONDONDAYS.example.com"))
	// too short to be a meaningful brand term
	assert.Equal(t, "", BrandToken("ab.example.com"))
}

func TestRegionFor(t *testing.T) {
	assert.Equal(t, "uk-ireland", RegionFor("London"))
	assert.Equal(t, "southern-europe", RegionFor(" rome "))
	assert.Equal(t, RegionOther, RegionFor("atlantis"))
	assert.Equal(t, RegionOther, RegionFor(""))
}
