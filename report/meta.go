package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teranos/kpnadi/version"
)

// Report kinds.
const (
	KindFullChart       = "full_chart"
	KindDashaTimeline   = "dasha_timeline"
	KindPrecisionScores = "precision_scores"
	KindCategory        = "category"
	KindEventPotential  = "event_potential"
	KindNadi            = "nadi"
)

// requestNamespace seeds name-based request ids.
var requestNamespace = uuid.MustParse("8b0c6a52-4a8e-4f55-9b3c-3f1d8e7a2c10")

// Meta identifies one generated report.
type Meta struct {
	RequestID string    `json:"request_id" yaml:"request_id"`
	Report    string    `json:"report" yaml:"report"`
	Version   string    `json:"version" yaml:"version"`
	Now       time.Time `json:"now" yaml:"now"`
	Chart     string    `json:"chart,omitempty" yaml:"chart,omitempty"`
}

// requestID derives a stable id from the report inputs so that identical
// requests render identically.
func requestID(kind string, chartDigest []byte, now time.Time, args ...string) string {
	name := append([]byte(kind+"|"+now.UTC().Format(time.RFC3339Nano)+"|"), chartDigest...)
	for _, a := range args {
		name = append(name, '|')
		name = append(name, a...)
	}
	return uuid.NewSHA1(requestNamespace, name).String()
}

func chartDigest(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// round2 rounds half-even to two decimals.
func round2(f float64) float64 {
	v, _ := decimal.NewFromFloat(f).RoundBank(2).Float64()
	return v
}

func versionString() string {
	return version.Get().Version
}
