package domain

import (
	"math"
	"strconv"
	"strings"
)

// RiskLevel is the outcome of a hypothetical-conditions simulation
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskElevated RiskLevel = "elevated"
)

// Classifier sources reported with a simulation outcome
const (
	SourceHeuristic = "heuristic"
	SourceModel     = "model"
)

// SimulationOutcome is a classified simulation and where the verdict came from
type SimulationOutcome struct {
	Result RiskLevel `json:"result"`
	Source string    `json:"source"`
}

// SimulationInput holds the five weather variables a user can tweak
type SimulationInput struct {
	Temperature   float64 `json:"temperature"`   // °C
	Humidity      float64 `json:"humidity"`      // %
	Wind          float64 `json:"wind"`          // km/h
	Precipitation float64 `json:"precipitation"` // mm
	Visibility    float64 `json:"visibility"`    // km
}

// Rule thresholds. They restate the decision surface of the offline
// random-forest model; they are not the model itself.
const (
	washoutPrecipMM    = 2.0
	lowVisibilityKM    = 5.0
	retentionTempC     = 25.0
	stagnationTempC    = 30.0
	stagnationHumidity = 40.0
	stagnationWindKMH  = 10.0
)

// Validate reports the first field that is not a finite number
func (in SimulationInput) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"temperature", in.Temperature},
		{"humidity", in.Humidity},
		{"wind", in.Wind},
		{"precipitation", in.Precipitation},
		{"visibility", in.Visibility},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ValidationError{Field: f.name, Value: strconv.FormatFloat(f.v, 'g', -1, 64)}
		}
	}
	return nil
}

// Classify applies the fixed rule set to a simulation input.
// Rules are evaluated in order and the first match wins:
//
//  1. precipitation > 2 mm            -> low (rain washes particles out)
//  2. visibility < 5 km and temp > 25 -> elevated (particle retention)
//  3. temp > 30, humidity < 40, wind < 10 -> elevated (hot, dry, still air)
//  4. otherwise                       -> low
func Classify(in SimulationInput) (RiskLevel, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	switch {
	case in.Precipitation > washoutPrecipMM:
		return RiskLow, nil
	case in.Visibility < lowVisibilityKM && in.Temperature > retentionTempC:
		return RiskElevated, nil
	case in.Temperature > stagnationTempC && in.Humidity < stagnationHumidity && in.Wind < stagnationWindKMH:
		return RiskElevated, nil
	default:
		return RiskLow, nil
	}
}

// ParseSimulationInput converts raw form values into a SimulationInput.
// Every value must parse as a finite number; surrounding whitespace is ignored
// and a decimal comma is accepted.
func ParseSimulationInput(temp, hum, wind, precip, vis string) (SimulationInput, error) {
	var in SimulationInput
	targets := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"temperature", temp, &in.Temperature},
		{"humidity", hum, &in.Humidity},
		{"wind", wind, &in.Wind},
		{"precipitation", precip, &in.Precipitation},
		{"visibility", vis, &in.Visibility},
	}
	for _, t := range targets {
		v, err := parseNumber(t.raw)
		if err != nil {
			return SimulationInput{}, &ValidationError{Field: t.name, Value: t.raw}
		}
		*t.dst = v
	}
	return in, nil
}

func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	// decimal notation only; ParseFloat would also take hex floats like 0x1p4
	if unsigned := strings.TrimLeft(s, "+-"); strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return 0, strconv.ErrSyntax
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
