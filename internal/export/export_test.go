package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/san-kum/rxnrate/internal/kinetics"
	"github.com/san-kum/rxnrate/internal/symbolic"
	"github.com/san-kum/rxnrate/internal/trajectory"
)

func solveBimolecular(t *testing.T) *kinetics.Solution {
	t.Helper()
	sol, err := kinetics.Solve(kinetics.Reaction{
		Reactants: []string{"A", "B"},
		Products:  []string{"C"},
		K:         kinetics.Num(1.0),
		Initial: map[string]kinetics.Param{
			"A": kinetics.Num(1.0), "B": kinetics.Num(1.0), "C": kinetics.Num(0.0),
		},
	}, kinetics.DefaultOptions())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return sol
}

func sample(t *testing.T, sol *kinetics.Solution, cfg trajectory.Config) *trajectory.Result {
	t.Helper()
	s, err := trajectory.New(sol.System.Species, sol.Solutions, sol.System.TimeVar)
	if err != nil {
		t.Fatalf("new sampler: %v", err)
	}
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

func TestNewReport(t *testing.T) {
	report := NewReport("A + B -> C", "mass-action", solveBimolecular(t))

	if len(report.Species) != 3 {
		t.Fatalf("expected 3 species, got %v", report.Species)
	}
	if len(report.ODEs) != 3 || len(report.Solutions) != 3 {
		t.Errorf("expected 3 odes and solutions, got %d and %d", len(report.ODEs), len(report.Solutions))
	}
	if report.Solutions[0].Name != "A" || report.Solutions[0].Expr != "1/(t + 1)" {
		t.Errorf("unexpected solution for A: %+v", report.Solutions[0])
	}
	if len(report.Integrals) != 3 {
		t.Errorf("expected 3 integrals, got %d", len(report.Integrals))
	}
	if report.Extent == nil {
		t.Error("expected extent")
	}
}

func TestWriteJSON(t *testing.T) {
	report := NewReport("A + B -> C", "mass-action", solveBimolecular(t))

	var buf bytes.Buffer
	if err := WriteJSON(&buf, report); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Reaction != "A + B -> C" || decoded.Strategy != "mass-action" {
		t.Errorf("unexpected header: %s %s", decoded.Reaction, decoded.Strategy)
	}
	if !strings.Contains(buf.String(), `"latex"`) {
		t.Error("expected latex fields")
	}
}

func TestNewTransformReport(t *testing.T) {
	r := kinetics.Reaction{
		Reactants: []string{"A"},
		Products:  []string{"B", "C", "F"},
		K:         kinetics.Num(2.0),
		Initial:   map[string]kinetics.Param{"A": kinetics.Num(1.0)},
	}
	opts := kinetics.DefaultOptions()
	tr, err := kinetics.CalculateLaplaceTransforms(r, opts)
	if err != nil {
		t.Fatal(err)
	}
	sols, err := kinetics.InverseLaplaceTransforms(tr, opts)
	if err != nil {
		t.Fatal(err)
	}

	report := NewTransformReport("A -> B + C + F", "t", tr, sols)
	if report.FreqVar != "s" {
		t.Errorf("expected freq var s, got %s", report.FreqVar)
	}
	if len(report.Transforms) != 3 || len(report.Solutions) != 3 {
		t.Errorf("expected 3 transforms and solutions, got %d and %d", len(report.Transforms), len(report.Solutions))
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != "F" {
		t.Errorf("expected F skipped, got %v", report.Skipped)
	}
}

func TestWriteCSV(t *testing.T) {
	sol := solveBimolecular(t)
	result := sample(t, sol, trajectory.Config{Dt: 0.5, Duration: 2.0})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if strings.Join(records[0], ",") != "time,A,B,C" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if len(records) != len(result.States)+1 {
		t.Fatalf("expected %d rows, got %d", len(result.States)+1, len(records))
	}

	last := records[len(records)-1]
	if last[0] != "2.000000" {
		t.Errorf("expected final time 2.000000, got %s", last[0])
	}
	a, err := strconv.ParseFloat(last[1], 64)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a-1.0/3.0) > 1e-9 {
		t.Errorf("expected A(2) = 1/3, got %f", a)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := ExportJSON(path, NewReport("A + B -> C", "mass-action", solveBimolecular(t))); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded.Integrals) != 3 {
		t.Errorf("expected 3 integrals, got %d", len(decoded.Integrals))
	}
}

func TestNewTrajectoryReport(t *testing.T) {
	sols := map[string]symbolic.Expr{
		"B": symbolic.N(2),
		"A": symbolic.ExpOf(symbolic.Neg(symbolic.S("t"))),
	}
	report := NewTrajectoryReport("A -> B", "custom", "t", sols)
	if report.Strategy != "custom" || report.TimeVar != "t" {
		t.Errorf("unexpected header %q %q", report.Strategy, report.TimeVar)
	}
	if len(report.Species) != 2 || report.Species[0] != "A" || report.Species[1] != "B" {
		t.Errorf("expected sorted species, got %v", report.Species)
	}
	if report.Solutions[0].Expr != "exp(-t)" || report.Solutions[1].Expr != "2" {
		t.Errorf("unexpected solutions %v", report.Solutions)
	}
}
