package shape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCleanArena(t *testing.T) {
	a := cube(t, 3)
	assert.Empty(t, a.Validate())
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name     string
		corrupt  func(t *testing.T, a *Arena)
		severity ValidationSeverity
		contains string
	}{
		{
			name: "no roots",
			corrupt: func(t *testing.T, a *Arena) {
				a.roots = nil
				a.Collect()
			},
			severity: SeverityWarning,
			contains: "no roots",
		},
		{
			name: "stale root",
			corrupt: func(t *testing.T, a *Arena) {
				a.roots = append(a.roots, Pos(ID{index: 999}))
			},
			severity: SeverityError,
			contains: "does not exist",
		},
		{
			name: "duplicate root",
			corrupt: func(t *testing.T, a *Arena) {
				a.roots = append(a.roots, a.roots[0])
			},
			severity: SeverityError,
			contains: "more than once",
		},
		{
			name: "garbage",
			corrupt: func(t *testing.T, a *Arena) {
				_, err := a.add(mustPlane(t, []float64{0, 1}, 0), RefSet{}, "", "")
				require.NoError(t, err)
			},
			severity: SeverityWarning,
			contains: "not reachable",
		},
		{
			name: "stale boundary",
			corrupt: func(t *testing.T, a *Arena) {
				s := &a.slots[a.roots[0].ID.index].shape
				s.Boundary = NewRefSet(append(s.Boundary.Refs(), Pos(ID{index: 999}))...)
			},
			severity: SeverityError,
			contains: "stale",
		},
		{
			name: "open polygon",
			corrupt: func(t *testing.T, a *Arena) {
				s := &a.slots[a.roots[0].ID.index].shape
				s.Boundary = NewRefSet(s.Boundary.Refs()[1:]...)
			},
			severity: SeverityWarning,
			contains: "not closed",
		},
		{
			name: "wrong rank",
			corrupt: func(t *testing.T, a *Arena) {
				root := a.roots[0]
				s := &a.slots[root.ID.index].shape
				edge := s.Boundary.Refs()[0]
				e := &a.slots[edge.ID.index].shape
				e.Boundary = NewRefSet(append(e.Boundary.Refs(), root)...)
			},
			severity: SeverityError,
			contains: "dimension",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := cube(t, 2)
			tt.corrupt(t, a)
			findings := a.Validate()
			require.NotEmpty(t, findings)

			found := false
			for _, f := range findings {
				if f.Severity == tt.severity && strings.Contains(f.Message, tt.contains) {
					found = true
				}
			}
			assert.True(t, found, "findings: %v", findings)
		})
	}
}

func TestValidatePolygonsAfterCuts(t *testing.T) {
	a := cube(t, 2)
	require.NoError(t, a.Slice(mustPlane(t, []float64{1, 1}, 0), "", ""))
	require.NoError(t, a.Cut(CutParams{Cut: mustSphere(t, []float64{0.5, 0.5}, 0.3), RemoveInside: true}))
	assert.Empty(t, a.validatePolygons())

	// The faces of a 3D cube are closed squares too.
	assert.Empty(t, cube(t, 3).validatePolygons())
}

func TestValidateDetectsCycle(t *testing.T) {
	a := cube(t, 2)
	root := a.roots[0]
	s := &a.slots[root.ID.index].shape
	edge := s.Boundary.Refs()[0]
	e := &a.slots[edge.ID.index].shape
	e.Boundary = NewRefSet(append(e.Boundary.Refs(), root)...)

	var cycle bool
	for _, f := range a.validateDAG() {
		if strings.Contains(f.Message, "cycle") {
			cycle = true
		}
	}
	assert.True(t, cycle)
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{ID: ID{index: 4}, Message: "broken", Severity: SeverityError}
	assert.Equal(t, "[error] shape #4: broken", e.Error())

	w := ValidationError{Message: "arena has no roots", Severity: SeverityWarning}
	assert.Equal(t, "[warning] arena has no roots", w.Error())
	assert.Equal(t, "ValidationSeverity(7)", ValidationSeverity(7).String())
}
