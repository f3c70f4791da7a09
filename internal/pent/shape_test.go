package pent

import (
	"slices"
	"testing"
)

func shapesEqual(a, b Shape) bool {
	return slices.Equal(a, b)
}

func TestRotationIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		art  Shape
	}{
		{"f", Shape{" | ", "-+-", "  |"}},
		{"L", Shape{"|  ", "|  ", "+--"}},
		{"z", Shape{"--+ ", "  +-"}},
		{"i", Shape{"-----"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			rotated := test.art
			for range 4 {
				rotated = rotated.rotated()
			}
			if !shapesEqual(rotated, test.art) {
				t.Errorf("four rotations of %v yielded %v", test.art, rotated)
			}
		})
	}
}

func TestMirrorIdentity(t *testing.T) {
	t.Parallel()

	art := Shape{"-+ ", " ++", "  |"}
	if got := art.mirrored().mirrored(); !shapesEqual(got, art) {
		t.Errorf("double mirror of %v yielded %v", art, got)
	}
}

func TestRotationsProduceFourOrientations(t *testing.T) {
	t.Parallel()

	art := Shape{"|  ", "|  ", "+--"}
	rotations := art.rotations()
	if len(rotations) != 4 {
		t.Fatalf("expected 4 rotations, got %d", len(rotations))
	}
	for i, r := range rotations {
		if r.cellCount() != art.cellCount() {
			t.Errorf("rotation %d changed cell count: %v", i, r)
		}
	}
	if !shapesEqual(rotations[3].rotated(), art) {
		t.Errorf("rotating the third rotation did not return the original")
	}
}

func TestTranslationsStayInside(t *testing.T) {
	t.Parallel()

	art := Shape{" | ", "-|-", " | "}
	fields := art.translations(6, 5)

	// a 3x3 bounding box slides into (6-3+1) x (5-3+1) positions
	if len(fields) != 12 {
		t.Fatalf("expected 12 translations, got %d", len(fields))
	}
	for _, field := range fields {
		if len(field) != 5 || len(field[0]) != 6 {
			t.Errorf("translation has wrong dimensions: %v", field)
		}
		if field.cellCount() != art.cellCount() {
			t.Errorf("translation lost cells: %v", field)
		}
	}
}

func TestTranslationsOfOversizedShape(t *testing.T) {
	t.Parallel()

	art := Shape{"-------"}
	if fields := art.translations(6, 5); fields != nil {
		t.Errorf("expected no translations for an oversized shape, got %d", len(fields))
	}
}
