package validation

import (
	"strings"
	"testing"
)

type report struct {
	Character string   `json:"character" validate:"required,max=64,character"`
	Label     string   `json:"label" validate:"required,plotlabel"`
	Type      string   `json:"type" validate:"required,vertextype"`
	Step      int      `json:"step" validate:"min=0"`
	Emotions  []string `json:"emotions" validate:"max=16,dive,min=1,max=64"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name        string
		req         report
		expectError bool
		errorField  string
	}{
		{
			name: "Valid report",
			req:  report{Character: "hen", Label: "plant(wheat)[source(self)]", Type: "action", Step: 3},
		},
		{
			name: "Vertex type is case-insensitive",
			req:  report{Character: "hen", Label: "+has(bread)", Type: "PERCEPT", Emotions: []string{"joy"}},
		},
		{
			name:        "Missing character",
			req:         report{Label: "plant(wheat)", Type: "action"},
			expectError: true,
			errorField:  "character",
		},
		{
			name:        "Character with spaces",
			req:         report{Character: "little red hen", Label: "plant(wheat)", Type: "action"},
			expectError: true,
			errorField:  "character",
		},
		{
			name:        "Unbalanced label",
			req:         report{Character: "hen", Label: "plant(wheat)[source(self)", Type: "action"},
			expectError: true,
			errorField:  "label",
		},
		{
			name:        "Unknown vertex type",
			req:         report{Character: "hen", Label: "plant(wheat)", Type: "thought"},
			expectError: true,
			errorField:  "type",
		},
		{
			name:        "Negative step",
			req:         report{Character: "hen", Label: "plant(wheat)", Type: "action", Step: -1},
			expectError: true,
			errorField:  "step",
		},
		{
			name:        "Empty emotion",
			req:         report{Character: "hen", Label: "plant(wheat)", Type: "action", Emotions: []string{""}},
			expectError: true,
			errorField:  "emotions[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.req)

			if tt.expectError && err == nil {
				t.Errorf("Expected error for %s, got nil", tt.name)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error for %s, got: %v", tt.name, err)
			}
			if tt.expectError && err != nil && !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("Expected error mentioning %q, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestStruct_ReportsEveryViolation(t *testing.T) {
	err := Struct(&report{Type: "thought", Step: -2})
	if err == nil {
		t.Fatal("Expected error")
	}
	for _, field := range []string{"character", "label", "type", "step"} {
		if !strings.Contains(err.Error(), field+":") {
			t.Errorf("Expected violation for %s in %q", field, err)
		}
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		label     string
		expectErr bool
	}{
		{"plant(wheat)", false},
		{"!eat(bread)[motivation(hungry)]", false},
		{`say("hello [world]")`, false},
		{"", true},
		{"plant(wheat", true},
		{"plant(wheat)[source(self)]extra", true},
		{strings.Repeat("a", MaxLabelLength+1), true},
	}

	for _, tt := range tests {
		err := ValidateLabel(tt.label)
		if (err != nil) != tt.expectErr {
			t.Errorf("ValidateLabel(%.20q): expected error=%v, got %v", tt.label, tt.expectErr, err)
		}
	}
}

func TestValidateCharacter(t *testing.T) {
	tests := []struct {
		name      string
		expectErr bool
	}{
		{"hen", false},
		{"farm_animal-2", false},
		{"_dog", false},
		{"", true},
		{"2hen", true},
		{"hen!", true},
		{strings.Repeat("h", MaxCharacterLength+1), true},
	}

	for _, tt := range tests {
		err := ValidateCharacter(tt.name)
		if (err != nil) != tt.expectErr {
			t.Errorf("ValidateCharacter(%q): expected error=%v, got %v", tt.name, tt.expectErr, err)
		}
	}
}
