package core

import (
	"errors"
	"testing"
)

func TestValidateAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answer  *CannedAnswer
		wantErr error
	}{
		{
			name: "valid answer",
			answer: &CannedAnswer{
				Category: "shipping",
				Keywords: []string{"kargo"},
				Answer:   "Kargonuz yolda.",
			},
			wantErr: nil,
		},
		{
			name: "valid answer without keywords",
			answer: &CannedAnswer{
				Category: "greeting",
				Answer:   "Merhaba!",
			},
			wantErr: nil,
		},
		{
			name:    "nil answer",
			answer:  nil,
			wantErr: ErrInvalidAnswer,
		},
		{
			name: "empty category",
			answer: &CannedAnswer{
				Answer: "Merhaba!",
			},
			wantErr: ErrEmptyCategory,
		},
		{
			name: "empty answer body",
			answer: &CannedAnswer{
				Category: "greeting",
			},
			wantErr: ErrEmptyAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswer(tt.answer)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAnswer() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAnswer() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
