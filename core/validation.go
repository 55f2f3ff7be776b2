// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateAnswer validates a CannedAnswer according to domain rules.
//
// Validation rules:
//   - Category must not be empty
//   - Answer must not be empty
//
// NOT validated:
//   - Keywords (bare-string corpus entries legitimately have none)
//   - Order (0 is a valid declaration index)
func ValidateAnswer(answer *CannedAnswer) error {
	if answer == nil {
		return fmt.Errorf("%w: answer is nil", ErrInvalidAnswer)
	}

	if answer.Category == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAnswer, ErrEmptyCategory)
	}

	if answer.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAnswer, ErrEmptyAnswer)
	}

	return nil
}
