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


package corpus

import "errors"

var (
	// ErrEmptyCorpus indicates the source held no answers and no default
	// template. This is the one corpus condition that aborts startup.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrInvalidDocument indicates the corpus document could not be parsed.
	ErrInvalidDocument = errors.New("invalid corpus document")

	// ErrDuplicateCategory indicates two responses resolved to the same category id.
	ErrDuplicateCategory = errors.New("duplicate category")

	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")
)
