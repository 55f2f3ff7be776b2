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

import (
	"fmt"
	"slices"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/answerit/core"
)

// MarshalCorpus serializes a resolved corpus to MUS format for persistence.
// Map sections are written in sorted key order so equal corpora produce
// identical bytes.
func MarshalCorpus(c *Corpus) []byte {
	buf := make([]byte, corpusSize(c))
	n := ord.String.Marshal(c.defaultResponse, buf)
	n += core.IDMUS.Marshal(c.hash, buf[n:])

	n += varint.Int.Marshal(len(c.answers), buf[n:])
	for _, answer := range c.answers {
		n += core.CannedAnswerMUS.Marshal(answer, buf[n:])
	}

	domainKeys := sortedKeys(c.domains)
	n += varint.Int.Marshal(len(domainKeys), buf[n:])
	for _, name := range domainKeys {
		n += ord.String.Marshal(name, buf[n:])
		n += core.DomainCategoryMUS.Marshal(c.domains[name], buf[n:])
	}

	redirectKeys := sortedKeys(c.redirects)
	n += varint.Int.Marshal(len(redirectKeys), buf[n:])
	for _, tag := range redirectKeys {
		n += ord.String.Marshal(tag, buf[n:])
		n += ord.String.Marshal(c.redirects[tag], buf[n:])
	}
	return buf
}

func corpusSize(c *Corpus) int {
	size := ord.String.Size(c.defaultResponse)
	size += core.IDMUS.Size(c.hash)

	size += varint.Int.Size(len(c.answers))
	for _, answer := range c.answers {
		size += core.CannedAnswerMUS.Size(answer)
	}

	size += varint.Int.Size(len(c.domains))
	for name, dc := range c.domains {
		size += ord.String.Size(name)
		size += core.DomainCategoryMUS.Size(dc)
	}

	size += varint.Int.Size(len(c.redirects))
	for tag, message := range c.redirects {
		size += ord.String.Size(tag)
		size += ord.String.Size(message)
	}
	return size
}

// UnmarshalCorpus deserializes a corpus from MUS format and rebuilds its
// lookup index.
func UnmarshalCorpus(data []byte) (*Corpus, error) {
	c := &Corpus{
		byCategory: make(map[string]int),
		domains:    make(map[string]core.DomainCategory),
		redirects:  make(map[string]string),
	}

	defaultResponse, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: default response: %w", ErrSerializationFailed, err)
	}
	c.defaultResponse = defaultResponse

	hash, n1, err := core.IDMUS.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: hash: %w", ErrSerializationFailed, err)
	}
	n += n1
	c.hash = hash

	count, n1, err := varint.Int.Unmarshal(data[n:])
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: answer count", ErrSerializationFailed)
	}
	n += n1
	for i := 0; i < count; i++ {
		answer, n1, err := core.CannedAnswerMUS.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: answer %d: %w", ErrSerializationFailed, i, err)
		}
		n += n1
		c.byCategory[answer.Category] = len(c.answers)
		c.answers = append(c.answers, answer)
	}

	count, n1, err = varint.Int.Unmarshal(data[n:])
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: domain count", ErrSerializationFailed)
	}
	n += n1
	for i := 0; i < count; i++ {
		name, n1, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: domain name %d: %w", ErrSerializationFailed, i, err)
		}
		n += n1
		dc, n2, err := core.DomainCategoryMUS.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: domain %q: %w", ErrSerializationFailed, name, err)
		}
		n += n2
		c.domains[name] = dc
	}

	count, n1, err = varint.Int.Unmarshal(data[n:])
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: redirect count", ErrSerializationFailed)
	}
	n += n1
	for i := 0; i < count; i++ {
		tag, n1, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: redirect tag %d: %w", ErrSerializationFailed, i, err)
		}
		n += n1
		message, n2, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: redirect %q: %w", ErrSerializationFailed, tag, err)
		}
		n += n2
		c.redirects[tag] = message
	}

	return c, nil
}

// MarshalVector serializes an embedding vector to MUS format.
func MarshalVector(vector []float32) []byte {
	buf := make([]byte, core.VectorMUS.Size(vector))
	core.VectorMUS.Marshal(vector, buf)
	return buf
}

// UnmarshalVector deserializes an embedding vector from MUS format.
func UnmarshalVector(data []byte) ([]float32, error) {
	vector, _, err := core.VectorMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: vector: %w", ErrSerializationFailed, err)
	}
	return vector, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
